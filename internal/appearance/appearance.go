// Package appearance turns the presentation fields of a task record into
// values the overlay can render.
package appearance

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/burnsba/tasktracker/internal/models"
)

// Margin is the spacing around a region, in device independent pixels.
type Margin struct {
	Left, Top, Right, Bottom int
}

// Region describes how one line of the overlay is drawn.
type Region struct {
	FontName string
	FontSize int
	Bold     bool
	Color    color.Color
	Width    int
	Height   int
	Margin   Margin
}

// Overlay is the render-ready form of a task record.
type Overlay struct {
	Background color.Color
	Label      Region
	Timer      Region
}

// ParseColor accepts a named color (case-insensitive, CSS/SVG names) or a hex
// value in #RGB, #RRGGBB or #AARRGGBB form.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty color")
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

func parseHex(s string) (color.Color, error) {
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h = "ff" + h
	}
	if len(h) != 8 {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// Hex renders c as #RRGGBB, dropping alpha.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}

// FromRecord builds the overlay for r. Colors that fail to parse fall back to
// the record defaults and are reported in the returned error.
func FromRecord(r models.TaskTime) (Overlay, error) {
	var errs []error
	colorOr := func(field, name, fallback string) color.Color {
		c, err := ParseColor(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
			c, _ = ParseColor(fallback)
		}
		return c
	}

	o := Overlay{
		Background: colorOr("WindowBackgroundColorName", r.WindowBackgroundColorName, models.DefaultBackgroundColor),
		Label: Region{
			FontName: r.TextFontName,
			FontSize: r.TextFontSize,
			Bold:     r.TextFontIsBold,
			Color:    colorOr("TextColorName", r.TextColorName, models.DefaultTextColorName),
			Width:    r.TextWidth,
			Height:   r.TextHeight,
			Margin:   Margin{r.TextMarginLeft, r.TextMarginTop, r.TextMarginRight, r.TextMarginBottom},
		},
		Timer: Region{
			FontName: r.TimerFontName,
			FontSize: r.TimerFontSize,
			Bold:     r.TimerFontIsBold,
			Color:    colorOr("TimerColorName", r.TimerColorName, models.DefaultTextColorName),
			Width:    r.TimerWidth,
			Height:   r.TimerHeight,
			Margin:   Margin{r.TimerMarginLeft, r.TimerMarginTop, r.TimerMarginRight, r.TimerMarginBottom},
		},
	}
	return o, errors.Join(errs...)
}

// LabelText is the text shown in the label region: the display text when
// set, otherwise the task name.
func LabelText(r models.TaskTime) string {
	if r.TaskTextDisplay != "" {
		return r.TaskTextDisplay
	}
	return r.TaskName
}
