package appearance

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burnsba/tasktracker/internal/models"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"White", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"black", color.NRGBA{A: 255}},
		{"CornflowerBlue", color.NRGBA{R: 100, G: 149, B: 237, A: 255}},
		{"#FF0000", color.NRGBA{R: 255, A: 255}},
		{"#0f0", color.NRGBA{G: 255, A: 255}},
		{"#80112233", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}},
		{"  #102030  ", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, color.NRGBAModel.Convert(c))
		})
	}
}

func TestParseColor_Errors(t *testing.T) {
	for _, in := range []string{"", "Blurple", "#12345", "#GGGGGG", "#"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseColor(in)
			assert.Error(t, err)
		})
	}
}

func TestHex(t *testing.T) {
	c, err := ParseColor("Orange")
	require.NoError(t, err)
	assert.Equal(t, "#FFA500", Hex(c))
}

func TestFromRecord_Defaults(t *testing.T) {
	o, err := FromRecord(models.NewTaskTime())
	require.NoError(t, err)

	assert.Equal(t, "#FFFFFF", Hex(o.Background))
	assert.Equal(t, "#000000", Hex(o.Label.Color))
	assert.Equal(t, "#000000", Hex(o.Timer.Color))
	assert.Equal(t, Margin{Left: 20, Top: 20}, o.Label.Margin)
	assert.Equal(t, Margin{Left: 20, Top: 60}, o.Timer.Margin)
	assert.Equal(t, 250, o.Timer.Width)
	assert.Equal(t, 40, o.Label.Height)
	assert.Equal(t, 16, o.Label.FontSize)
	assert.Equal(t, "Segoe UI", o.Timer.FontName)
	assert.False(t, o.Label.Bold)
}

func TestFromRecord_BadColorsFallBack(t *testing.T) {
	r := models.NewTaskTime()
	r.WindowBackgroundColorName = "not-a-color"
	r.TimerColorName = "#XYZ"
	r.TextFontIsBold = true

	o, err := FromRecord(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WindowBackgroundColorName")
	assert.Contains(t, err.Error(), "TimerColorName")
	assert.NotContains(t, err.Error(), "TextColorName")

	assert.Equal(t, "#FFFFFF", Hex(o.Background))
	assert.Equal(t, "#000000", Hex(o.Timer.Color))
	assert.True(t, o.Label.Bold)
}

func TestLabelText(t *testing.T) {
	r := models.NewTaskTime()
	assert.Equal(t, "new task", LabelText(r))

	r.TaskTextDisplay = "Client X: billing"
	assert.Equal(t, "Client X: billing", LabelText(r))
}
