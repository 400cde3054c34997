package timer

import (
	"fmt"
	"strings"
	"time"
)

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokDays
	tokHours
	tokMinutes
	tokSeconds
	tokFraction
	tokFractionTrim
)

// fractionDigits is the resolution of f/F specifiers: 100ns ticks.
const fractionDigits = 7

type token struct {
	kind  tokenKind
	width int
	text  string
}

// Layout is a parsed duration display format.
//
// Specifiers: d..dddddddd total days zero-padded to the count, h/hh hours of
// the day, m/mm minutes, s/ss seconds, f..fffffff fraction digits, F..FFFFFFF
// fraction digits without trailing zeros. A backslash escapes the next
// character, text in single or double quotes is copied as is, and % before a
// specifier makes it stand alone. Anything else is rejected.
type Layout struct {
	source string
	tokens []token
}

var maxWidth = map[rune]int{
	'd': 8,
	'h': 2,
	'm': 2,
	's': 2,
	'f': fractionDigits,
	'F': fractionDigits,
}

var kindOf = map[rune]tokenKind{
	'd': tokDays,
	'h': tokHours,
	'm': tokMinutes,
	's': tokSeconds,
	'f': tokFraction,
	'F': tokFractionTrim,
}

// ParseLayout parses a display format string.
func ParseLayout(layout string) (Layout, error) {
	l := Layout{source: layout}
	rs := []rune(layout)

	for i := 0; i < len(rs); {
		c := rs[i]
		switch c {
		case 'd', 'h', 'm', 's', 'f', 'F':
			n := 1
			for i+n < len(rs) && rs[i+n] == c {
				n++
			}
			if n > maxWidth[c] {
				return Layout{}, fmt.Errorf("too many %q specifiers at position %d", c, i)
			}
			l.tokens = append(l.tokens, token{kind: kindOf[c], width: n})
			i += n
		case '\\':
			if i+1 >= len(rs) {
				return Layout{}, fmt.Errorf("trailing escape at position %d", i)
			}
			l.appendLiteral(string(rs[i+1]))
			i += 2
		case '\'', '"':
			end := -1
			for j := i + 1; j < len(rs); j++ {
				if rs[j] == c {
					end = j
					break
				}
			}
			if end < 0 {
				return Layout{}, fmt.Errorf("unterminated quote at position %d", i)
			}
			l.appendLiteral(string(rs[i+1 : end]))
			i = end + 1
		case '%':
			if i+1 >= len(rs) {
				return Layout{}, fmt.Errorf("dangling %% at position %d", i)
			}
			k, ok := kindOf[rs[i+1]]
			if !ok {
				return Layout{}, fmt.Errorf("%% must precede a specifier, got %q at position %d", rs[i+1], i+1)
			}
			l.tokens = append(l.tokens, token{kind: k, width: 1})
			i += 2
		default:
			return Layout{}, fmt.Errorf("unexpected character %q at position %d", c, i)
		}
	}

	return l, nil
}

func (l *Layout) appendLiteral(s string) {
	if n := len(l.tokens); n > 0 && l.tokens[n-1].kind == tokLiteral {
		l.tokens[n-1].text += s
		return
	}
	l.tokens = append(l.tokens, token{kind: tokLiteral, text: s})
}

// String returns the source format.
func (l Layout) String() string {
	return l.source
}

// IsZero reports whether the layout has no tokens.
func (l Layout) IsZero() bool {
	return len(l.tokens) == 0
}

// Format renders d. Negative durations render as zero.
func (l Layout) Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	days := int64(d / (24 * time.Hour))
	hours := int64(d/time.Hour) % 24
	minutes := int64(d/time.Minute) % 60
	seconds := int64(d/time.Second) % 60
	ticks := fmt.Sprintf("%07d", int64(d%time.Second)/100)

	var b strings.Builder
	for _, t := range l.tokens {
		switch t.kind {
		case tokLiteral:
			b.WriteString(t.text)
		case tokDays:
			fmt.Fprintf(&b, "%0*d", t.width, days)
		case tokHours:
			writeClock(&b, hours, t.width)
		case tokMinutes:
			writeClock(&b, minutes, t.width)
		case tokSeconds:
			writeClock(&b, seconds, t.width)
		case tokFraction:
			b.WriteString(ticks[:t.width])
		case tokFractionTrim:
			b.WriteString(strings.TrimRight(ticks[:t.width], "0"))
		}
	}
	return b.String()
}

func writeClock(b *strings.Builder, v int64, width int) {
	if width == 2 {
		fmt.Fprintf(b, "%02d", v)
		return
	}
	fmt.Fprintf(b, "%d", v)
}

// FormatDefault renders d as hh:mm:ss, prefixed with "d." once a day has
// passed. Sub-second precision is dropped.
func FormatDefault(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if days > 0 {
		return fmt.Sprintf("%d.%02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
