package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneDayTwoHours = 26*time.Hour + 3*time.Minute + 4*time.Second

func TestLayout_Format(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		d      time.Duration
		want   string
	}{
		{"default task format", `dd\d\ hh\:mm\:ss`, oneDayTwoHours, "01d 02:03:04"},
		{"default task format zero", `dd\d\ hh\:mm\:ss`, 0, "00d 00:00:00"},
		{"quoted separators", `hh':'mm`, oneDayTwoHours, "02:03"},
		{"double quoted literal", `h"h "m"m"`, oneDayTwoHours, "2h 3m"},
		{"single specifier", `%h`, oneDayTwoHours, "2"},
		{"unpadded minutes and seconds", `m\:s`, 65 * time.Second, "1:5"},
		{"padded days", `ddd`, 72 * time.Hour, "003"},
		{"days exceed width", `d`, 240 * time.Hour, "10"},
		{"fixed fraction", `s\.fff`, 4*time.Second + 123456700*time.Nanosecond, "4.123"},
		{"trimmed fraction", `s\.FFF`, 4*time.Second + 100*time.Millisecond, "4.1"},
		{"trimmed fraction all zero", `s\.FFF`, 4 * time.Second, "4."},
		{"negative clamps to zero", `hh\:mm\:ss`, -5 * time.Second, "00:00:00"},
		{"unicode literal", `'⏱ 'hh\:mm`, time.Hour, "⏱ 01:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseLayout(tt.layout)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Format(tt.d))
			assert.Equal(t, tt.layout, l.String())
		})
	}
}

func TestParseLayout_Errors(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		wantErr string
	}{
		{"too many hours", "hhh", "too many"},
		{"too many days", "ddddddddd", "too many"},
		{"too many fraction digits", "ffffffff", "too many"},
		{"unescaped literal", "hh:mm", "unexpected character"},
		{"trailing escape", `hh\`, "trailing escape"},
		{"unterminated quote", "'abc", "unterminated quote"},
		{"percent without specifier", "%x", "must precede a specifier"},
		{"dangling percent", "%", "dangling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout(tt.layout)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseLayout_Empty(t *testing.T) {
	l, err := ParseLayout("")
	require.NoError(t, err)
	assert.True(t, l.IsZero())
}

func TestFormatDefault(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDefault(0))
	assert.Equal(t, "00:00:59", FormatDefault(59*time.Second+900*time.Millisecond))
	assert.Equal(t, "01:01:01", FormatDefault(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "1.02:03:04", FormatDefault(oneDayTwoHours))
	assert.Equal(t, "00:00:00", FormatDefault(-time.Minute))
}
