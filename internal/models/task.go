package models

const (
	DefaultTimeFormat      = `dd\d\ hh\:mm\:ss`
	DefaultTaskName        = "new task"
	DefaultFontName        = "Segoe UI"
	DefaultFontSize        = 16
	DefaultTextColorName   = "Black"
	DefaultBackgroundColor = "White"
	DefaultRegionWidth     = 250
	DefaultRegionHeight    = 40
	DefaultMarginLeft      = 20
	DefaultTextMarginTop   = 20
	DefaultTimerMarginTop  = 60
)

// TaskTime is the persisted record of a tracked task. Only PriorElapsedSeconds
// and TimeFormat mean anything to the timer; the rest is presentation data
// passed through to the overlay.
type TaskTime struct {
	TimeFormat      string `json:"TimeFormat" yaml:"TimeFormat"`
	TaskName        string `json:"TaskName" yaml:"TaskName"`
	TaskTextDisplay string `json:"TaskTextDisplay" yaml:"TaskTextDisplay"`

	TextFontName     string `json:"TextFontName" yaml:"TextFontName"`
	TextFontSize     int    `json:"TextFontSize" yaml:"TextFontSize"`
	TextFontIsBold   bool   `json:"TextFontIsBold" yaml:"TextFontIsBold"`
	TextColorName    string `json:"TextColorName" yaml:"TextColorName"`
	TextWidth        int    `json:"TextWidth" yaml:"TextWidth"`
	TextHeight       int    `json:"TextHeight" yaml:"TextHeight"`
	TextMarginLeft   int    `json:"TextMarginLeft" yaml:"TextMarginLeft"`
	TextMarginTop    int    `json:"TextMarginTop" yaml:"TextMarginTop"`
	TextMarginRight  int    `json:"TextMarginRight" yaml:"TextMarginRight"`
	TextMarginBottom int    `json:"TextMarginBottom" yaml:"TextMarginBottom"`

	TimerFontName     string `json:"TimerFontName" yaml:"TimerFontName"`
	TimerFontSize     int    `json:"TimerFontSize" yaml:"TimerFontSize"`
	TimerFontIsBold   bool   `json:"TimerFontIsBold" yaml:"TimerFontIsBold"`
	TimerColorName    string `json:"TimerColorName" yaml:"TimerColorName"`
	TimerWidth        int    `json:"TimerWidth" yaml:"TimerWidth"`
	TimerHeight       int    `json:"TimerHeight" yaml:"TimerHeight"`
	TimerMarginLeft   int    `json:"TimerMarginLeft" yaml:"TimerMarginLeft"`
	TimerMarginTop    int    `json:"TimerMarginTop" yaml:"TimerMarginTop"`
	TimerMarginRight  int    `json:"TimerMarginRight" yaml:"TimerMarginRight"`
	TimerMarginBottom int    `json:"TimerMarginBottom" yaml:"TimerMarginBottom"`

	WindowBackgroundColorName string `json:"WindowBackgroundColorName" yaml:"WindowBackgroundColorName"`

	// PriorElapsedSeconds is the accumulated time of all closed sessions,
	// truncated to whole seconds.
	PriorElapsedSeconds int64 `json:"PriorElapsedSeconds" yaml:"PriorElapsedSeconds"`
}

// NewTaskTime returns a record with every field set to its default.
func NewTaskTime() TaskTime {
	return TaskTime{
		TimeFormat:                DefaultTimeFormat,
		TaskName:                  DefaultTaskName,
		TextFontName:              DefaultFontName,
		TextFontSize:              DefaultFontSize,
		TextColorName:             DefaultTextColorName,
		TextWidth:                 DefaultRegionWidth,
		TextHeight:                DefaultRegionHeight,
		TextMarginLeft:            DefaultMarginLeft,
		TextMarginTop:             DefaultTextMarginTop,
		TimerFontName:             DefaultFontName,
		TimerFontSize:             DefaultFontSize,
		TimerColorName:            DefaultTextColorName,
		TimerWidth:                DefaultRegionWidth,
		TimerHeight:               DefaultRegionHeight,
		TimerMarginLeft:           DefaultMarginLeft,
		TimerMarginTop:            DefaultTimerMarginTop,
		WindowBackgroundColorName: DefaultBackgroundColor,
	}
}
