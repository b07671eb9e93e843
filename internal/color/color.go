package color

import (
	"os"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Bold   = "\033[1m"
)

// Color represents a colorizer that can be enabled or disabled
type Color struct {
	enabled bool
}

// New creates a new Color instance
func New(enabled bool) *Color {
	return &Color{enabled: enabled && shouldEnableColor()}
}

// shouldEnableColor determines if color should be enabled based on environment
func shouldEnableColor() bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	return term != "dumb" && term != ""
}

func (c *Color) wrap(code, text string) string {
	if !c.enabled {
		return text
	}
	return code + text + Reset
}

// Success colors text green
func (c *Color) Success(text string) string {
	return c.wrap(Green, text)
}

// Warn colors text yellow
func (c *Color) Warn(text string) string {
	return c.wrap(Yellow, text)
}

// Error colors text red
func (c *Color) Error(text string) string {
	return c.wrap(Red, text)
}

// Bold makes text bold
func (c *Color) Bold(text string) string {
	return c.wrap(Bold, text)
}

// Cyan colors text cyan (for headers and labels)
func (c *Color) Cyan(text string) string {
	return c.wrap(Cyan, text)
}

// Symbol returns the status mark printed in front of CLI results
func (c *Color) Symbol(status string) string {
	switch status {
	case "ok", "success":
		return c.Success("✓")
	case "warn", "warning":
		return c.Warn("!")
	case "error", "fail":
		return c.Error("✗")
	case "skipped":
		return c.Warn("⚠")
	case "pending":
		return c.Cyan("~")
	default:
		return " "
	}
}
