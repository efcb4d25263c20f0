package display

import "github.com/fatih/color"

// Colour helpers; fatih/color disables them when stdout is not a terminal
var (
	Red     = color.New(color.FgRed).SprintFunc()
	Green   = color.New(color.FgGreen).SprintFunc()
	Yellow  = color.New(color.FgYellow).SprintFunc()
	Blue    = color.New(color.FgBlue).SprintFunc()
	Magenta = color.New(color.FgMagenta).SprintFunc()
	Cyan    = color.New(color.FgCyan).SprintFunc()
)

// Prompt returns a colored prompt string
func Prompt(text string) string {
	return Yellow(text + " > ")
}
