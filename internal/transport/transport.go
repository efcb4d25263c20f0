package transport

// LineReader is the line-editing input an interactive transport reads
// commands from. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}
