package display

import (
	"fmt"
	"io"
	"strings"
)

// RenderBoard prints the server's ASCII board with coloured pieces and
// coordinates
func RenderBoard(w io.Writer, asciiBoard string) {
	for _, line := range strings.Split(asciiBoard, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var sb strings.Builder
		for _, char := range line {
			switch {
			case char >= 'A' && char <= 'Z':
				sb.WriteString(Blue(string(char)))
			case char >= 'a' && char <= 'z':
				sb.WriteString(Red(string(char)))
			case char >= '0' && char <= '9':
				sb.WriteString(Cyan(string(char)))
			default:
				sb.WriteRune(char)
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(turn string) string {
	if turn == "w" {
		return Blue("White")
	}
	return Red("Black")
}
