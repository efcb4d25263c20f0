package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/engine"
	"chessrules/internal/game"

	"github.com/fatih/color"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdSelect
	CmdMove
	CmdClick
	CmdDeselect
	CmdBoard
	CmdNew
	CmdRules
	CmdColor
	CmdHelp
	CmdQuit
)

type Command struct {
	Type   CommandType
	Square core.Square // select, move and click target
	Args   []string
	Raw    string
}

// ParseCommand reads one input line. Squares are given as "row col".
func ParseCommand(input string) (*Command, error) {
	input = strings.TrimSpace(input)
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}, nil
	}

	cmd := &Command{Args: parts[1:], Raw: input}

	switch parts[0] {
	case "select", "s":
		cmd.Type = CmdSelect
	case "move", "m":
		cmd.Type = CmdMove
	case "deselect", "d":
		cmd.Type = CmdDeselect
		return cmd, nil
	case "board", "b":
		cmd.Type = CmdBoard
		return cmd, nil
	case "new":
		cmd.Type = CmdNew
		return cmd, nil
	case "rules":
		cmd.Type = CmdRules
		return cmd, nil
	case "color":
		cmd.Type = CmdColor
		return cmd, nil
	case "help", "?":
		cmd.Type = CmdHelp
		return cmd, nil
	case "quit", "exit":
		cmd.Type = CmdQuit
		return cmd, nil
	default:
		// bare "row col" is a click
		cmd.Type = CmdClick
		cmd.Args = parts
	}

	sq, err := parseSquare(cmd.Args)
	if err != nil {
		return nil, err
	}
	cmd.Square = sq
	return cmd, nil
}

func parseSquare(args []string) (core.Square, error) {
	if len(args) != 2 {
		return core.Square{}, fmt.Errorf("expected <row> <col>, got %q", strings.Join(args, " "))
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return core.Square{}, fmt.Errorf("invalid row %q", args[0])
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return core.Square{}, fmt.Errorf("invalid column %q", args[1])
	}
	return core.Sq(row, col), nil
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg color.Attribute
	darkBg  color.Attribute
}

var themes = map[ColorTheme]themeColors{
	ThemeBrown: {lightBg: color.BgHiYellow, darkBg: color.BgYellow},
	ThemeGreen: {lightBg: color.BgHiGreen, darkBg: color.BgGreen},
	ThemeGray:  {lightBg: color.BgHiWhite, darkBg: color.BgHiBlack},
}

const (
	selectedBg = color.BgBlue
	legalBg    = color.BgCyan
)

type CLI struct {
	output io.Writer
	theme  ColorTheme
}

func New(output io.Writer) *CLI {
	return &CLI{
		output: output,
		theme:  ThemeOff,
	}
}

// SetTheme selects the board colours; "on" picks the default theme
func (c *CLI) SetTheme(theme ColorTheme) error {
	if theme == "on" {
		theme = ThemeBrown
	}
	if _, ok := themes[theme]; !ok && theme != ThemeOff {
		return fmt.Errorf("invalid theme: %s (use: on, off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

// Prompt shows whose turn it is and the check label
func (c *CLI) Prompt(turn core.Color, status string) string {
	if status != "" {
		return fmt.Sprintf("[%s %s]> ", turn.Name(), status)
	}
	return fmt.Sprintf("[%s]> ", turn.Name())
}

// paint renders text on the given background with the piece colour, or
// returns it untouched when colours are off
func (c *CLI) paint(text string, bg color.Attribute, p core.Piece) string {
	if c.theme == ThemeOff {
		return text
	}
	fg := color.FgHiWhite
	if p.Color == core.ColorBlack {
		fg = color.FgBlack
	}
	painter := color.New(bg, fg, color.Bold)
	painter.EnableColor()
	return painter.Sprint(text)
}

// RenderBoard draws the board with row and column indices. The selected
// square is bracketed and legal destinations are starred.
func (c *CLI) RenderBoard(b board.Board, sel *game.Selection) string {
	theme := themes[c.theme]
	var sb strings.Builder

	header := "   0  1  2  3  4  5  6  7\n"
	sb.WriteString("\n" + header)

	for r := 0; r < core.BoardSize; r++ {
		fmt.Fprintf(&sb, "%d ", r)
		for col := 0; col < core.BoardSize; col++ {
			sq := core.Sq(r, col)
			p := b.At(sq)

			glyph := "."
			if !p.IsEmpty() {
				glyph = string(p.Symbol())
			}

			bg := theme.darkBg
			if (r+col)%2 == 0 {
				bg = theme.lightBg
			}

			cell := " " + glyph + " "
			switch {
			case sel != nil && sel.Square == sq:
				cell = "[" + glyph + "]"
				bg = selectedBg
			case sel != nil && slices.Contains(sel.Legal, sq):
				if p.IsEmpty() {
					cell = " * "
				} else {
					cell = "*" + glyph + "*"
				}
				bg = legalBg
			}

			sb.WriteString(c.paint(cell, bg, p))
		}
		fmt.Fprintf(&sb, " %d\n", r)
	}
	sb.WriteString(header)

	return sb.String()
}

// DisplayBoard prints the board followed by the side to move
func (c *CLI) DisplayBoard(b board.Board, sel *game.Selection, turn core.Color, status string) {
	c.ShowMessage(c.RenderBoard(b, sel))
	line := turn.Name() + " to move"
	if status != "" {
		line += " (" + status + ")"
	}
	c.ShowMessage(line)
}

func (c *CLI) ShowLegal(from core.Square, legal []core.Square) {
	if len(legal) == 0 {
		c.ShowMessage(fmt.Sprintf("Selected %v: no legal destinations", from))
		return
	}
	squares := make([]string, len(legal))
	for i, sq := range legal {
		squares[i] = sq.String()
	}
	c.ShowMessage(fmt.Sprintf("Selected %v: %s", from, strings.Join(squares, " ")))
}

func (c *CLI) ShowMove(res game.MoveResult) {
	msg := fmt.Sprintf("%s %v -> %v", res.Piece, res.From, res.To)
	if !res.Captured.IsEmpty() {
		msg += fmt.Sprintf(", captures %s", res.Captured)
	}
	if res.Promoted {
		msg += ", promotes to queen"
	}
	c.ShowMessage(msg)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (c *CLI) ShowRules(r engine.Rules) {
	c.ShowMessage(fmt.Sprintf(`Rules (apply to the next 'new'):
  capture    self-capture guard       %s
  strict     strict pawn advance      %s
  selfcheck  forbid moving into check %s`,
		onOff(r.SelfCaptureGuard), onOff(r.StrictPawnAdvance), onOff(r.ForbidSelfCheck)))
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  select <row> <col>    - Select a piece of the side to move
  move <row> <col>      - Move the selected piece
  <row> <col>           - Click a square: select, move or reselect
  deselect              - Drop the current selection
  board                 - Show the board
  new [placement [w|b]] - Start a new game, optionally from a placement string
  rules [name on|off]   - Show or change rules for the next game
  color <theme>         - Board colours (on|off|brown|green|gray)
  quit/exit             - Exit the program
  help/?                - Show this help message

Rows and columns run 0-7 from the top-left corner as drawn.`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Chess!")
	c.ShowMessage("Two players share this terminal. White moves first.")
	c.ShowMessage("Example: 'select 6 4' then 'move 4 4' advances the king's pawn.")
	c.ShowMessage("")
}
