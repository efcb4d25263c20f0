package commands

import (
	"fmt"
	"strconv"
	"strings"

	"chessrules/internal/client/display"
	"chessrules/internal/core"
)

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new game",
		Usage:       "new [placement [w|b]] [strict] [selfcheck] [nocapture]",
		Handler:     newGameHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Join/set current game ID",
		Usage:       "join <gameId>",
		Handler:     joinGameHandler,
	})

	r.Register(&Command{
		Name:        "select",
		ShortName:   "s",
		Description: "Select a piece and list its legal squares",
		Usage:       "select <row> <col>",
		Handler:     selectHandler,
	})

	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Move the selected piece, or from one square to another",
		Usage:       "move [<fromRow> <fromCol>] <row> <col>",
		Handler:     moveHandler,
	})

	r.Register(&Command{
		Name:        "deselect",
		ShortName:   "u",
		Description: "Clear the current selection",
		Usage:       "deselect",
		Handler:     deselectHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show board and game state",
		Usage:       "show",
		Handler:     showBoardHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete a game",
		Usage:       "delete [gameId]",
		Handler:     deleteGameHandler,
	})

	r.Register(&Command{
		Name:        "poll",
		ShortName:   "p",
		Description: "Long-poll for game updates",
		Usage:       "poll",
		Handler:     pollHandler,
	})
}

func parseSquares(args []string) ([]core.Square, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("squares are given as <row> <col> pairs")
	}
	squares := make([]core.Square, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		row, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("invalid row %q", args[i])
		}
		col, err := strconv.Atoi(args[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid column %q", args[i+1])
		}
		squares = append(squares, core.Sq(row, col))
	}
	return squares, nil
}

func requireGame(s *Session) error {
	if s.GameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}
	return nil
}

func newGameHandler(s *Session, args []string) error {
	var req core.CreateGameRequest
	var rules core.RulesRequest
	on, off := true, false
	customRules := false

	for _, arg := range args {
		switch arg {
		case "strict":
			rules.StrictPawnAdvance, customRules = &on, true
		case "selfcheck":
			rules.ForbidSelfCheck, customRules = &on, true
		case "nocapture":
			rules.SelfCaptureGuard, customRules = &off, true
		case "w", "b":
			req.Turn = arg
		default:
			if req.Placement != "" {
				return fmt.Errorf("unexpected argument %q", arg)
			}
			req.Placement = arg
		}
	}
	if customRules {
		req.Rules = &rules
	}

	g, err := s.Client.CreateGame(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "%s %s (%s)\n", display.Green("Game created:"), g.GameID, g.Name)
	s.GameID = g.GameID
	showGame(s, g)
	return nil
}

func joinGameHandler(s *Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: join <gameId>")
	}

	g, err := s.Client.GetGame(args[0])
	if err != nil {
		return err
	}

	s.GameID = g.GameID
	fmt.Fprintf(s.Out, "%s %s (%s)\n", display.Green("Joined game:"), g.GameID, g.Name)
	showGame(s, g)
	return nil
}

func selectHandler(s *Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	squares, err := parseSquares(args)
	if err != nil || len(squares) != 1 {
		return fmt.Errorf("usage: select <row> <col>")
	}

	g, err := s.Client.Select(s.GameID, squares[0])
	if err != nil {
		return err
	}
	showGame(s, g)
	return nil
}

func moveHandler(s *Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	squares, err := parseSquares(args)
	if err != nil || len(squares) == 0 || len(squares) > 2 {
		return fmt.Errorf("usage: move [<fromRow> <fromCol>] <row> <col>")
	}

	var from *core.Square
	to := squares[len(squares)-1]
	if len(squares) == 2 {
		from = &squares[0]
	}

	resp, err := s.Client.Move(s.GameID, from, to)
	if err != nil {
		return err
	}

	mv := resp.Move
	line := fmt.Sprintf("%s %v -> %v", mv.Piece, mv.From, mv.To)
	if mv.Captured != "" {
		line += " x" + mv.Captured
	}
	if mv.Promoted {
		line += " =Q"
	}
	fmt.Fprintln(s.Out, display.Green(line))
	return showBoard(s, &resp.Game)
}

func deselectHandler(s *Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	g, err := s.Client.Deselect(s.GameID)
	if err != nil {
		return err
	}
	showGame(s, g)
	return nil
}

func showBoardHandler(s *Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	g, err := s.Client.GetGame(s.GameID)
	if err != nil {
		return err
	}
	return showBoard(s, g)
}

func deleteGameHandler(s *Session, args []string) error {
	gameID := s.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("usage: delete [gameId]")
	}

	if err := s.Client.DeleteGame(gameID); err != nil {
		return err
	}
	if gameID == s.GameID {
		s.GameID = ""
		s.Plies = 0
	}
	fmt.Fprintf(s.Out, "%s %s\n", display.Green("Game deleted:"), gameID)
	return nil
}

func pollHandler(s *Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}

	ply := s.Plies
	fmt.Fprintln(s.Out, display.Cyan(fmt.Sprintf("Long-polling for updates (ply: %d)...", ply)))

	g, err := s.Client.WaitGame(s.GameID, ply)
	if err != nil {
		return err
	}

	if g.Plies != ply {
		fmt.Fprintln(s.Out, display.Green("Game updated"))
		return showBoard(s, g)
	}
	s.remember(g)
	fmt.Fprintln(s.Out, display.Yellow("No updates (timeout)"))
	return nil
}

func (s *Session) remember(g *core.GameResponse) {
	s.Plies = g.Plies
	s.Turn = g.Turn
}

// showBoard fetches and prints the board, then the game summary
func showBoard(s *Session, g *core.GameResponse) error {
	b, err := s.Client.GetBoard(g.GameID)
	if err != nil {
		return err
	}
	display.RenderBoard(s.Out, b.Board)
	showGame(s, g)
	return nil
}

// showGame prints the summary line and the current selection
func showGame(s *Session, g *core.GameResponse) {
	s.remember(g)

	status := ""
	if g.Status != "" {
		status = " " + display.Red(g.Status)
	}
	fmt.Fprintf(s.Out, "Turn: %s%s  Ply: %d\n", display.ColorForTurn(g.Turn), status, g.Plies)

	if sel := g.Selection; sel != nil {
		legal := make([]string, len(sel.Legal))
		for i, sq := range sel.Legal {
			legal[i] = sq.String()
		}
		fmt.Fprintf(s.Out, "Selected %s %v: %s\n", sel.Piece, sel.Square, strings.Join(legal, " "))
	}
}
