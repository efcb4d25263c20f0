package cli

import (
	"fmt"
	"strings"

	"chessrules/internal/cli"
	"chessrules/internal/core"
	"chessrules/internal/engine"
	"chessrules/internal/service"
	"chessrules/internal/transport"
)

// CLIHandler drives one local hot-seat game through the service
type CLIHandler struct {
	svc    *service.Service
	view   *cli.CLI
	in     transport.LineReader
	rules  engine.Rules // applied to the next new game
	gameID string
}

func New(svc *service.Service, view *cli.CLI, in transport.LineReader, rules engine.Rules) *CLIHandler {
	return &CLIHandler{
		svc:   svc,
		view:  view,
		in:    in,
		rules: rules,
	}
}

// Run starts a standard game and processes commands until quit or EOF
func (h *CLIHandler) Run() {
	if err := h.newGame("", core.ColorWhite); err != nil {
		h.view.ShowError(err)
		return
	}

	for {
		h.in.SetPrompt(h.prompt())

		line, err := h.in.Readline()
		if err != nil {
			break
		}

		cmd, err := cli.ParseCommand(line)
		if err != nil {
			h.view.ShowError(err)
			continue
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

func (h *CLIHandler) prompt() string {
	snap, err := h.svc.GetGame(h.gameID)
	if err != nil {
		return "> "
	}
	return h.view.Prompt(snap.Turn, core.CheckStatus(snap.Check))
}

// ProcessCommand handles one command, returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:

	case cli.CmdHelp:
		h.view.ShowHelp()

	case cli.CmdBoard:
		h.showBoard()

	case cli.CmdSelect:
		legal, _, err := h.svc.Select(h.gameID, cmd.Square)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowLegal(cmd.Square, legal)
		h.showBoard()

	case cli.CmdDeselect:
		if _, err := h.svc.Deselect(h.gameID); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.showBoard()

	case cli.CmdMove:
		res, _, err := h.svc.Move(h.gameID, nil, cmd.Square)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMove(res)
		h.showBoard()

	case cli.CmdClick:
		res, moved, snap, err := h.svc.Click(h.gameID, cmd.Square)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		if moved {
			h.view.ShowMove(res)
		} else if snap.Selection != nil && snap.Selection.Square == cmd.Square {
			h.view.ShowLegal(cmd.Square, snap.Selection.Legal)
		}
		h.showBoard()

	case cli.CmdNew:
		h.handleNew(cmd.Args)

	case cli.CmdRules:
		h.handleRules(cmd.Args)

	case cli.CmdColor:
		if len(cmd.Args) != 1 {
			h.view.ShowMessage("Usage: color <on|off|brown|green|gray>")
			return true
		}
		if err := h.view.SetTheme(cli.ColorTheme(cmd.Args[0])); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.showBoard()
	}

	return true
}

func (h *CLIHandler) handleNew(args []string) {
	placement := ""
	turn := core.ColorWhite

	if len(args) > 0 {
		placement = args[0]
	}
	if len(args) > 1 {
		c, ok := core.ParseColor(args[1])
		if !ok {
			h.view.ShowMessage("Usage: new [placement [w|b]]")
			return
		}
		turn = c
	}
	if len(args) > 2 {
		h.view.ShowMessage("Usage: new [placement [w|b]]")
		return
	}

	if err := h.newGame(placement, turn); err != nil {
		h.view.ShowError(err)
	}
}

// newGame replaces the current game
func (h *CLIHandler) newGame(placement string, turn core.Color) error {
	snap, err := h.svc.CreateGame(placement, turn, h.rules)
	if err != nil {
		return err
	}
	if h.gameID != "" {
		h.svc.DeleteGame(h.gameID)
	}
	h.gameID = snap.GameID

	h.view.ShowMessage(fmt.Sprintf("New game %s", snap.Name))
	h.showBoard()
	return nil
}

func (h *CLIHandler) handleRules(args []string) {
	if len(args) == 0 {
		h.view.ShowRules(h.rules)
		return
	}
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		h.view.ShowMessage("Usage: rules [capture|strict|selfcheck on|off]")
		return
	}

	on := args[1] == "on"
	switch strings.ToLower(args[0]) {
	case "capture":
		h.rules.SelfCaptureGuard = on
	case "strict":
		h.rules.StrictPawnAdvance = on
	case "selfcheck":
		h.rules.ForbidSelfCheck = on
	default:
		h.view.ShowMessage(fmt.Sprintf("Unknown rule %q", args[0]))
		return
	}
	h.view.ShowRules(h.rules)
}

func (h *CLIHandler) showBoard() {
	snap, err := h.svc.GetGame(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	h.view.DisplayBoard(snap.Board, snap.Selection, snap.Turn, core.CheckStatus(snap.Check))
}
