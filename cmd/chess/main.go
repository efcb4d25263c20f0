// Package main is a hot-seat chess game for two players sharing a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"chessrules/internal/cli"
	"chessrules/internal/engine"
	"chessrules/internal/service"
	clitransport "chessrules/internal/transport/cli"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

const gracefulTimeout = time.Second

func main() {
	defaults := engine.DefaultRules()

	var (
		theme            = flag.String("color", "auto", "Board colours: auto, off, brown, green, gray")
		history          = flag.String("history", ".chess_history", "Readline history file (empty disables)")
		selfCaptureGuard = flag.Bool("self-capture-guard", defaults.SelfCaptureGuard, "Reject moves onto own pieces")
		strictPawn       = flag.Bool("strict-pawn", defaults.StrictPawnAdvance, "Pawns cannot advance onto or through occupied squares")
		forbidSelfCheck  = flag.Bool("forbid-self-check", defaults.ForbidSelfCheck, "Reject moves that leave the mover's king in check")
	)
	flag.Parse()

	view := cli.New(os.Stdout)

	// colour only when drawing to a terminal unless asked explicitly
	t := cli.ColorTheme(*theme)
	if *theme == "auto" {
		t = cli.ThemeOff
		if term.IsTerminal(int(os.Stdout.Fd())) {
			t = cli.ThemeBrown
		}
	}
	if err := view.SetTheme(t); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     *history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	svc := service.New(nil, 0)
	defer svc.Shutdown(gracefulTimeout)

	rules := engine.Rules{
		SelfCaptureGuard:  *selfCaptureGuard,
		StrictPawnAdvance: *strictPawn,
		ForbidSelfCheck:   *forbidSelfCheck,
	}
	handler := clitransport.New(svc, view, rl, rules)

	view.ShowWelcome()
	handler.Run()
}
