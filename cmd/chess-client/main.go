// Package main implements an interactive client for the chess rules server API.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chessrules/internal/client/api"
	"chessrules/internal/client/commands"
	"chessrules/internal/client/display"

	"github.com/chzyer/readline"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "Chess server base URL")
	history := flag.String("history", ".chess_client_history", "Readline history file, empty to disable")
	flag.Parse()

	s := &commands.Session{
		Client: api.New(*apiURL),
		Out:    os.Stdout,
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("chess"),
		HistoryFile:     *history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, display.Red(err.Error()))
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println(display.Cyan("Chess Rules Client"))
	fmt.Println(display.Cyan("API: " + s.Client.BaseURL))
	fmt.Print("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			break
		}

		if registry.Execute(line) {
			break
		}
	}
}

func buildPrompt(s *commands.Session) string {
	if s.GameID == "" {
		return display.Prompt("chess")
	}

	id := s.GameID
	if len(id) > 8 {
		id = id[:8]
	}
	prompt := "chess [" + id + "]"
	if s.Turn != "" {
		prompt += " " + strings.TrimSpace(display.ColorForTurn(s.Turn))
	}
	return display.Prompt(prompt)
}
