package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"chessrules/internal/client/api"
	"chessrules/internal/client/display"
)

// errExit asks the read loop to stop
var errExit = errors.New("exit")

// Session is the client state shared by all commands
type Session struct {
	Client  *api.Client
	Out     io.Writer
	GameID  string
	Plies   int    // ply count of the last view seen
	Turn    string // "w" or "b" of the last view seen
	Verbose bool
}

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  *Session
	commands map[string]*Command
	names    []string
}

func NewRegistry(session *Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}

	r.registerGameCommands()
	r.registerDebugCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.helpHandler,
	})

	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Exit the client",
		Usage:       "exit",
		Handler: func(s *Session, args []string) error {
			return errExit
		},
	})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	r.names = append(r.names, cmd.Name)
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Execute runs one input line and reports whether the client should exit.
// A trailing " -v" traces the HTTP exchange of this command.
func (r *Registry) Execute(input string) (quit bool) {
	s := r.session

	input = strings.TrimSpace(input)
	s.Verbose = strings.HasSuffix(input, " -v")
	input = strings.TrimSuffix(input, " -v")

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}

	cmd, exists := r.commands[parts[0]]
	if !exists {
		fmt.Fprintln(s.Out, display.Red("Unknown command: "+parts[0]))
		fmt.Fprintln(s.Out, "Type 'help' for available commands")
		return false
	}

	s.Client.Trace = nil
	if s.Verbose {
		s.Client.Trace = s.Out
	}

	if err := cmd.Handler(s, parts[1:]); err != nil {
		if errors.Is(err, errExit) {
			fmt.Fprintln(s.Out, display.Cyan("Goodbye!"))
			return true
		}
		fmt.Fprintln(s.Out, display.Red("Error: "+err.Error()))
	}
	return false
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(s.Out, "\n%s - %s\n", display.Cyan(cmd.Name), cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(s.Out, "Short form: %s\n", display.Cyan(cmd.ShortName))
		}
		fmt.Fprintf(s.Out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	fmt.Fprintf(s.Out, "\n%s\n\n", display.Cyan("Available Commands:"))

	names := append([]string(nil), r.names...)
	sort.Strings(names)
	for _, name := range names {
		cmd := r.commands[name]
		short := "   "
		if cmd.ShortName != "" {
			short = "[" + cmd.ShortName + "]"
		}
		fmt.Fprintf(s.Out, "  %s %-10s %s\n", display.Cyan(short), cmd.Name, cmd.Description)
	}

	fmt.Fprintln(s.Out, "\nType 'help <command>' for detailed usage")
	fmt.Fprintln(s.Out, "Add '-v' to any command for verbose output")
	return nil
}
