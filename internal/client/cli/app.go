package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/jobtrack/internal/client/client"
	"github.com/dmitrijs2005/jobtrack/internal/client/services"
)

// ErrNotLoggedIn is returned by commands that need an access token.
var ErrNotLoggedIn = errors.New("not logged in, run 'login' first")

type command struct {
	usage   string
	auth    bool
	handler func(ctx context.Context, args []string) error
}

type App struct {
	api      client.Client
	auth     services.AuthService
	in       *bufio.Reader
	out      io.Writer
	loggedIn bool
	userName string
	commands map[string]command
}

func NewApp(api client.Client, auth services.AuthService, in io.Reader, out io.Writer) *App {
	a := &App{api: api, auth: auth, in: bufio.NewReader(in), out: out}
	a.commands = map[string]command{
		"register":       {usage: "register", handler: a.Register},
		"login":          {usage: "login", handler: a.Login},
		"logout":         {usage: "logout", handler: a.Logout},
		"reset-password": {usage: "reset-password", handler: a.ResetPassword},
		"health":         {usage: "health", handler: a.Health},
		"log":            {usage: "log [-apps N] [-net N] [-hours H] [-research N]", auth: true, handler: a.Log},
		"history":        {usage: "history [-days N]", auth: true, handler: a.History},
		"stats":          {usage: "stats", auth: true, handler: a.Stats},
		"goals":          {usage: "goals", auth: true, handler: a.Goals},
		"set-goal":       {usage: "set-goal -type daily|weekly [-apps N] [-net N] [-hours H] [-research N]", auth: true, handler: a.SetGoal},
		"export":         {usage: "export [-o FILE]", auth: true, handler: a.Export},
		"import":         {usage: "import -f FILE", auth: true, handler: a.Import},
	}
	return a
}

// Run restores a cached session and either executes the single command in
// args or, when args is empty, starts the interactive prompt.
func (a *App) Run(ctx context.Context, args []string) error {
	ok, err := a.auth.Restore(ctx)
	if err != nil {
		return err
	}
	a.loggedIn = ok

	if len(args) == 0 {
		a.repl(ctx)
		return nil
	}
	if err := a.exec(ctx, args[0], args[1:]); err != nil && !errors.Is(err, flag.ErrHelp) {
		return err
	}
	return nil
}

func (a *App) exec(ctx context.Context, name string, args []string) error {
	if name == "help" {
		a.printHelp()
		return nil
	}
	cmd, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, type 'help' for a list", name)
	}
	if cmd.auth && !a.loggedIn {
		return ErrNotLoggedIn
	}
	err := cmd.handler(ctx, args)
	if errors.Is(err, client.ErrUnauthorized) && cmd.auth {
		// The cached token was rejected, most likely because it expired.
		_ = a.auth.Logout(ctx)
		a.loggedIn = false
		a.userName = ""
		return fmt.Errorf("%w (session expired, log in again)", err)
	}
	return err
}

func (a *App) printHelp() {
	names := make([]string, 0, len(a.commands))
	for n := range a.commands {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "Available commands:")
	for _, n := range names {
		fmt.Fprintf(a.out, "  %s\n", a.commands[n].usage)
	}
	fmt.Fprintln(a.out, "  help")
	fmt.Fprintln(a.out, "  exit")
}

func (a *App) prompt() string {
	if a.userName != "" {
		return fmt.Sprintf("jobtrack (%s)> ", a.userName)
	}
	if a.loggedIn {
		return "jobtrack (logged in)> "
	}
	return "jobtrack> "
}

func (a *App) repl(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to JobTrack (type 'help' for commands)")
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(a.out, a.prompt())
		line, err := a.in.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) > 0 {
			switch parts[0] {
			case "exit", "quit":
				fmt.Fprintln(a.out, "Bye!")
				return
			}
			if cerr := a.exec(ctx, parts[0], parts[1:]); cerr != nil && !errors.Is(cerr, flag.ErrHelp) {
				fmt.Fprintf(a.out, "error: %v\n", cerr)
			}
		}
		if err != nil {
			fmt.Fprintln(a.out)
			return
		}
	}
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// setFlags reports which flags were given explicitly.
func setFlags(fs *flag.FlagSet) map[string]bool {
	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	return seen
}
