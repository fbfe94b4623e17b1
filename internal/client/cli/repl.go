package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	takeErrorShown() bool

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	List(ctx context.Context) error
	Mine(ctx context.Context) error
	UserRecipes(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

const (
	helpGuest = "Available commands: signup, login, list, user <id>, show <id>, help, exit"
	helpUser  = "Available commands: list, mine, user <id>, show <id>, add, edit <id>, delete <id>, " +
		"whoami, profile, deleteaccount, logout, help, exit"
)

// errUsage marks a command typed with missing or malformed arguments.
var errUsage = errors.New("usage")

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. The prompt shows statusFn().
//
// Failed operations record their message in a store and the App's store
// listener prints it. The loop prints usage errors and any other error no
// listener has shown, such as a failed prompt read.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if s := statusFn(); s != "" {
			fmt.Fprintf(w, "recipes %s> ", s)
		} else {
			fmt.Fprint(w, "recipes> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		a.takeErrorShown()
		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpUser)
			} else {
				fmt.Fprintln(w, helpGuest)
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "deleteaccount":
			cmdErr = a.DeleteAccount(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)
		case "mine":
			cmdErr = a.Mine(ctx)
		case "user":
			cmdErr = a.UserRecipes(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "add":
			cmdErr = a.Add(ctx)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		switch {
		case cmdErr == nil:
		case errors.Is(cmdErr, errUsage):
			fmt.Fprintln(w, cmdErr)
		case !a.takeErrorShown():
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}
