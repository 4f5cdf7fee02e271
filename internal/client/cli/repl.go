package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/client/viewstate"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	SetGoal(ctx context.Context) error
	AddRecord(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Week(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
}

const (
	guestHelp  = "Available commands: register, login, exit"
	memberHelp = "Available commands: home, goal, add, history [start] [end], week, profile, editprofile, logout, exit"
)

// runREPL starts the read–eval–print loop of the fittracker CLI.
//
// It reads a line from reader, writes everything it prints to out, parses the first token as the command and
// dispatches to methods on 'a'. Command input (prompts inside a command) is
// read from the same reader, so the loop never buffers ahead. The loop
// exits on EOF, when the context is done, or when the user types "exit" or
// "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - home           goal card and profile check
//	  - goal           set the weekly calorie target
//	  - add            log an activity
//	  - history [s][e] list activities, optional YYYY-MM-DD bounds
//	  - week           calories per day for the last seven days
//	  - profile        show the profile
//	  - editprofile    edit the profile
//	  - logout         log out
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "ft> %s > \n", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}
		report(out, dispatch(ctx, a, cmd, args, out))
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "help":
		if a.isLoggedIn(ctx) {
			fmt.Fprintln(out, memberHelp)
		} else {
			fmt.Fprintln(out, guestHelp)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn(ctx) {
		switch cmd {
		case "logout", "home", "goal", "add", "history", "h", "week", "profile", "editprofile":
			fmt.Fprintln(out, viewstate.MsgLoginFirst)
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "home":
		return a.Home(ctx)
	case "goal":
		return a.SetGoal(ctx)
	case "add":
		return a.AddRecord(ctx)
	case "history", "h":
		return a.History(ctx, args)
	case "week":
		return a.Week(ctx)
	case "profile":
		return a.Profile(ctx)
	case "editprofile":
		return a.EditProfile(ctx)
	default:
		fmt.Fprintln(out, "Unknown command:", cmd)
		return nil
	}
}

func report(out io.Writer, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintln(out, "Error:", err)
}
