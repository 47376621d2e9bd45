package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	SwitchAuth(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	Feed(ctx context.Context) error
	Me(ctx context.Context) error
	Profile(ctx context.Context, username string) error
	Post(ctx context.Context, id string) error
	Open(ctx context.Context, path string) error
	Back(ctx context.Context) error
	Sort(ctx context.Context, by string) error

	Like(ctx context.Context, id string) error
	Comments(ctx context.Context, id string) error
	Comment(ctx context.Context, id, text string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Avatar(ctx context.Context, path string) error
}

const (
	helpAnonymous = "Available commands: login, register, switch, open <path>, whoami, help, exit"
	helpSignedIn  = "Available commands: feed, me, profile <username>, post <id>, open <path>, back, " +
		"sort <time|likes|comments>, like <id>, comments <id>, comment <id> [text], new, edit <id>, " +
		"delete <id>, avatar <file>, whoami, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the social feed CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn). Commands other than
// login, register, switch, open, whoami, help and exit need a session.
//
// Errors returned by command handlers are printed as an error banner; the
// loop keeps running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(styles.Prompt.Render(fmt.Sprintf("sf %s> ", statusFn())))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn(renderError(err))
		}
	}
}

var errNeedSession = errors.New("Please log in first (login or register).")

// argument returns args[0] or an error naming the usage.
func argument(args []string, usage string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("Usage: %s", usage)
	}
	return args[0], nil
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpAnonymous)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "switch":
		return a.SwitchAuth(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "open":
		p, err := argument(args, "open <path>")
		if err != nil {
			return err
		}
		return a.Open(ctx, p)
	}

	if !isKnown(cmd) {
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if !a.isLoggedIn() {
		return errNeedSession
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "feed":
		return a.Feed(ctx)
	case "me":
		return a.Me(ctx)
	case "back":
		return a.Back(ctx)
	case "new":
		return a.New(ctx)
	case "profile":
		u, err := argument(args, "profile <username>")
		if err != nil {
			return err
		}
		return a.Profile(ctx, u)
	case "sort":
		by, err := argument(args, "sort <time|likes|comments>")
		if err != nil {
			return err
		}
		return a.Sort(ctx, by)
	case "avatar":
		p, err := argument(args, "avatar <file>")
		if err != nil {
			return err
		}
		return a.Avatar(ctx, p)
	case "comment":
		id, err := argument(args, "comment <id> [text]")
		if err != nil {
			return err
		}
		return a.Comment(ctx, id, strings.Join(args[1:], " "))
	}

	// The remaining commands all take a post id.
	id, err := argument(args, cmd+" <id>")
	if err != nil {
		return err
	}
	switch cmd {
	case "post":
		return a.Post(ctx, id)
	case "like":
		return a.Like(ctx, id)
	case "comments":
		return a.Comments(ctx, id)
	case "edit":
		return a.Edit(ctx, id)
	default:
		return a.Delete(ctx, id)
	}
}

func isKnown(cmd string) bool {
	switch cmd {
	case "logout", "feed", "me", "back", "new", "profile", "sort", "avatar",
		"comment", "post", "like", "comments", "edit", "delete":
		return true
	}
	return false
}
