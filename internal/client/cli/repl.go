package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	Garden(ctx context.Context) error
	AddCrop(ctx context.Context, name string) error
	RemoveCrop(ctx context.Context, name string) error
	Sync(ctx context.Context) error
	Recommend(ctx context.Context) error
	Show(ctx context.Context, arg string) error
}

// runREPL starts a simple read–eval–print loop for the PocketFarm CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest as its argument, and dispatches to methods on 'a'.
// Unknown commands are reported back to the user. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pf %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (g)arden, add <crop>, remove <crop>, sync, (r)ecommend, show <n>, profile, delete-account, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, (r)ecommend, show <n>, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "g", "garden":
			_ = a.Garden(ctx)

		case "add":
			if arg == "" {
				printlnFn("Usage: add <crop name>")
				continue
			}
			_ = a.AddCrop(ctx, arg)

		case "rm", "remove":
			if arg == "" {
				printlnFn("Usage: remove <crop name>")
				continue
			}
			_ = a.RemoveCrop(ctx, arg)

		case "sync":
			_ = a.Sync(ctx)

		case "r", "recommend":
			_ = a.Recommend(ctx)

		case "show":
			if arg == "" {
				printlnFn("Usage: show <number|crop name>")
				continue
			}
			_ = a.Show(ctx, arg)

		case "profile":
			_ = a.UpdateProfile(ctx)

		case "delete-account":
			_ = a.DeleteAccount(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
