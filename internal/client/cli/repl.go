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
	Resume(ctx context.Context) error
	Logout(ctx context.Context, args []string) error
	Catalog(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	AddItem(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Notifications(ctx context.Context) error
	ReadNotification(ctx context.Context, args []string) error
	DeleteNotification(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the catalog CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help            show available commands
//	  - signup          create an account
//	  - login           log in with email and password
//	  - resume          restore the session saved by a previous run
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - (l)ist          show the catalog
//	  - show <id>       show one catalog item
//	  - additem         add an item to the catalog
//	  - profile         show the profile, optionally save the image
//	  - editprofile     change name, email, cellphone or image
//	  - notifications   show unread notifications and mark them read
//	  - read <id>       mark one notification read
//	  - delete <id>     delete one notification
//	  - logout          log out
//	  - logout --purge  log out and drop all local data
//
// Command handlers report their own outcome; errors are dropped here to keep
// the loop running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("catalog %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if requiresLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first (login or signup)")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show <id>, additem, profile, editprofile, notifications, read <id>, delete <id>, logout [--purge], exit")
			} else {
				printlnFn("Available commands: signup, login, resume, exit")
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "resume":
			_ = a.Resume(ctx)

		case "l", "list", "catalog":
			_ = a.Catalog(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args)

		case "additem":
			_ = a.AddItem(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "notifications", "n":
			_ = a.Notifications(ctx)

		case "read":
			if len(args) == 0 {
				printlnFn("Usage: read <id>")
				continue
			}
			_ = a.ReadNotification(ctx, args)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.DeleteNotification(ctx, args)

		case "logout":
			_ = a.Logout(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requiresLogin(cmd string) bool {
	switch cmd {
	case "l", "list", "catalog", "show", "additem", "profile", "editprofile",
		"notifications", "n", "read", "delete", "logout":
		return true
	}
	return false
}
