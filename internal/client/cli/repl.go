package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
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
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Password(ctx context.Context) error
	Events(ctx context.Context, args []string) error
	Event(ctx context.Context, id int64) error
	Join(ctx context.Context, eventID int64) error
	CheckIn(ctx context.Context, eventID int64) error
	Attendance(ctx context.Context, eventID int64) error
	Feedback(ctx context.Context, eventID int64) error
	Report(ctx context.Context, eventID int64) error
	Upload(ctx context.Context, eventID int64, path, caption string) error
	Notifications(ctx context.Context) error
	Users(ctx context.Context) error
	Faculties(ctx context.Context) error
	Lang(ctx context.Context, code string) error
}

const (
	helpLoggedOut = "Available commands: register, login, events, event <id>, status, lang [code], exit"
	helpLoggedIn  = "Available commands: whoami, status, profile, password, events [upcoming|mine|registered] [search], " +
		"event <id>, join <eventID>, checkin <eventID>, attendance <eventID>, feedback <eventID>, " +
		"report <eventID>, upload <eventID> <file> [caption], notifications, " +
		"users, faculties, lang [code], logout, exit"
)

// runREPL starts a simple read–eval–print loop for the campus events CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands taking a numeric id print their usage when it is missing or
// malformed and are not dispatched. Errors returned by command handlers are
// printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("campus %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "status":
			err = a.Status(ctx)

		case "profile":
			err = a.EditProfile(ctx)

		case "password":
			err = a.Password(ctx)

		case "events":
			err = a.Events(ctx, args)

		case "event", "join", "checkin", "attendance", "feedback", "report":
			id, ok := parseID(args)
			if !ok {
				printlnFn(usage(cmd))
				continue
			}
			switch cmd {
			case "event":
				err = a.Event(ctx, id)
			case "join":
				err = a.Join(ctx, id)
			case "checkin":
				err = a.CheckIn(ctx, id)
			case "attendance":
				err = a.Attendance(ctx, id)
			case "feedback":
				err = a.Feedback(ctx, id)
			case "report":
				err = a.Report(ctx, id)
			}

		case "upload":
			id, ok := parseID(args)
			if !ok || len(args) < 2 {
				printlnFn(usage(cmd))
				continue
			}
			err = a.Upload(ctx, id, args[1], strings.Join(args[2:], " "))

		case "notifications":
			err = a.Notifications(ctx)

		case "users":
			err = a.Users(ctx)

		case "faculties":
			err = a.Faculties(ctx)

		case "lang":
			code := ""
			if len(args) > 0 {
				code = args[0]
			}
			err = a.Lang(ctx, code)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func parseID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func usage(cmd string) string {
	switch cmd {
	case "join", "checkin", "attendance", "feedback", "report":
		return "Usage: " + cmd + " <eventID>"
	case "upload":
		return "Usage: upload <eventID> <file> [caption]"
	}
	return "Usage: " + cmd + " <id>"
}
