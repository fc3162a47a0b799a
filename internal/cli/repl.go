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
// The real CLI type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	AddMaster(ctx context.Context) error
	ListMaster(ctx context.Context) error
	DeleteMaster(ctx context.Context) error
	LogCall(ctx context.Context) error
	Report(ctx context.Context) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context) error
	Activate(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command and dispatches to methods on 'c'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues;
// a failed command should never take the whole session down.
func runREPL(ctx context.Context, c execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		printlnFn(fmt.Sprintf("ck> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			if c.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, delete, log, report, backup, restore, activate, logout, exit")
			} else {
				printlnFn("Available commands: register, login, activate, exit")
			}

		case "register":
			err = c.Register(ctx)

		case "login":
			err = c.Login(ctx)

		case "logout":
			err = c.Logout(ctx)

		case "add":
			err = c.AddMaster(ctx)

		case "l", "list":
			err = c.ListMaster(ctx)

		case "delete":
			err = c.DeleteMaster(ctx)

		case "log":
			err = c.LogCall(ctx)

		case "report":
			err = c.Report(ctx)

		case "backup":
			err = c.Backup(ctx)

		case "restore":
			err = c.Restore(ctx)

		case "activate":
			err = c.Activate(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
