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

// DemoBanner is shown when the client runs against the static demo.
const DemoBanner = "Demo mode: the API is not reachable from this deployment, server commands are disabled."

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isDemo() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Prefs(ctx context.Context, args []string) error
	SetTheme(ctx context.Context, args []string) error
	Projects(ctx context.Context, args []string) error
	Project(ctx context.Context, args []string) error
	AddProject(ctx context.Context) error
	DeleteProject(ctx context.Context, args []string) error
	Stacks(ctx context.Context) error
	AddStack(ctx context.Context) error
	Repos(ctx context.Context) error
	DeleteRepos(ctx context.Context, args []string) error
	Users(ctx context.Context) error
}

// Commands that work without the API.
var offlineCommands = map[string]bool{
	"help": true, "theme": true, "whoami": true, "exit": true, "quit": true,
}

// Commands that need a signed-in user.
var authCommands = map[string]bool{
	"logout": true, "profile": true, "prefs": true, "addproject": true, "delproject": true,
	"addstack": true, "delrepos": true, "users": true,
}

// runREPL starts a simple read-eval-print loop for the devfolio CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Anyone:
//	  - help                     - show available commands
//	  - register | login         - create an account / authenticate
//	  - whoami                   - show the signed-in user
//	  - theme <light|dark|auto>  - switch the theme
//	  - projects [page] [status] - list public projects
//	  - project <id>             - show one project
//	  - stacks | repos           - list the catalog
//	  - exit | quit              - leave the program
//
//	Signed in:
//	  - logout, profile, prefs [key value]
//	  - addproject, delproject <id>
//	  - addstack, delrepos <id...>, users (admins)
//
// In demo mode every command that talks to the API prints DemoBanner instead.
// Errors returned by handlers are printed with their field errors and the
// loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("devfolio %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if a.isDemo() && !offlineCommands[cmd] {
			printlnFn(DemoBanner)
			continue
		}
		if authCommands[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			printHelp(a)
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "prefs":
			cmdErr = a.Prefs(ctx, args)
		case "theme":
			cmdErr = a.SetTheme(ctx, args)
		case "projects":
			cmdErr = a.Projects(ctx, args)
		case "project":
			cmdErr = a.Project(ctx, args)
		case "addproject":
			cmdErr = a.AddProject(ctx)
		case "delproject":
			cmdErr = a.DeleteProject(ctx, args)
		case "stacks":
			cmdErr = a.Stacks(ctx)
		case "addstack":
			cmdErr = a.AddStack(ctx)
		case "repos":
			cmdErr = a.Repos(ctx)
		case "delrepos":
			cmdErr = a.DeleteRepos(ctx, args)
		case "users":
			cmdErr = a.Users(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			for _, l := range describeError(cmdErr) {
				printlnFn(l)
			}
		}
	}
}

func printHelp(a execIface) {
	switch {
	case a.isDemo():
		printlnFn("Available commands: theme, whoami, exit")
	case a.isLoggedIn():
		printlnFn("Available commands: whoami, profile, prefs, theme, projects, project, addproject, delproject, stacks, addstack, repos, delrepos, users, logout, exit")
	default:
		printlnFn("Available commands: register, login, theme, projects, project, stacks, repos, exit")
	}
}
