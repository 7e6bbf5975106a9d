package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	demo     bool
	failWith error

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.failWith
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isDemo() bool     { return f.demo }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error  { return f.record("whoami", nil) }
func (f *fakeExec) Profile(ctx context.Context) error { return f.record("profile", nil) }
func (f *fakeExec) Prefs(ctx context.Context, args []string) error {
	return f.record("prefs", args)
}
func (f *fakeExec) SetTheme(ctx context.Context, args []string) error {
	return f.record("theme", args)
}
func (f *fakeExec) Projects(ctx context.Context, args []string) error {
	return f.record("projects", args)
}
func (f *fakeExec) Project(ctx context.Context, args []string) error {
	return f.record("project", args)
}
func (f *fakeExec) AddProject(ctx context.Context) error { return f.record("addproject", nil) }
func (f *fakeExec) DeleteProject(ctx context.Context, args []string) error {
	return f.record("delproject", args)
}
func (f *fakeExec) Stacks(ctx context.Context) error   { return f.record("stacks", nil) }
func (f *fakeExec) AddStack(ctx context.Context) error { return f.record("addstack", nil) }
func (f *fakeExec) Repos(ctx context.Context) error    { return f.record("repos", nil) }
func (f *fakeExec) DeleteRepos(ctx context.Context, args []string) error {
	return f.record("delrepos", args)
}
func (f *fakeExec) Users(ctx context.Context) error { return f.record("users", nil) }

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runLines(exec execIface, lines ...string) {
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, r)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runLines(exec,
		"help",
		"profile",
		"login",
		"help",
		"projects 2 Completed",
		"project 7",
		"delrepos 1 2 3",
		"theme dark",
		"foobar",
		"logout",
		"exit",
		"whoami",
	)

	assert.Equal(t, []string{"login", "projects", "project", "delrepos", "theme", "logout"}, exec.calls)
	assert.Equal(t, []string{"2", "Completed"}, exec.args[1])
	assert.Equal(t, []string{"1", "2", "3"}, exec.args[3])
}

func TestRunREPL_RequiresLogin(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runLines(exec, "addproject", "users", "quit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Please log in first.")
}

func TestRunREPL_DemoModeDisablesServerCommands(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{demo: true}
	runLines(exec, "login", "projects", "theme light", "whoami", "exit")

	assert.Equal(t, []string{"theme", "whoami"}, exec.calls)
	assert.Contains(t, *lines, DemoBanner)
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runLines(exec, "stacks")

	assert.Equal(t, []string{"stacks"}, exec.calls)
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{loggedIn: true, failWith: &api.Error{
		StatusCode: 400,
		Message:    "Validation failed",
		Errors:     map[string][]string{"title": {"is required"}},
	}}
	runLines(exec, "addproject", "stacks", "exit")

	assert.Equal(t, []string{"addproject", "stacks"}, exec.calls)
	assert.Contains(t, *lines, "Error: Validation failed")
	assert.Contains(t, *lines, "  title: is required")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestDescribeError_DeleteError(t *testing.T) {
	err := &services.DeleteError{
		Total: 3,
		Failed: map[int64]error{
			9: errors.New("Repository not found"),
			4: errors.New("Forbidden"),
		},
	}

	got := describeError(err)
	require.Len(t, got, 3)
	assert.Equal(t, "Error: failed to delete 2 of 3 items", got[0])
	assert.Equal(t, "  #4: Forbidden", got[1])
	assert.Equal(t, "  #9: Repository not found", got[2])
}
