package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	err   error
}

func (f *fakeExec) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(ctx context.Context) error      { return f.record("whoami") }
func (f *fakeExec) Status(ctx context.Context) error      { return f.record("status") }
func (f *fakeExec) EditProfile(ctx context.Context) error { return f.record("profile") }
func (f *fakeExec) Password(ctx context.Context) error    { return f.record("password") }
func (f *fakeExec) Events(ctx context.Context, args []string) error {
	return f.record("events %s", strings.Join(args, ","))
}
func (f *fakeExec) Event(ctx context.Context, id int64) error { return f.record("event %d", id) }
func (f *fakeExec) Join(ctx context.Context, eventID int64) error {
	return f.record("join %d", eventID)
}
func (f *fakeExec) CheckIn(ctx context.Context, eventID int64) error {
	return f.record("checkin %d", eventID)
}
func (f *fakeExec) Attendance(ctx context.Context, eventID int64) error {
	return f.record("attendance %d", eventID)
}
func (f *fakeExec) Feedback(ctx context.Context, eventID int64) error {
	return f.record("feedback %d", eventID)
}
func (f *fakeExec) Report(ctx context.Context, eventID int64) error {
	return f.record("report %d", eventID)
}
func (f *fakeExec) Upload(ctx context.Context, eventID int64, path, caption string) error {
	return f.record("upload %d %s %q", eventID, path, caption)
}
func (f *fakeExec) Notifications(ctx context.Context) error { return f.record("notifications") }
func (f *fakeExec) Users(ctx context.Context) error         { return f.record("users") }
func (f *fakeExec) Faculties(ctx context.Context) error     { return f.record("faculties") }
func (f *fakeExec) Lang(ctx context.Context, code string) error {
	return f.record("lang %s", code)
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var out []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &out
}

func TestRunREPL_Dispatch(t *testing.T) {
	capturePrints(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"whoami",
		"status",
		"profile",
		"password",
		"events upcoming go meetup",
		"event 12",
		"join 12",
		"checkin 12",
		"attendance 12",
		"feedback 12",
		"report 12",
		"upload 12 stage.jpg Main stage",
		"upload 12 stage.jpg",
		"notifications",
		"users",
		"faculties",
		"lang ru",
		"lang",
		"",
		"logout",
		"exit",
		"register",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	want := []string{
		"login", "whoami", "status", "profile", "password", "events upcoming,go,meetup", "event 12", "join 12",
		"checkin 12", "attendance 12", "feedback 12", "report 12", `upload 12 stage.jpg "Main stage"`, `upload 12 stage.jpg ""`,
		"notifications", "users", "faculties", "lang ru", "lang ", "logout",
	}
	assert.Equal(t, want, exec.calls, "commands after exit are not read")
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := capturePrints(t)

	input := strings.NewReader("event\njoin abc\ncheckin -1\nattendance\nfeedback\nupload 12\nupload x y\nfoobar\nquit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: event <id>")
	assert.Contains(t, *out, "Usage: join <eventID>")
	assert.Contains(t, *out, "Usage: checkin <eventID>")
	assert.Contains(t, *out, "Usage: attendance <eventID>")
	assert.Contains(t, *out, "Usage: feedback <eventID>")
	assert.Contains(t, *out, "Usage: upload <eventID> <file> [caption]")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\nlogin\nhelp\n")))

	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{err: errors.New("Failed to login. Please check your credentials.")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("login\n")))

	assert.Contains(t, *out, "Error: Failed to login. Please check your credentials.")
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := capturePrints(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "(a@b.com STUDENT) [en]" }, bufio.NewScanner(strings.NewReader("")))

	assert.Equal(t, []string{"campus (a@b.com STUDENT) [en] > "}, *out)
}
