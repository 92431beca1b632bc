package terminal

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-console/internal/adapter/httpapi"
	domain "user-console/internal/domain/user"
	"user-console/internal/testutil/fakeapi"
	"user-console/internal/usecase/user"
)

type consoleFixture struct {
	console *Console
	out     *bytes.Buffer
}

func newConsole(t *testing.T, srv *fakeapi.Server, in io.Reader) *consoleFixture {
	t.Helper()
	log := zaptest.NewLogger(t)

	out := &bytes.Buffer{}
	client := httpapi.NewClient(httpapi.Config{BaseURL: srv.UsersURL(), Timeout: 5 * time.Second}, nil, log)
	view := NewView(out)
	lines := NewLineReader(in)
	prompter := NewPrompter(lines, out)
	uc := user.New(client, view, prompter, log)

	return &consoleFixture{
		console: NewConsole(uc, view, prompter, lines, out, "> ", log),
		out:     out,
	}
}

// runScript feeds script to a console and runs it to end of input
func runScript(t *testing.T, srv *fakeapi.Server, script string) *consoleFixture {
	t.Helper()
	f := newConsole(t, srv, strings.NewReader(script))
	require.NoError(t, f.console.Run(context.Background()))
	return f
}

func TestConsole_InitialLoad(t *testing.T) {
	srv := fakeapi.New(t, domain.User{ID: 1, Name: "A", Email: "a@x.com"})

	f := runScript(t, srv, "")

	assert.Equal(t, 1, srv.Calls(http.MethodGet))
	assert.Equal(t, 1, srv.TotalCalls())
	assert.Contains(t, f.out.String(), "--- New user ---")
	assert.Len(t, f.console.view.Table().DataRows(), 1)
	assert.Contains(t, f.out.String(), "a@x.com")
}

func TestConsole_InitialLoadEmpty(t *testing.T) {
	srv := fakeapi.New(t)

	f := runScript(t, srv, "")

	rows := f.console.view.Table().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, RowPlaceholder, rows[0].Kind)
	assert.Contains(t, f.out.String(), NoUsersMessage)
}

func TestConsole_LoadErrorShownInline(t *testing.T) {
	srv := fakeapi.New(t)
	srv.FailNext(http.MethodGet, fakeapi.Failure{
		Status:      http.StatusInternalServerError,
		ContentType: "application/json",
		Body:        `{"message":"database unavailable"}`,
	})

	f := runScript(t, srv, "list\n")

	assert.Contains(t, f.out.String(), "Failed to load users: HTTP error 500: database unavailable")
	// the reload replaces the error row
	assert.Equal(t, 2, srv.Calls(http.MethodGet))
	assert.Equal(t, RowPlaceholder, f.console.view.Table().Rows[0].Kind)
}

func TestConsole_CreateWithSetAndSave(t *testing.T) {
	srv := fakeapi.New(t)

	f := runScript(t, srv, "set name Ada Lovelace\nset email ada@example.com\nsave\n")

	assert.Equal(t, 1, srv.Calls(http.MethodPost))
	assert.Equal(t, 0, srv.Calls(http.MethodPut))
	assert.Equal(t, 2, srv.Calls(http.MethodGet))

	users := srv.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "Ada Lovelace", users[0].Name)
	assert.Equal(t, "ada@example.com", users[0].Email)

	rows := f.console.view.Table().DataRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada Lovelace", rows[0].Cells[1])
	assert.Equal(t, user.FormState{}, f.console.uc.Form())
}

func TestConsole_NewCommand(t *testing.T) {
	srv := fakeapi.New(t)

	f := runScript(t, srv, `new "John Doe" john@example.com`+"\n")

	assert.Equal(t, 1, srv.Calls(http.MethodPost))
	rows := f.console.view.Table().DataRows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", "John Doe", "john@example.com"}, rows[0].Cells)
}

func TestConsole_EmptyFieldsMakeNoRequest(t *testing.T) {
	tests := []struct {
		name   string
		script string
		alert  string
	}{
		{name: "both empty", script: "save\n", alert: "! name is required, email is required"},
		{name: "blank name", script: `new "   " a@x.com` + "\n", alert: "! name is required"},
		{name: "blank email", script: `new Ada " "` + "\n", alert: "! email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeapi.New(t)

			f := runScript(t, srv, tt.script)

			assert.Equal(t, 0, srv.Calls(http.MethodPost))
			assert.Equal(t, 0, srv.Calls(http.MethodPut))
			assert.Contains(t, f.out.String(), tt.alert)
		})
	}
}

func TestConsole_EditPopulatesForm(t *testing.T) {
	srv := fakeapi.New(t, domain.User{ID: 3, Name: "Eve", Email: "eve@x.com"})

	f := runScript(t, srv, "edit 3\n")

	assert.Equal(t, 1, srv.TotalCalls())
	assert.Equal(t, user.FormState{Mode: user.ModeEdit, ID: 3, Name: "Eve", Email: "eve@x.com"}, f.console.uc.Form())
	assert.Contains(t, f.out.String(), "--- Edit user (ID 3) ---")
	assert.Contains(t, f.out.String(), "[Update]  [Cancel]")
}

func TestConsole_EditAndUpdate(t *testing.T) {
	srv := fakeapi.New(t, domain.User{ID: 3, Name: "Eve", Email: "eve@x.com"})

	f := runScript(t, srv, "edit 3\nset name Eva\nupdate\n")

	assert.Equal(t, 1, srv.Calls(http.MethodPut))
	assert.Equal(t, 0, srv.Calls(http.MethodPost))
	assert.Equal(t, []domain.User{{ID: 3, Name: "Eva", Email: "eve@x.com"}}, srv.Users())
	assert.Equal(t, user.ModeCreate, f.console.uc.Form().Mode)
}

func TestConsole_CancelEdit(t *testing.T) {
	srv := fakeapi.New(t, domain.User{ID: 3, Name: "Eve", Email: "eve@x.com"})

	f := runScript(t, srv, "edit 3\ncancel\nset name New\nset email new@x.com\nsave\n")

	assert.Equal(t, 0, srv.Calls(http.MethodPut))
	assert.Equal(t, 1, srv.Calls(http.MethodPost))
	assert.Len(t, srv.Users(), 2)
	assert.Len(t, f.console.view.Table().DataRows(), 2)
}

func TestConsole_UpdateFailureKeepsForm(t *testing.T) {
	srv := fakeapi.New(t, domain.User{ID: 3, Name: "Eve", Email: "eve@x.com"})
	srv.FailNext(http.MethodPut, fakeapi.Failure{
		Status:      http.StatusConflict,
		ContentType: "text/plain",
		Body:        "Email already exists",
	})

	f := runScript(t, srv, "edit 3\nset email taken@x.com\nsave\n")

	assert.Contains(t, f.out.String(), "! Failed to update user: HTTP error 409: Email already exists")
	assert.Equal(t, user.FormState{Mode: user.ModeEdit, ID: 3, Name: "Eve", Email: "taken@x.com"}, f.console.uc.Form())
	assert.Equal(t, 1, srv.Calls(http.MethodGet))
}

func TestConsole_DeleteDeclined(t *testing.T) {
	srv := fakeapi.New(t, domain.User{ID: 1, Name: "A", Email: "a@x.com"})

	f := runScript(t, srv, "delete 1\nn\n")

	assert.Contains(t, f.out.String(), "Are you sure you want to delete the user with ID 1? [y/N]: ")
	assert.Equal(t, 0, srv.Calls(http.MethodDelete))
	assert.Len(t, srv.Users(), 1)
}

func TestConsole_DeleteConfirmed(t *testing.T) {
	srv := fakeapi.New(t, domain.User{ID: 1, Name: "A", Email: "a@x.com"})

	f := runScript(t, srv, "delete 1\ny\n")

	assert.Equal(t, 1, srv.Calls(http.MethodDelete))
	assert.Equal(t, 2, srv.Calls(http.MethodGet))
	assert.Empty(t, srv.Users())
	assert.Equal(t, RowPlaceholder, f.console.view.Table().Rows[0].Kind)
}

func TestConsole_DeleteFailure(t *testing.T) {
	srv := fakeapi.New(t, domain.User{ID: 1, Name: "A", Email: "a@x.com"})
	srv.FailNext(http.MethodDelete, fakeapi.Failure{Status: http.StatusNotFound, ContentType: "text/plain", Body: "user not found"})

	f := runScript(t, srv, "delete 1\nyes\n")

	assert.Contains(t, f.out.String(), "! Failed to delete user: HTTP error 404: user not found")
	assert.Equal(t, 1, srv.Calls(http.MethodGet))
}

func TestConsole_Show(t *testing.T) {
	srv := fakeapi.New(t, domain.User{ID: 3, Name: "Eve", Email: "eve@x.com"})

	f := runScript(t, srv, "show 3\nshow 9\nshow 0\n")

	out := f.out.String()
	assert.Contains(t, out, "--- User 3 ---")
	assert.Contains(t, out, "Email: eve@x.com")
	assert.Contains(t, out, "! User with ID 9 not found.")
	assert.Contains(t, out, "! user id is required")
	// list plus two lookups; show 0 makes no request
	assert.Equal(t, 3, srv.Calls(http.MethodGet))
	assert.Equal(t, user.FormState{}, f.console.uc.Form())
}

func TestConsole_CommandErrors(t *testing.T) {
	srv := fakeapi.New(t, domain.User{ID: 1, Name: "A", Email: "a@x.com"})

	f := runScript(t, srv, "frobnicate\nedit 42\ndelete x\nset phone 1\nnew onlyname\n"+`new "unterminated`+"\n")

	out := f.out.String()
	assert.Contains(t, out, `! unknown command: "frobnicate"`)
	assert.Contains(t, out, "! no user with ID 42 in the table")
	assert.Contains(t, out, "! usage: delete <id>")
	assert.Contains(t, out, "! usage: set name|email <value>")
	assert.Contains(t, out, `! usage: new "<name>" <email>`)
	assert.Contains(t, out, "! malformed command line")
	assert.Equal(t, 1, srv.TotalCalls())
}

func TestConsole_Help(t *testing.T) {
	srv := fakeapi.New(t)

	f := runScript(t, srv, "help\n")

	assert.Contains(t, f.out.String(), "Commands:")
}

func TestConsole_QuitStopsReading(t *testing.T) {
	srv := fakeapi.New(t)

	runScript(t, srv, "set name A\nset email a@x.com\nquit\nsave\n")

	assert.Equal(t, 0, srv.Calls(http.MethodPost))
}

func TestConsole_ContextDone(t *testing.T) {
	srv := fakeapi.New(t)
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()

	f := newConsole(t, srv, r)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := f.console.Run(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, srv.Calls(http.MethodGet))
}
