package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	domain "user-console/internal/domain/user"
	"user-console/internal/usecase/user"
	apperrors "user-console/pkg/errors"
	"user-console/pkg/security"
)

// Messages shown in place of data rows
const (
	NoUsersMessage   = "No users found."
	LoadErrorMessage = "Failed to load users: "
)

// ControlKind identifies an action control in a row's actions cell.
type ControlKind string

const (
	// ControlEdit loads the row into the form
	ControlEdit ControlKind = "edit"
	// ControlDelete deletes the row's user after confirmation
	ControlDelete ControlKind = "delete"
)

// Control is an action control with the data attached to it. Delete
// controls carry only the ID.
type Control struct {
	Kind  ControlKind
	Label string
	Data  user.EditData
}

// RowKind distinguishes data rows from single-message rows.
type RowKind int

const (
	RowData RowKind = iota
	RowPlaceholder
	RowError
)

// Row is one rendered table row.
type Row struct {
	Kind     RowKind
	Cells    []string // id, name, email for data rows; the message otherwise
	Controls []Control
}

// Table is the rendered body of the users table.
type Table struct {
	Rows []Row
}

// DataRows returns only the rows that hold a user
func (t Table) DataRows() []Row {
	rows := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.Kind == RowData {
			rows = append(rows, r)
		}
	}
	return rows
}

// Control finds the control of kind attached to the user with id
func (t Table) Control(kind ControlKind, id int64) (Control, bool) {
	for _, r := range t.Rows {
		for _, c := range r.Controls {
			if c.Kind == kind && c.Data.ID == id {
				return c, true
			}
		}
	}
	return Control{}, false
}

// BuildTable turns users into table rows. An empty or nil slice yields a
// single placeholder row.
func BuildTable(users []domain.User) Table {
	if len(users) == 0 {
		return Table{Rows: []Row{{Kind: RowPlaceholder, Cells: []string{NoUsersMessage}}}}
	}

	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, Row{
			Kind:  RowData,
			Cells: []string{strconv.FormatInt(u.ID, 10), u.Name, u.Email},
			Controls: []Control{
				{Kind: ControlEdit, Label: "Edit", Data: user.EditDataFor(u)},
				{Kind: ControlDelete, Label: "Delete", Data: user.EditData{ID: u.ID}},
			},
		})
	}
	return Table{Rows: rows}
}

// ErrorTable is a table whose only row reports err
func ErrorTable(err error) Table {
	return Table{Rows: []Row{{Kind: RowError, Cells: []string{LoadErrorMessage + apperrors.UserMessage(err)}}}}
}

// View renders the table and the form to a writer and remembers the last
// rendered table so controls can be looked up by ID.
type View struct {
	out   io.Writer
	table Table
}

// NewView creates a View writing to out
func NewView(out io.Writer) *View {
	return &View{out: out}
}

// Table returns the most recently rendered table
func (v *View) Table() Table {
	return v.table
}

// DisplayUsers clears the table and renders one row per user
func (v *View) DisplayUsers(users []domain.User) {
	v.table = BuildTable(users)
	v.writeTable()
}

// DisplayUser writes one record's details. The table is left as it was.
func (v *View) DisplayUser(u domain.User) {
	fmt.Fprintf(v.out, "--- User %d ---\n", u.ID)
	fmt.Fprintf(v.out, "  Name:  %s\n", security.SanitizeLine(u.Name))
	fmt.Fprintf(v.out, "  Email: %s\n", security.SanitizeLine(u.Email))
}

// DisplayError clears the table and renders err inline
func (v *View) DisplayError(err error) {
	v.table = ErrorTable(err)
	v.writeTable()
}

// RenderForm writes the form for state
func (v *View) RenderForm(state user.FormState) {
	var b strings.Builder

	if state.Mode == user.ModeEdit {
		fmt.Fprintf(&b, "--- Edit user (ID %d) ---\n", state.ID)
	} else {
		b.WriteString("--- New user ---\n")
	}
	fmt.Fprintf(&b, "  Name:  %s\n", security.SanitizeLine(state.Name))
	fmt.Fprintf(&b, "  Email: %s\n", security.SanitizeLine(state.Email))
	fmt.Fprintf(&b, "  [%s]", state.SubmitLabel())
	if state.CancelVisible() {
		b.WriteString("  [Cancel]")
	}
	b.WriteString("\n")

	_, _ = io.WriteString(v.out, b.String())
}

func (v *View) writeTable() {
	tw := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tName\tEmail\tActions")
	for _, r := range v.table.Rows {
		if r.Kind != RowData {
			// Message rows span the table, keep them out of the column layout
			_ = tw.Flush()
			fmt.Fprintln(v.out, security.SanitizeLine(r.Cells[0]))
			continue
		}

		labels := make([]string, len(r.Controls))
		for i, c := range r.Controls {
			labels[i] = "[" + c.Label + "]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			security.SanitizeCell(r.Cells[0]),
			security.SanitizeCell(r.Cells[1]),
			security.SanitizeCell(r.Cells[2]),
			strings.Join(labels, " "),
		)
	}
	_ = tw.Flush()
}
