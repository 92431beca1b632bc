package user

import domain "user-console/internal/domain/user"

// FormMode says whether submitting the form creates or updates a user.
type FormMode int

const (
	// ModeCreate is the default: submit issues a create call
	ModeCreate FormMode = iota
	// ModeEdit targets the user whose ID is held in the form
	ModeEdit
)

// String implements fmt.Stringer
func (m FormMode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// FormState is the complete state of the form. The zero value is an empty
// form in create mode.
type FormState struct {
	Mode  FormMode
	ID    int64 // zero when no user is loaded into the form
	Name  string
	Email string
}

// SubmitLabel returns the caption of the submit control
func (s FormState) SubmitLabel() string {
	if s.Mode == ModeEdit {
		return "Update"
	}
	return "Save"
}

// CancelVisible reports whether the cancel affordance is shown
func (s FormState) CancelVisible() bool {
	return s.Mode == ModeEdit
}

// HasID reports whether the form targets an existing user
func (s FormState) HasID() bool {
	return s.ID != 0
}

// EditData is the data attached to a row's edit control.
type EditData struct {
	ID    int64
	Name  string
	Email string
}

// EditDataFor builds the edit control data for u
func EditDataFor(u domain.User) EditData {
	return EditData{ID: u.ID, Name: u.Name, Email: u.Email}
}

// SubmitRequest is the validated payload of a form submission.
type SubmitRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}
