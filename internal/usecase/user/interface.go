package user

import (
	"context"

	domain "user-console/internal/domain/user"
)

// Gateway is the users API as seen by the console. Each call is one HTTP request.
type Gateway interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, in domain.Input) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, in domain.Input) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Presenter draws the table, single records and the form.
type Presenter interface {
	DisplayUsers(users []domain.User)
	DisplayUser(u domain.User)
	DisplayError(err error)
	RenderForm(state FormState)
}

// Prompter shows blocking dialogs to the operator.
type Prompter interface {
	Alert(message string)
	Confirm(ctx context.Context, message string) bool
}
