package user

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-console/internal/domain/user"
	apperrors "user-console/pkg/errors"
	"user-console/pkg/logger"
)

// Usecase drives the console: it owns the form state, turns operator actions
// into single API calls, and refreshes the table after every successful
// mutation. It is not safe for concurrent use; the console dispatches one
// event at a time.
type Usecase struct {
	api       Gateway
	presenter Presenter
	prompter  Prompter
	log       *zap.Logger
	validate  *validator.Validate
	form      FormState
}

// New creates a new Usecase with an empty create-mode form.
func New(api Gateway, presenter Presenter, prompter Prompter, log *zap.Logger) *Usecase {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &Usecase{
		api:       api,
		presenter: presenter,
		prompter:  prompter,
		log:       log,
		validate:  v,
	}
}

// Form returns the current form state
func (uc *Usecase) Form() FormState {
	return uc.form
}

// SetName updates the name field without changing the mode
func (uc *Usecase) SetName(name string) {
	uc.form.Name = name
}

// SetEmail updates the email field without changing the mode
func (uc *Usecase) SetEmail(email string) {
	uc.form.Email = email
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
// A single missing field maps to its sentinel so callers can match it with
// errors.Is; several failures are joined into one message.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := make([]*apperrors.ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch {
		case e.Tag() == "required" && e.Field() == "name":
			errs = append(errs, apperrors.ErrEmptyName)
		case e.Tag() == "required" && e.Field() == "email":
			errs = append(errs, apperrors.ErrEmptyEmail)
		case e.Tag() == "required":
			errs = append(errs, apperrors.NewValidationError(e.Field(), fmt.Sprintf("%s is required", e.Field())))
		default:
			errs = append(errs, apperrors.NewValidationError(e.Field(), fmt.Sprintf("%s is invalid", e.Field())))
		}
	}

	if len(errs) == 1 {
		return errs[0]
	}

	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message
	}
	return apperrors.NewValidationError("", strings.Join(messages, ", "))
}

// Refresh fetches the list and redraws the table. On failure the table shows
// an inline error row in place of the records.
func (uc *Usecase) Refresh(ctx context.Context) error {
	log := logger.WithContext(ctx, uc.log)

	users, err := uc.api.ListUsers(ctx)
	if err != nil {
		log.Error("failed to load users", zap.Error(err))
		uc.presenter.DisplayError(err)
		return err
	}

	log.Debug("users loaded", zap.Int("count", len(users)))
	uc.presenter.DisplayUsers(users)
	return nil
}

// Show fetches one user by id and displays it. A missing user is reported
// by id; the table and the form are left alone.
func (uc *Usecase) Show(ctx context.Context, id int64) bool {
	log := logger.WithContext(ctx, uc.log)

	if id <= 0 {
		uc.prompter.Alert(apperrors.UserMessage(apperrors.ErrMissingID))
		return false
	}

	u, err := uc.api.GetUser(ctx, id)
	if err != nil {
		log.Error("failed to get user", zap.Int64("id", id), zap.Error(err))

		var apiErr *apperrors.APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			uc.prompter.Alert(fmt.Sprintf("User with ID %d not found.", id))
			return false
		}
		uc.prompter.Alert("Failed to load user: " + apperrors.UserMessage(err))
		return false
	}

	uc.presenter.DisplayUser(*u)
	return true
}

// Edit loads a row's data into the form and switches to edit mode. No
// request is made.
func (uc *Usecase) Edit(data EditData) {
	uc.log.Info("editing user", zap.Int64("id", data.ID))

	uc.form = FormState{
		Mode:  ModeEdit,
		ID:    data.ID,
		Name:  data.Name,
		Email: data.Email,
	}
	uc.presenter.RenderForm(uc.form)
}

// Reset clears the form and returns it to create mode. No request is made.
func (uc *Usecase) Reset() {
	uc.form = FormState{}
	uc.presenter.RenderForm(uc.form)
}

// Submit validates the form and issues an update (edit mode with an ID) or a
// create. On success the form is reset and the table refreshed. It reports
// whether the mutation succeeded; on failure the form is left untouched.
func (uc *Usecase) Submit(ctx context.Context) bool {
	log := logger.WithContext(ctx, uc.log)

	req := SubmitRequest{
		Name:  strings.TrimSpace(uc.form.Name),
		Email: strings.TrimSpace(uc.form.Email),
	}

	if err := uc.validate.Struct(req); err != nil {
		log.Warn("validate failed", zap.Error(err))
		uc.prompter.Alert(apperrors.UserMessage(formatValidationError(err)))
		return false
	}

	in := domain.Input{Name: req.Name, Email: req.Email}

	var err error
	if uc.form.Mode == ModeEdit && uc.form.HasID() {
		log.Info("updating user", zap.Int64("id", uc.form.ID), zap.String("name", in.Name), zap.String("email", in.Email))
		_, err = uc.api.UpdateUser(ctx, uc.form.ID, in)
		if err != nil {
			log.Error("failed to update user", zap.Int64("id", uc.form.ID), zap.Error(err))
			uc.prompter.Alert("Failed to update user: " + apperrors.UserMessage(err))
			return false
		}
	} else {
		log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))
		_, err = uc.api.CreateUser(ctx, in)
		if err != nil {
			log.Error("failed to create user", zap.Error(err))
			uc.prompter.Alert("Failed to create user: " + apperrors.UserMessage(err))
			return false
		}
	}

	uc.Reset()
	_ = uc.Refresh(ctx)
	return true
}

// Delete asks for confirmation and deletes the user with id. Declining makes
// no request. On success the table is refreshed. It reports whether the user
// was deleted.
func (uc *Usecase) Delete(ctx context.Context, id int64) bool {
	log := logger.WithContext(ctx, uc.log)

	if id <= 0 {
		uc.prompter.Alert(apperrors.UserMessage(apperrors.ErrMissingID))
		return false
	}

	if !uc.prompter.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete the user with ID %d?", id)) {
		log.Debug("delete cancelled", zap.Int64("id", id))
		return false
	}

	log.Info("deleting user", zap.Int64("id", id))
	if err := uc.api.DeleteUser(ctx, id); err != nil {
		log.Error("failed to delete user", zap.Int64("id", id), zap.Error(err))
		uc.prompter.Alert("Failed to delete user: " + apperrors.UserMessage(err))
		return false
	}

	_ = uc.Refresh(ctx)
	return true
}
