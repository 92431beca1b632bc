package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"user-console/internal/usecase/user"
	"user-console/pkg/logger"
)

const helpText = `Commands:
  list                      reload the users table
  show <id>                 fetch and print one user
  edit <id>                 load a user into the form
  delete <id>               delete a user (asks for confirmation)
  set name <value>          fill the name field
  set email <value>         fill the email field
  save                      create, or update when editing
  new "<name>" <email>      clear the form, fill it and save
  clear                     reset the form to create mode
  help                      show this help
  quit                      leave the console

Quote values that contain spaces or apostrophes: set name "O'Brien"
`

// Console is the interactive session. It reads one command at a time and
// dispatches it; each command completes before the next is read.
type Console struct {
	uc         *user.Usecase
	view       *View
	prompter   *Prompter
	in         *LineReader
	out        io.Writer
	prompt     string
	dispatcher *Dispatcher
	log        *zap.Logger
}

// NewConsole creates a console and registers the handler for every action
func NewConsole(uc *user.Usecase, view *View, prompter *Prompter, in *LineReader, out io.Writer, prompt string, log *zap.Logger) *Console {
	c := &Console{
		uc:         uc,
		view:       view,
		prompter:   prompter,
		in:         in,
		out:        out,
		prompt:     prompt,
		dispatcher: NewDispatcher(),
		log:        log,
	}

	c.dispatcher.Register(ActionLoad, c.handleLoad)
	c.dispatcher.Register(ActionShow, c.handleShow)
	c.dispatcher.Register(ActionSubmit, c.handleSubmit)
	c.dispatcher.Register(ActionEdit, c.handleEdit)
	c.dispatcher.Register(ActionDelete, c.handleDelete)
	c.dispatcher.Register(ActionClear, c.handleClear)
	c.dispatcher.Register(ActionSet, c.handleSet)
	c.dispatcher.Register(ActionNew, c.handleNew)
	c.dispatcher.Register(ActionHelp, c.handleHelp)
	c.dispatcher.Register(ActionQuit, func(context.Context, Event) error { return ErrQuit })

	return c
}

// Run loads the table, then serves commands until quit, end of input, or
// ctx is done. End of input and quit return nil.
func (c *Console) Run(ctx context.Context) error {
	c.log.Info("console started")
	defer c.log.Info("console stopped")

	c.view.RenderForm(c.uc.Form())
	if err := c.dispatch(ctx, Event{Action: ActionLoad}); err != nil {
		return err
	}

	for {
		_, _ = io.WriteString(c.out, c.prompt)

		line, err := c.in.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			_, _ = io.WriteString(c.out, "\n")
			return nil
		}
		if err != nil {
			return err
		}

		ev, err := ParseEvent(line)
		if err != nil {
			c.prompter.Alert(err.Error())
			continue
		}
		if ev.Action == "" {
			continue
		}

		err = c.dispatch(ctx, ev)
		switch {
		case err == nil:
		case errors.Is(err, ErrQuit):
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			c.prompter.Alert(err.Error())
		}
	}
}

func (c *Console) dispatch(ctx context.Context, ev Event) error {
	ctx = logger.WithCommand(ctx, string(ev.Action))
	logger.WithContext(ctx, c.log).Debug("dispatching event", zap.Strings("args", ev.Args))
	return c.dispatcher.Dispatch(ctx, ev)
}

func (c *Console) handleLoad(ctx context.Context, _ Event) error {
	// failures are already shown inline in the table
	_ = c.uc.Refresh(ctx)
	return nil
}

func (c *Console) handleSubmit(ctx context.Context, _ Event) error {
	c.uc.Submit(ctx)
	return nil
}

func (c *Console) handleShow(ctx context.Context, ev Event) error {
	id, err := parseID(ev, "show <id>")
	if err != nil {
		return err
	}
	c.uc.Show(ctx, id)
	return nil
}

func (c *Console) handleEdit(_ context.Context, ev Event) error {
	id, err := parseID(ev, "edit <id>")
	if err != nil {
		return err
	}
	ctl, ok := c.view.Table().Control(ControlEdit, id)
	if !ok {
		return fmt.Errorf("no user with ID %d in the table", id)
	}
	c.uc.Edit(ctl.Data)
	return nil
}

func (c *Console) handleDelete(ctx context.Context, ev Event) error {
	id, err := parseID(ev, "delete <id>")
	if err != nil {
		return err
	}
	ctl, ok := c.view.Table().Control(ControlDelete, id)
	if !ok {
		return fmt.Errorf("no user with ID %d in the table", id)
	}
	c.uc.Delete(ctx, ctl.Data.ID)
	return nil
}

func (c *Console) handleClear(context.Context, Event) error {
	c.uc.Reset()
	return nil
}

func (c *Console) handleSet(_ context.Context, ev Event) error {
	if len(ev.Args) < 1 {
		return &UsageError{Usage: "set name|email <value>"}
	}
	value := strings.Join(ev.Args[1:], " ")

	switch strings.ToLower(ev.Args[0]) {
	case "name":
		c.uc.SetName(value)
	case "email":
		c.uc.SetEmail(value)
	default:
		return &UsageError{Usage: "set name|email <value>"}
	}

	c.view.RenderForm(c.uc.Form())
	return nil
}

func (c *Console) handleNew(ctx context.Context, ev Event) error {
	if len(ev.Args) != 2 {
		return &UsageError{Usage: `new "<name>" <email>`}
	}
	c.uc.Reset()
	c.uc.SetName(ev.Args[0])
	c.uc.SetEmail(ev.Args[1])
	c.uc.Submit(ctx)
	return nil
}

func (c *Console) handleHelp(context.Context, Event) error {
	_, _ = io.WriteString(c.out, helpText)
	return nil
}

func parseID(ev Event, usage string) (int64, error) {
	if len(ev.Args) != 1 {
		return 0, &UsageError{Usage: usage}
	}
	id, err := strconv.ParseInt(ev.Args[0], 10, 64)
	if err != nil {
		return 0, &UsageError{Usage: usage}
	}
	return id, nil
}
