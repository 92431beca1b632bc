package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Action is the type of a UI event.
type Action string

const (
	ActionLoad   Action = "list"
	ActionShow   Action = "show"
	ActionSubmit Action = "save"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionClear  Action = "clear"
	ActionSet    Action = "set"
	ActionNew    Action = "new"
	ActionHelp   Action = "help"
	ActionQuit   Action = "quit"
)

// aliases maps alternative command words onto actions
var aliases = map[string]Action{
	"ls":     ActionLoad,
	"reload": ActionLoad,
	"get":    ActionShow,
	"view":   ActionShow,
	"submit": ActionSubmit,
	"update": ActionSubmit,
	"rm":     ActionDelete,
	"cancel": ActionClear,
	"reset":  ActionClear,
	"add":    ActionNew,
	"?":      ActionHelp,
	"exit":   ActionQuit,
	"q":      ActionQuit,
}

var (
	// ErrUnknownAction is returned for events with no registered handler
	ErrUnknownAction = errors.New("unknown command")
	// ErrQuit asks the console loop to stop
	ErrQuit = errors.New("quit")
	// ErrMalformedLine is returned for lines with an unclosed quote or a
	// trailing escape
	ErrMalformedLine = errors.New("malformed command line")
)

// UsageError reports an event whose arguments do not fit its action
type UsageError struct {
	Usage string
}

// Error implements the error interface
func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

// Event is one operator action with its arguments.
type Event struct {
	Action Action
	Args   []string
}

// Handler reacts to one event
type Handler func(ctx context.Context, ev Event) error

// Dispatcher routes events to handlers by action type.
type Dispatcher struct {
	handlers map[Action]Handler
}

// NewDispatcher creates an empty dispatch table
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Action]Handler)}
}

// Register binds h to action, replacing any previous handler
func (d *Dispatcher) Register(action Action, h Handler) {
	d.handlers[action] = h
}

// Dispatch runs the handler bound to ev.Action
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	h, ok := d.handlers[ev.Action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, string(ev.Action))
	}
	return h(ctx, ev)
}

// ParseEvent turns a command line into an event. Words are split the way a
// POSIX shell splits them, so single or double quotes group words into one
// argument and a backslash escapes the next character. An empty line yields
// an event with an empty action.
func ParseEvent(line string) (Event, error) {
	fields, err := shlex.Split(line)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	if len(fields) == 0 {
		return Event{}, nil
	}

	word := strings.ToLower(fields[0])
	action := Action(word)
	if alias, ok := aliases[word]; ok {
		action = alias
	}

	return Event{Action: action, Args: fields[1:]}, nil
}
