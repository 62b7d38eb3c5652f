package usecase

import (
	"fmt"
	"time"

	"github.com/firerml/tasker/pkg/domain/interfaces"
	slacksvc "github.com/firerml/tasker/pkg/service/slack"
)

const (
	// CallbackTaskCompleted identifies interactive callbacks from the
	// "Complete" button on task attachments
	CallbackTaskCompleted = "completed"

	actionNameComplete = "complete"
	attachmentColor    = "#3AA3E3"
)

// Messages holds the configurable parts of user-facing texts
type Messages struct {
	SupportContact   string
	AssignSuggestion string
}

// DefaultMessages returns the built-in message configuration
func DefaultMessages() Messages {
	return Messages{
		SupportContact:   "firerml@gmail.com",
		AssignSuggestion: "`assign @user to order lunch`",
	}
}

func (m Messages) backendError() string {
	return fmt.Sprintf("*Oops!* There was an error on our end. Try again or email %s for support.", m.SupportContact)
}

func (m Messages) parseFailure() string {
	return fmt.Sprintf("*Oops!* That didn't work. Try something like %s", m.AssignSuggestion)
}

func (m Messages) help() string {
	return fmt.Sprintf("*Oops!* Try something like %s or `see tasks`", m.AssignSuggestion)
}

// Messenger orchestrates the intent parser against the task store and the
// chat gateway. All collaborators are injected; there is no ambient state.
type Messenger struct {
	repo    interfaces.TaskRepository
	gateway slacksvc.Service
	now     func() time.Time
	msgs    Messages
}

// Option is a functional option for Messenger configuration
type Option func(*Messenger)

// WithClock injects a time source for deterministic CreatedAt values
func WithClock(now func() time.Time) Option {
	return func(x *Messenger) {
		x.now = now
	}
}

// WithMessages overrides the default user-facing texts
func WithMessages(msgs Messages) Option {
	return func(x *Messenger) {
		x.msgs = msgs
	}
}

// New creates a new Messenger instance
func New(repo interfaces.TaskRepository, gateway slacksvc.Service, opts ...Option) *Messenger {
	x := &Messenger{
		repo:    repo,
		gateway: gateway,
		now:     time.Now,
		msgs:    DefaultMessages(),
	}

	for _, opt := range opts {
		opt(x)
	}

	return x
}

// BackendErrorMessage returns the generic backend-error text. The events
// controller uses it as the response body when posting the reply fails.
func (x *Messenger) BackendErrorMessage() string {
	return x.msgs.backendError()
}
