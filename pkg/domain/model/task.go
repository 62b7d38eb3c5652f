package model

import (
	"fmt"
	"time"

	"github.com/firerml/tasker/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Task represents a unit of work assigned from one user to another.
// Tasks are created by the assign workflow, read in bulk by assignee,
// and deleted on completion. They are never updated in place.
type Task struct {
	ID          types.TaskID
	AssignerID  types.UserID
	AssigneeID  types.UserID
	Description string
	CreatedAt   time.Time
}

// Validate checks if the task is valid
func (x *Task) Validate() error {
	if err := x.AssignerID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid assigner ID")
	}
	if err := x.AssigneeID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid assignee ID")
	}
	if x.Description == "" {
		return goerr.New("task description is empty")
	}
	return nil
}

// Summary renders the task as a human-readable one-liner, e.g.
// "order lunch (from <@U024BE7LH> on Mar 5)"
func (x *Task) Summary() string {
	return fmt.Sprintf("%s (from %s on %s %d)",
		x.Description,
		x.AssignerID.Mention(),
		x.CreatedAt.Format("Jan"),
		x.CreatedAt.Day(),
	)
}
