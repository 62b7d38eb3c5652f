package interfaces

import (
	"context"

	"github.com/firerml/tasker/pkg/domain/model"
	"github.com/firerml/tasker/pkg/domain/types"
)

// TaskRepository defines the interface for task persistence.
// Implementations must serialize conflicting writes; any underlying fault
// surfaces as a returned error and never as a panic.
type TaskRepository interface {
	// Create persists the task and returns it with the store-assigned ID.
	// CreatedAt is set by the caller and stored as-is.
	Create(ctx context.Context, task *model.Task) (*model.Task, error)

	// ListByAssignee returns all tasks assigned to the user, ordered by
	// creation time ascending (ties broken by ID).
	ListByAssignee(ctx context.Context, assigneeID types.UserID) ([]*model.Task, error)

	// Delete removes the task by ID. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id types.TaskID) error

	Close() error
}
