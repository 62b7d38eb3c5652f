package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/firerml/tasker/pkg/domain/model"
	"github.com/firerml/tasker/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Repository is an in-memory task store for development and tests.
type Repository struct {
	mu     sync.RWMutex
	tasks  map[types.TaskID]*model.Task
	nextID types.TaskID
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		tasks:  make(map[types.TaskID]*model.Task),
		nextID: 1,
	}
}

func copyTask(t *model.Task) *model.Task {
	copied := *t
	return &copied
}

func (r *Repository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid task")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyTask(task)
	created.ID = r.nextID
	r.nextID++
	r.tasks[created.ID] = created

	return copyTask(created), nil
}

func (r *Repository) ListByAssignee(ctx context.Context, assigneeID types.UserID) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*model.Task
	for _, t := range r.tasks {
		if t.AssigneeID == assigneeID {
			tasks = append(tasks, copyTask(t))
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

func (r *Repository) Delete(ctx context.Context, id types.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tasks, id)
	return nil
}

func (r *Repository) Close() error {
	return nil
}
