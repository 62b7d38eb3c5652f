package postgres

import (
	"context"
	"database/sql"

	"github.com/firerml/tasker/pkg/domain/model"
	"github.com/firerml/tasker/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          BIGSERIAL PRIMARY KEY,
	assigner_id VARCHAR(40) NOT NULL,
	assignee_id VARCHAR(40) NOT NULL,
	description TEXT        NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_assignee_id ON tasks (assignee_id);
CREATE INDEX IF NOT EXISTS idx_tasks_assigner_id ON tasks (assigner_id);
`

// Repository is a PostgreSQL-backed task store.
type Repository struct {
	db *sql.DB
}

// New opens a connection pool and provisions the schema if absent.
// The caller is responsible for calling Close().
func New(ctx context.Context, dsn string) (*Repository, error) {
	if dsn == "" {
		return nil, goerr.New("database DSN is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to connect to database")
	}

	repo := &Repository{db: db}
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return repo, nil
}

// Migrate creates the tasks table and its indexes if they do not exist
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return goerr.Wrap(err, "failed to provision schema")
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid task")
	}

	created := *task
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (assigner_id, assignee_id, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		task.AssignerID.String(),
		task.AssigneeID.String(),
		task.Description,
		task.CreatedAt,
	)
	if err := row.Scan(&created.ID); err != nil {
		return nil, goerr.Wrap(err, "failed to insert task",
			goerr.V("assigner_id", task.AssignerID),
			goerr.V("assignee_id", task.AssigneeID),
		)
	}

	return &created, nil
}

func (r *Repository) ListByAssignee(ctx context.Context, assigneeID types.UserID) ([]*model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, assigner_id, assignee_id, description, created_at
		FROM tasks
		WHERE assignee_id = $1
		ORDER BY created_at, id`,
		assigneeID.String(),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query tasks", goerr.V("assignee_id", assigneeID))
	}
	defer func() {
		_ = rows.Close()
	}()

	var tasks []*model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.AssignerID, &t.AssigneeID, &t.Description, &t.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan task row")
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate task rows")
	}

	return tasks, nil
}

// Delete removes the task by ID. A delete that matches no rows still
// succeeds, mirroring the commit semantics the workflow expects.
func (r *Repository) Delete(ctx context.Context, id types.TaskID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, int64(id)); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("task_id", id))
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
