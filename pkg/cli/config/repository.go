package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/firerml/tasker/pkg/domain/interfaces"
	"github.com/firerml/tasker/pkg/repository/memory"
	"github.com/firerml/tasker/pkg/repository/postgres"
	"github.com/firerml/tasker/pkg/utils/logging"
)

// Repository holds CLI flags for task store configuration
type Repository struct {
	backend string
	dsn     string
}

func (x *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Task store backend (postgres or memory)",
			Category:    "Repository",
			Value:       "postgres",
			Sources:     cli.EnvVars("TASKER_REPOSITORY_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "database-dsn",
			Usage:       "PostgreSQL DSN (required when using postgres backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("TASKER_DATABASE_DSN"),
			Destination: &x.dsn,
		},
	}
}

// Backend returns the configured backend type
func (x *Repository) Backend() string {
	return x.backend
}

// DSN returns the configured database DSN
func (x *Repository) DSN() string {
	return x.dsn
}

// Configure initializes and returns a task repository based on the
// configured backend. The caller is responsible for calling Close() on the
// returned repository.
func (x *Repository) Configure(ctx context.Context) (interfaces.TaskRepository, error) {
	switch x.backend {
	case "postgres":
		repo, err := postgres.New(ctx, x.dsn)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize postgres repository")
		}
		logging.Default().Info("Using PostgreSQL repository")
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", x.backend))
	}
}
