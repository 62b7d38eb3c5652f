package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/firerml/tasker/pkg/cli/config"
	"github.com/firerml/tasker/pkg/repository/postgres"
	"github.com/firerml/tasker/pkg/utils/logging"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:  "migrate",
		Usage: "Provision the task table and indexes in PostgreSQL",
		Flags: repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if repoCfg.Backend() != "postgres" {
				return goerr.New("migrate requires the postgres backend", goerr.V("backend", repoCfg.Backend()))
			}

			// New provisions the schema as part of startup
			repo, err := postgres.New(ctx, repoCfg.DSN())
			if err != nil {
				return goerr.Wrap(err, "failed to migrate database")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			logging.Default().Info("Database schema is up to date")
			return nil
		},
	}
}
