package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/firerml/tasker/pkg/usecase"
)

// Messages holds the CLI flag for the optional bot-message configuration
// file. The TOML file overrides individual user-facing texts; absent fields
// keep their defaults.
type Messages struct {
	path string
}

type messagesFile struct {
	SupportContact   string `toml:"support_contact"`
	AssignSuggestion string `toml:"assign_suggestion"`
}

func (x *Messages) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "messages-path",
			Usage:       "Path to a TOML file overriding bot message texts",
			Category:    "Messages",
			Sources:     cli.EnvVars("TASKER_MESSAGES_PATH"),
			Destination: &x.path,
		},
	}
}

// Configure loads the message configuration, falling back to defaults
func (x *Messages) Configure() (usecase.Messages, error) {
	msgs := usecase.DefaultMessages()
	if x.path == "" {
		return msgs, nil
	}

	data, err := os.ReadFile(x.path)
	if err != nil {
		return msgs, goerr.Wrap(err, "failed to read messages file", goerr.V("path", x.path))
	}

	var file messagesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return msgs, goerr.Wrap(err, "failed to parse messages file", goerr.V("path", x.path))
	}

	if file.SupportContact != "" {
		msgs.SupportContact = file.SupportContact
	}
	if file.AssignSuggestion != "" {
		msgs.AssignSuggestion = file.AssignSuggestion
	}

	return msgs, nil
}
