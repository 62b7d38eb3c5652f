package http

import (
	"encoding/json"
	"net/http"

	"github.com/slack-go/slack"

	"github.com/firerml/tasker/pkg/domain/types"
	"github.com/firerml/tasker/pkg/usecase"
	"github.com/firerml/tasker/pkg/utils/logging"
)

// slashResponse is the JSON body Slack expects from a slash command
type slashResponse struct {
	Text         string             `json:"text"`
	ResponseType string             `json:"response_type"`
	Attachments  []slack.Attachment `json:"attachments,omitempty"`
}

func writeEphemeral(w http.ResponseWriter, r *http.Request, text string, attachments []slack.Attachment) {
	w.Header().Set("Content-Type", "application/json")
	res := slashResponse{
		Text:         text,
		ResponseType: "ephemeral",
		Attachments:  attachments,
	}
	if err := json.NewEncoder(w).Encode(res); err != nil {
		logging.From(r.Context()).Error("failed to encode slash command response", "error", err)
	}
}

// assignCommandHandler handles the /assign slash command
func assignCommandHandler(messenger *usecase.Messenger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text := r.FormValue("text")
		userID := types.UserID(r.FormValue("user_id"))

		res := messenger.AssignTask(r.Context(), text, userID)
		writeEphemeral(w, r, res, nil)
	}
}

// tasksCommandHandler handles the /tasks slash command
func tasksCommandHandler(messenger *usecase.Messenger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := types.UserID(r.FormValue("user_id"))

		text, attachments := messenger.ListAssignedTasks(r.Context(), userID)
		writeEphemeral(w, r, text, attachments)
	}
}
