package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/firerml/tasker/pkg/usecase"
	"github.com/firerml/tasker/pkg/utils/errutil"
	"github.com/firerml/tasker/pkg/utils/logging"
)

// SlackInteractionHandler handles Slack interactive component payloads
// (the "Complete" button on task attachments)
type SlackInteractionHandler struct {
	messenger *usecase.Messenger
}

// NewSlackInteractionHandler creates a new Slack interaction handler
func NewSlackInteractionHandler(messenger *usecase.Messenger) *SlackInteractionHandler {
	return &SlackInteractionHandler{
		messenger: messenger,
	}
}

// ServeHTTP handles Slack interaction webhook requests. The JSON body of the
// response replaces the original message in place.
func (h *SlackInteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Slack sends interaction payloads as application/x-www-form-urlencoded
	// with a "payload" field containing JSON
	payload := r.FormValue("payload")
	if payload == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing payload field in interaction request"), http.StatusBadRequest)
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	if callback.Type != slack.InteractionTypeInteractionMessage ||
		callback.CallbackID != usecase.CallbackTaskCompleted ||
		len(callback.ActionCallback.AttachmentActions) == 0 {
		w.WriteHeader(http.StatusOK)
		return
	}

	response := h.messenger.CompleteTask(ctx, &callback)
	if response == nil {
		// Leave the original message as-is
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.From(ctx).Error("failed to encode interaction response", "error", err)
	}
}
