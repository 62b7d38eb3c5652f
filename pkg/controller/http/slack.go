package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack/slackevents"

	"github.com/firerml/tasker/pkg/domain/types"
	slacksvc "github.com/firerml/tasker/pkg/service/slack"
	"github.com/firerml/tasker/pkg/usecase"
	"github.com/firerml/tasker/pkg/utils/errutil"
	"github.com/firerml/tasker/pkg/utils/logging"
	"github.com/firerml/tasker/pkg/utils/safe"
)

// SlackEventHandler handles Slack Events API webhook requests
type SlackEventHandler struct {
	messenger *usecase.Messenger
	gateway   slacksvc.Service
}

// NewSlackEventHandler creates a new Slack events webhook handler
func NewSlackEventHandler(messenger *usecase.Messenger, gateway slacksvc.Service) *SlackEventHandler {
	return &SlackEventHandler{
		messenger: messenger,
		gateway:   gateway,
	}
}

// ServeHTTP handles Slack Events API requests. Events are processed
// synchronously: the full workflow runs to completion before responding.
func (h *SlackEventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slack event"), http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to unmarshal challenge"), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		safe.Write(ctx, w, []byte(challenge.Challenge))

	case slackevents.CallbackEvent:
		h.handleCallbackEvent(w, r, &event)

	default:
		logging.From(ctx).Warn("unknown slack event type", "type", event.Type)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *SlackEventHandler) handleCallbackEvent(w http.ResponseWriter, r *http.Request, event *slackevents.EventsAPIEvent) {
	ctx := r.Context()

	msg, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}

	// Ignore the bot's own messages and edits
	if msg.SubType == "bot_message" || msg.SubType == "message_changed" {
		w.WriteHeader(http.StatusOK)
		return
	}

	text, attachments := h.messenger.FulfillUserIntent(ctx, msg.Text, types.UserID(msg.User))

	if err := h.gateway.PostMessage(ctx, types.ChannelID(msg.Channel), text, attachments...); err != nil {
		errutil.Handle(ctx, err, "failed to post response into channel")
		w.WriteHeader(http.StatusOK)
		safe.Write(ctx, w, []byte(h.messenger.BackendErrorMessage()))
		return
	}

	w.WriteHeader(http.StatusOK)
}
