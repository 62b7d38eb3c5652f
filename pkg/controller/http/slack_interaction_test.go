package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"

	httpctrl "github.com/firerml/tasker/pkg/controller/http"
	"github.com/firerml/tasker/pkg/domain/model"
	"github.com/firerml/tasker/pkg/domain/types"
	"github.com/firerml/tasker/pkg/repository/memory"
	"github.com/firerml/tasker/pkg/usecase"
)

func postInteraction(t *testing.T, srv *httpctrl.Server, callback slack.InteractionCallback) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(callback)
	gt.NoError(t, err).Required()

	form := url.Values{"payload": {string(payload)}}
	req := httptest.NewRequest(http.MethodPost, "/message_action", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func completionCallback(task *model.Task, completerID string, attachmentID string, attachments []slack.Attachment) slack.InteractionCallback {
	return slack.InteractionCallback{
		Type:         slack.InteractionTypeInteractionMessage,
		CallbackID:   usecase.CallbackTaskCompleted,
		User:         slack.User{ID: completerID},
		AttachmentID: attachmentID,
		OriginalMessage: slack.Message{
			Msg: slack.Msg{
				Text:        "Here are your assigned tasks.",
				Attachments: attachments,
			},
		},
		ActionCallback: slack.ActionCallbacks{
			AttachmentActions: []*slack.AttachmentAction{
				{
					Name:  "complete",
					Value: usecase.EncodeCompletionValue(task),
				},
			},
		},
	}
}

func TestSlackInteractionHandler(t *testing.T) {
	t.Run("completing the last task rewrites the message", func(t *testing.T) {
		repo := memory.New()
		gateway := &gatewayStub{channels: map[types.UserID]types.ChannelID{"U001": "D001"}}
		srv := newTestServer(t, repo, gateway)

		task := seedTask(t, repo, "U001", "U999", "order lunch")
		callback := completionCallback(task, "U999", "1", []slack.Attachment{{ID: 1, Title: task.Summary()}})

		rec := postInteraction(t, srv, callback)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var response slack.Msg
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response)).Required()
		gt.Value(t, response.Text).Equal("All done! :sunglasses:")
		gt.Array(t, response.Attachments).Length(0)

		remaining, err := repo.ListByAssignee(context.Background(), "U999")
		gt.NoError(t, err).Required()
		gt.Array(t, remaining).Length(0)

		gt.Array(t, gateway.posts).Length(1).Required()
		gt.Value(t, gateway.posts[0].ChannelID.String()).Equal("D001")
	})

	t.Run("completing one of several keeps the rest", func(t *testing.T) {
		repo := memory.New()
		gateway := &gatewayStub{channels: map[types.UserID]types.ChannelID{"U001": "D001"}}
		srv := newTestServer(t, repo, gateway)

		first := seedTask(t, repo, "U001", "U999", "order lunch")
		second := seedTask(t, repo, "U001", "U999", "book the room")

		attachments := []slack.Attachment{
			{ID: 1, Title: first.Summary()},
			{ID: 2, Title: second.Summary()},
		}
		callback := completionCallback(first, "U999", "1", attachments)

		rec := postInteraction(t, srv, callback)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var response slack.Msg
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response)).Required()
		gt.Value(t, response.Text).Equal("Here are your assigned tasks.")
		gt.Array(t, response.Attachments).Length(1).Required()
		gt.Value(t, response.Attachments[0].Title).Equal(second.Summary())
	})

	t.Run("unrelated callback ID is an empty 200", func(t *testing.T) {
		repo := memory.New()
		srv := newTestServer(t, repo, &gatewayStub{})

		task := seedTask(t, repo, "U001", "U999", "order lunch")
		callback := completionCallback(task, "U999", "1", []slack.Attachment{{ID: 1}})
		callback.CallbackID = "something_else"

		rec := postInteraction(t, srv, callback)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Body.String()).Equal("")

		remaining, err := repo.ListByAssignee(context.Background(), "U999")
		gt.NoError(t, err).Required()
		gt.Array(t, remaining).Length(1)
	})

	t.Run("missing payload is rejected", func(t *testing.T) {
		srv := newTestServer(t, memory.New(), &gatewayStub{})

		req := httptest.NewRequest(http.MethodPost, "/message_action", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}
