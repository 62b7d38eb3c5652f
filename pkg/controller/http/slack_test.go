package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"

	httpctrl "github.com/firerml/tasker/pkg/controller/http"
	"github.com/firerml/tasker/pkg/domain/model"
	"github.com/firerml/tasker/pkg/domain/types"
	"github.com/firerml/tasker/pkg/repository/memory"
	"github.com/firerml/tasker/pkg/usecase"
)

var testClock = func() time.Time {
	return time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
}

var errGatewayDown = goerr.New("gateway down")

type postedMessage struct {
	ChannelID   types.ChannelID
	Text        string
	Attachments []slack.Attachment
}

type gatewayStub struct {
	channels map[types.UserID]types.ChannelID
	postErr  error
	posts    []postedMessage
}

func (s *gatewayStub) ResolveDMChannel(ctx context.Context, userID types.UserID) (types.ChannelID, error) {
	return s.channels[userID], nil
}

func (s *gatewayStub) PostMessage(ctx context.Context, channelID types.ChannelID, text string, attachments ...slack.Attachment) error {
	if s.postErr != nil {
		return s.postErr
	}
	s.posts = append(s.posts, postedMessage{ChannelID: channelID, Text: text, Attachments: attachments})
	return nil
}

func newTestServer(t *testing.T, repo *memory.Repository, gateway *gatewayStub) *httpctrl.Server {
	t.Helper()
	messenger := usecase.New(repo, gateway, usecase.WithClock(testClock))
	srv, err := httpctrl.New(messenger, gateway)
	gt.NoError(t, err).Required()
	return srv
}

func postEvent(t *testing.T, srv *httpctrl.Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestSlackEventHandler(t *testing.T) {
	t.Run("url_verification echoes challenge", func(t *testing.T) {
		srv := newTestServer(t, memory.New(), &gatewayStub{})

		rec := postEvent(t, srv, `{"type": "url_verification", "challenge": "test-challenge-token"}`)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Body.String()).Equal("test-challenge-token")
	})

	t.Run("message event posts response into channel", func(t *testing.T) {
		gateway := &gatewayStub{}
		srv := newTestServer(t, memory.New(), gateway)

		rec := postEvent(t, srv, `{
			"type": "event_callback",
			"team_id": "T001",
			"event": {"type": "message", "user": "U999", "text": "see tasks", "channel": "D999", "ts": "1503435956.000247"}
		}`)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Body.String()).Equal("")

		gt.Array(t, gateway.posts).Length(1).Required()
		gt.Value(t, gateway.posts[0].ChannelID.String()).Equal("D999")
		gt.Value(t, gateway.posts[0].Text).Equal("No assigned tasks yet! :surfer:")
	})

	t.Run("assign message runs the full workflow", func(t *testing.T) {
		repo := memory.New()
		gateway := &gatewayStub{channels: map[types.UserID]types.ChannelID{"U1234": "D1234"}}
		srv := newTestServer(t, repo, gateway)

		rec := postEvent(t, srv, `{
			"type": "event_callback",
			"team_id": "T001",
			"event": {"type": "message", "user": "U999", "text": "assign <@U1234|mike> to order lunch", "channel": "D999", "ts": "1503435956.000247"}
		}`)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		tasks, err := repo.ListByAssignee(context.Background(), "U1234")
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(1)

		// Notification into the assignee DM plus the reply into the
		// originating channel
		gt.Array(t, gateway.posts).Length(2).Required()
		gt.Value(t, gateway.posts[0].ChannelID.String()).Equal("D1234")
		gt.Value(t, gateway.posts[1].ChannelID.String()).Equal("D999")
		gt.Value(t, gateway.posts[1].Text).Equal("Great! I'll tell <@U1234|mike> to order lunch.")
	})

	t.Run("bot_message subtype is ignored", func(t *testing.T) {
		gateway := &gatewayStub{}
		srv := newTestServer(t, memory.New(), gateway)

		rec := postEvent(t, srv, `{
			"type": "event_callback",
			"team_id": "T001",
			"event": {"type": "message", "subtype": "bot_message", "text": "see tasks", "channel": "D999", "ts": "1503435956.000247"}
		}`)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Array(t, gateway.posts).Length(0)
	})

	t.Run("message_changed subtype is ignored", func(t *testing.T) {
		gateway := &gatewayStub{}
		srv := newTestServer(t, memory.New(), gateway)

		rec := postEvent(t, srv, `{
			"type": "event_callback",
			"team_id": "T001",
			"event": {"type": "message", "subtype": "message_changed", "channel": "D999", "ts": "1503435956.000247"}
		}`)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Array(t, gateway.posts).Length(0)
	})

	t.Run("post failure returns backend error text", func(t *testing.T) {
		gateway := &gatewayStub{postErr: errGatewayDown}
		srv := newTestServer(t, memory.New(), gateway)

		rec := postEvent(t, srv, `{
			"type": "event_callback",
			"team_id": "T001",
			"event": {"type": "message", "user": "U999", "text": "see tasks", "channel": "D999", "ts": "1503435956.000247"}
		}`)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, strings.Contains(rec.Body.String(), "*Oops!* There was an error on our end.")).Equal(true)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		srv := newTestServer(t, memory.New(), &gatewayStub{})

		rec := postEvent(t, srv, `not json`)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, memory.New(), &gatewayStub{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal("OK")
}

func seedTask(t *testing.T, repo *memory.Repository, assigner, assignee types.UserID, description string) *model.Task {
	t.Helper()
	task, err := repo.Create(context.Background(), &model.Task{
		AssignerID:  assigner,
		AssigneeID:  assignee,
		Description: description,
		CreatedAt:   testClock(),
	})
	gt.NoError(t, err).Required()
	return task
}
