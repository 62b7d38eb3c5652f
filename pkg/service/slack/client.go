package slack

import (
	"context"

	"github.com/firerml/tasker/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// client implements Service interface
type client struct {
	api    *slack.Client
	apiURL string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithAPIURL overrides the Slack API base URL (used by tests)
func WithAPIURL(url string) Option {
	return func(c *client) {
		c.apiURL = url
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	c := &client{}
	for _, opt := range opts {
		opt(c)
	}

	var apiOpts []slack.Option
	if c.apiURL != "" {
		apiOpts = append(apiOpts, slack.OptionAPIURL(c.apiURL))
	}
	c.api = slack.New(token, apiOpts...)

	return c, nil
}

// ResolveDMChannel scans the bot's IM conversations for the user's DM channel
func (c *client) ResolveDMChannel(ctx context.Context, userID types.UserID) (types.ChannelID, error) {
	var cursor string

	for {
		params := &slack.GetConversationsParameters{
			Types:  []string{"im"},
			Limit:  100,
			Cursor: cursor,
		}

		convs, nextCursor, err := c.api.GetConversationsContext(ctx, params)
		if err != nil {
			return "", goerr.Wrap(err, "failed to list IM conversations", goerr.V("user_id", userID))
		}

		for _, conv := range convs {
			if conv.User == userID.String() {
				return types.ChannelID(conv.ID), nil
			}
		}

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	return "", nil
}

// PostMessage posts a message with optional attachments into a channel
func (c *client) PostMessage(ctx context.Context, channelID types.ChannelID, text string, attachments ...slack.Attachment) error {
	if channelID.IsEmpty() {
		return goerr.New("channel ID is required")
	}

	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if len(attachments) > 0 {
		opts = append(opts, slack.MsgOptionAttachments(attachments...))
	}

	if _, _, err := c.api.PostMessageContext(ctx, channelID.String(), opts...); err != nil {
		return goerr.Wrap(err, "failed to post message", goerr.V("channel_id", channelID))
	}

	return nil
}
