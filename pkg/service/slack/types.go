package slack

import (
	"context"

	"github.com/firerml/tasker/pkg/domain/types"
	"github.com/slack-go/slack"
)

// Service provides interface to the Slack API for messenger operations
type Service interface {
	// ResolveDMChannel finds the direct-message channel between the bot and
	// the given user by scanning the bot's IM conversation list. Returns an
	// empty channel ID (without error) when the user has no DM channel.
	ResolveDMChannel(ctx context.Context, userID types.UserID) (types.ChannelID, error)

	// PostMessage posts a message with optional attachments into a channel.
	// Posting into an empty channel ID is an error.
	PostMessage(ctx context.Context, channelID types.ChannelID, text string, attachments ...slack.Attachment) error
}
