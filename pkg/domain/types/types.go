package types

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// UserID is a Slack user identifier (e.g. "U024BE7LH")
type UserID string

// String returns the string representation of the user ID
func (x UserID) String() string {
	return string(x)
}

// Mention renders the ID as a Slack mention token
func (x UserID) Mention() string {
	return fmt.Sprintf("<@%s>", string(x))
}

// Validate checks if the user ID is valid
func (x UserID) Validate() error {
	if x == "" {
		return goerr.New("user ID is empty")
	}
	return nil
}

// ChannelID is a Slack channel identifier (e.g. "D024BE91L" for a DM)
type ChannelID string

// String returns the string representation of the channel ID
func (x ChannelID) String() string {
	return string(x)
}

// IsEmpty returns true if no channel was resolved
func (x ChannelID) IsEmpty() bool {
	return x == ""
}

// TaskID is a store-assigned task identifier
type TaskID int64

// String returns the decimal representation of the task ID
func (x TaskID) String() string {
	return fmt.Sprintf("%d", int64(x))
}
