package usecase

import (
	"regexp"
	"strings"

	"github.com/firerml/tasker/pkg/domain/types"
)

type intent int

const (
	intentUnknown intent = iota
	intentAssign
	intentTasks
)

var (
	userTagRegex   = regexp.MustCompile(`<@([A-Za-z0-9]+)(?:\|([^>]*))?>`)
	seeTasksRegex  = regexp.MustCompile(`(?i)^(?:see\s+)?(?:all\s+)?tasks`)
	leadingToRegex = regexp.MustCompile(`(?i)^\s*to\s+`)
)

// classifyIntent decides what the user wants from the raw message text.
// The assign check takes precedence over the tasks pattern.
func classifyIntent(text string) intent {
	lowered := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(lowered, "assign"):
		return intentAssign
	case seeTasksRegex.MatchString(lowered):
		return intentTasks
	default:
		return intentUnknown
	}
}

// parsedAssignment is the transient result of parsing an assign message
type parsedAssignment struct {
	AssigneeID types.UserID
	// AssigneeMention is the literal matched mention token, kept for
	// human-readable confirmation messages
	AssigneeMention string
	Description     string
}

// parseAssignment extracts the assignee and task description from an assign
// message. The first user mention anywhere in the text marks the boundary:
// everything after it (minus a leading "to") is the task. Returns nil when
// no mention is found or nothing follows it.
func parseAssignment(text string) *parsedAssignment {
	loc := userTagRegex.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil
	}

	mention := text[loc[0]:loc[1]]
	assigneeID := text[loc[2]:loc[3]]

	rest := leadingToRegex.ReplaceAllString(text[loc[1]:], "")
	tokens := strings.Fields(rest)
	if len(tokens) == 0 {
		return nil
	}

	return &parsedAssignment{
		AssigneeID:      types.UserID(assigneeID),
		AssigneeMention: mention,
		Description:     strings.Join(tokens, " "),
	}
}
