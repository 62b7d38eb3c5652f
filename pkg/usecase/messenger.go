package usecase

import (
	"context"
	"fmt"

	"github.com/firerml/tasker/pkg/domain/model"
	"github.com/firerml/tasker/pkg/domain/types"
	"github.com/firerml/tasker/pkg/utils/errutil"
	"github.com/firerml/tasker/pkg/utils/logging"
	"github.com/slack-go/slack"
)

// FulfillUserIntent classifies the message and runs the matching workflow.
// Every failure path yields a defined response text; this method never
// returns an error.
func (x *Messenger) FulfillUserIntent(ctx context.Context, text string, userID types.UserID) (string, []slack.Attachment) {
	switch classifyIntent(text) {
	case intentAssign:
		return x.AssignTask(ctx, text, userID), nil
	case intentTasks:
		return x.ListAssignedTasks(ctx, userID)
	default:
		return x.msgs.help(), nil
	}
}

// AssignTask parses an assign message, saves the task and notifies the
// assignee. Channel resolution gates persistence: when the assignee has no
// reachable DM channel the task is not saved.
func (x *Messenger) AssignTask(ctx context.Context, text string, assignerID types.UserID) string {
	parsed := parseAssignment(text)
	if parsed == nil {
		return x.msgs.parseFailure()
	}

	channelID, err := x.gateway.ResolveDMChannel(ctx, parsed.AssigneeID)
	if err != nil {
		errutil.Handle(ctx, err, "failed to resolve DM channel for assignee")
		return x.msgs.backendError()
	}
	if channelID.IsEmpty() {
		logging.From(ctx).Warn("no DM channel for assignee", "assignee_id", parsed.AssigneeID)
		return x.msgs.backendError()
	}

	task := &model.Task{
		AssignerID:  assignerID,
		AssigneeID:  parsed.AssigneeID,
		Description: parsed.Description,
		CreatedAt:   x.now(),
	}
	if _, err := x.repo.Create(ctx, task); err != nil {
		errutil.Handle(ctx, err, "failed to save task")
		return x.msgs.backendError()
	}

	if assignerID == parsed.AssigneeID {
		return "Great! I've saved that task for you."
	}

	// Best effort: a failed notification does not change the response
	notification := fmt.Sprintf("Hi! %s just assigned this task to you:\n> %s",
		assignerID.Mention(), parsed.Description)
	if err := x.gateway.PostMessage(ctx, channelID, notification); err != nil {
		errutil.Handle(ctx, err, "failed to notify assignee")
	}

	return fmt.Sprintf("Great! I'll tell %s to %s.", parsed.AssigneeMention, parsed.Description)
}

// ListAssignedTasks returns the user's tasks as interactive attachments,
// oldest first, each carrying a "Complete" button.
func (x *Messenger) ListAssignedTasks(ctx context.Context, userID types.UserID) (string, []slack.Attachment) {
	tasks, err := x.repo.ListByAssignee(ctx, userID)
	if err != nil {
		errutil.Handle(ctx, err, "failed to list assigned tasks")
		return x.msgs.backendError(), nil
	}

	if len(tasks) == 0 {
		return "No assigned tasks yet! :surfer:", nil
	}

	attachments := make([]slack.Attachment, 0, len(tasks))
	for _, task := range tasks {
		attachments = append(attachments, slack.Attachment{
			Fallback:   task.Summary(),
			Title:      task.Summary(),
			CallbackID: CallbackTaskCompleted,
			Color:      attachmentColor,
			Actions: []slack.AttachmentAction{
				{
					Name:  actionNameComplete,
					Text:  "Complete",
					Type:  "button",
					Value: EncodeCompletionValue(task),
				},
			},
		})
	}

	return "Here are your assigned tasks.", attachments
}
