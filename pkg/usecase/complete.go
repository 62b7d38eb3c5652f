package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/firerml/tasker/pkg/domain/model"
	"github.com/firerml/tasker/pkg/domain/types"
	"github.com/firerml/tasker/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// EncodeCompletionValue packs task identity into the button value as
// "{id},{assignerID},{description}". The format is pinned by existing
// deployed messages; the description goes last so it may contain commas.
func EncodeCompletionValue(task *model.Task) string {
	return fmt.Sprintf("%d,%s,%s", task.ID, task.AssignerID, task.Description)
}

func DecodeCompletionValue(value string) (types.TaskID, types.UserID, string, error) {
	parts := strings.SplitN(value, ",", 3)
	if len(parts) != 3 {
		return 0, "", "", goerr.New("malformed completion value", goerr.V("value", value))
	}

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", "", goerr.Wrap(err, "invalid task ID in completion value", goerr.V("value", value))
	}

	return types.TaskID(id), types.UserID(parts[1]), parts[2], nil
}

// CompleteTask handles a "Complete" button callback: it deletes the task,
// notifies the assigner, and rebuilds the original message without the
// completed attachment. A nil result means the original message stays
// unchanged (the controller responds with an empty 200).
func (x *Messenger) CompleteTask(ctx context.Context, callback *slack.InteractionCallback) *slack.Msg {
	actions := callback.ActionCallback.AttachmentActions
	if len(actions) == 0 {
		return nil
	}

	taskID, assignerID, description, err := DecodeCompletionValue(actions[0].Value)
	if err != nil {
		errutil.Handle(ctx, err, "failed to decode completion value")
		return nil
	}

	if err := x.repo.Delete(ctx, taskID); err != nil {
		errutil.Handle(ctx, err, "failed to delete completed task")
		return nil
	}

	// Notify the assigner of completion, unless the assigner is the one
	// completing. Best effort.
	completerID := types.UserID(callback.User.ID)
	if assignerID != completerID {
		x.notifyCompletion(ctx, assignerID, completerID, description)
	}

	response := callback.OriginalMessage.Msg
	response.Attachments = nil
	for _, attachment := range callback.OriginalMessage.Attachments {
		if strconv.Itoa(attachment.ID) != callback.AttachmentID {
			response.Attachments = append(response.Attachments, attachment)
		}
	}
	if len(response.Attachments) == 0 {
		response.Text = "All done! :sunglasses:"
		response.Attachments = []slack.Attachment{}
	}

	return &response
}

func (x *Messenger) notifyCompletion(ctx context.Context, assignerID, completerID types.UserID, description string) {
	channelID, err := x.gateway.ResolveDMChannel(ctx, assignerID)
	if err != nil {
		errutil.Handle(ctx, err, "failed to resolve DM channel for assigner")
		return
	}
	if channelID.IsEmpty() {
		return
	}

	text := fmt.Sprintf("%s has completed this task:\n>%s", completerID.Mention(), description)
	if err := x.gateway.PostMessage(ctx, channelID, text); err != nil {
		errutil.Handle(ctx, err, "failed to notify assigner of completion")
	}
}
