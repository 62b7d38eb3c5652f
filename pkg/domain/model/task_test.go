package model_test

import (
	"testing"
	"time"

	"github.com/firerml/tasker/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestTaskValidate(t *testing.T) {
	valid := model.Task{
		AssignerID:  "U001",
		AssigneeID:  "U002",
		Description: "order lunch",
	}

	t.Run("valid task", func(t *testing.T) {
		task := valid
		gt.NoError(t, task.Validate())
	})

	t.Run("missing assigner", func(t *testing.T) {
		task := valid
		task.AssignerID = ""
		gt.Error(t, task.Validate())
	})

	t.Run("missing assignee", func(t *testing.T) {
		task := valid
		task.AssigneeID = ""
		gt.Error(t, task.Validate())
	})

	t.Run("missing description", func(t *testing.T) {
		task := valid
		task.Description = ""
		gt.Error(t, task.Validate())
	})
}

func TestTaskSummary(t *testing.T) {
	task := model.Task{
		ID:          1,
		AssignerID:  "U001",
		AssigneeID:  "U002",
		Description: "order lunch",
		CreatedAt:   time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC),
	}

	gt.Value(t, task.Summary()).Equal("order lunch (from <@U001> on Mar 5)")
}

func TestTaskSummarySingleDigitDay(t *testing.T) {
	// Day must not be zero-padded
	task := model.Task{
		AssignerID:  "U001",
		CreatedAt:   time.Date(2024, time.December, 9, 0, 0, 0, 0, time.UTC),
		Description: "file the report",
	}

	gt.Value(t, task.Summary()).Equal("file the report (from <@U001> on Dec 9)")
}
