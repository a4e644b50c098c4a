package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
)

const (
	reminderMessageTemplateConstant     = "Reminder: Task '%s' is due in 24 hours!"
	dueTaskQueryErrorTemplateConstant   = "unable to load due tasks: %w"
	notifyUserErrorTemplateConstant     = "unable to notify user %d about task %d: %w"
	requiredDependencyTemplateConstant  = "%s is required"
	taskSourceDependencyNameConstant    = "task source"
	messageSenderDependencyNameConstant = "message sender"
	notifiedUserMessageConstant         = "notified user"
	userFieldNameConstant               = "user"
	taskFieldNameConstant               = "task"
)

// DueTaskSource lists incomplete tasks whose deadline falls inside a window.
type DueTaskSource interface {
	DueBetween(executionContext context.Context, windowStart time.Time, windowEnd time.Time) ([]tasks.Task, error)
}

// MessageSender delivers a text message to a Telegram chat.
type MessageSender interface {
	Send(executionContext context.Context, chatIdentifier int64, messageText string) error
}

// SweepService notifies users about tasks that fall due within the configured
// window.
type SweepService struct {
	taskSource    DueTaskSource
	messageSender MessageSender
	dueWindow     time.Duration
	logger        *zap.Logger
}

// NewSweepService validates dependencies and constructs a SweepService. A zero
// dueWindow falls back to the default reminder window.
func NewSweepService(taskSource DueTaskSource, messageSender MessageSender, dueWindow time.Duration, logger *zap.Logger) (*SweepService, error) {
	if taskSource == nil {
		return nil, fmt.Errorf(requiredDependencyTemplateConstant, taskSourceDependencyNameConstant)
	}
	if messageSender == nil {
		return nil, fmt.Errorf(requiredDependencyTemplateConstant, messageSenderDependencyNameConstant)
	}
	if dueWindow <= 0 {
		dueWindow = time.Duration(defaultDueWindowHoursConstant) * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SweepService{
		taskSource:    taskSource,
		messageSender: messageSender,
		dueWindow:     dueWindow,
		logger:        logger,
	}, nil
}

// Sweep sends one reminder per task due inside [now, now+window). Send
// failures are collected so one unreachable user does not mute the rest.
func (service *SweepService) Sweep(executionContext context.Context, now time.Time) error {
	dueTasks, queryError := service.taskSource.DueBetween(executionContext, now, now.Add(service.dueWindow))
	if queryError != nil {
		return fmt.Errorf(dueTaskQueryErrorTemplateConstant, queryError)
	}

	var sweepErrors error
	for _, dueTask := range dueTasks {
		messageText := fmt.Sprintf(reminderMessageTemplateConstant, dueTask.Description)
		sendError := service.messageSender.Send(executionContext, dueTask.UserID, messageText)
		if sendError != nil {
			sweepErrors = multierr.Append(sweepErrors, fmt.Errorf(notifyUserErrorTemplateConstant, dueTask.UserID, dueTask.ID, sendError))
			continue
		}
		service.logger.Info(notifiedUserMessageConstant,
			zap.Int64(userFieldNameConstant, dueTask.UserID),
			zap.Int64(taskFieldNameConstant, dueTask.ID),
		)
	}
	return sweepErrors
}
