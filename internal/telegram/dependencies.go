package telegram

import (
	"context"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
)

// TaskStore captures the task persistence operations used by the bot handlers.
type TaskStore interface {
	Insert(executionContext context.Context, task tasks.Task) (int64, error)
	ListActive(executionContext context.Context, userIdentifier int64) ([]tasks.Task, error)
	Delete(executionContext context.Context, userIdentifier int64, taskIdentifier int64) error
	Complete(executionContext context.Context, userIdentifier int64, taskIdentifier int64) error
}

// Messenger delivers a text message to a Telegram chat.
type Messenger interface {
	Send(executionContext context.Context, chatIdentifier int64, messageText string) error
}

// CommandDispatcher routes one parsed bot command to its handler.
type CommandDispatcher interface {
	DispatchCommand(executionContext context.Context, incoming IncomingCommand) error
}
