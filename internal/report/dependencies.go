package report

import (
	"context"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
)

// TaskSource exposes the subset of task storage used by the report command.
type TaskSource interface {
	ListAll(executionContext context.Context) ([]tasks.Task, error)
}
