package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
)

const (
	taskStoreDependencyNameConstant     = "task store"
	messengerDependencyNameConstant     = "messenger"
	requiredDependencyTemplateConstant  = "%s is required"
	addArgumentSeparatorConstant        = ";"
	taskLineSeparatorConstant           = "\n"
	storeOperationFailedMessageConstant = "task store operation failed"
	commandFieldNameConstant            = "command"
	userFieldNameConstant               = "user"
)

// IncomingCommand is one bot command extracted from a Telegram update.
type IncomingCommand struct {
	ChatIdentifier int64
	UserIdentifier int64
	CommandName    string
	ArgumentText   string
}

// Router dispatches incoming bot commands to their handlers and sends the
// reply texts. Commands without a registered handler are ignored.
type Router struct {
	taskStore TaskStore
	messenger Messenger
	logger    *zap.Logger
}

// NewRouter validates dependencies and constructs a Router.
func NewRouter(taskStore TaskStore, messenger Messenger, logger *zap.Logger) (*Router, error) {
	if taskStore == nil {
		return nil, fmt.Errorf(requiredDependencyTemplateConstant, taskStoreDependencyNameConstant)
	}
	if messenger == nil {
		return nil, fmt.Errorf(requiredDependencyTemplateConstant, messengerDependencyNameConstant)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Router{taskStore: taskStore, messenger: messenger, logger: logger}, nil
}

// DispatchCommand routes one command to its handler. The returned error
// reflects reply delivery, not task outcomes: handler-level failures are
// reported to the user as reply texts.
func (router *Router) DispatchCommand(executionContext context.Context, incoming IncomingCommand) error {
	switch incoming.CommandName {
	case startCommandNameConstant:
		return router.reply(executionContext, incoming, welcomeMessageConstant)
	case addCommandNameConstant:
		return router.handleAdd(executionContext, incoming)
	case listCommandNameConstant:
		return router.handleList(executionContext, incoming)
	case deleteCommandNameConstant:
		return router.handleDelete(executionContext, incoming)
	case completeCommandNameConstant:
		return router.handleComplete(executionContext, incoming)
	default:
		return nil
	}
}

func (router *Router) handleAdd(executionContext context.Context, incoming IncomingCommand) error {
	if len(strings.TrimSpace(incoming.ArgumentText)) == 0 {
		return router.reply(executionContext, incoming, addUsageMessageConstant)
	}

	segments := strings.Split(incoming.ArgumentText, addArgumentSeparatorConstant)
	newTask := tasks.Task{
		UserID:      incoming.UserIdentifier,
		Description: strings.TrimSpace(segments[0]),
	}
	if len(segments) > 1 {
		newTask.Category = strings.TrimSpace(segments[1])
	}

	deadlineText := ""
	if len(segments) > 2 {
		deadlineText = segments[2]
	}
	deadline, parseError := tasks.ParseDeadline(deadlineText)
	if parseError != nil {
		return router.reply(executionContext, incoming, invalidDeadlineMessageConstant)
	}
	newTask.Deadline = deadline

	if _, insertError := router.taskStore.Insert(executionContext, newTask); insertError != nil {
		router.logStoreFailure(incoming, insertError)
		return router.reply(executionContext, incoming, addDatabaseErrorMessageConstant)
	}
	return router.reply(executionContext, incoming, taskAddedMessageConstant)
}

func (router *Router) handleList(executionContext context.Context, incoming IncomingCommand) error {
	activeTasks, listError := router.taskStore.ListActive(executionContext, incoming.UserIdentifier)
	if listError != nil {
		router.logStoreFailure(incoming, listError)
		return router.reply(executionContext, incoming, listDatabaseErrorMessageConstant)
	}
	if len(activeTasks) == 0 {
		return router.reply(executionContext, incoming, noTasksFoundMessageConstant)
	}

	taskLines := make([]string, 0, len(activeTasks))
	for _, activeTask := range activeTasks {
		taskLines = append(taskLines, fmt.Sprintf(taskLineTemplateConstant, activeTask.Description, activeTask.Category, activeTask.Deadline))
	}
	return router.reply(executionContext, incoming, strings.Join(taskLines, taskLineSeparatorConstant))
}

func (router *Router) handleDelete(executionContext context.Context, incoming IncomingCommand) error {
	taskIdentifier, validIdentifier := parseTaskIdentifier(incoming.ArgumentText)
	if !validIdentifier {
		return router.reply(executionContext, incoming, deleteUsageMessageConstant)
	}

	deleteError := router.taskStore.Delete(executionContext, incoming.UserIdentifier, taskIdentifier)
	switch {
	case deleteError == nil:
		return router.reply(executionContext, incoming, taskDeletedMessageConstant)
	case errors.Is(deleteError, tasks.ErrTaskNotFound):
		return router.reply(executionContext, incoming, taskNotOwnedMessageConstant)
	default:
		router.logStoreFailure(incoming, deleteError)
		return router.reply(executionContext, incoming, deleteDatabaseErrorMessageConstant)
	}
}

func (router *Router) handleComplete(executionContext context.Context, incoming IncomingCommand) error {
	taskIdentifier, validIdentifier := parseTaskIdentifier(incoming.ArgumentText)
	if !validIdentifier {
		return router.reply(executionContext, incoming, completeUsageMessageConstant)
	}

	completeError := router.taskStore.Complete(executionContext, incoming.UserIdentifier, taskIdentifier)
	switch {
	case completeError == nil:
		return router.reply(executionContext, incoming, taskCompletedMessageConstant)
	case errors.Is(completeError, tasks.ErrTaskNotFound):
		return router.reply(executionContext, incoming, taskNotCompletableMessageConstant)
	default:
		router.logStoreFailure(incoming, completeError)
		return router.reply(executionContext, incoming, completeDatabaseErrorMessageConstant)
	}
}

func (router *Router) reply(executionContext context.Context, incoming IncomingCommand, messageText string) error {
	return router.messenger.Send(executionContext, incoming.ChatIdentifier, messageText)
}

func (router *Router) logStoreFailure(incoming IncomingCommand, failure error) {
	router.logger.Error(storeOperationFailedMessageConstant,
		zap.String(commandFieldNameConstant, incoming.CommandName),
		zap.Int64(userFieldNameConstant, incoming.UserIdentifier),
		zap.Error(failure),
	)
}

// parseTaskIdentifier reads the leading decimal task identifier the way the
// command usage documents it; anything else asks the user for the usage line.
func parseTaskIdentifier(argumentText string) (int64, bool) {
	fields := strings.Fields(argumentText)
	if len(fields) == 0 {
		return 0, false
	}
	for _, character := range fields[0] {
		if character < '0' || character > '9' {
			return 0, false
		}
	}
	identifier, parseError := strconv.ParseInt(fields[0], 10, 64)
	if parseError != nil {
		return 0, false
	}
	return identifier, true
}
