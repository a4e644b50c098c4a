package telegram_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/telegram"
)

type taskReference struct {
	userIdentifier int64
	taskIdentifier int64
}

type scriptedTaskStore struct {
	insertedTasks    []tasks.Task
	insertError      error
	activeTasks      []tasks.Task
	listError        error
	deleteRequests   []taskReference
	deleteError      error
	completeRequests []taskReference
	completeError    error
}

func (store *scriptedTaskStore) Insert(_ context.Context, task tasks.Task) (int64, error) {
	if store.insertError != nil {
		return 0, store.insertError
	}
	store.insertedTasks = append(store.insertedTasks, task)
	return int64(len(store.insertedTasks)), nil
}

func (store *scriptedTaskStore) ListActive(_ context.Context, _ int64) ([]tasks.Task, error) {
	if store.listError != nil {
		return nil, store.listError
	}
	return store.activeTasks, nil
}

func (store *scriptedTaskStore) Delete(_ context.Context, userIdentifier int64, taskIdentifier int64) error {
	store.deleteRequests = append(store.deleteRequests, taskReference{userIdentifier: userIdentifier, taskIdentifier: taskIdentifier})
	return store.deleteError
}

func (store *scriptedTaskStore) Complete(_ context.Context, userIdentifier int64, taskIdentifier int64) error {
	store.completeRequests = append(store.completeRequests, taskReference{userIdentifier: userIdentifier, taskIdentifier: taskIdentifier})
	return store.completeError
}

type recordingMessenger struct {
	replies   []string
	sendError error
}

func (messenger *recordingMessenger) Send(_ context.Context, _ int64, messageText string) error {
	if messenger.sendError != nil {
		return messenger.sendError
	}
	messenger.replies = append(messenger.replies, messageText)
	return nil
}

func incomingCommand(commandName string, argumentText string) telegram.IncomingCommand {
	return telegram.IncomingCommand{
		ChatIdentifier: 555,
		UserIdentifier: 100,
		CommandName:    commandName,
		ArgumentText:   argumentText,
	}
}

func TestRouterDispatchCommandReplies(testInstance *testing.T) {
	deadline := tasks.NewDeadline(time.Date(2026, time.April, 1, 10, 30, 0, 0, time.Local))
	storeFailure := errors.New("disk I/O error")

	testCases := []struct {
		name            string
		incoming        telegram.IncomingCommand
		taskStore       *scriptedTaskStore
		expectedReplies []string
	}{
		{
			name:            "start_greets_the_user",
			incoming:        incomingCommand("start", ""),
			taskStore:       &scriptedTaskStore{},
			expectedReplies: []string{"Welcome to your personal To-Do List Bot!"},
		},
		{
			name:            "add_without_arguments_returns_usage",
			incoming:        incomingCommand("add", "   "),
			taskStore:       &scriptedTaskStore{},
			expectedReplies: []string{"Usage: /add <description>; <category>; <deadline: YYYY-MM-DD HH:MM>"},
		},
		{
			name:            "add_without_deadline_reports_date_format",
			incoming:        incomingCommand("add", "buy milk; errands"),
			taskStore:       &scriptedTaskStore{},
			expectedReplies: []string{"Invalid date format. Use YYYY-MM-DD HH:MM."},
		},
		{
			name:            "add_with_invalid_deadline_reports_date_format",
			incoming:        incomingCommand("add", "buy milk; errands; tomorrow"),
			taskStore:       &scriptedTaskStore{},
			expectedReplies: []string{"Invalid date format. Use YYYY-MM-DD HH:MM."},
		},
		{
			name:            "add_with_full_arguments_confirms",
			incoming:        incomingCommand("add", "buy milk; errands; 2026-04-01 10:30"),
			taskStore:       &scriptedTaskStore{},
			expectedReplies: []string{"Task added successfully!"},
		},
		{
			name:            "add_store_failure_reports_database_error",
			incoming:        incomingCommand("add", "buy milk; errands; 2026-04-01 10:30"),
			taskStore:       &scriptedTaskStore{insertError: storeFailure},
			expectedReplies: []string{"Failed to add task due to a database error."},
		},
		{
			name:     "list_renders_task_lines",
			incoming: incomingCommand("list", ""),
			taskStore: &scriptedTaskStore{activeTasks: []tasks.Task{
				{Description: "buy milk", Category: "errands", Deadline: deadline},
				{Description: "stretch", Category: "health", Deadline: deadline},
			}},
			expectedReplies: []string{
				"buy milk - errands - due by 2026-04-01 10:30:00\n" +
					"stretch - health - due by 2026-04-01 10:30:00",
			},
		},
		{
			name:            "list_without_tasks_reports_none",
			incoming:        incomingCommand("list", ""),
			taskStore:       &scriptedTaskStore{},
			expectedReplies: []string{"No tasks found."},
		},
		{
			name:            "list_store_failure_reports_database_error",
			incoming:        incomingCommand("list", ""),
			taskStore:       &scriptedTaskStore{listError: storeFailure},
			expectedReplies: []string{"Failed to list tasks due to a database error."},
		},
		{
			name:            "delete_requires_numeric_identifier",
			incoming:        incomingCommand("delete", "four"),
			taskStore:       &scriptedTaskStore{},
			expectedReplies: []string{"Usage: /delete <task_id>"},
		},
		{
			name:            "delete_missing_task_reports_ownership",
			incoming:        incomingCommand("delete", "4"),
			taskStore:       &scriptedTaskStore{deleteError: tasks.ErrTaskNotFound},
			expectedReplies: []string{"Task not found or does not belong to you."},
		},
		{
			name:            "delete_success_confirms",
			incoming:        incomingCommand("delete", "4"),
			taskStore:       &scriptedTaskStore{},
			expectedReplies: []string{"Task deleted successfully!"},
		},
		{
			name:            "delete_store_failure_reports_database_error",
			incoming:        incomingCommand("delete", "4"),
			taskStore:       &scriptedTaskStore{deleteError: storeFailure},
			expectedReplies: []string{"Failed to delete task due to a database error."},
		},
		{
			name:            "complete_requires_numeric_identifier",
			incoming:        incomingCommand("complete", ""),
			taskStore:       &scriptedTaskStore{},
			expectedReplies: []string{"Usage: /complete <task_id>"},
		},
		{
			name:            "complete_already_completed_reports_state",
			incoming:        incomingCommand("complete", "4"),
			taskStore:       &scriptedTaskStore{completeError: tasks.ErrTaskNotFound},
			expectedReplies: []string{"Task not found or already completed."},
		},
		{
			name:            "complete_success_confirms",
			incoming:        incomingCommand("complete", "4"),
			taskStore:       &scriptedTaskStore{},
			expectedReplies: []string{"Task marked as completed successfully!"},
		},
		{
			name:            "complete_store_failure_reports_database_error",
			incoming:        incomingCommand("complete", "4"),
			taskStore:       &scriptedTaskStore{completeError: storeFailure},
			expectedReplies: []string{"Failed to complete task due to a database error."},
		},
		{
			name:            "unknown_command_is_ignored",
			incoming:        incomingCommand("weather", "tomorrow"),
			taskStore:       &scriptedTaskStore{},
			expectedReplies: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			messenger := &recordingMessenger{}
			router, constructionError := telegram.NewRouter(testCase.taskStore, messenger, nil)
			require.NoError(subtest, constructionError)

			dispatchError := router.DispatchCommand(context.Background(), testCase.incoming)
			require.NoError(subtest, dispatchError)
			require.Equal(subtest, testCase.expectedReplies, messenger.replies)
		})
	}
}

func TestRouterAddStoresParsedTask(testInstance *testing.T) {
	taskStore := &scriptedTaskStore{}
	router, constructionError := telegram.NewRouter(taskStore, &recordingMessenger{}, nil)
	require.NoError(testInstance, constructionError)

	dispatchError := router.DispatchCommand(context.Background(), incomingCommand("add", " buy milk ;  errands ; 2026-04-01 10:30"))
	require.NoError(testInstance, dispatchError)

	expectedDeadline, parseError := tasks.ParseDeadline("2026-04-01 10:30")
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, []tasks.Task{{
		UserID:      100,
		Description: "buy milk",
		Category:    "errands",
		Deadline:    expectedDeadline,
	}}, taskStore.insertedTasks)
}

func TestRouterDeleteAndCompleteCheckOwnership(testInstance *testing.T) {
	taskStore := &scriptedTaskStore{}
	router, constructionError := telegram.NewRouter(taskStore, &recordingMessenger{}, nil)
	require.NoError(testInstance, constructionError)

	require.NoError(testInstance, router.DispatchCommand(context.Background(), incomingCommand("delete", "4")))
	require.NoError(testInstance, router.DispatchCommand(context.Background(), incomingCommand("complete", "9 extra words")))

	require.Equal(testInstance, []taskReference{{userIdentifier: 100, taskIdentifier: 4}}, taskStore.deleteRequests)
	require.Equal(testInstance, []taskReference{{userIdentifier: 100, taskIdentifier: 9}}, taskStore.completeRequests)
}

func TestRouterLogsStoreFailures(testInstance *testing.T) {
	storeFailure := errors.New("disk I/O error")
	taskStore := &scriptedTaskStore{insertError: storeFailure}
	observerCore, observedLogs := observer.New(zap.DebugLevel)
	router, constructionError := telegram.NewRouter(taskStore, &recordingMessenger{}, zap.New(observerCore))
	require.NoError(testInstance, constructionError)

	dispatchError := router.DispatchCommand(context.Background(), incomingCommand("add", "buy milk; errands; 2026-04-01 10:30"))
	require.NoError(testInstance, dispatchError)

	failureEntries := observedLogs.FilterMessage("task store operation failed").All()
	require.Len(testInstance, failureEntries, 1)
	require.Equal(testInstance, "add", failureEntries[0].ContextMap()["command"])
	require.Equal(testInstance, int64(100), failureEntries[0].ContextMap()["user"])
}

func TestRouterPropagatesReplyDeliveryFailures(testInstance *testing.T) {
	deliveryFailure := errors.New("chat blocked")
	router, constructionError := telegram.NewRouter(&scriptedTaskStore{}, &recordingMessenger{sendError: deliveryFailure}, nil)
	require.NoError(testInstance, constructionError)

	dispatchError := router.DispatchCommand(context.Background(), incomingCommand("start", ""))
	require.ErrorIs(testInstance, dispatchError, deliveryFailure)
}

func TestNewRouterValidation(testInstance *testing.T) {
	testCases := []struct {
		name      string
		taskStore telegram.TaskStore
		messenger telegram.Messenger
	}{
		{
			name:      "rejects_nil_task_store",
			taskStore: nil,
			messenger: &recordingMessenger{},
		},
		{
			name:      "rejects_nil_messenger",
			taskStore: &scriptedTaskStore{},
			messenger: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			_, constructionError := telegram.NewRouter(testCase.taskStore, testCase.messenger, nil)
			require.Error(subtest, constructionError)
		})
	}
}
