package tasks_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
)

const (
	testDatabaseFileNameConstant = "tasks.db"
	testFirstUserIdentifier      = int64(101)
	testSecondUserIdentifier     = int64(202)
)

func openTaskStore(testInstance *testing.T) *tasks.Store {
	testInstance.Helper()

	databasePath := filepath.Join(testInstance.TempDir(), testDatabaseFileNameConstant)
	store, openError := tasks.OpenStore(context.Background(), databasePath)
	require.NoError(testInstance, openError)
	testInstance.Cleanup(func() {
		require.NoError(testInstance, store.Close())
	})
	return store
}

func insertTask(testInstance *testing.T, store *tasks.Store, task tasks.Task) int64 {
	testInstance.Helper()

	insertedIdentifier, insertError := store.Insert(context.Background(), task)
	require.NoError(testInstance, insertError)
	return insertedIdentifier
}

func mustParseDeadline(testInstance *testing.T, rawValue string) tasks.Deadline {
	testInstance.Helper()

	deadline, parseError := tasks.ParseDeadline(rawValue)
	require.NoError(testInstance, parseError)
	return deadline
}

func TestOpenStoreRequiresDatabasePath(testInstance *testing.T) {
	_, openError := tasks.OpenStore(context.Background(), "   ")
	require.Error(testInstance, openError)
}

func TestStorePersistsTasksAcrossReopen(testInstance *testing.T) {
	databasePath := filepath.Join(testInstance.TempDir(), testDatabaseFileNameConstant)

	firstHandle, firstOpenError := tasks.OpenStore(context.Background(), databasePath)
	require.NoError(testInstance, firstOpenError)
	insertTask(testInstance, firstHandle, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "buy groceries",
		Category:    "errands",
		Deadline:    mustParseDeadline(testInstance, "2026-08-24 18:00"),
	})
	require.NoError(testInstance, firstHandle.Close())

	secondHandle, secondOpenError := tasks.OpenStore(context.Background(), databasePath)
	require.NoError(testInstance, secondOpenError)
	defer func() {
		require.NoError(testInstance, secondHandle.Close())
	}()

	storedTasks, listError := secondHandle.ListAll(context.Background())
	require.NoError(testInstance, listError)
	require.Len(testInstance, storedTasks, 1)
	require.Equal(testInstance, "buy groceries", storedTasks[0].Description)
	require.Equal(testInstance, "errands", storedTasks[0].Category)
	require.Equal(testInstance, "2026-08-24 18:00:00", storedTasks[0].Deadline.String())
	require.False(testInstance, storedTasks[0].Completed)
}

func TestStoreInsertAppliesDefaultCategory(testInstance *testing.T) {
	store := openTaskStore(testInstance)

	insertTask(testInstance, store, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "water the plants",
		Category:    "   ",
		Deadline:    mustParseDeadline(testInstance, "2026-08-25 08:00"),
	})

	activeTasks, listError := store.ListActive(context.Background(), testFirstUserIdentifier)
	require.NoError(testInstance, listError)
	require.Len(testInstance, activeTasks, 1)
	require.Equal(testInstance, tasks.DefaultCategory, activeTasks[0].Category)
}

func TestStoreInsertAllowsUnsetDeadline(testInstance *testing.T) {
	store := openTaskStore(testInstance)

	insertTask(testInstance, store, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "someday maybe",
	})

	storedTasks, listError := store.ListAll(context.Background())
	require.NoError(testInstance, listError)
	require.Len(testInstance, storedTasks, 1)
	require.True(testInstance, storedTasks[0].Deadline.IsZero())
}

func TestStoreListActiveFiltersByUserAndCompletion(testInstance *testing.T) {
	store := openTaskStore(testInstance)

	firstIdentifier := insertTask(testInstance, store, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "first task",
		Deadline:    mustParseDeadline(testInstance, "2026-08-24 10:00"),
	})
	insertTask(testInstance, store, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "second task",
		Deadline:    mustParseDeadline(testInstance, "2026-08-24 11:00"),
	})
	insertTask(testInstance, store, tasks.Task{
		UserID:      testSecondUserIdentifier,
		Description: "another user's task",
		Deadline:    mustParseDeadline(testInstance, "2026-08-24 12:00"),
	})
	require.NoError(testInstance, store.Complete(context.Background(), testFirstUserIdentifier, firstIdentifier))

	activeTasks, listError := store.ListActive(context.Background(), testFirstUserIdentifier)
	require.NoError(testInstance, listError)
	require.Len(testInstance, activeTasks, 1)
	require.Equal(testInstance, "second task", activeTasks[0].Description)
	require.Equal(testInstance, testFirstUserIdentifier, activeTasks[0].UserID)
}

func TestStoreCompleteSemantics(testInstance *testing.T) {
	testCases := []struct {
		name            string
		completingUser  int64
		completeTwice   bool
		useUnknownTask  bool
		expectedErrorIs error
	}{
		{
			name:            "marks_owned_open_task_completed",
			completingUser:  testFirstUserIdentifier,
			expectedErrorIs: nil,
		},
		{
			name:            "rejects_other_users_task",
			completingUser:  testSecondUserIdentifier,
			expectedErrorIs: tasks.ErrTaskNotFound,
		},
		{
			name:            "rejects_already_completed_task",
			completingUser:  testFirstUserIdentifier,
			completeTwice:   true,
			expectedErrorIs: tasks.ErrTaskNotFound,
		},
		{
			name:            "rejects_unknown_task_identifier",
			completingUser:  testFirstUserIdentifier,
			useUnknownTask:  true,
			expectedErrorIs: tasks.ErrTaskNotFound,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			store := openTaskStore(subtest)
			taskIdentifier := insertTask(subtest, store, tasks.Task{
				UserID:      testFirstUserIdentifier,
				Description: "finish the report",
				Deadline:    mustParseDeadline(subtest, "2026-08-24 17:00"),
			})
			if testCase.completeTwice {
				require.NoError(subtest, store.Complete(context.Background(), testFirstUserIdentifier, taskIdentifier))
			}
			if testCase.useUnknownTask {
				taskIdentifier = taskIdentifier + 1000
			}

			completeError := store.Complete(context.Background(), testCase.completingUser, taskIdentifier)

			if testCase.expectedErrorIs != nil {
				require.ErrorIs(subtest, completeError, testCase.expectedErrorIs)
				return
			}
			require.NoError(subtest, completeError)
			activeTasks, listError := store.ListActive(context.Background(), testFirstUserIdentifier)
			require.NoError(subtest, listError)
			require.Empty(subtest, activeTasks)
		})
	}
}

func TestStoreDeleteSemantics(testInstance *testing.T) {
	testCases := []struct {
		name            string
		deletingUser    int64
		useUnknownTask  bool
		expectedErrorIs error
	}{
		{
			name:            "removes_owned_task",
			deletingUser:    testFirstUserIdentifier,
			expectedErrorIs: nil,
		},
		{
			name:            "rejects_other_users_task",
			deletingUser:    testSecondUserIdentifier,
			expectedErrorIs: tasks.ErrTaskNotFound,
		},
		{
			name:            "rejects_unknown_task_identifier",
			deletingUser:    testFirstUserIdentifier,
			useUnknownTask:  true,
			expectedErrorIs: tasks.ErrTaskNotFound,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			store := openTaskStore(subtest)
			taskIdentifier := insertTask(subtest, store, tasks.Task{
				UserID:      testFirstUserIdentifier,
				Description: "call the dentist",
				Deadline:    mustParseDeadline(subtest, "2026-08-24 09:00"),
			})
			if testCase.useUnknownTask {
				taskIdentifier = taskIdentifier + 1000
			}

			deleteError := store.Delete(context.Background(), testCase.deletingUser, taskIdentifier)

			if testCase.expectedErrorIs != nil {
				require.ErrorIs(subtest, deleteError, testCase.expectedErrorIs)
				return
			}
			require.NoError(subtest, deleteError)
			remainingTasks, listError := store.ListAll(context.Background())
			require.NoError(subtest, listError)
			require.Empty(subtest, remainingTasks)
		})
	}
}

func TestStoreDueBetweenSelectsHalfOpenWindow(testInstance *testing.T) {
	store := openTaskStore(testInstance)
	windowStart := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.Local)
	windowEnd := windowStart.Add(24 * time.Hour)

	insertTask(testInstance, store, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "due at window start",
		Deadline:    tasks.NewDeadline(windowStart),
	})
	insertTask(testInstance, store, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "due just before window end",
		Deadline:    tasks.NewDeadline(windowEnd.Add(-time.Minute)),
	})
	insertTask(testInstance, store, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "due exactly at window end",
		Deadline:    tasks.NewDeadline(windowEnd),
	})
	insertTask(testInstance, store, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "already overdue",
		Deadline:    tasks.NewDeadline(windowStart.Add(-time.Minute)),
	})
	completedIdentifier := insertTask(testInstance, store, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "completed inside window",
		Deadline:    tasks.NewDeadline(windowStart.Add(time.Hour)),
	})
	require.NoError(testInstance, store.Complete(context.Background(), testFirstUserIdentifier, completedIdentifier))

	dueTasks, queryError := store.DueBetween(context.Background(), windowStart, windowEnd)
	require.NoError(testInstance, queryError)

	dueDescriptions := make([]string, 0, len(dueTasks))
	for _, dueTask := range dueTasks {
		dueDescriptions = append(dueDescriptions, dueTask.Description)
	}
	require.Equal(testInstance, []string{"due at window start", "due just before window end"}, dueDescriptions)
}

func TestStoreListAllIncludesCompletedTasks(testInstance *testing.T) {
	store := openTaskStore(testInstance)

	openIdentifier := insertTask(testInstance, store, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "still open",
		Deadline:    mustParseDeadline(testInstance, "2026-08-24 10:00"),
	})
	completedIdentifier := insertTask(testInstance, store, tasks.Task{
		UserID:      testFirstUserIdentifier,
		Description: "already done",
		Deadline:    mustParseDeadline(testInstance, "2026-08-24 11:00"),
	})
	require.NoError(testInstance, store.Complete(context.Background(), testFirstUserIdentifier, completedIdentifier))

	storedTasks, listError := store.ListAll(context.Background())
	require.NoError(testInstance, listError)
	require.Len(testInstance, storedTasks, 2)
	require.Equal(testInstance, openIdentifier, storedTasks[0].ID)
	require.False(testInstance, storedTasks[0].Completed)
	require.Equal(testInstance, completedIdentifier, storedTasks[1].ID)
	require.True(testInstance, storedTasks[1].Completed)
}
