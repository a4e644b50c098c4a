package report_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/report"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
)

type stubTaskSource struct {
	storedTasks []tasks.Task
	listError   error
}

func (source stubTaskSource) ListAll(_ context.Context) ([]tasks.Task, error) {
	if source.listError != nil {
		return nil, source.listError
	}
	return source.storedTasks, nil
}

func TestServiceRunWritesTaskInventory(testInstance *testing.T) {
	deadline := tasks.NewDeadline(time.Date(2026, time.April, 1, 10, 30, 0, 0, time.Local))
	taskSource := stubTaskSource{
		storedTasks: []tasks.Task{
			{ID: 1, UserID: 100, Description: "buy milk, eggs", Category: "errands", Deadline: deadline},
			{ID: 2, UserID: 200, Description: "stretch", Category: "health", Completed: true},
		},
	}
	outputBuffer := &bytes.Buffer{}
	observerCore, observedLogs := observer.New(zap.DebugLevel)

	service := report.NewService(taskSource, outputBuffer, zap.New(observerCore))
	require.NoError(testInstance, service.Run(context.Background()))

	expectedOutput := "task_id,user_id,description,category,deadline,completed\n" +
		"1,100,\"buy milk, eggs\",errands,2026-04-01 10:30:00,false\n" +
		"2,200,stretch,health,,true\n"
	require.Equal(testInstance, expectedOutput, outputBuffer.String())

	exportEntries := observedLogs.FilterMessage("exported tasks").All()
	require.Len(testInstance, exportEntries, 1)
	require.Equal(testInstance, int64(2), exportEntries[0].ContextMap()["tasks"])
}

func TestServiceRunWritesHeaderForEmptyInventory(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}

	service := report.NewService(stubTaskSource{}, outputBuffer, nil)
	require.NoError(testInstance, service.Run(context.Background()))

	require.Equal(testInstance, "task_id,user_id,description,category,deadline,completed\n", outputBuffer.String())
}

func TestServiceRunPropagatesListErrors(testInstance *testing.T) {
	listFailure := errors.New("database locked")
	outputBuffer := &bytes.Buffer{}

	service := report.NewService(stubTaskSource{listError: listFailure}, outputBuffer, nil)
	runError := service.Run(context.Background())

	require.ErrorIs(testInstance, runError, listFailure)
	require.Empty(testInstance, outputBuffer.String())
}

func TestTaskReportRowCSVRecord(testInstance *testing.T) {
	row := report.TaskReportRow{
		TaskIdentifier: 42,
		UserIdentifier: 7,
		Description:    "water the plants",
		Category:       "home",
		Deadline:       "2026-05-01 08:00:00",
		Completed:      true,
	}

	require.Equal(testInstance, []string{"42", "7", "water the plants", "home", "2026-05-01 08:00:00", "true"}, row.CSVRecord())
}
