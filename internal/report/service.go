package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
)

const (
	csvHeaderTaskIdentifier = "task_id"
	csvHeaderUserIdentifier = "user_id"
	csvHeaderDescription    = "description"
	csvHeaderCategory       = "category"
	csvHeaderDeadline       = "deadline"
	csvHeaderCompleted      = "completed"

	listTasksErrorTemplateConstant = "unable to list tasks: %w"
	exportedTasksMessageConstant   = "exported tasks"
	taskCountFieldNameConstant     = "tasks"
)

// TaskReportRow models a single CSV export result.
type TaskReportRow struct {
	TaskIdentifier int64
	UserIdentifier int64
	Description    string
	Category       string
	Deadline       string
	Completed      bool
}

// CSVRecord returns the row formatted for CSV encoding.
func (row TaskReportRow) CSVRecord() []string {
	return []string{
		strconv.FormatInt(row.TaskIdentifier, 10),
		strconv.FormatInt(row.UserIdentifier, 10),
		row.Description,
		row.Category,
		row.Deadline,
		strconv.FormatBool(row.Completed),
	}
}

// Service streams the stored task inventory to a writer as CSV.
type Service struct {
	taskSource   TaskSource
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(taskSource TaskSource, outputWriter io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		taskSource:   taskSource,
		outputWriter: outputWriter,
		logger:       logger,
	}
}

// Run writes a header row followed by one row per stored task, completed and
// open alike, in insertion order.
func (service *Service) Run(executionContext context.Context) error {
	storedTasks, listError := service.taskSource.ListAll(executionContext)
	if listError != nil {
		return fmt.Errorf(listTasksErrorTemplateConstant, listError)
	}

	csvWriter := csv.NewWriter(service.outputWriter)
	header := []string{
		csvHeaderTaskIdentifier,
		csvHeaderUserIdentifier,
		csvHeaderDescription,
		csvHeaderCategory,
		csvHeaderDeadline,
		csvHeaderCompleted,
	}
	if writeError := csvWriter.Write(header); writeError != nil {
		return writeError
	}

	for _, storedTask := range storedTasks {
		record := taskReportRow(storedTask)
		if writeError := csvWriter.Write(record.CSVRecord()); writeError != nil {
			return writeError
		}
	}

	csvWriter.Flush()
	if flushError := csvWriter.Error(); flushError != nil {
		return flushError
	}

	service.logger.Info(exportedTasksMessageConstant, zap.Int(taskCountFieldNameConstant, len(storedTasks)))
	return nil
}

func taskReportRow(storedTask tasks.Task) TaskReportRow {
	return TaskReportRow{
		TaskIdentifier: storedTask.ID,
		UserIdentifier: storedTask.UserID,
		Description:    storedTask.Description,
		Category:       storedTask.Category,
		Deadline:       storedTask.Deadline.String(),
		Completed:      storedTask.Completed,
	}
}
