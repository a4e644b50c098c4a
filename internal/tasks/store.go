package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	sqliteDriverNameConstant              = "sqlite"
	databasePathRequiredMessageConstant   = "database path is required"
	taskNotFoundMessageConstant           = "task not found"
	openDatabaseErrorTemplateConstant     = "unable to open task database: %w"
	initializeSchemaErrorTemplateConstant = "unable to initialize task schema: %w"
	insertTaskErrorTemplateConstant       = "unable to insert task: %w"
	queryTasksErrorTemplateConstant       = "unable to query tasks: %w"
	scanTaskErrorTemplateConstant         = "unable to scan task row: %w"
	deleteTaskErrorTemplateConstant       = "unable to delete task: %w"
	completeTaskErrorTemplateConstant     = "unable to complete task: %w"

	createTasksTableStatementConstant = `CREATE TABLE IF NOT EXISTS tasks (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        user_id INTEGER,
        description TEXT,
        category TEXT,
        deadline TEXT,
        completed BOOLEAN DEFAULT 0
    )`

	insertTaskStatementConstant   = `INSERT INTO tasks (user_id, description, category, deadline) VALUES (?, ?, ?, ?)`
	deleteTaskStatementConstant   = `DELETE FROM tasks WHERE id = ? AND user_id = ?`
	completeTaskStatementConstant = `UPDATE tasks SET completed = 1 WHERE id = ? AND user_id = ? AND completed = 0`
	listActiveTasksQueryConstant  = `SELECT id, user_id, description, category, deadline, completed FROM tasks WHERE user_id = ? AND completed = 0 ORDER BY id`
	dueBetweenTasksQueryConstant  = `SELECT id, user_id, description, category, deadline, completed FROM tasks WHERE completed = 0 AND deadline >= ? AND deadline < ? ORDER BY deadline, id`
	listAllTasksQueryConstant     = `SELECT id, user_id, description, category, deadline, completed FROM tasks ORDER BY id`
)

var (
	// ErrTaskNotFound indicates the referenced task does not exist, belongs to
	// another user, or is already in the requested state.
	ErrTaskNotFound = errors.New(taskNotFoundMessageConstant)
)

// Store persists tasks in a SQLite database.
type Store struct {
	database *sql.DB
}

// OpenStore opens the SQLite database at databasePath and ensures the tasks
// table exists.
func OpenStore(executionContext context.Context, databasePath string) (*Store, error) {
	trimmedPath := strings.TrimSpace(databasePath)
	if len(trimmedPath) == 0 {
		return nil, errors.New(databasePathRequiredMessageConstant)
	}

	database, openError := sql.Open(sqliteDriverNameConstant, trimmedPath)
	if openError != nil {
		return nil, fmt.Errorf(openDatabaseErrorTemplateConstant, openError)
	}
	// A single pooled connection serializes writers; the driver reports busy
	// errors when separate connections write concurrently.
	database.SetMaxOpenConns(1)

	if _, executionError := database.ExecContext(executionContext, createTasksTableStatementConstant); executionError != nil {
		_ = database.Close()
		return nil, fmt.Errorf(initializeSchemaErrorTemplateConstant, executionError)
	}

	return &Store{database: database}, nil
}

// Close releases the underlying database handle.
func (store *Store) Close() error {
	return store.database.Close()
}

// Insert stores a new task and returns its generated identifier. A blank
// category is replaced with DefaultCategory.
func (store *Store) Insert(executionContext context.Context, task Task) (int64, error) {
	category := strings.TrimSpace(task.Category)
	if len(category) == 0 {
		category = DefaultCategory
	}

	result, executionError := store.database.ExecContext(
		executionContext,
		insertTaskStatementConstant,
		task.UserID,
		task.Description,
		category,
		task.Deadline.storageValue(),
	)
	if executionError != nil {
		return 0, fmt.Errorf(insertTaskErrorTemplateConstant, executionError)
	}

	insertedIdentifier, identifierError := result.LastInsertId()
	if identifierError != nil {
		return 0, fmt.Errorf(insertTaskErrorTemplateConstant, identifierError)
	}
	return insertedIdentifier, nil
}

// ListActive returns the user's incomplete tasks in insertion order.
func (store *Store) ListActive(executionContext context.Context, userIdentifier int64) ([]Task, error) {
	return store.queryTasks(executionContext, listActiveTasksQueryConstant, userIdentifier)
}

// ListAll returns every stored task in insertion order.
func (store *Store) ListAll(executionContext context.Context) ([]Task, error) {
	return store.queryTasks(executionContext, listAllTasksQueryConstant)
}

// DueBetween returns incomplete tasks whose deadline falls inside
// [windowStart, windowEnd), ordered by deadline.
func (store *Store) DueBetween(executionContext context.Context, windowStart time.Time, windowEnd time.Time) ([]Task, error) {
	return store.queryTasks(
		executionContext,
		dueBetweenTasksQueryConstant,
		NewDeadline(windowStart).String(),
		NewDeadline(windowEnd).String(),
	)
}

// Delete removes the task when it exists and belongs to the user, returning
// ErrTaskNotFound otherwise.
func (store *Store) Delete(executionContext context.Context, userIdentifier int64, taskIdentifier int64) error {
	result, executionError := store.database.ExecContext(executionContext, deleteTaskStatementConstant, taskIdentifier, userIdentifier)
	if executionError != nil {
		return fmt.Errorf(deleteTaskErrorTemplateConstant, executionError)
	}
	return requireAffectedRow(result, deleteTaskErrorTemplateConstant)
}

// Complete marks the task completed when it exists, belongs to the user, and
// is still open, returning ErrTaskNotFound otherwise.
func (store *Store) Complete(executionContext context.Context, userIdentifier int64, taskIdentifier int64) error {
	result, executionError := store.database.ExecContext(executionContext, completeTaskStatementConstant, taskIdentifier, userIdentifier)
	if executionError != nil {
		return fmt.Errorf(completeTaskErrorTemplateConstant, executionError)
	}
	return requireAffectedRow(result, completeTaskErrorTemplateConstant)
}

func (store *Store) queryTasks(executionContext context.Context, query string, arguments ...any) ([]Task, error) {
	rows, queryError := store.database.QueryContext(executionContext, query, arguments...)
	if queryError != nil {
		return nil, fmt.Errorf(queryTasksErrorTemplateConstant, queryError)
	}
	defer func() {
		_ = rows.Close()
	}()

	collected := []Task{}
	for rows.Next() {
		var (
			task           Task
			storedDeadline sql.NullString
		)
		scanError := rows.Scan(&task.ID, &task.UserID, &task.Description, &task.Category, &storedDeadline, &task.Completed)
		if scanError != nil {
			return nil, fmt.Errorf(scanTaskErrorTemplateConstant, scanError)
		}
		if storedDeadline.Valid && len(strings.TrimSpace(storedDeadline.String)) > 0 {
			parsedDeadline, parseError := ParseStoredDeadline(storedDeadline.String)
			if parseError != nil {
				return nil, fmt.Errorf(scanTaskErrorTemplateConstant, parseError)
			}
			task.Deadline = parsedDeadline
		}
		collected = append(collected, task)
	}
	if rowsError := rows.Err(); rowsError != nil {
		return nil, fmt.Errorf(queryTasksErrorTemplateConstant, rowsError)
	}
	return collected, nil
}

func requireAffectedRow(result sql.Result, errorTemplate string) error {
	affectedRows, affectedError := result.RowsAffected()
	if affectedError != nil {
		return fmt.Errorf(errorTemplate, affectedError)
	}
	if affectedRows == 0 {
		return ErrTaskNotFound
	}
	return nil
}
