package bot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/cmd/cli/bot"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/reminder"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
)

func TestBotCommandServesUpdatesAndReminders(testInstance *testing.T) {
	sweepMoment := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.Local)
	databasePath := seedTaskDatabase(testInstance, tasks.Task{
		UserID:      100,
		Description: "submit the report",
		Deadline:    tasks.NewDeadline(sweepMoment.Add(2 * time.Hour)),
	})

	// The added task falls outside the reminder window so the sweep outcome
	// does not depend on dispatch timing.
	updateProvider := newFakeUpdateProvider(commandUpdate("/add buy milk; errands; 2026-03-20 10:00"))
	messenger := &recordingMessenger{}

	builder := &bot.RunCommandBuilder{
		ConfigurationProvider: func() bot.Configuration {
			configuration := bot.DefaultConfiguration()
			configuration.Database = databasePath
			return configuration
		},
		Messenger:      messenger,
		UpdateProvider: updateProvider,
		Clock:          fixedClock{moment: sweepMoment},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	_, executionError := executeCommand(testInstance, command, []string{})
	require.NoError(testInstance, executionError)

	delivered := messenger.messages()
	require.Contains(testInstance, delivered, deliveredMessage{chatIdentifier: 555, messageText: "Task added successfully!"})
	require.Contains(testInstance, delivered, deliveredMessage{chatIdentifier: 100, messageText: "Reminder: Task 'submit the report' is due in 24 hours!"})
}

func TestBotCommandSkipsSweepBeforeDailyStart(testInstance *testing.T) {
	databasePath := seedTaskDatabase(testInstance, tasks.Task{
		UserID:      100,
		Description: "submit the report",
		Deadline:    tasks.NewDeadline(time.Date(2026, time.March, 14, 9, 30, 0, 0, time.Local)),
	})
	messenger := &recordingMessenger{}

	builder := &bot.RunCommandBuilder{
		Messenger:      messenger,
		UpdateProvider: newFakeUpdateProvider(),
		Clock:          fixedClock{moment: time.Date(2026, time.March, 14, 8, 0, 0, 0, time.Local)},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	_, executionError := executeCommand(testInstance, command, []string{"--database", databasePath})
	require.NoError(testInstance, executionError)
	require.Empty(testInstance, messenger.messages())
}

func TestBotCommandRejectsInvalidDailyStart(testInstance *testing.T) {
	builder := &bot.RunCommandBuilder{
		ConfigurationProvider: func() bot.Configuration {
			configuration := bot.DefaultConfiguration()
			configuration.Reminder = reminder.ScheduleConfiguration{DailyStart: "9 o'clock"}
			return configuration
		},
		Messenger:      &recordingMessenger{},
		UpdateProvider: newFakeUpdateProvider(),
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	_, executionError := executeCommand(testInstance, command, []string{})
	require.ErrorContains(testInstance, executionError, "invalid daily start")
}

func TestBotCommandRequiresToken(testInstance *testing.T) {
	databasePath := seedTaskDatabase(testInstance)

	builder := &bot.RunCommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	_, executionError := executeCommand(testInstance, command, []string{
		"--database", databasePath,
		"--token-env", "TODOLIST_TEST_MISSING_TOKEN",
	})
	require.EqualError(testInstance, executionError, "telegram bot token environment variable TODOLIST_TEST_MISSING_TOKEN is not set")
}
