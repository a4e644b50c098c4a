package bot

import (
	"github.com/spf13/cobra"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/reminder"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/telegram"
	flagutils "github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/utils/flags"
)

const (
	notifyUseConstant              = "notify"
	notifyShortDescriptionConstant = "Send due-task reminders once and exit"
	notifyLongDescriptionConstant  = "notify runs a single reminder sweep over the task database, messaging every user whose incomplete tasks fall due inside the reminder window. Intended for cron-style scheduling without the long-running bot."
)

// NotifyCommandBuilder assembles the one-shot reminder command.
type NotifyCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() Configuration
	Messenger             telegram.Messenger
	Clock                 reminder.Clock

	storageFlagValues   *flagutils.StorageFlagValues
	messengerFlagValues *flagutils.MessengerFlagValues
}

// Build constructs the cobra command for the one-shot sweep.
func (builder *NotifyCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   notifyUseConstant,
		Short: notifyShortDescriptionConstant,
		Long:  notifyLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	builder.storageFlagValues = flagutils.BindStorageFlags(command, flagutils.StorageFlagValues{}, flagutils.StorageFlagDefinition{Enabled: true})
	builder.messengerFlagValues = flagutils.BindMessengerFlags(command, flagutils.MessengerFlagValues{}, flagutils.MessengerFlagDefinition{Enabled: true})

	return command, nil
}

func (builder *NotifyCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	scheduleSettings, scheduleError := configuration.Reminder.Resolve()
	if scheduleError != nil {
		return scheduleError
	}

	if environmentError := loadEnvironmentFile(command); environmentError != nil {
		return environmentError
	}

	logger := resolveLogger(builder.LoggerProvider)

	messenger := builder.Messenger
	if messenger == nil {
		client, clientError := newBotClient(resolveTokenVariable(command, builder.messengerFlagValues, configuration.TokenVariable))
		if clientError != nil {
			return clientError
		}
		botMessenger, messengerError := telegram.NewBotMessenger(client)
		if messengerError != nil {
			return messengerError
		}
		messenger = botMessenger
	}

	databasePath := resolveDatabasePath(command, builder.storageFlagValues, configuration.Database)
	taskStore, openError := tasks.OpenStore(command.Context(), databasePath)
	if openError != nil {
		return openError
	}
	defer func() {
		_ = taskStore.Close()
	}()

	sweepService, sweepError := reminder.NewSweepService(taskStore, messenger, scheduleSettings.DueWindow, logger)
	if sweepError != nil {
		return sweepError
	}

	clock := builder.Clock
	if clock == nil {
		clock = reminder.SystemClock{}
	}

	return sweepService.Sweep(command.Context(), clock.Now())
}

func (builder *NotifyCommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}
