package bot

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/reminder"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/telegram"
	flagutils "github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/utils/flags"
)

const (
	runUseConstant              = "bot"
	runShortDescriptionConstant = "Run the Telegram todo-list bot"
	runLongDescriptionConstant  = "bot loads the Telegram token from the environment, opens the task database, and serves bot commands over long polling while the reminder scheduler sweeps for due tasks. SIGINT and SIGTERM stop both loops."

	botStartingMessageConstant = "bot starting"
	databaseFieldNameConstant  = "database"
)

// RunCommandBuilder assembles the long-running bot command.
type RunCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() Configuration
	Messenger             telegram.Messenger
	UpdateProvider        telegram.UpdateProvider
	Clock                 reminder.Clock

	storageFlagValues   *flagutils.StorageFlagValues
	messengerFlagValues *flagutils.MessengerFlagValues
}

// Build constructs the cobra command for the bot loop.
func (builder *RunCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   runUseConstant,
		Short: runShortDescriptionConstant,
		Long:  runLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	builder.storageFlagValues = flagutils.BindStorageFlags(command, flagutils.StorageFlagValues{}, flagutils.StorageFlagDefinition{Enabled: true})
	builder.messengerFlagValues = flagutils.BindMessengerFlags(command, flagutils.MessengerFlagValues{}, flagutils.MessengerFlagDefinition{Enabled: true})

	return command, nil
}

func (builder *RunCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	scheduleSettings, scheduleError := configuration.Reminder.Resolve()
	if scheduleError != nil {
		return scheduleError
	}

	if environmentError := loadEnvironmentFile(command); environmentError != nil {
		return environmentError
	}

	logger := resolveLogger(builder.LoggerProvider)

	messenger, updateProvider, transportError := builder.resolveTransport(command, configuration)
	if transportError != nil {
		return transportError
	}

	databasePath := resolveDatabasePath(command, builder.storageFlagValues, configuration.Database)
	taskStore, openError := tasks.OpenStore(command.Context(), databasePath)
	if openError != nil {
		return openError
	}
	defer func() {
		_ = taskStore.Close()
	}()

	router, routerError := telegram.NewRouter(taskStore, messenger, logger)
	if routerError != nil {
		return routerError
	}

	poller, pollerError := telegram.NewPoller(updateProvider, router, configuration.PollTimeoutSeconds, logger)
	if pollerError != nil {
		return pollerError
	}

	sweepService, sweepError := reminder.NewSweepService(taskStore, messenger, scheduleSettings.DueWindow, logger)
	if sweepError != nil {
		return sweepError
	}

	scheduler, schedulerError := reminder.NewScheduler(sweepService, scheduleSettings, builder.Clock, logger)
	if schedulerError != nil {
		return schedulerError
	}

	logger.Info(botStartingMessageConstant, zap.String(databaseFieldNameConstant, databasePath))

	signalContext, stopSignals := signal.NotifyContext(command.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// The update stream ending is a shutdown signal for the scheduler too.
	runContext, stopRunning := context.WithCancel(signalContext)
	defer stopRunning()

	group, groupContext := errgroup.WithContext(runContext)
	group.Go(func() error {
		defer stopRunning()
		return poller.Run(groupContext)
	})
	group.Go(func() error {
		return scheduler.Run(groupContext)
	})
	return group.Wait()
}

func (builder *RunCommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *RunCommandBuilder) resolveTransport(command *cobra.Command, configuration Configuration) (telegram.Messenger, telegram.UpdateProvider, error) {
	if builder.Messenger != nil && builder.UpdateProvider != nil {
		return builder.Messenger, builder.UpdateProvider, nil
	}

	client, clientError := newBotClient(resolveTokenVariable(command, builder.messengerFlagValues, configuration.TokenVariable))
	if clientError != nil {
		return nil, nil, clientError
	}

	messenger := builder.Messenger
	if messenger == nil {
		botMessenger, messengerError := telegram.NewBotMessenger(client)
		if messengerError != nil {
			return nil, nil, messengerError
		}
		messenger = botMessenger
	}

	updateProvider := builder.UpdateProvider
	if updateProvider == nil {
		updateProvider = client
	}

	return messenger, updateProvider, nil
}
