package report

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/tasks"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/utils"
	flagutils "github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/utils/flags"
	pathutils "github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/utils/path"
)

const (
	commandUseConstant              = "report"
	commandShortDescriptionConstant = "Export stored tasks as CSV"
	commandLongDescriptionConstant  = "report writes every stored task to stdout as CSV with the columns task_id, user_id, description, category, deadline, and completed."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the report cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	TaskSource            TaskSource
	ConfigurationProvider func() CommandConfiguration

	storageFlagValues *flagutils.StorageFlagValues
}

// Build constructs the cobra command for the task inventory export.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	builder.storageFlagValues = flagutils.BindStorageFlags(command, flagutils.StorageFlagValues{}, flagutils.StorageFlagDefinition{Enabled: true})

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	taskSource := builder.TaskSource
	if taskSource == nil {
		store, openError := tasks.OpenStore(command.Context(), builder.resolveDatabasePath(command, configuration))
		if openError != nil {
			return openError
		}
		defer func() {
			_ = store.Close()
		}()
		taskSource = store
	}

	service := NewService(taskSource, utils.NewFlushingWriter(command.OutOrStdout()), builder.resolveLogger())
	return service.Run(command.Context())
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveDatabasePath(command *cobra.Command, configuration CommandConfiguration) string {
	homeExpander := pathutils.NewHomeExpander()
	if command != nil && command.Flags().Changed(flagutils.DatabaseFlagName) && builder.storageFlagValues != nil {
		flagPath := strings.TrimSpace(builder.storageFlagValues.DatabasePath)
		if len(flagPath) > 0 {
			return homeExpander.Expand(flagPath)
		}
	}
	return homeExpander.Expand(configuration.Database)
}
