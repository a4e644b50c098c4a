package format

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/execshell"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/gitrepo"
	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/utils"
	flagutils "github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/utils/flags"
	pathutils "github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/utils/path"
)

const (
	commandUseConstant              = "format [roots]"
	commandShortDescriptionConstant = "Format source files with the configured tool chain"
	commandLongDescriptionConstant  = "format lists matching source files under the configured roots, runs the styling tool chain over each file independently, and stages the rewritten files with git. Roots may be passed as positional arguments, repeated --root flags, or configuration."
	stageToggleFlagNameConstant     = "stage"
	stageToggleFlagUsageConstant    = "Stage formatted files with git"
	pipelineFlagNameConstant        = "pipeline"
	pipelineFlagUsageConstant       = "Path to a YAML file overriding the pipeline steps"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the format cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	SourceFileLister             SourceFileLister
	ToolExecutor                 ToolExecutor
	RepositoryStager             RepositoryStager
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration

	rootFlagValues    *flagutils.RootFlagValues
	stageToggleValue  bool
	pipelineFileValue string
}

// Build constructs the cobra command for the formatting pipeline.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ArbitraryArgs,
		RunE:  builder.run,
	}

	builder.rootFlagValues = flagutils.BindRootFlags(command, flagutils.RootFlagValues{}, flagutils.RootFlagDefinition{Enabled: true})
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		DryRun: flagutils.ExecutionFlagDefinition{
			Name:    flagutils.DryRunFlagName,
			Usage:   flagutils.DryRunFlagUsage,
			Enabled: true,
		},
	})
	flagutils.AddToggleFlag(command.Flags(), &builder.stageToggleValue, stageToggleFlagNameConstant, "", true, stageToggleFlagUsageConstant)
	command.Flags().StringVar(&builder.pipelineFileValue, pipelineFlagNameConstant, "", pipelineFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	stepConfigurations := configuration.Steps
	if len(builder.pipelineFileValue) > 0 {
		loadedSteps, loadError := LoadStepsFile(builder.pipelineFileValue)
		if loadError != nil {
			return loadError
		}
		stepConfigurations = loadedSteps
	}

	pipelineSteps, pipelineError := BuildPipeline(stepConfigurations)
	if pipelineError != nil {
		return pipelineError
	}

	logger := builder.resolveLogger()

	toolExecutor, stager, resolveError := builder.resolveExecutionDependencies(logger)
	if resolveError != nil {
		return resolveError
	}

	fileLister := builder.SourceFileLister
	if fileLister == nil {
		fileLister = NewFilesystemSourceFileLister()
	}

	options := CommandOptions{
		Roots:  builder.resolveRoots(command, arguments, configuration),
		Suffix: configuration.Suffix,
		Steps:  pipelineSteps,
		Stage:  builder.resolveStage(command, configuration),
		DryRun: builder.resolveDryRun(command, configuration),
	}

	service := NewService(fileLister, toolExecutor, stager, utils.NewFlushingWriter(command.OutOrStdout()), logger)
	return service.Run(command.Context(), options)
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

func (builder *CommandBuilder) resolveExecutionDependencies(logger *zap.Logger) (ToolExecutor, RepositoryStager, error) {
	toolExecutor := builder.ToolExecutor
	stager := builder.RepositoryStager
	if toolExecutor != nil && stager != nil {
		return toolExecutor, stager, nil
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), humanReadableLogging)
	if executorError != nil {
		return nil, nil, executorError
	}

	if toolExecutor == nil {
		toolExecutor = shellExecutor
	}
	if stager == nil {
		repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
		if managerError != nil {
			return nil, nil, managerError
		}
		stager = repositoryManager
	}

	return toolExecutor, stager, nil
}

func (builder *CommandBuilder) resolveRoots(command *cobra.Command, arguments []string, configuration CommandConfiguration) []string {
	sanitizer := pathutils.NewSourcePathSanitizer()

	if command != nil && command.Flags().Changed(flagutils.DefaultRootFlagName) && builder.rootFlagValues != nil {
		flagRoots := sanitizer.Sanitize(builder.rootFlagValues.Roots)
		if len(flagRoots) > 0 {
			return flagRoots
		}
	}

	positionalRoots := sanitizer.Sanitize(arguments)
	if len(positionalRoots) > 0 {
		return positionalRoots
	}

	configuredRoots := sanitizer.Sanitize(configuration.Roots)
	if len(configuredRoots) > 0 {
		return configuredRoots
	}

	return []string{defaultRootPathConstant}
}

func (builder *CommandBuilder) resolveStage(command *cobra.Command, configuration CommandConfiguration) bool {
	if command != nil && command.Flags().Changed(stageToggleFlagNameConstant) {
		return builder.stageToggleValue
	}
	return configuration.Stage
}

func (builder *CommandBuilder) resolveDryRun(command *cobra.Command, configuration CommandConfiguration) bool {
	if command != nil && command.Flags().Changed(flagutils.DryRunFlagName) {
		dryRun, _ := command.Flags().GetBool(flagutils.DryRunFlagName)
		return dryRun
	}
	return configuration.DryRun
}
