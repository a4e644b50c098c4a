package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitWorkTreeFlagConstant           = "--is-inside-work-tree"
	gitAddSubcommandNameConstant      = "add"
)

const (
	gitWorkTreeStartTemplateConstant            = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant          = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant          = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant = "Could not analyze %s: %s"
	gitAddStartTemplateConstant                 = "Staging %s in %s"
	gitAddSuccessTemplateConstant               = "Staged %s in %s"
	gitAddFailureTemplateConstant               = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant      = "Unable to stage %s in %s: %s"
)

const (
	autopep8LineRangeFlagConstant = "--line-range"
	blackLineRangesFlagConstant   = "--line-ranges"
	lineRangeSeparatorConstant    = "-"
)

const (
	styleCheckStartTemplateConstant                        = "Checking style in %s"
	styleCheckSuccessTemplateConstant                      = "No style issues found in %s"
	styleCheckFailureTemplateConstant                      = "Style issues detected in %s (exit code %d%s)"
	styleCheckExecutionFailureTemplateConstant             = "Unable to check style in %s: %s"
	autoformatStartTemplateConstant                        = "Fixing style in %s at line %s"
	autoformatSuccessTemplateConstant                      = "Fixed style in %s at line %s"
	autoformatFailureTemplateConstant                      = "Failed to fix style in %s at line %s (exit code %d%s)"
	autoformatExecutionFailureTemplateConstant             = "Unable to fix style in %s at line %s: %s"
	autoformatWithoutRangeStartTemplateConstant            = "Fixing style in %s"
	autoformatWithoutRangeSuccessTemplateConstant          = "Fixed style in %s"
	autoformatWithoutRangeFailureTemplateConstant          = "Failed to fix style in %s (exit code %d%s)"
	autoformatWithoutRangeExecutionFailureTemplateConstant = "Unable to fix style in %s: %s"
	reformatStartTemplateConstant                          = "Reformatting %s at lines %s"
	reformatSuccessTemplateConstant                        = "Reformatted %s at lines %s"
	reformatFailureTemplateConstant                        = "Failed to reformat %s at lines %s (exit code %d%s)"
	reformatExecutionFailureTemplateConstant               = "Unable to reformat %s at lines %s: %s"
	reformatWithoutRangeStartTemplateConstant              = "Reformatting %s"
	reformatWithoutRangeSuccessTemplateConstant            = "Reformatted %s"
	reformatWithoutRangeFailureTemplateConstant            = "Failed to reformat %s (exit code %d%s)"
	reformatWithoutRangeExecutionFailureTemplateConstant   = "Unable to reformat %s: %s"
	importSortStartTemplateConstant                        = "Sorting imports in %s"
	importSortSuccessTemplateConstant                      = "Sorted imports in %s"
	importSortFailureTemplateConstant                      = "Failed to sort imports in %s (exit code %d%s)"
	importSortExecutionFailureTemplateConstant             = "Unable to sort imports in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) shouldLogStartMessage(command ShellCommand) bool {
	if command.Name != CommandGit {
		return true
	}
	if formatter.isGitWorkTreeProbe(command.Details.Arguments) {
		return false
	}
	return true
}

func (formatter CommandMessageFormatter) isGitWorkTreeProbe(arguments []string) bool {
	if len(arguments) == 0 {
		return false
	}
	if strings.TrimSpace(arguments[0]) != gitRevParseSubcommandNameConstant {
		return false
	}
	return containsArgument(arguments, gitWorkTreeFlagConstant)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandFlake8:
		return formatter.describeStyleCheckMessage(command, result, failure, stage)
	case CommandAutopep8:
		return formatter.describeAutoformatMessage(command, result, failure, stage)
	case CommandBlack:
		return formatter.describeReformatMessage(command, result, failure, stage)
	case CommandIsort:
		return formatter.describeImportSortMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitAddSubcommandNameConstant:
		return formatter.describeGitAddMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitWorkTreeFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitAddMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	targetPath := formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])
	trimmedTarget := formatter.ensureValue(targetPath)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitAddStartTemplateConstant, trimmedTarget, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitAddSuccessTemplateConstant, trimmedTarget, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitAddFailureTemplateConstant, trimmedTarget, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitAddExecutionFailureTemplateConstant, trimmedTarget, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeStyleCheckMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	targetFile := formatter.ensureValue(formatter.extractTargetFile(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(styleCheckStartTemplateConstant, targetFile)
	case messageStageSuccess:
		return fmt.Sprintf(styleCheckSuccessTemplateConstant, targetFile)
	case messageStageFailure:
		return fmt.Sprintf(styleCheckFailureTemplateConstant, targetFile, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(styleCheckExecutionFailureTemplateConstant, targetFile, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeAutoformatMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	targetFile := formatter.ensureValue(formatter.extractTargetFile(arguments))
	lineLabel := formatter.extractLineRangeLabel(arguments)

	if len(lineLabel) == 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(autoformatWithoutRangeStartTemplateConstant, targetFile)
		case messageStageSuccess:
			return fmt.Sprintf(autoformatWithoutRangeSuccessTemplateConstant, targetFile)
		case messageStageFailure:
			return fmt.Sprintf(autoformatWithoutRangeFailureTemplateConstant, targetFile, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(autoformatWithoutRangeExecutionFailureTemplateConstant, targetFile, formatter.describeFailure(failure))
		default:
			return formatter.buildGenericMessage(command, result, failure, stage)
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(autoformatStartTemplateConstant, targetFile, lineLabel)
	case messageStageSuccess:
		return fmt.Sprintf(autoformatSuccessTemplateConstant, targetFile, lineLabel)
	case messageStageFailure:
		return fmt.Sprintf(autoformatFailureTemplateConstant, targetFile, lineLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(autoformatExecutionFailureTemplateConstant, targetFile, lineLabel, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeReformatMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	targetFile := formatter.ensureValue(formatter.extractTargetFile(arguments))
	rangeLabel := formatter.extractLineRangesLabel(arguments)

	if len(rangeLabel) == 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(reformatWithoutRangeStartTemplateConstant, targetFile)
		case messageStageSuccess:
			return fmt.Sprintf(reformatWithoutRangeSuccessTemplateConstant, targetFile)
		case messageStageFailure:
			return fmt.Sprintf(reformatWithoutRangeFailureTemplateConstant, targetFile, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(reformatWithoutRangeExecutionFailureTemplateConstant, targetFile, formatter.describeFailure(failure))
		default:
			return formatter.buildGenericMessage(command, result, failure, stage)
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(reformatStartTemplateConstant, targetFile, rangeLabel)
	case messageStageSuccess:
		return fmt.Sprintf(reformatSuccessTemplateConstant, targetFile, rangeLabel)
	case messageStageFailure:
		return fmt.Sprintf(reformatFailureTemplateConstant, targetFile, rangeLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(reformatExecutionFailureTemplateConstant, targetFile, rangeLabel, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeImportSortMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	targetFile := formatter.ensureValue(formatter.extractTargetFile(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(importSortStartTemplateConstant, targetFile)
	case messageStageSuccess:
		return fmt.Sprintf(importSortSuccessTemplateConstant, targetFile)
	case messageStageFailure:
		return fmt.Sprintf(importSortFailureTemplateConstant, targetFile, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(importSortExecutionFailureTemplateConstant, targetFile, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

// extractTargetFile returns the trailing argument, which the formatting tools
// accept as the file operand.
func (formatter CommandMessageFormatter) extractTargetFile(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		trimmed := strings.TrimSpace(arguments[index])
		if len(trimmed) == 0 {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractLineRangeLabel(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) != autopep8LineRangeFlagConstant {
			continue
		}
		if index+1 >= len(arguments) {
			return emptyStringConstant
		}
		startLine := strings.TrimSpace(arguments[index+1])
		endLine := startLine
		if index+2 < len(arguments) {
			candidate := strings.TrimSpace(arguments[index+2])
			if !strings.HasPrefix(candidate, "-") && len(candidate) > 0 {
				endLine = candidate
			}
		}
		if startLine == endLine {
			return startLine
		}
		return startLine + lineRangeSeparatorConstant + endLine
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractLineRangesLabel(arguments []string) string {
	rangeValue := findFlagValue(arguments, blackLineRangesFlagConstant)
	if len(rangeValue) == 0 {
		return emptyStringConstant
	}
	rangeParts := strings.SplitN(rangeValue, lineRangeSeparatorConstant, 2)
	if len(rangeParts) == 2 && rangeParts[0] == rangeParts[1] {
		return rangeParts[0]
	}
	return rangeValue
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
