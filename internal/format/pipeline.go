package format

import (
	"fmt"
	"strings"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/execshell"
)

const (
	filePlaceholderConstant = "{file}"
	linePlaceholderConstant = "{line}"

	styleCheckerCommandConstant        = "flake8"
	styleCheckerIgnoreArgumentConstant = "--extend-ignore=E501"

	autoformatterCommandConstant       = "autopep8"
	autoformatterInPlaceFlagConstant   = "--in-place"
	autoformatterLineRangeFlagConstant = "--line-range"

	reformatterCommandConstant                 = "black"
	reformatterLineRangesFlagConstant          = "--line-ranges"
	reformatterLineRangeValueConstant          = "{line}-{line}"
	reformatterLineLengthFlagConstant          = "--line-length"
	reformatterLineLengthValueConstant         = "79"
	reformatterSkipStringNormalizationConstant = "--skip-string-normalization"

	importSorterCommandConstant = "isort"

	autoformatStepNameConstant = "autopep8"
	reformatStepNameConstant   = "black"
	importSortStepNameConstant = "isort"

	checkerCommandLabelConstant = "checker"
	fixerCommandLabelConstant   = "fixer"
	runCommandLabelConstant     = "run"

	anonymousStepNameTemplateConstant             = "step %d"
	stepMissingCommandsTemplateConstant           = "step %s must define either checker and fixer commands or a run command"
	stepMixedCommandsTemplateConstant             = "step %s cannot combine a run command with checker or fixer commands"
	stepCheckerWithoutFixerTemplateConstant       = "step %s defines a checker without a fixer"
	stepFixerWithoutCheckerTemplateConstant       = "step %s defines a fixer without a checker"
	stepEmptyCommandTemplateConstant              = "step %s contains an empty %s command"
	stepMissingFilePlaceholderTemplateConstant    = "step %s %s command must reference the %s placeholder"
	stepUnexpectedLinePlaceholderTemplateConstant = "step %s %s command must not reference the %s placeholder"
)

// PipelineStep is a validated formatting step ready for execution. Conditional
// steps run their fixer once per line the checker reports; unconditional steps
// run their command exactly once per file.
type PipelineStep struct {
	Name             string
	Conditional      bool
	CheckerCommand   execshell.CommandName
	CheckerArguments []string
	FixerCommand     execshell.CommandName
	FixerArguments   []string
	RunCommand       execshell.CommandName
	RunArguments     []string
}

// DefaultStepConfigurations returns the stock formatting chain: autopep8 and
// black repair the lines a flake8 pass reports (line length excluded), then
// isort normalizes imports unconditionally.
func DefaultStepConfigurations() []StepConfiguration {
	return []StepConfiguration{
		{
			Name: autoformatStepNameConstant,
			Checker: []string{
				styleCheckerCommandConstant,
				styleCheckerIgnoreArgumentConstant,
				filePlaceholderConstant,
			},
			Fixer: []string{
				autoformatterCommandConstant,
				autoformatterInPlaceFlagConstant,
				autoformatterLineRangeFlagConstant,
				linePlaceholderConstant,
				linePlaceholderConstant,
				filePlaceholderConstant,
			},
		},
		{
			Name: reformatStepNameConstant,
			Checker: []string{
				styleCheckerCommandConstant,
				styleCheckerIgnoreArgumentConstant,
				filePlaceholderConstant,
			},
			Fixer: []string{
				reformatterCommandConstant,
				reformatterLineRangesFlagConstant,
				reformatterLineRangeValueConstant,
				reformatterLineLengthFlagConstant,
				reformatterLineLengthValueConstant,
				reformatterSkipStringNormalizationConstant,
				filePlaceholderConstant,
			},
		},
		{
			Name: importSortStepNameConstant,
			Run: []string{
				importSorterCommandConstant,
				filePlaceholderConstant,
			},
		},
	}
}

// BuildPipeline validates the configured steps and compiles them into
// executable pipeline steps. Empty configurations fall back to the default
// chain.
func BuildPipeline(configurations []StepConfiguration) ([]PipelineStep, error) {
	if len(configurations) == 0 {
		configurations = DefaultStepConfigurations()
	}

	pipeline := make([]PipelineStep, 0, len(configurations))
	for index := range configurations {
		step, stepError := compileStep(configurations[index], index)
		if stepError != nil {
			return nil, stepError
		}
		pipeline = append(pipeline, step)
	}

	return pipeline, nil
}

func compileStep(configuration StepConfiguration, index int) (PipelineStep, error) {
	stepName := strings.TrimSpace(configuration.Name)
	if len(stepName) == 0 {
		stepName = fmt.Sprintf(anonymousStepNameTemplateConstant, index+1)
	}

	hasChecker := len(configuration.Checker) > 0
	hasFixer := len(configuration.Fixer) > 0
	hasRun := len(configuration.Run) > 0

	switch {
	case hasRun && (hasChecker || hasFixer):
		return PipelineStep{}, fmt.Errorf(stepMixedCommandsTemplateConstant, stepName)
	case !hasRun && !hasChecker && !hasFixer:
		return PipelineStep{}, fmt.Errorf(stepMissingCommandsTemplateConstant, stepName)
	case hasChecker && !hasFixer:
		return PipelineStep{}, fmt.Errorf(stepCheckerWithoutFixerTemplateConstant, stepName)
	case hasFixer && !hasChecker:
		return PipelineStep{}, fmt.Errorf(stepFixerWithoutCheckerTemplateConstant, stepName)
	}

	if hasRun {
		runCommand, runArguments, runError := compileCommand(stepName, runCommandLabelConstant, configuration.Run, false)
		if runError != nil {
			return PipelineStep{}, runError
		}
		return PipelineStep{
			Name:         stepName,
			RunCommand:   runCommand,
			RunArguments: runArguments,
		}, nil
	}

	checkerCommand, checkerArguments, checkerError := compileCommand(stepName, checkerCommandLabelConstant, configuration.Checker, false)
	if checkerError != nil {
		return PipelineStep{}, checkerError
	}

	fixerCommand, fixerArguments, fixerError := compileCommand(stepName, fixerCommandLabelConstant, configuration.Fixer, true)
	if fixerError != nil {
		return PipelineStep{}, fixerError
	}

	return PipelineStep{
		Name:             stepName,
		Conditional:      true,
		CheckerCommand:   checkerCommand,
		CheckerArguments: checkerArguments,
		FixerCommand:     fixerCommand,
		FixerArguments:   fixerArguments,
	}, nil
}

func compileCommand(stepName string, commandLabel string, commandTemplates []string, lineAllowed bool) (execshell.CommandName, []string, error) {
	commandToken := strings.TrimSpace(commandTemplates[0])
	if len(commandToken) == 0 {
		return "", nil, fmt.Errorf(stepEmptyCommandTemplateConstant, stepName, commandLabel)
	}

	argumentTemplates := append([]string{}, commandTemplates[1:]...)
	if !containsPlaceholder(argumentTemplates, filePlaceholderConstant) {
		return "", nil, fmt.Errorf(stepMissingFilePlaceholderTemplateConstant, stepName, commandLabel, filePlaceholderConstant)
	}
	if !lineAllowed && containsPlaceholder(argumentTemplates, linePlaceholderConstant) {
		return "", nil, fmt.Errorf(stepUnexpectedLinePlaceholderTemplateConstant, stepName, commandLabel, linePlaceholderConstant)
	}

	return execshell.CommandName(commandToken), argumentTemplates, nil
}

func containsPlaceholder(values []string, placeholder string) bool {
	for _, value := range values {
		if strings.Contains(value, placeholder) {
			return true
		}
	}
	return false
}

// renderCommandArguments substitutes the file and line placeholders into the
// argument templates. Line labels only apply to fixer commands.
func renderCommandArguments(argumentTemplates []string, filePath string, lineLabel string) []string {
	rendered := make([]string, 0, len(argumentTemplates))
	for _, argumentTemplate := range argumentTemplates {
		value := strings.ReplaceAll(argumentTemplate, filePlaceholderConstant, filePath)
		if len(lineLabel) > 0 {
			value = strings.ReplaceAll(value, linePlaceholderConstant, lineLabel)
		}
		rendered = append(rendered, value)
	}
	return rendered
}
