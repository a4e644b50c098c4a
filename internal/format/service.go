package format

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/execshell"
)

const (
	checkerFindingsExitCodeConstant = 1

	formattedFileTemplateConstant   = "formatted %s\n"
	failedFileTemplateConstant      = "failed %s\n"
	noMatchingFilesTemplateConstant = "no %s files found under %s\n"
	runSummaryTemplateConstant      = "formatted %d file(s), %d failed\n"

	dryRunCommandTemplateConstant = "would run: %s\n"
	dryRunFixTemplateConstant     = "would fix reported lines with: %s\n"
	dryRunStageTemplateConstant   = "would stage: %s\n"

	stepFailureTemplateConstant    = "step %s: %w"
	fileFailureTemplateConstant    = "%s: %w"
	stagingFailureTemplateConstant = "staging: %w"

	formattingFileMessageConstant  = "formatting file"
	checkerFindingsMessageConstant = "checker reported lines"
	stagingSkippedMessageConstant  = "staging skipped outside git work tree"
	fileFieldNameConstant          = "file"
	stepFieldNameConstant          = "step"
	reportedLinesFieldNameConstant = "reported_lines"
)

// CommandOptions describes a single formatting run.
type CommandOptions struct {
	Roots  []string
	Suffix string
	Steps  []PipelineStep
	Stage  bool
	DryRun bool
}

// Service coordinates file discovery, the formatting tool chain, and staging.
type Service struct {
	fileLister   SourceFileLister
	toolExecutor ToolExecutor
	stager       RepositoryStager
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(fileLister SourceFileLister, toolExecutor ToolExecutor, stager RepositoryStager, outputWriter io.Writer, logger *zap.Logger) *Service {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fileLister:   fileLister,
		toolExecutor: toolExecutor,
		stager:       stager,
		outputWriter: outputWriter,
		logger:       logger,
	}
}

// Run formats every matching file under the configured roots. Files are
// processed independently: a failing step is recorded, later steps and later
// files still run, and the collected failures are returned together.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	roots := options.Roots
	if len(roots) == 0 {
		roots = []string{defaultRootPathConstant}
	}
	suffix := strings.TrimSpace(options.Suffix)
	if len(suffix) == 0 {
		suffix = defaultSourceFileSuffixConstant
	}
	steps := options.Steps
	if len(steps) == 0 {
		builtSteps, buildError := BuildPipeline(nil)
		if buildError != nil {
			return buildError
		}
		steps = builtSteps
	}

	sourceFiles, listError := service.fileLister.ListSourceFiles(roots, suffix)
	if listError != nil {
		return listError
	}

	if len(sourceFiles) == 0 {
		fmt.Fprintf(service.outputWriter, noMatchingFilesTemplateConstant, suffix, strings.Join(roots, " "))
		return nil
	}

	workTreeProbes := make(map[string]bool)

	var runFailures error
	formattedCount := 0
	failedCount := 0

	for _, sourceFile := range sourceFiles {
		if options.DryRun {
			service.previewFile(sourceFile, steps, options.Stage)
			continue
		}

		fileError := service.formatFile(executionContext, sourceFile, steps, options.Stage, workTreeProbes)
		if fileError != nil {
			failedCount++
			runFailures = multierr.Append(runFailures, fmt.Errorf(fileFailureTemplateConstant, sourceFile, fileError))
			fmt.Fprintf(service.outputWriter, failedFileTemplateConstant, sourceFile)
			continue
		}

		formattedCount++
		fmt.Fprintf(service.outputWriter, formattedFileTemplateConstant, sourceFile)
	}

	if !options.DryRun {
		fmt.Fprintf(service.outputWriter, runSummaryTemplateConstant, formattedCount, failedCount)
	}

	return runFailures
}

func (service *Service) formatFile(executionContext context.Context, sourceFile string, steps []PipelineStep, stage bool, workTreeProbes map[string]bool) error {
	service.logger.Debug(formattingFileMessageConstant, zap.String(fileFieldNameConstant, sourceFile))

	var fileFailures error
	for _, step := range steps {
		if stepError := service.executeStep(executionContext, step, sourceFile); stepError != nil {
			fileFailures = multierr.Append(fileFailures, fmt.Errorf(stepFailureTemplateConstant, step.Name, stepError))
		}
	}

	if stage {
		if stagingError := service.stageFile(executionContext, sourceFile, workTreeProbes); stagingError != nil {
			fileFailures = multierr.Append(fileFailures, fmt.Errorf(stagingFailureTemplateConstant, stagingError))
		}
	}

	return fileFailures
}

func (service *Service) executeStep(executionContext context.Context, step PipelineStep, sourceFile string) error {
	if !step.Conditional {
		_, runError := service.toolExecutor.ExecuteTool(executionContext, step.RunCommand, execshell.CommandDetails{
			Arguments: renderCommandArguments(step.RunArguments, sourceFile, ""),
		})
		return runError
	}

	reportedLines, checkError := service.collectCheckerFindings(executionContext, step, sourceFile)
	if checkError != nil {
		return checkError
	}

	service.logger.Debug(checkerFindingsMessageConstant,
		zap.String(fileFieldNameConstant, sourceFile),
		zap.String(stepFieldNameConstant, step.Name),
		zap.Ints(reportedLinesFieldNameConstant, reportedLines),
	)

	var fixFailures error
	for _, reportedLine := range reportedLines {
		lineLabel := strconv.Itoa(reportedLine)
		_, fixError := service.toolExecutor.ExecuteTool(executionContext, step.FixerCommand, execshell.CommandDetails{
			Arguments: renderCommandArguments(step.FixerArguments, sourceFile, lineLabel),
		})
		if fixError != nil {
			fixFailures = multierr.Append(fixFailures, fixError)
		}
	}

	return fixFailures
}

// collectCheckerFindings runs the checker and extracts the reported line
// numbers. A checker exit code of 1 signals findings rather than a failure;
// any other non-zero exit is treated as a broken checker.
func (service *Service) collectCheckerFindings(executionContext context.Context, step PipelineStep, sourceFile string) ([]int, error) {
	executionResult, executionError := service.toolExecutor.ExecuteTool(executionContext, step.CheckerCommand, execshell.CommandDetails{
		Arguments: renderCommandArguments(step.CheckerArguments, sourceFile, ""),
	})
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == checkerFindingsExitCodeConstant {
			return ParseCheckerFindings(commandFailure.Result.StandardOutput), nil
		}
		return nil, executionError
	}

	return ParseCheckerFindings(executionResult.StandardOutput), nil
}

func (service *Service) stageFile(executionContext context.Context, sourceFile string, workTreeProbes map[string]bool) error {
	repositoryDirectory := filepath.Dir(sourceFile)

	insideWorkTree, probeKnown := workTreeProbes[repositoryDirectory]
	if !probeKnown {
		probedInside, probeError := service.stager.IsInsideWorkTree(executionContext, repositoryDirectory)
		if probeError != nil {
			return probeError
		}
		workTreeProbes[repositoryDirectory] = probedInside
		insideWorkTree = probedInside
	}

	if !insideWorkTree {
		service.logger.Debug(stagingSkippedMessageConstant, zap.String(fileFieldNameConstant, sourceFile))
		return nil
	}

	return service.stager.StageFiles(executionContext, repositoryDirectory, []string{filepath.Base(sourceFile)})
}

func (service *Service) previewFile(sourceFile string, steps []PipelineStep, stage bool) {
	for _, step := range steps {
		if step.Conditional {
			fmt.Fprintf(service.outputWriter, dryRunCommandTemplateConstant, commandDisplayLabel(step.CheckerCommand, renderCommandArguments(step.CheckerArguments, sourceFile, "")))
			fmt.Fprintf(service.outputWriter, dryRunFixTemplateConstant, commandDisplayLabel(step.FixerCommand, renderCommandArguments(step.FixerArguments, sourceFile, "")))
			continue
		}
		fmt.Fprintf(service.outputWriter, dryRunCommandTemplateConstant, commandDisplayLabel(step.RunCommand, renderCommandArguments(step.RunArguments, sourceFile, "")))
	}

	if stage {
		fmt.Fprintf(service.outputWriter, dryRunStageTemplateConstant, sourceFile)
	}
}

func commandDisplayLabel(commandName execshell.CommandName, arguments []string) string {
	return strings.Join(append([]string{string(commandName)}, arguments...), " ")
}
