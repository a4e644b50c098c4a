package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/execshell"
)

const (
	gitRevParseSubcommandConstant   = "rev-parse"
	gitIsInsideWorkTreeFlagConstant = "--is-inside-work-tree"
	gitTrueOutputConstant           = "true"
	gitAddSubcommandConstant        = "add"
	gitPathspecSeparatorConstant    = "--"
	requiredValueMessageConstant    = "%s is required"
	gitExecutorFieldNameConstant    = "git executor"
	repositoryPathFieldNameConstant = "repository path"
	stageTargetsFieldNameConstant   = "stage targets"
)

// GitExecutor describes the subset of shell execution used to run git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager coordinates git operations against repository working trees.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager validates dependencies and constructs a RepositoryManager.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, fmt.Errorf(requiredValueMessageConstant, gitExecutorFieldNameConstant)
	}

	return &RepositoryManager{executor: executor}, nil
}

// IsInsideWorkTree reports whether the provided path belongs to a git working tree.
// Paths outside any repository yield false without an error so callers can skip
// staging instead of aborting.
func (manager *RepositoryManager) IsInsideWorkTree(executionContext context.Context, repositoryPath string) (bool, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return false, fmt.Errorf(requiredValueMessageConstant, repositoryPathFieldNameConstant)
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitIsInsideWorkTreeFlagConstant},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, executionError
	}

	return strings.TrimSpace(executionResult.StandardOutput) == gitTrueOutputConstant, nil
}

// StageFiles adds the provided paths to the git index of the repository rooted
// at repositoryPath. The pathspec separator keeps file names beginning with a
// dash from being interpreted as flags.
func (manager *RepositoryManager) StageFiles(executionContext context.Context, repositoryPath string, filePaths []string) error {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return fmt.Errorf(requiredValueMessageConstant, repositoryPathFieldNameConstant)
	}
	if len(filePaths) == 0 {
		return fmt.Errorf(requiredValueMessageConstant, stageTargetsFieldNameConstant)
	}

	commandArguments := append([]string{gitAddSubcommandConstant, gitPathspecSeparatorConstant}, filePaths...)
	commandDetails := execshell.CommandDetails{
		Arguments:        commandArguments,
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}
