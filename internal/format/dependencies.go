package format

import (
	"context"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/internal/execshell"
)

// SourceFileLister finds formatting candidates under the provided roots.
type SourceFileLister interface {
	ListSourceFiles(roots []string, suffix string) ([]string, error)
}

// ToolExecutor exposes the subset of shell execution used to run the
// formatting tools.
type ToolExecutor interface {
	ExecuteTool(executionContext context.Context, toolName execshell.CommandName, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryStager exposes the git operations needed to stage formatted files.
type RepositoryStager interface {
	IsInsideWorkTree(executionContext context.Context, repositoryPath string) (bool, error)
	StageFiles(executionContext context.Context, repositoryPath string, filePaths []string) error
}
