package format

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilesystemSourceFileLister enumerates formatting candidates directly inside
// each root directory.
type FilesystemSourceFileLister struct{}

// NewFilesystemSourceFileLister constructs a lister backed by os.ReadDir.
func NewFilesystemSourceFileLister() *FilesystemSourceFileLister {
	return &FilesystemSourceFileLister{}
}

// ListSourceFiles returns the regular files under the provided roots whose
// names carry the requested suffix. The listing is non-recursive,
// deduplicated, and sorted.
func (lister *FilesystemSourceFileLister) ListSourceFiles(roots []string, suffix string) ([]string, error) {
	seen := make(map[string]struct{})
	var sourceFiles []string

	for _, root := range roots {
		entries, readError := os.ReadDir(root)
		if readError != nil {
			return nil, readError
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			if !strings.HasSuffix(entry.Name(), suffix) {
				continue
			}

			sourcePath := filepath.Join(root, entry.Name())
			if _, alreadySeen := seen[sourcePath]; alreadySeen {
				continue
			}
			seen[sourcePath] = struct{}{}
			sourceFiles = append(sourceFiles, sourcePath)
		}
	}

	sort.Strings(sourceFiles)
	return sourceFiles, nil
}
