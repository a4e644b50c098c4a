package format

import (
	"sort"
	"strconv"
	"strings"
)

const (
	findingFieldSeparatorConstant = ":"
	findingMinimumFieldCount      = 3
	findingLineFieldIndexConstant = 1
)

// ParseCheckerFindings extracts the violation line numbers from checker output.
// Records follow the "path:line:column: message" convention; malformed lines
// are skipped. The result is deduplicated and sorted in ascending order.
func ParseCheckerFindings(checkerOutput string) []int {
	seenLines := make(map[int]struct{})
	var lineNumbers []int

	for _, outputLine := range strings.Split(checkerOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}

		fields := strings.Split(trimmedLine, findingFieldSeparatorConstant)
		if len(fields) < findingMinimumFieldCount {
			continue
		}

		lineNumber, parseError := strconv.Atoi(strings.TrimSpace(fields[findingLineFieldIndexConstant]))
		if parseError != nil || lineNumber <= 0 {
			continue
		}

		if _, alreadySeen := seenLines[lineNumber]; alreadySeen {
			continue
		}
		seenLines[lineNumber] = struct{}{}
		lineNumbers = append(lineNumbers, lineNumber)
	}

	sort.Ints(lineNumbers)
	return lineNumbers
}
