package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrScriptNotFound is returned when the script path does not exist.
var ErrScriptNotFound = errors.New("script not found")

// LoadScript reads a script and splits it into lines.
func LoadScript(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrScriptNotFound, path)
		}
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits on \n and strips a trailing \r from each line. A
// terminating newline does not produce an extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
