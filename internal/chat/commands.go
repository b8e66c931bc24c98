// Package chat parses the line-oriented input of the interactive front
// end: REPL commands and free-text bug reports carrying an @file target.
package chat

import (
	"errors"
	"regexp"
	"strings"
)

// Command is a normalized REPL command.
type Command struct {
	Action string
	Args   []string
}

// ErrNotCommand means the input is not a command and should be treated
// as a bug report.
var ErrNotCommand = errors.New("not a command")

// ParseCommand parses REPL command text such as "exit", "help",
// "files" or "sessions". Free-text bug reports yield ErrNotCommand.
func ParseCommand(text string) (*Command, error) {
	normalized := strings.TrimSpace(text)
	if normalized == "" {
		return nil, errors.New("empty input")
	}

	fields := strings.Fields(normalized)
	first := strings.TrimPrefix(strings.ToLower(fields[0]), "/")

	switch first {
	case "exit", "quit":
		return &Command{Action: "quit"}, nil
	case "help":
		return &Command{Action: "help"}, nil
	case "files":
		return &Command{Action: "files"}, nil
	case "sessions":
		return &Command{Action: "sessions", Args: fields[1:]}, nil
	}

	return nil, ErrNotCommand
}

// FilePattern builds the @file matcher for the supported extensions:
// word characters, path separators, and one of the fixed extensions.
func FilePattern(extensions []string) *regexp.Regexp {
	quoted := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		quoted = append(quoted, regexp.QuoteMeta(ext))
	}
	return regexp.MustCompile(`@([\w./\-\\]+(?:` + strings.Join(quoted, "|") + `))`)
}

// ExtractTarget returns the @file reference embedded in a bug report.
func ExtractTarget(text string, pattern *regexp.Regexp) (string, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
