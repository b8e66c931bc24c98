package variable

import (
	"os"
	"regexp"
	"strings"
)

var varPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// shellUnsafeChars are characters that could enable shell injection.
var shellUnsafeChars = strings.NewReplacer(
	"`", "",
	"$", "",
	"!", "",
	"&", "",
	"|", "",
	";", "",
	"\n", " ",
	"\r", "",
)

// sanitizeForShell strips dangerous shell metacharacters from variable
// values that will be interpolated into shell commands.
func sanitizeForShell(val string) string {
	return shellUnsafeChars.Replace(val)
}

// Resolve replaces ${VAR_NAME} patterns in template with values from the
// vars map. If a variable is not found in vars, it checks os.Getenv as
// fallback. If still not found, the original ${VAR_NAME} is preserved.
// Values from the vars map (user-controlled inputs like file paths) are
// sanitized to prevent shell injection.
func Resolve(template string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(template, func(match string) string {
		varName := match[2 : len(match)-1]

		if val, ok := vars[varName]; ok {
			return sanitizeForShell(val)
		}

		// Fallback to environment variable — trusted source, no sanitization.
		if val := os.Getenv(varName); val != "" {
			return val
		}

		// Not found, preserve original.
		return match
	})
}

// UnresolvedVars returns variable names referenced by template that are
// not present in the vars map or the environment.
func UnresolvedVars(template string, vars map[string]string) []string {
	matches := varPattern.FindAllStringSubmatch(template, -1)
	var unresolved []string
	seen := make(map[string]bool)

	for _, match := range matches {
		varName := match[1]
		if seen[varName] {
			continue
		}
		seen[varName] = true

		if _, ok := vars[varName]; ok {
			continue
		}
		if os.Getenv(varName) != "" {
			continue
		}
		unresolved = append(unresolved, varName)
	}
	return unresolved
}
