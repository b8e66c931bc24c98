package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in config content.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// LoadConfig reads a YAML configuration file, substitutes environment
// variables, parses into Config on top of the built-in defaults, and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read file %s: %w", path, err)
	}

	// Check for unresolved variables — any ${VAR} where the env var is not set.
	if err := validateEnvVars(data); err != nil {
		return nil, err
	}

	resolved := envVarPattern.ReplaceAllStringFunc(string(data), func(match string) string {
		varName := match[2 : len(match)-1] // strip ${ and }
		if varName == "FILE" {
			// ${FILE} is resolved per run, not at load time.
			return match
		}
		return os.Getenv(varName)
	})

	cfg := Default()
	if err := yaml.Unmarshal([]byte(resolved), cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse YAML: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads the config file at path if it exists, otherwise
// returns the built-in defaults.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadConfig(path)
}

// validateEnvVars checks that all ${VAR} references in raw data
// correspond to environment variables that are actually set.
func validateEnvVars(data []byte) error {
	matches := envVarPattern.FindAllStringSubmatch(string(data), -1)
	var unresolved []string
	seen := map[string]bool{}
	for _, m := range matches {
		varName := m[1]
		if varName == "FILE" {
			// ${FILE} is a run-command template variable, not an env var.
			continue
		}
		if seen[varName] {
			continue
		}
		seen[varName] = true
		if _, ok := os.LookupEnv(varName); !ok {
			unresolved = append(unresolved, "${"+varName+"}")
		}
	}
	if len(unresolved) > 0 {
		return fmt.Errorf("config: unresolved variables found: %s",
			strings.Join(unresolved, ", "))
	}
	return nil
}
