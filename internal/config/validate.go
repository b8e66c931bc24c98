package config

import (
	"fmt"
	"strings"
)

// validPolicies is the set of supported success policies.
var validPolicies = map[string]bool{
	"strict":  true,
	"lenient": true,
}

// validTransports is the set of supported sandbox transports.
var validTransports = map[string]bool{
	"local": true,
	"ssh":   true,
}

// Validate checks the Config for completeness and correctness.
// It returns all errors found, each prefixed with "config: ".
func Validate(cfg *Config) error {
	var errs []string

	// --- Required fields ---
	if cfg.AI.Model == "" {
		errs = append(errs, "config: ai.model is required")
	}
	if cfg.AI.Endpoint == "" {
		errs = append(errs, "config: ai.endpoint is required")
	}

	// --- AI temperature range ---
	if cfg.AI.Temperature < 0 || cfg.AI.Temperature > 1 {
		errs = append(errs, fmt.Sprintf(
			"config: ai.temperature must be between 0 and 1, got %g",
			cfg.AI.Temperature))
	}

	// --- Repair max_retries range ---
	if cfg.Repair.MaxRetries != 0 && (cfg.Repair.MaxRetries < 1 || cfg.Repair.MaxRetries > 10) {
		errs = append(errs, fmt.Sprintf(
			"config: repair.max_retries must be between 1 and 10, got %d",
			cfg.Repair.MaxRetries))
	}

	// --- Policy validation ---
	if cfg.Repair.Policy != "" && !validPolicies[cfg.Repair.Policy] {
		errs = append(errs, fmt.Sprintf(
			"config: repair.policy '%s' is invalid; must be one of: strict, lenient",
			cfg.Repair.Policy))
	}

	// --- Sandbox transport validation ---
	if cfg.Sandbox.Transport.Type != "" && !validTransports[cfg.Sandbox.Transport.Type] {
		errs = append(errs, fmt.Sprintf(
			"config: sandbox.transport.type '%s' is invalid; must be one of: local, ssh",
			cfg.Sandbox.Transport.Type))
	}
	if cfg.Sandbox.Transport.Type == "ssh" {
		errs = append(errs, validateSSH(&cfg.Sandbox.Transport.SSH)...)
	}
	if cfg.Sandbox.Timeout < 0 {
		errs = append(errs, "config: sandbox.timeout must not be negative")
	}

	// --- Language overrides ---
	for i, l := range cfg.Languages {
		errs = append(errs, validateLanguage(i, &l)...)
	}

	// --- Server ---
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf(
			"config: server.port must be between 0 and 65535, got %d",
			cfg.Server.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "\n"))
	}
	return nil
}

func validateSSH(cfg *SSHConfig) []string {
	var errs []string
	if cfg.Host == "" {
		errs = append(errs, "config: sandbox.transport.ssh.host is required")
	}
	if cfg.User == "" {
		errs = append(errs, "config: sandbox.transport.ssh.user is required")
	}
	if cfg.Key == "" && cfg.Password == "" {
		errs = append(errs, "config: sandbox.transport.ssh requires key or password")
	}
	return errs
}

func validateLanguage(i int, l *LanguageConfig) []string {
	var errs []string
	if l.Extension == "" {
		errs = append(errs, fmt.Sprintf("config: languages[%d].extension is required", i))
	} else if !strings.HasPrefix(l.Extension, ".") {
		errs = append(errs, fmt.Sprintf(
			"config: languages[%d].extension '%s' must start with a dot", i, l.Extension))
	}
	if l.Run == "" {
		errs = append(errs, fmt.Sprintf("config: languages[%d].run is required", i))
	} else if !strings.Contains(l.Run, "${FILE}") {
		errs = append(errs, fmt.Sprintf(
			"config: languages[%d].run must reference ${FILE}", i))
	}
	if l.Name == "" {
		errs = append(errs, fmt.Sprintf("config: languages[%d].name is required", i))
	}
	return errs
}
