package config

import "time"

// Config is the top-level configuration for autodebug.
type Config struct {
	Project   ProjectConfig    `yaml:"project"`
	AI        AIConfig         `yaml:"ai"`
	Repair    RepairConfig     `yaml:"repair"`
	Sandbox   SandboxConfig    `yaml:"sandbox"`
	Languages []LanguageConfig `yaml:"languages"`
	Server    ServerConfig     `yaml:"server"`
}

// ProjectConfig holds workspace metadata.
type ProjectConfig struct {
	Name        string `yaml:"name"`
	Workspace   string `yaml:"workspace"`
	Description string `yaml:"description"`
}

// AIConfig holds inference endpoint settings.
type AIConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// RepairConfig holds repair loop settings.
type RepairConfig struct {
	MaxRetries       int    `yaml:"max_retries"`
	Policy           string `yaml:"policy"` // strict|lenient
	RestoreOnFailure bool   `yaml:"restore_on_failure"`
}

// SandboxConfig holds sandboxed execution settings.
type SandboxConfig struct {
	Timeout   time.Duration   `yaml:"timeout"`
	Transport TransportConfig `yaml:"transport"`
}

// TransportConfig controls where the target file is executed.
type TransportConfig struct {
	Type string    `yaml:"type"` // local|ssh
	SSH  SSHConfig `yaml:"ssh"`
}

// SSHConfig holds SSH connection details for the remote sandbox.
type SSHConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	Key        string `yaml:"key"`
	Password   string `yaml:"password"`
	KnownHosts string `yaml:"known_hosts"`
}

// LanguageConfig adds or overrides an entry in the language table.
type LanguageConfig struct {
	Extension string `yaml:"extension"` // including the leading dot
	Name      string `yaml:"name"`
	Run       string `yaml:"run"` // command template, ${FILE} is the target path
	FenceTag  string `yaml:"fence_tag"`
}

// ServerConfig holds web front-end settings.
type ServerConfig struct {
	Port   int    `yaml:"port"`
	DBPath string `yaml:"db_path"`
}

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Name:      "autodebug",
			Workspace: ".",
		},
		AI: AIConfig{
			Endpoint:    "http://localhost:11434/api/generate",
			Model:       "qwen2.5-coder:1.5b",
			Temperature: 0.2,
			Timeout:     120 * time.Second,
		},
		Repair: RepairConfig{
			MaxRetries: 3,
			Policy:     "strict",
		},
		Sandbox: SandboxConfig{
			Timeout:   5 * time.Second,
			Transport: TransportConfig{Type: "local"},
		},
		Server: ServerConfig{
			Port:   8080,
			DBPath: ".autodebug/autodebug.db",
		},
	}
}
