package chat

import (
	"errors"
	"testing"

	"github.com/autodebugdev/autodebug/internal/lang"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input  string
		action string
	}{
		{"exit", "quit"},
		{"quit", "quit"},
		{"QUIT", "quit"},
		{"/exit", "quit"},
		{"help", "help"},
		{"files", "files"},
		{"sessions", "sessions"},
		{"  sessions 5  ", "sessions"},
	}
	for _, tt := range tests {
		cmd, err := ParseCommand(tt.input)
		if err != nil {
			t.Errorf("ParseCommand(%q): %v", tt.input, err)
			continue
		}
		if cmd.Action != tt.action {
			t.Errorf("ParseCommand(%q) = %s, want %s", tt.input, cmd.Action, tt.action)
		}
	}
}

func TestParseCommandArgs(t *testing.T) {
	cmd, err := ParseCommand("sessions 5")
	if err != nil {
		t.Fatalf("ParseCommand failed: %v", err)
	}
	if len(cmd.Args) != 1 || cmd.Args[0] != "5" {
		t.Errorf("unexpected args: %v", cmd.Args)
	}
}

func TestParseCommandFreeText(t *testing.T) {
	_, err := ParseCommand("fix the crash in @script.py")
	if !errors.Is(err, ErrNotCommand) {
		t.Errorf("expected ErrNotCommand, got %v", err)
	}
}

func TestParseCommandEmpty(t *testing.T) {
	if _, err := ParseCommand("   "); err == nil || errors.Is(err, ErrNotCommand) {
		t.Errorf("expected a distinct error for empty input, got %v", err)
	}
}

func TestExtractTarget(t *testing.T) {
	pattern := FilePattern(lang.NewTable(nil).Extensions())

	tests := []struct {
		text   string
		target string
		ok     bool
	}{
		{"Fix the recursion error in @script.py", "script.py", true},
		{"look at @src/app.js please", "src/app.js", true},
		{"@Main.java crashes on start", "Main.java", true},
		{"@./examples/solver.cpp", "./examples/solver.cpp", true},
		{"something wrong with @cmd/main.go", "cmd/main.go", true},
		{"fix @script.rb", "", false}, // unsupported extension
		{"no file reference here", "", false},
		{"mail me at user@example.com", "", false},
	}
	for _, tt := range tests {
		target, ok := ExtractTarget(tt.text, pattern)
		if ok != tt.ok || target != tt.target {
			t.Errorf("ExtractTarget(%q) = (%q, %v), want (%q, %v)",
				tt.text, target, ok, tt.target, tt.ok)
		}
	}
}
