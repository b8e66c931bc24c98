package lang

import (
	"testing"

	"github.com/autodebugdev/autodebug/internal/config"
)

func TestResolveBuiltins(t *testing.T) {
	table := NewTable(nil)

	tests := []struct {
		path string
		name string
	}{
		{"script.py", "Python"},
		{"a/b/app.js", "JavaScript"},
		{"Main.java", "Java"},
		{"solver.cpp", "C++"},
		{"main.go", "Go"},
	}
	for _, tt := range tests {
		l, ok := table.Resolve(tt.path)
		if !ok {
			t.Errorf("Resolve(%q): not found", tt.path)
			continue
		}
		if l.Name != tt.name {
			t.Errorf("Resolve(%q) = %s, want %s", tt.path, l.Name, tt.name)
		}
	}
}

func TestResolveUnsupported(t *testing.T) {
	table := NewTable(nil)
	for _, path := range []string{"script.rb", "notes.txt", "README", "archive.py.gz"} {
		if table.Supports(path) {
			t.Errorf("Supports(%q) = true, want false", path)
		}
	}
}

func TestOverrides(t *testing.T) {
	table := NewTable([]config.LanguageConfig{
		{Extension: ".rb", Name: "Ruby", Run: "ruby ${FILE}", FenceTag: "ruby"},
		{Extension: ".py", Name: "Python", Run: "python3.12 ${FILE}", FenceTag: "python"},
	})

	rb, ok := table.Resolve("worker.rb")
	if !ok || rb.Name != "Ruby" {
		t.Errorf("expected Ruby entry, got %+v (ok=%v)", rb, ok)
	}

	py, _ := table.Resolve("script.py")
	if py.Run != "python3.12 ${FILE}" {
		t.Errorf("override did not replace builtin run: %s", py.Run)
	}
}

func TestExtensionsSorted(t *testing.T) {
	exts := NewTable(nil).Extensions()
	if len(exts) != 5 {
		t.Fatalf("expected 5 builtin extensions, got %d", len(exts))
	}
	for i := 1; i < len(exts); i++ {
		if exts[i-1] >= exts[i] {
			t.Errorf("extensions not sorted: %v", exts)
			break
		}
	}
}
