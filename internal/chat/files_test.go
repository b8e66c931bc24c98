package chat

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/autodebugdev/autodebug/internal/lang"
)

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.py", "a.js", "notes.txt", "x.rb"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.py"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := ListFiles(dir, lang.NewTable(nil))
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}

	want := []string{"a.js", "b.py"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ListFiles = %v, want %v", files, want)
	}
}

func TestListFilesMissingDir(t *testing.T) {
	if _, err := ListFiles(filepath.Join(t.TempDir(), "nope"), lang.NewTable(nil)); err == nil {
		t.Error("expected error for missing directory")
	}
}
