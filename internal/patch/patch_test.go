package patch

import (
	"strings"
	"testing"
)

func TestUnifiedIdenticalInputs(t *testing.T) {
	src := "print(1)\nprint(2)\n"
	diff, err := Unified(src, src, "script.py")
	if err != nil {
		t.Fatalf("Unified failed: %v", err)
	}
	if diff != "" {
		t.Errorf("expected empty diff for identical inputs, got %q", diff)
	}
}

func TestUnifiedChangedLine(t *testing.T) {
	original := "data = [1, 2]\nprint(data[5])\n"
	fixed := "data = [1, 2]\nprint(data[1])\n"

	diff, err := Unified(original, fixed, "script.py")
	if err != nil {
		t.Fatalf("Unified failed: %v", err)
	}
	if !strings.Contains(diff, "original_script.py") || !strings.Contains(diff, "fixed_script.py") {
		t.Errorf("diff missing file labels:\n%s", diff)
	}
	if !strings.Contains(diff, "-print(data[5])") {
		t.Errorf("diff missing removed line:\n%s", diff)
	}
	if !strings.Contains(diff, "+print(data[1])") {
		t.Errorf("diff missing added line:\n%s", diff)
	}
}

func TestUnifiedFromEmpty(t *testing.T) {
	diff, err := Unified("", "print('hi')\n", "new.py")
	if err != nil {
		t.Fatalf("Unified failed: %v", err)
	}
	if !strings.Contains(diff, "+print('hi')") {
		t.Errorf("diff missing added line:\n%s", diff)
	}
}
