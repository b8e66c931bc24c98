// Package patch renders unified diffs between source snapshots. The
// output is informational only: the fixed file is always written in
// full, never reconstructed from a patch.
package patch

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Unified returns the unified diff between the original and fixed
// source texts. Identical inputs yield an empty string.
func Unified(original, fixed, name string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(fixed),
		FromFile: "original_" + name,
		ToFile:   "fixed_" + name,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("patch: render diff: %w", err)
	}
	return text, nil
}
