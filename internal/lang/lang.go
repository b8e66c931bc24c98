// Package lang maps file extensions to execution commands and markdown
// fence tags. Resolution is a pure table lookup; unknown extensions are
// reported to the caller, which must fail fast before any sandbox run.
package lang

import (
	"path/filepath"
	"sort"

	"github.com/autodebugdev/autodebug/internal/config"
)

// Language describes how to execute and fence a source file.
type Language struct {
	Name     string `json:"name"`
	Run      string `json:"run"` // command template, ${FILE} is the target path
	FenceTag string `json:"fence_tag"`
}

// builtins is the fixed extension table. Config entries may override
// or extend it.
var builtins = map[string]Language{
	".py":   {Name: "Python", Run: "python3 ${FILE}", FenceTag: "python"},
	".js":   {Name: "JavaScript", Run: "node ${FILE}", FenceTag: "javascript"},
	".java": {Name: "Java", Run: "java ${FILE}", FenceTag: "java"},
	".cpp":  {Name: "C++", Run: "g++ ${FILE}", FenceTag: "cpp"},
	".go":   {Name: "Go", Run: "go run ${FILE}", FenceTag: "go"},
}

// Table resolves file paths to languages.
type Table struct {
	langs map[string]Language
}

// NewTable builds a Table from the built-in entries plus config overrides.
func NewTable(overrides []config.LanguageConfig) *Table {
	langs := make(map[string]Language, len(builtins)+len(overrides))
	for ext, l := range builtins {
		langs[ext] = l
	}
	for _, o := range overrides {
		langs[o.Extension] = Language{
			Name:     o.Name,
			Run:      o.Run,
			FenceTag: o.FenceTag,
		}
	}
	return &Table{langs: langs}
}

// Resolve looks up the language for a file path by its extension.
func (t *Table) Resolve(path string) (Language, bool) {
	l, ok := t.langs[filepath.Ext(path)]
	return l, ok
}

// Supports reports whether the file's extension has a language entry.
func (t *Table) Supports(path string) bool {
	_, ok := t.Resolve(path)
	return ok
}

// Extensions returns all supported extensions in sorted order.
func (t *Table) Extensions() []string {
	exts := make([]string, 0, len(t.langs))
	for ext := range t.langs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Entries returns the full table keyed by extension.
func (t *Table) Entries() map[string]Language {
	out := make(map[string]Language, len(t.langs))
	for ext, l := range t.langs {
		out[ext] = l
	}
	return out
}
