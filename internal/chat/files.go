package chat

import (
	"os"
	"sort"

	"github.com/autodebugdev/autodebug/internal/lang"
)

// ListFiles returns the debuggable files directly under dir, i.e. those
// whose extension has a language entry. Subdirectories are not walked.
func ListFiles(dir string, table *lang.Table) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if table.Supports(e.Name()) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
