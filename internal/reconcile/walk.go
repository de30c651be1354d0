package reconcile

import (
	"os"
	"path/filepath"
)

// ListFiles returns every regular file below root using an explicit stack.
// Order is unspecified. Unreadable subdirectories are skipped; an unreadable
// root is an error.
func ListFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var files []string
	stack := []string{}
	push := func(dir string, entries []os.DirEntry) {
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			switch {
			case e.IsDir():
				stack = append(stack, path)
			case e.Type().IsRegular():
				files = append(files, path)
			}
		}
	}
	push(root, entries)
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sub, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		push(dir, sub)
	}
	return files, nil
}
