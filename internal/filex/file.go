// Package filex holds small file system helpers for the editor.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// Info describes a regular file picked by the user.
type Info struct {
	Path string
	Name string
	// Ext is the lower-case extension without the dot.
	Ext  string
	Size int64
}

// Inspect stats path and fails for directories.
func Inspect(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return Info{}, fmt.Errorf("%s is a directory", path)
	}
	return Info{
		Path: path,
		Name: fi.Name(),
		Ext:  strings.ToLower(strings.TrimPrefix(filepath.Ext(fi.Name()), ".")),
		Size: fi.Size(),
	}, nil
}
