package page

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DescriptionError is returned when a page's UI description cannot be
// found or loaded.
type DescriptionError struct {
	File     string
	Searched []string
	Err      error
}

func (e *DescriptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to load UI description %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("UI description %s not found in %s", e.File, strings.Join(e.Searched, ", "))
}

func (e *DescriptionError) Unwrap() error {
	return e.Err
}

// ResolveDescription returns the first dirs/name that exists as a regular
// file.
func ResolveDescription(name string, dirs []string) (string, error) {
	searched := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, name)
		searched = append(searched, path)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", &DescriptionError{File: name, Searched: searched}
}
