// Package fileutils provides the file operations shared by the ledger and
// statement import code.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/spendlens/internal/models"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// CreateFile creates or truncates a file for writing, creating its parent
// directories.
func CreateFile(filePath string) (*os.File, error) {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}

	file, err := os.Create(filePath) // #nosec G304 -- user-supplied output path
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

// ListFilesWithExtension returns the files directly inside dirPath whose
// extension matches extension case-insensitively, sorted by name.
func ListFilesWithExtension(dirPath, extension string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), extension) {
			continue
		}
		files = append(files, filepath.Join(dirPath, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
