// Package validation checks user-supplied paths, formats and file modes
// before any work starts.
package validation

import (
	"fmt"
	"os"
	"strings"
)

// IsValidPath checks if a given path exists and is a regular file or a directory.
func IsValidPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "json", "yaml", "yml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'json', 'yaml'", format)
	}
}

// IsValidFilePermissions reports modes that let other users read a file, such
// as a config file holding an API key.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.String())
	}
	return nil
}
