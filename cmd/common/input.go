// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fjacquet/spendlens/internal/validation"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ReadInput decodes a JSON or YAML document from path into v. An empty path or
// "-" reads from stdin.
func ReadInput(path string, stdin io.Reader, v interface{}) error {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		if err := validation.IsValidPath(path); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		data, err = os.ReadFile(path) // #nosec G304 -- user-supplied input file
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}
	return nil
}

// ParseAmounts parses a comma-separated list of amounts such as "120,80.5,99".
func ParseAmounts(list string) ([]float64, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return []float64{}, nil
	}
	parts := strings.Split(list, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

// ToDecimals converts decoded amounts keyed by category.
func ToDecimals(m map[string]float64) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = decimal.NewFromFloat(v)
	}
	return out
}

// JoinArgs rebuilds free text passed as positional arguments.
func JoinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
