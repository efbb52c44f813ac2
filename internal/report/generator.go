// Package report renders command results as JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/spendlens/internal/logging"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Generator renders results in a fixed format.
type Generator struct {
	format string
	logger logging.Logger
}

// NewGenerator creates a Generator for format ("json" or "yaml", case-insensitive).
func NewGenerator(format string, logger logging.Logger) (*Generator, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "":
		f = FormatJSON
	case FormatJSON, FormatYAML:
	case "yml":
		f = FormatYAML
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
	return &Generator{
		format: f,
		logger: logging.OrDefault(logger).WithField(logging.FieldComponent, "ReportGenerator"),
	}, nil
}

// Format returns the normalized output format.
func (g *Generator) Format() string {
	return g.format
}

// Generate renders v.
func (g *Generator) Generate(v interface{}) ([]byte, error) {
	switch g.format {
	case FormatYAML:
		return g.generateYAML(v)
	default:
		return g.generateJSON(v)
	}
}

// Write renders v to w followed by a newline when needed.
func (g *Generator) Write(w io.Writer, v interface{}) error {
	out, err := g.Generate(v)
	if err != nil {
		return err
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}

func (g *Generator) generateJSON(v interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *Generator) generateYAML(v interface{}) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}
