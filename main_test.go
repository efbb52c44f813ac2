package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/spendlens/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetArgs(args)
	require.NoError(t, root.Cmd.Execute())
	return out.Bytes()
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "log:\n  level: error\ncategories:\n  file: " + filepath.Join(dir, "categories.yaml") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestExecute_ExtractThenSummary(t *testing.T) {
	cfg := writeConfig(t)
	ledger := filepath.Join(t.TempDir(), "expenses.csv")

	var extracted struct {
		Found   bool                   `json:"found"`
		Expense map[string]interface{} `json:"expense"`
	}
	out := execute(t, "extract", "spent 1000 on shopping", "--ledger", ledger, "--config", cfg, "--format", "json")
	require.NoError(t, json.Unmarshal(out, &extracted))
	assert.True(t, extracted.Found)
	assert.Equal(t, "Shopping", extracted.Expense["category"])
	assert.FileExists(t, ledger)

	var summarized struct {
		Summary map[string]interface{} `json:"summary"`
		Message string                 `json:"message"`
	}
	out = execute(t, "summary", "--ledger", ledger, "--budget", "800", "--config", cfg, "--format", "json")
	require.NoError(t, json.Unmarshal(out, &summarized))
	assert.Equal(t, "over_budget", summarized.Summary["alert"])
	assert.Equal(t, true, summarized.Summary["is_over_budget"])
	assert.Contains(t, summarized.Message, "exceeded your monthly budget")
}

func TestExecute_OptimizeYAML(t *testing.T) {
	cfg := writeConfig(t)
	input := filepath.Join(t.TempDir(), "budgets.yaml")
	doc := "budgets:\n  Food: 1000\n  Transport: 500\nspent:\n  Food: 1200\n  Transport: 100\n"
	require.NoError(t, os.WriteFile(input, []byte(doc), 0600))

	var result struct {
		Optimization struct {
			Status  string `yaml:"status"`
			Summary string `yaml:"summary"`
		} `yaml:"optimization"`
	}
	out := execute(t, "optimize", "--input", input, "--max-reduction", "0.3", "--config", cfg, "--format", "yaml")
	require.NoError(t, yaml.Unmarshal(out, &result))
	assert.Equal(t, "redistributed", result.Optimization.Status)
	assert.Contains(t, result.Optimization.Summary, "Food")
}
