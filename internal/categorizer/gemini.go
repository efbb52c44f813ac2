package categorizer

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/spendlens/internal/aiclient"
)

// GeminiModel classifies text by prompting a Gemini model with the known
// category vocabulary. Answers outside the vocabulary are errors.
type GeminiModel struct {
	generator  aiclient.Generator
	categories []string
}

// NewGeminiModel creates a GeminiModel restricted to categories.
func NewGeminiModel(generator aiclient.Generator, categories []string) *GeminiModel {
	return &GeminiModel{
		generator:  generator,
		categories: append([]string(nil), categories...),
	}
}

// Name returns the model name.
func (m *GeminiModel) Name() string { return "gemini" }

// Predict asks the model for exactly one category name.
func (m *GeminiModel) Predict(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(`Categorize the following personal expense:
%s

Assign it to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`, text, strings.Join(m.categories, ", "))

	response, err := m.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return m.matchCategory(response)
}

func (m *GeminiModel) matchCategory(response string) (string, error) {
	answer := ""
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(line), "category:") {
			answer = strings.TrimSpace(line[len("category:"):])
			break
		}
	}
	if answer == "" {
		answer = strings.TrimSpace(response)
	}
	answer = strings.Trim(answer, " .*\"'[]")

	for _, c := range m.categories {
		if strings.EqualFold(answer, c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", answer)
}
