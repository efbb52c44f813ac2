package entities

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/spendlens/internal/aiclient"
	"fjacquet/spendlens/internal/apperror"
)

// Entity labels recognised by entity models.
const (
	LabelMoney  = "MONEY"
	LabelDate   = "DATE"
	LabelOrg    = "ORG"
	LabelPerson = "PERSON"
)

// Entity is a labelled span of the input text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EntityModel finds labelled spans in text.
type EntityModel interface {
	ExtractEntities(ctx context.Context, text string) ([]Entity, error)
	Name() string
}

// UnavailableModel is the EntityModel used when no model is configured.
type UnavailableModel struct{}

// ExtractEntities always fails with apperror.ErrModelUnavailable.
func (UnavailableModel) ExtractEntities(ctx context.Context, text string) ([]Entity, error) {
	return nil, apperror.ErrModelUnavailable
}

// Name returns the model name.
func (UnavailableModel) Name() string { return "unavailable" }

// GeminiModel recognises entities by prompting a Gemini model for a JSON list.
type GeminiModel struct {
	generator aiclient.Generator
}

// NewGeminiModel creates a GeminiModel.
func NewGeminiModel(generator aiclient.Generator) *GeminiModel {
	return &GeminiModel{generator: generator}
}

// Name returns the model name.
func (m *GeminiModel) Name() string { return "gemini" }

const entityPrompt = `Find named entities in the following expense message.
Return only a JSON array of objects with "text" and "label" fields, in the order
they appear. Use label MONEY for amounts, DATE for dates, ORG for shops or
companies and PERSON for people. Copy "text" exactly from the message.
Return [] if there are none.

Message: %s`

// ExtractEntities asks the model for entities. Spans that do not occur in text
// or carry an unknown label are dropped.
func (m *GeminiModel) ExtractEntities(ctx context.Context, text string) ([]Entity, error) {
	response, err := m.generator.Generate(ctx, fmt.Sprintf(entityPrompt, text))
	if err != nil {
		return nil, err
	}

	var raw []Entity
	if err := json.Unmarshal([]byte(aiclient.StripCodeFence(response)), &raw); err != nil {
		return nil, fmt.Errorf("invalid entity response: %w", err)
	}

	out := make([]Entity, 0, len(raw))
	for _, e := range raw {
		label := strings.ToUpper(strings.TrimSpace(e.Label))
		span := strings.TrimSpace(e.Text)
		if span == "" || !strings.Contains(text, span) {
			continue
		}
		switch label {
		case LabelMoney, LabelDate, LabelOrg, LabelPerson:
			out = append(out, Entity{Text: span, Label: label})
		}
	}
	return out, nil
}
