package categorizer

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"fjacquet/spendlens/internal/models"

	"github.com/jbrukh/bayesian"
)

// BayesModel is a naive Bayes category model trained once from labelled samples.
// It is read-only after construction and safe for concurrent use.
type BayesModel struct {
	classifier *bayesian.Classifier
	vocabulary map[string]struct{}
}

// NewBayesModel trains a model from samples. At least two distinct categories
// are required.
func NewBayesModel(samples []models.TrainingSample) (*BayesModel, error) {
	var classes []bayesian.Class
	seen := make(map[string]bool)
	for _, s := range samples {
		name := models.NormalizeCategory(s.Category)
		if !seen[name] {
			seen[name] = true
			classes = append(classes, bayesian.Class(name))
		}
	}
	if len(classes) < 2 {
		return nil, fmt.Errorf("bayes model needs at least 2 categories, got %d", len(classes))
	}

	classifier := bayesian.NewClassifier(classes...)
	vocabulary := make(map[string]struct{})
	for _, s := range samples {
		tokens := Tokenize(s.Text)
		if len(tokens) == 0 {
			continue
		}
		classifier.Learn(tokens, bayesian.Class(models.NormalizeCategory(s.Category)))
		for _, tok := range tokens {
			vocabulary[tok] = struct{}{}
		}
	}

	return &BayesModel{classifier: classifier, vocabulary: vocabulary}, nil
}

// Name returns the model name.
func (m *BayesModel) Name() string { return "bayes" }

// Predict returns the most likely category. It fails when none of the text's
// tokens were seen in training or when the top scores tie.
func (m *BayesModel) Predict(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var known []string
	for _, tok := range Tokenize(text) {
		if _, ok := m.vocabulary[tok]; ok {
			known = append(known, tok)
		}
	}
	if len(known) == 0 {
		return "", fmt.Errorf("no known tokens in text")
	}

	_, inx, strict := m.classifier.LogScores(known)
	if !strict {
		return "", fmt.Errorf("ambiguous prediction")
	}
	return string(m.classifier.Classes[inx]), nil
}

// Tokenize lower-cases text and splits it into letter/digit runs.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
