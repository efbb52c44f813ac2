// Package aiclient wraps the Gemini API behind a small text-generation interface
// shared by the category and entity models.
package aiclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/spendlens/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("empty response from model")

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Options configures a Gemini generator.
type Options struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
	Timeout           time.Duration
}

// GeminiGenerator calls the Gemini API.
type GeminiGenerator struct {
	model     *genai.GenerativeModel
	modelName string
	logger    logging.Logger
}

// NewGeminiGenerator creates a Gemini client. The returned Generator applies the
// configured rate limit and per-request timeout. The returned func releases
// the client.
func NewGeminiGenerator(ctx context.Context, opts Options, logger logging.Logger) (Generator, func() error, error) {
	if opts.APIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	if opts.Model == "" {
		return nil, nil, fmt.Errorf("no Gemini model configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := &GeminiGenerator{
		model:     client.GenerativeModel(opts.Model),
		modelName: opts.Model,
		logger:    logging.OrDefault(logger),
	}

	var gen Generator = g
	gen = WithTimeout(gen, opts.Timeout)
	gen = WithRateLimit(gen, opts.RequestsPerMinute)
	return gen, client.Close, nil
}

// Generate sends prompt to the model and returns the concatenated text parts.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	text, err := ResponseText(resp)
	g.logger.Debug("Gemini request completed",
		logging.Field{Key: logging.FieldModel, Value: g.modelName},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start)})
	return text, err
}

// ResponseText extracts the text of the first candidate.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

// WithTimeout bounds each call to next by timeout. A non-positive timeout
// returns next unchanged.
func WithTimeout(next Generator, timeout time.Duration) Generator {
	if timeout <= 0 {
		return next
	}
	return GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return next.Generate(ctx, prompt)
	})
}

// WithRateLimit spaces calls to next so that at most requestsPerMinute are made
// per minute. Waiting honours ctx. A non-positive rate returns next unchanged.
func WithRateLimit(next Generator, requestsPerMinute int) Generator {
	if requestsPerMinute <= 0 {
		return next
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	return GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		if err := limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
		return next.Generate(ctx, prompt)
	})
}

// StripCodeFence removes a surrounding Markdown code fence, which models often
// add around JSON answers.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
