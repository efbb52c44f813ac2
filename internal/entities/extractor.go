// Package entities pulls an amount, a date and a merchant out of free text.
// An optional entity model is consulted first; deterministic keyword and regex
// rules are the fallback.
package entities

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"fjacquet/spendlens/internal/apperror"
	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/logging"

	"github.com/shopspring/decimal"
)

var (
	amountRegex      = regexp.MustCompile(`\d[\d,]*\.?\d*`)
	nonAmountRegex   = regexp.MustCompile(`[^\d.]`)
	numericDateRegex = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?`)
	merchantRegex    = regexp.MustCompile(`\b(at|from|in)\s+([A-Z][\p{L}\p{N}_\s'-]+)`)
)

// Analysis holds the extracted parts of a message. Date and Merchant are only
// filled when an amount was found.
type Analysis struct {
	Amount   *decimal.Decimal
	Date     *time.Time
	Merchant string
}

// Extractor extracts entities from text. It is safe for concurrent use.
type Extractor struct {
	model  EntityModel
	now    func() time.Time
	logger logging.Logger
}

// NewExtractor creates an Extractor. A nil model becomes UnavailableModel and a
// nil clock becomes time.Now in UTC.
func NewExtractor(model EntityModel, now func() time.Time, logger logging.Logger) *Extractor {
	if model == nil {
		model = UnavailableModel{}
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Extractor{model: model, now: now, logger: logging.OrDefault(logger)}
}

// Analyze runs the model once and extracts amount, date and merchant. When no
// amount is found the other parts are not computed.
func (e *Extractor) Analyze(ctx context.Context, text string) Analysis {
	if strings.TrimSpace(text) == "" {
		return Analysis{}
	}

	ents := e.entities(ctx, text)
	amount := amountFrom(ents, text)
	if amount == nil {
		return Analysis{}
	}

	return Analysis{
		Amount:   amount,
		Date:     dateFrom(ents, text, e.now()),
		Merchant: merchantFrom(ents, text),
	}
}

// Amount returns the first amount in text, or nil when there is none.
func (e *Extractor) Amount(ctx context.Context, text string) *decimal.Decimal {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return amountFrom(e.entities(ctx, text), text)
}

// Date returns the expense date mentioned in text, or nil.
func (e *Extractor) Date(ctx context.Context, text string) *time.Time {
	return dateFrom(e.entities(ctx, text), text, e.now())
}

// Merchant returns the merchant named in text, or "".
func (e *Extractor) Merchant(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return merchantFrom(e.entities(ctx, text), text)
}

// entities calls the model; failures are logged and yield no entities.
func (e *Extractor) entities(ctx context.Context, text string) []Entity {
	ents, err := e.model.ExtractEntities(ctx, text)
	if err == nil {
		return ents
	}

	err = &apperror.ModelError{Model: e.model.Name(), Err: err}
	if errors.Is(err, apperror.ErrModelUnavailable) {
		return nil
	}
	e.logger.WithError(err).Warn("Entity model failed, using rule-based extraction")
	return nil
}

func amountFrom(ents []Entity, text string) *decimal.Decimal {
	for _, ent := range ents {
		if ent.Label != LabelMoney {
			continue
		}
		if d, ok := parseAmount(nonAmountRegex.ReplaceAllString(ent.Text, "")); ok {
			return &d
		}
	}

	match := amountRegex.FindString(text)
	if match == "" {
		return nil
	}
	if d, ok := parseAmount(strings.ReplaceAll(match, ",", "")); ok {
		return &d
	}
	return nil
}

func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func dateFrom(ents []Entity, text string, now time.Time) *time.Time {
	lower := strings.ToLower(strings.TrimSpace(text))

	switch {
	case strings.Contains(lower, "yesterday"):
		return timePtr(now.AddDate(0, 0, -1))
	case strings.Contains(lower, "today"):
		return timePtr(now)
	case strings.Contains(lower, "last week"):
		return timePtr(now.AddDate(0, 0, -7))
	}

	for _, ent := range ents {
		if ent.Label != LabelDate {
			continue
		}
		parsed, err := dateutils.ParseFuzzy(ent.Text, now)
		if err == nil && dateutils.IsPlausibleExpenseYear(parsed, now) {
			return &parsed
		}
	}

	if match := numericDateRegex.FindString(lower); match != "" {
		parsed, err := dateutils.ParseDayFirst(match, now)
		if err == nil && dateutils.IsPlausibleExpenseYear(parsed, now) {
			return &parsed
		}
	}

	return nil
}

func merchantFrom(ents []Entity, text string) string {
	for _, ent := range ents {
		if ent.Label == LabelOrg || ent.Label == LabelPerson {
			if name := strings.TrimSpace(ent.Text); name != "" {
				return name
			}
		}
	}

	if m := merchantRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[2])
	}
	return ""
}

func timePtr(t time.Time) *time.Time {
	return &t
}
