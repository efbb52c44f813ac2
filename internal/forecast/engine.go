// Package forecast projects monthly spending totals.
package forecast

import (
	"context"
	"errors"
	"time"

	"fjacquet/spendlens/internal/apperror"
	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
)

// DefaultARIMAMinPoints is the shortest series fitted with ARIMA.
const DefaultARIMAMinPoints = 6

// Engine chooses between ARIMA and a linear trend based on history length.
// It is safe for concurrent use.
type Engine struct {
	arimaMinPoints int
	fitTimeout     time.Duration
	logger         logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithARIMAMinPoints sets the shortest series fitted with ARIMA.
func WithARIMAMinPoints(n int) Option {
	return func(e *Engine) {
		if n >= 3 {
			e.arimaMinPoints = n
		}
	}
}

// WithFitTimeout bounds a single model fit. Zero disables the bound.
func WithFitTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.fitTimeout = d
		}
	}
}

// NewEngine creates an Engine.
func NewEngine(logger logging.Logger, opts ...Option) *Engine {
	e := &Engine{
		arimaMinPoints: DefaultARIMAMinPoints,
		logger:         logging.OrDefault(logger),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Forecast projects monthsAhead monthly totals after the last month of series.
// It never returns an error directly; failures are reported in the result.
func (e *Engine) Forecast(ctx context.Context, series models.MonthlySeries, monthsAhead int) models.ForecastResult {
	if len(series) == 0 {
		return models.ForecastResult{History: models.MonthlySeries{}, Forecast: []models.ForecastPoint{}}
	}

	history, months, err := normalize(series)
	if err != nil {
		e.logger.Warn("Forecast series has an invalid month key",
			logging.Field{Key: logging.FieldError, Value: err})
		return models.NewFailedForecast(history, models.OutcomeRangeError, err)
	}

	result := models.ForecastResult{History: history, Forecast: []models.ForecastPoint{}}
	if len(history) < 2 || monthsAhead <= 0 {
		return result
	}

	ys := values(history)
	method := MethodLinearTrend
	if len(ys) >= e.arimaMinPoints {
		method = MethodARIMA
	}
	result.Method = method

	start := time.Now()
	predictions, err := e.fit(ctx, method, ys, monthsAhead)
	if err == nil && !allFinite(predictions) {
		err = errors.New("non-finite prediction")
	}
	if err != nil {
		fitErr := &apperror.FitError{Model: method, Err: err}
		e.logger.Warn("Forecast model fit failed",
			logging.Field{Key: logging.FieldModel, Value: method},
			logging.Field{Key: logging.FieldPoints, Value: len(ys)},
			logging.Field{Key: logging.FieldError, Value: err})
		failed := models.NewFailedForecast(history, models.OutcomeFitError, fitErr)
		failed.Method = method
		return failed
	}

	e.logger.Debug("Forecast model fitted",
		logging.Field{Key: logging.FieldModel, Value: method},
		logging.Field{Key: logging.FieldPoints, Value: len(ys)},
		logging.Field{Key: logging.FieldMonths, Value: monthsAhead},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})

	result.Forecast = label(months[len(months)-1], predictions)
	return result
}

func (e *Engine) fit(ctx context.Context, method string, ys []float64, steps int) ([]float64, error) {
	if !allFinite(ys) {
		return nil, errors.New("series contains non-finite amounts")
	}
	if method == MethodLinearTrend {
		return linearTrend(ys, steps)
	}

	if e.fitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.fitTimeout)
		defer cancel()
	}
	fit, err := fitARIMA(ctx, ys)
	if err != nil {
		return nil, err
	}
	return fit.forecast(ys, steps), nil
}

// ProjectMonthTotal estimates the total spend of the month containing now. It
// uses the one-month forecast of series when one is available and otherwise
// extrapolates the daily run rate of spentSoFar.
func (e *Engine) ProjectMonthTotal(ctx context.Context, series models.MonthlySeries, spentSoFar float64, now time.Time) float64 {
	result := e.Forecast(ctx, series, 1)
	if result.Outcome == models.OutcomeOK && len(result.Forecast) > 0 {
		return result.Forecast[0].Predicted
	}

	daysPassed := max(1, now.Day())
	daysInMonth := dateutils.DaysInMonth(now.Year(), now.Month())
	return spentSoFar / float64(daysPassed) * float64(daysInMonth)
}
