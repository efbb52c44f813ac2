package forecast

import (
	"sort"
	"strings"
	"time"

	"fjacquet/spendlens/internal/apperror"
	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/models"
)

// normalize merges duplicate month keys, orders the series chronologically and
// parses every key. The merged history is returned even when a key is invalid.
func normalize(series models.MonthlySeries) (models.MonthlySeries, []time.Time, error) {
	totals := make(map[string]float64, len(series))
	for _, point := range series {
		totals[strings.TrimSpace(point.Month)] += point.Amount
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	history := make(models.MonthlySeries, 0, len(keys))
	for _, key := range keys {
		history = append(history, models.MonthlyTotal{Month: key, Amount: totals[key]})
	}

	months := make([]time.Time, 0, len(keys))
	for _, key := range keys {
		month, err := dateutils.ParseYearMonth(key)
		if err != nil {
			return history, nil, &apperror.RangeError{Key: key, Reason: err.Error()}
		}
		months = append(months, month)
	}
	return history, months, nil
}

// values extracts the amounts of a normalized history.
func values(history models.MonthlySeries) []float64 {
	out := make([]float64, len(history))
	for i, point := range history {
		out[i] = point.Amount
	}
	return out
}

// label builds forecast points for predictions following last.
func label(last time.Time, predictions []float64) []models.ForecastPoint {
	points := make([]models.ForecastPoint, len(predictions))
	for i, p := range predictions {
		points[i] = models.ForecastPoint{
			Month:     dateutils.FormatYearMonth(dateutils.AddMonths(last, i+1)),
			Predicted: p,
		}
	}
	return points
}
