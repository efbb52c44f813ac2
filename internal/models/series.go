package models

// MonthlyTotal is the total spend of one calendar month, keyed "YYYY-MM".
type MonthlyTotal struct {
	Month  string  `json:"date" yaml:"date"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// MonthlySeries is a chronological list of monthly totals.
type MonthlySeries []MonthlyTotal

// ForecastPoint is one predicted month.
type ForecastPoint struct {
	Month     string  `json:"date" yaml:"date"`
	Predicted float64 `json:"predicted" yaml:"predicted"`
}

// ForecastOutcome tags how a forecast call ended.
type ForecastOutcome int

const (
	// OutcomeOK means the forecast (possibly empty for too little data) is valid.
	OutcomeOK ForecastOutcome = iota
	// OutcomeRangeError means a series key was outside the representable date range.
	OutcomeRangeError
	// OutcomeFitError means the forecasting model could not be fitted.
	OutcomeFitError
)

func (o ForecastOutcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRangeError:
		return "range_error"
	case OutcomeFitError:
		return "fit_error"
	default:
		return "unknown"
	}
}

// MarshalText renders the outcome by name in JSON and YAML output.
func (o ForecastOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ForecastResult is the tagged result of a forecast. History is always valid;
// Forecast is empty unless Outcome is OutcomeOK and there was enough data.
type ForecastResult struct {
	History  MonthlySeries   `json:"history" yaml:"history"`
	Forecast []ForecastPoint `json:"forecast" yaml:"forecast"`
	Method   string          `json:"method,omitempty" yaml:"method,omitempty"`
	Outcome  ForecastOutcome `json:"outcome" yaml:"outcome"`
	Err      error           `json:"-" yaml:"-"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewFailedForecast builds a result that keeps the history and reports err.
func NewFailedForecast(history MonthlySeries, outcome ForecastOutcome, err error) ForecastResult {
	return ForecastResult{
		History:  history,
		Forecast: []ForecastPoint{},
		Outcome:  outcome,
		Err:      err,
		Error:    err.Error(),
	}
}
