// Package anomaly flags expenses that are unusually high for their category.
package anomaly

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Default tuning.
const (
	DefaultMinHistory    = 5
	DefaultZThreshold    = 3.0
	DefaultIQRMultiplier = 1.5
)

// Assessment is the full outcome of both outlier tests.
type Assessment struct {
	Amount      float64 `json:"amount" yaml:"amount"`
	Points      int     `json:"points" yaml:"points"`
	Sufficient  bool    `json:"sufficient_history" yaml:"sufficient_history"`
	Mean        float64 `json:"mean" yaml:"mean"`
	StdDev      float64 `json:"std_dev" yaml:"std_dev"`
	ZScore      float64 `json:"z_score" yaml:"z_score"`
	P25         float64 `json:"p25" yaml:"p25"`
	P75         float64 `json:"p75" yaml:"p75"`
	UpperBound  float64 `json:"upper_bound" yaml:"upper_bound"`
	ZScoreFlag  bool    `json:"z_score_flag" yaml:"z_score_flag"`
	IQRFlag     bool    `json:"iqr_flag" yaml:"iqr_flag"`
	IsAnomalous bool    `json:"is_anomalous" yaml:"is_anomalous"`
}

// Detector runs the z-score and IQR tests. It is stateless.
type Detector struct {
	minHistory    int
	zThreshold    float64
	iqrMultiplier float64
	currency      string
}

// Option configures a Detector.
type Option func(*Detector)

// WithMinHistory sets the minimum number of historical points.
func WithMinHistory(n int) Option {
	return func(d *Detector) {
		if n > 1 {
			d.minHistory = n
		}
	}
}

// WithZThreshold sets the z-score cutoff.
func WithZThreshold(z float64) Option {
	return func(d *Detector) {
		if z > 0 {
			d.zThreshold = z
		}
	}
}

// WithIQRMultiplier sets the IQR fence multiplier.
func WithIQRMultiplier(k float64) Option {
	return func(d *Detector) {
		if k > 0 {
			d.iqrMultiplier = k
		}
	}
}

// WithCurrencySymbol sets the symbol used in warning messages.
func WithCurrencySymbol(symbol string) Option {
	return func(d *Detector) { d.currency = symbol }
}

// NewDetector creates a Detector with the default tuning.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		minHistory:    DefaultMinHistory,
		zThreshold:    DefaultZThreshold,
		iqrMultiplier: DefaultIQRMultiplier,
		currency:      "₹",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// IsAnomalous reports whether amount is an outlier against history.
func (d *Detector) IsAnomalous(history []float64, amount float64) bool {
	return d.Evaluate(history, amount).IsAnomalous
}

// Evaluate runs both tests. With fewer than the minimum number of points, or a
// non-finite amount, nothing is flagged.
func (d *Detector) Evaluate(history []float64, amount float64) Assessment {
	a := Assessment{Amount: amount, Points: len(history)}
	if len(history) < d.minHistory || !isFinite(amount) {
		return a
	}
	for _, v := range history {
		if !isFinite(v) {
			return a
		}
	}
	a.Sufficient = true

	a.Mean, a.StdDev = stat.PopMeanStdDev(history, nil)
	if a.StdDev > 0 {
		a.ZScore = (amount - a.Mean) / a.StdDev
		a.ZScoreFlag = math.Abs(a.ZScore) > d.zThreshold
	}

	sorted := slices.Clone(history)
	slices.Sort(sorted)
	a.P25 = Percentile(sorted, 25)
	a.P75 = Percentile(sorted, 75)
	a.UpperBound = a.P75 + d.iqrMultiplier*(a.P75-a.P25)
	a.IQRFlag = amount > a.UpperBound

	a.IsAnomalous = a.ZScoreFlag || a.IQRFlag
	return a
}

// Message returns the user-facing warning for an anomalous expense.
func (d *Detector) Message(category string, amount float64) string {
	return fmt.Sprintf("⚠️ This %s%.2f expense in %s is unusually high compared to your recent history!",
		d.currency, amount, category)
}

// Check returns the warning when amount is anomalous, otherwise "".
func (d *Detector) Check(history []float64, category string, amount float64) string {
	if !d.IsAnomalous(history, amount) {
		return ""
	}
	return d.Message(category, amount)
}

// Percentile returns the p-th percentile (0..100) of sorted data by linear
// interpolation between the closest ranks, rank = p/100 * (n-1).
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	if lo >= n-1 {
		return sorted[n-1]
	}
	if lo < 0 {
		return sorted[0]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
