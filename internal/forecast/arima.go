package forecast

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// MethodARIMA names the ARIMA(1,1,1) model.
const MethodARIMA = "arima(1,1,1)"

const maxFuncEvaluations = 2000

var errTooShort = errors.New("series too short after differencing")

// arimaFit holds the fitted ARIMA(1,1,1) coefficients on the differenced series.
type arimaFit struct {
	phi   float64
	theta float64
	sse   float64
}

// residuals returns the conditional residuals of d_t = phi*d_{t-1} + e_t + theta*e_{t-1}
// with the first residual fixed at zero.
func residuals(diffs []float64, phi, theta float64) []float64 {
	e := make([]float64, len(diffs))
	for t := 1; t < len(diffs); t++ {
		e[t] = diffs[t] - phi*diffs[t-1] - theta*e[t-1]
	}
	return e
}

func sumOfSquares(e []float64) float64 {
	var s float64
	for _, v := range e {
		s += v * v
	}
	return s
}

func difference(ys []float64) []float64 {
	d := make([]float64, len(ys)-1)
	for i := 1; i < len(ys); i++ {
		d[i-1] = ys[i] - ys[i-1]
	}
	return d
}

// fitARIMA estimates phi and theta by conditional sum of squares. Both are
// mapped through tanh so the search stays stationary and invertible.
func fitARIMA(ctx context.Context, ys []float64) (arimaFit, error) {
	if len(ys) < 3 {
		return arimaFit{}, errTooShort
	}
	if err := ctx.Err(); err != nil {
		return arimaFit{}, err
	}
	diffs := difference(ys)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if ctx.Err() != nil {
				return math.Inf(1)
			}
			return sumOfSquares(residuals(diffs, math.Tanh(x[0]), math.Tanh(x[1])))
		},
	}

	init := []float64{startingPhi(diffs), 0}
	settings := &optimize.Settings{FuncEvaluations: maxFuncEvaluations}
	result, err := optimize.Minimize(problem, init, settings, &optimize.NelderMead{})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return arimaFit{}, ctxErr
	}
	// Hitting the evaluation limit still leaves a usable location.
	if result == nil || len(result.X) != 2 {
		if err == nil {
			err = errors.New("optimizer returned no location")
		}
		return arimaFit{}, err
	}

	fit := arimaFit{phi: math.Tanh(result.X[0]), theta: math.Tanh(result.X[1]), sse: result.F}
	if !isFinite(fit.phi) || !isFinite(fit.theta) {
		return arimaFit{}, errors.New("optimizer diverged")
	}
	return fit, nil
}

// startingPhi seeds the search with the lag-1 autocorrelation of the differences.
func startingPhi(diffs []float64) float64 {
	if len(diffs) < 3 {
		return 0
	}
	r := stat.Correlation(diffs[1:], diffs[:len(diffs)-1], nil)
	if !isFinite(r) {
		return 0
	}
	return math.Atanh(math.Max(-0.9, math.Min(0.9, r)))
}

// forecast integrates steps predicted differences back onto the last level.
func (f arimaFit) forecast(ys []float64, steps int) []float64 {
	diffs := difference(ys)
	e := residuals(diffs, f.phi, f.theta)

	level := ys[len(ys)-1]
	d := f.phi*diffs[len(diffs)-1] + f.theta*e[len(e)-1]

	out := make([]float64, steps)
	for h := range out {
		if h > 0 {
			d = f.phi * d
		}
		level += d
		out[h] = level
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(vs []float64) bool {
	for _, v := range vs {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
