package forecast

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// MethodLinearTrend names the least-squares trend model.
const MethodLinearTrend = "linear_trend"

// linearTrend fits amount = alpha + beta*i over the month index i and
// extrapolates steps months past the end of the series.
func linearTrend(ys []float64, steps int) ([]float64, error) {
	if len(ys) < 2 {
		return nil, errors.New("linear trend needs at least 2 points")
	}

	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	out := make([]float64, steps)
	for i := range out {
		out[i] = alpha + beta*float64(len(ys)+i)
	}
	return out, nil
}
