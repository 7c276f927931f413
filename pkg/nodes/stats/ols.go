// Package stats provides the statistics demo nodes.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// InterceptTerm is the name of the intercept row in a fit summary.
const InterceptTerm = "const"

// Confidence is the level of the reported confidence intervals.
const Confidence = 0.95

// ErrSingular is returned when the design matrix has no unique solution.
var ErrSingular = errors.New("design matrix is singular")

// Fit is the summary of an ordinary least squares fit with an intercept.
// All slices are indexed by term; the intercept comes first.
type Fit struct {
	Terms        []string
	Coefficients []float64
	StdErrors    []float64
	TValues      []float64
	PValues      []float64
	ConfLower    []float64
	ConfUpper    []float64

	Observations int
	DF           int
	RSS          float64
}

// FitOLS regresses y on the columns of x plus an intercept.
// x is row-major with one row per observation; names labels its columns.
func FitOLS(x [][]float64, y []float64, names []string) (*Fit, error) {
	n := len(y)
	if len(x) != n {
		return nil, fmt.Errorf("got %d feature rows for %d observations", len(x), n)
	}
	p := len(names) + 1
	if n <= p {
		return nil, fmt.Errorf("need more than %d observations to fit %d terms, got %d", p, p, n)
	}

	design := mat.NewDense(n, p, nil)
	for i, row := range x {
		if len(row) != p-1 {
			return nil, fmt.Errorf("observation %d has %d features, expected %d", i, len(row), p-1)
		}
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	target := mat.NewVecDense(n, append([]float64(nil), y...))

	var xtx mat.Dense
	xtx.Mul(design.T(), design)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	var xty, beta mat.VecDense
	xty.MulVec(design.T(), target)
	beta.MulVec(&inv, &xty)

	var fitted, resid mat.VecDense
	fitted.MulVec(design, &beta)
	resid.SubVec(target, &fitted)
	rss := mat.Dot(&resid, &resid)

	df := n - p
	sigma2 := rss / float64(df)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	crit := dist.Quantile(1 - (1-Confidence)/2)

	fit := &Fit{
		Terms:        append([]string{InterceptTerm}, names...),
		Coefficients: make([]float64, p),
		StdErrors:    make([]float64, p),
		TValues:      make([]float64, p),
		PValues:      make([]float64, p),
		ConfLower:    make([]float64, p),
		ConfUpper:    make([]float64, p),
		Observations: n,
		DF:           df,
		RSS:          rss,
	}
	for j := range p {
		b := beta.AtVec(j)
		se := math.Sqrt(sigma2 * inv.At(j, j))
		t := b / se
		fit.Coefficients[j] = b
		fit.StdErrors[j] = se
		fit.TValues[j] = t
		fit.PValues[j] = 2 * dist.Survival(math.Abs(t))
		fit.ConfLower[j] = b - crit*se
		fit.ConfUpper[j] = b + crit*se
	}
	return fit, nil
}
