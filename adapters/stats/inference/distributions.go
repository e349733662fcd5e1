package inference

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TwoSidedTPValue returns P(|T| >= |t|) for Student's t with df degrees of freedom.
// Undefined inputs yield NaN rather than a fabricated p-value.
func TwoSidedTPValue(t, df float64) float64 {
	if math.IsNaN(t) || math.IsNaN(df) || df <= 0 {
		return math.NaN()
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * tDist.Survival(math.Abs(t))
}

// TQuantile returns the p-quantile of Student's t with df degrees of freedom
func TQuantile(p, df float64) float64 {
	if math.IsNaN(df) || df <= 0 {
		return math.NaN()
	}
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(p)
}

// FSurvival returns P(F >= f) for the F distribution (regression overall significance)
func FSurvival(f, df1, df2 float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || df1 <= 0 || df2 <= 0 {
		return math.NaN()
	}
	fDist := distuv.F{D1: df1, D2: df2}
	return fDist.Survival(f)
}

// ChiSquareSurvival returns P(X >= x) for the chi-squared distribution
func ChiSquareSurvival(x, k float64) float64 {
	if math.IsNaN(x) || k <= 0 {
		return math.NaN()
	}
	chiDist := distuv.ChiSquared{K: k}
	return chiDist.Survival(x)
}

// NormalSurvival returns P(Z >= z) for the standard normal
func NormalSurvival(z float64) float64 {
	return distuv.UnitNormal.Survival(z)
}
