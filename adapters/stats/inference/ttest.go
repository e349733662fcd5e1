package inference

import (
	"math"

	"github.com/montanaflynn/stats"
)

// TTest is the outcome of an independent two-sample t-test
type TTest struct {
	Statistic float64
	PValue    float64
	DF        float64
	MeanA     float64
	MeanB     float64
	CohensD   float64 // standardised mean difference with the pooled SD
	NA        int
	NB        int
}

// StudentTTest compares the means of two independent samples assuming equal
// variances (pooled estimate). Groups with fewer than two observations give
// NaN statistics; callers receive them unmodified.
func StudentTTest(a, b []float64) TTest {
	n1 := float64(len(a))
	n2 := float64(len(b))

	// stats returns NaN alongside an error for empty or single-value input
	mean1, _ := stats.Mean(a)
	mean2, _ := stats.Mean(b)
	var1, _ := stats.SampleVariance(a)
	var2, _ := stats.SampleVariance(b)

	df := n1 + n2 - 2
	pooled := ((n1-1)*var1 + (n2-1)*var2) / df
	se := math.Sqrt(pooled * (1/n1 + 1/n2))
	t := (mean1 - mean2) / se

	return TTest{
		Statistic: t,
		PValue:    TwoSidedTPValue(t, df),
		DF:        df,
		MeanA:     mean1,
		MeanB:     mean2,
		CohensD:   (mean1 - mean2) / math.Sqrt(pooled),
		NA:        len(a),
		NB:        len(b),
	}
}

// WelchTTest is the unequal-variance variant with Welch-Satterthwaite degrees
// of freedom. The pipeline reports the pooled test and logs this one as a
// sensitivity check.
func WelchTTest(a, b []float64) TTest {
	n1 := float64(len(a))
	n2 := float64(len(b))

	mean1, _ := stats.Mean(a)
	mean2, _ := stats.Mean(b)
	var1, _ := stats.SampleVariance(a)
	var2, _ := stats.SampleVariance(b)

	v1, v2 := var1/n1, var2/n2
	t := (mean1 - mean2) / math.Sqrt(v1+v2)
	df := (v1 + v2) * (v1 + v2) / (v1*v1/(n1-1) + v2*v2/(n2-1))
	pooled := ((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2)

	return TTest{
		Statistic: t,
		PValue:    TwoSidedTPValue(t, df),
		DF:        df,
		MeanA:     mean1,
		MeanB:     mean2,
		CohensD:   (mean1 - mean2) / math.Sqrt(pooled),
		NA:        len(a),
		NB:        len(b),
	}
}
