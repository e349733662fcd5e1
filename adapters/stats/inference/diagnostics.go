package inference

import (
	"math"

	"github.com/montanaflynn/stats"
)

// ResidualDiagnostics are the normality and autocorrelation checks printed under the coefficient table
type ResidualDiagnostics struct {
	Omnibus       float64
	OmnibusPValue float64
	Skew          float64
	Kurtosis      float64 // Pearson (normal = 3)
	JarqueBera    float64
	JBPValue      float64
	DurbinWatson  float64
}

// Diagnose computes residual diagnostics; Omnibus needs at least 8 residuals and is NaN below that
func Diagnose(resid []float64) ResidualDiagnostics {
	d := ResidualDiagnostics{
		Skew:         Skew(resid),
		Kurtosis:     Kurtosis(resid),
		DurbinWatson: DurbinWatson(resid),
	}
	d.Omnibus, d.OmnibusPValue = Omnibus(resid)
	d.JarqueBera, d.JBPValue = JarqueBera(resid)
	return d
}

// centralMoment returns the biased r-th central moment
func centralMoment(x []float64, r float64) float64 {
	mean, err := stats.Mean(x)
	if err != nil {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range x {
		sum += math.Pow(v-mean, r)
	}
	return sum / float64(len(x))
}

// Skew is the biased sample skewness m3 / m2^1.5
func Skew(x []float64) float64 {
	m2 := centralMoment(x, 2)
	return centralMoment(x, 3) / math.Pow(m2, 1.5)
}

// Kurtosis is the biased Pearson kurtosis m4 / m2^2
func Kurtosis(x []float64) float64 {
	m2 := centralMoment(x, 2)
	return centralMoment(x, 4) / (m2 * m2)
}

// DurbinWatson is sum((e_t - e_{t-1})^2) / sum(e_t^2)
func DurbinWatson(resid []float64) float64 {
	num, den := 0.0, 0.0
	for i, e := range resid {
		den += e * e
		if i > 0 {
			d := e - resid[i-1]
			num += d * d
		}
	}
	return num / den
}

// JarqueBera returns the JB statistic and its chi-squared(2) p-value
func JarqueBera(resid []float64) (float64, float64) {
	n := float64(len(resid))
	s := Skew(resid)
	k := Kurtosis(resid)
	jb := n / 6 * (s*s + (k-3)*(k-3)/4)
	return jb, ChiSquareSurvival(jb, 2)
}

// Omnibus is D'Agostino's K^2 test combining the skewness and kurtosis z-scores
func Omnibus(resid []float64) (float64, float64) {
	if len(resid) < 8 {
		return math.NaN(), math.NaN()
	}
	zs := skewZ(resid)
	zk := kurtosisZ(resid)
	k2 := zs*zs + zk*zk
	return k2, ChiSquareSurvival(k2, 2)
}

func skewZ(x []float64) float64 {
	n := float64(len(x))
	b2 := Skew(x)
	y := b2 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := 3 * (n*n + 27*n - 70) * (n + 1) * (n + 3) / ((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	if y == 0 {
		y = 1
	}
	return delta * math.Log(y/alpha+math.Sqrt((y/alpha)*(y/alpha)+1))
}

func kurtosisZ(x []float64) float64 {
	n := float64(len(x))
	b2 := Kurtosis(x)
	e := 3 * (n - 1) / (n + 1)
	varb2 := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	z := (b2 - e) / math.Sqrt(varb2)
	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) * math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	term1 := 1 - 2/(9*a)
	denom := 1 + z*math.Sqrt(2/(a-4))
	if denom == 0 {
		return math.NaN()
	}
	term2 := math.Copysign(math.Cbrt((1-2/a)/math.Abs(denom)), denom)
	return (term1 - term2) / math.Sqrt(2/(9*a))
}
