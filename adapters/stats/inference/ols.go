package inference

import (
	"fmt"
	"math"

	"pricehypo/domain/core"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
)

// ConstantName labels the intercept column added by AddConstant
const ConstantName = "const"

// pinvRcond is the relative cutoff below which singular values are treated as zero
const pinvRcond = 1e-15

// Design is a named predictor matrix in column-major order
type Design struct {
	Names   []string
	Columns [][]float64
}

// AddConstant prepends an all-ones intercept column
func AddConstant(d Design) Design {
	n := 0
	if len(d.Columns) > 0 {
		n = len(d.Columns[0])
	}
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	return Design{
		Names:   append([]string{ConstantName}, d.Names...),
		Columns: append([][]float64{ones}, d.Columns...),
	}
}

// OLSModel is a fitted ordinary least squares regression with an intercept
type OLSModel struct {
	DepVar  string
	Names   []string
	NObs    int
	Rank    int
	DfModel float64
	DfResid float64

	Params   []float64
	BSE      []float64
	TValues  []float64
	PValues  []float64
	ConfLow  []float64
	ConfHigh []float64

	RSquared    float64
	AdjRSquared float64
	FValue      float64
	FPValue     float64
	LogLik      float64
	AIC         float64
	BIC         float64
	CondNo      float64

	Fitted []float64
	Resid  []float64
}

// FitOLS regresses y on the design through the Moore-Penrose pseudo-inverse,
// so rank-deficient designs still produce a (minimum-norm) fit. The design
// is expected to contain an intercept column.
func FitOLS(depVar string, y []float64, design Design) (*OLSModel, error) {
	n := len(y)
	k := len(design.Columns)
	if n == 0 {
		return nil, fmt.Errorf("%w: design has 0 rows and %d columns", core.ErrNoObservations, k)
	}
	if k == 0 {
		return nil, fmt.Errorf("design has no columns")
	}
	for j, col := range design.Columns {
		if len(col) != n {
			return nil, fmt.Errorf("column %s has %d rows, response has %d", design.Names[j], len(col), n)
		}
	}

	x := mat.NewDense(n, k, nil)
	for j, col := range design.Columns {
		for i, v := range col {
			x.Set(i, j, v)
		}
	}
	yv := mat.NewVecDense(n, append([]float64(nil), y...))

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, fmt.Errorf("SVD did not converge")
	}
	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// pinv = V * diag(1/s) * U^T with small singular values zeroed
	largest := values[0]
	inv := make([]float64, len(values))
	for i, s := range values {
		if s > pinvRcond*largest {
			inv[i] = 1 / s
		}
	}
	rows, cols := v.Dims()
	vs := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			vs.Set(i, j, v.At(i, j)*inv[j])
		}
	}
	var pinv mat.Dense
	pinv.Mul(vs, u.T())

	var params mat.VecDense
	params.MulVec(&pinv, yv)

	var normCov mat.Dense
	normCov.Mul(&pinv, pinv.T())

	var fitted mat.VecDense
	fitted.MulVec(x, &params)

	m := &OLSModel{
		DepVar: depVar,
		Names:  append([]string(nil), design.Names...),
		NObs:   n,
		Rank:   matrixRank(values, n, k),
		Fitted: make([]float64, n),
		Resid:  make([]float64, n),
	}
	m.DfModel = float64(m.Rank - 1)
	m.DfResid = float64(n - m.Rank)

	ssr := 0.0
	for i := 0; i < n; i++ {
		m.Fitted[i] = fitted.AtVec(i)
		m.Resid[i] = y[i] - m.Fitted[i]
		ssr += m.Resid[i] * m.Resid[i]
	}
	mean, _ := stats.Mean(y)
	tss := 0.0
	for _, val := range y {
		tss += (val - mean) * (val - mean)
	}

	m.RSquared = 1 - ssr/tss
	m.AdjRSquared = 1 - float64(n-1)/m.DfResid*(1-m.RSquared)
	m.FValue = ((tss - ssr) / m.DfModel) / (ssr / m.DfResid)
	m.FPValue = FSurvival(m.FValue, m.DfModel, m.DfResid)

	half := float64(n) / 2
	m.LogLik = -half*math.Log(2*math.Pi) - half*math.Log(ssr/float64(n)) - half
	m.AIC = -2*m.LogLik + 2*(m.DfModel+1)
	m.BIC = -2*m.LogLik + math.Log(float64(n))*(m.DfModel+1)

	scale := ssr / m.DfResid
	q := TQuantile(0.975, m.DfResid)
	m.Params = make([]float64, k)
	m.BSE = make([]float64, k)
	m.TValues = make([]float64, k)
	m.PValues = make([]float64, k)
	m.ConfLow = make([]float64, k)
	m.ConfHigh = make([]float64, k)
	for j := 0; j < k; j++ {
		m.Params[j] = params.AtVec(j)
		m.BSE[j] = math.Sqrt(normCov.At(j, j) * scale)
		m.TValues[j] = m.Params[j] / m.BSE[j]
		m.PValues[j] = TwoSidedTPValue(m.TValues[j], m.DfResid)
		m.ConfLow[j] = m.Params[j] - q*m.BSE[j]
		m.ConfHigh[j] = m.Params[j] + q*m.BSE[j]
	}

	m.CondNo = conditionNumber(values, k)
	return m, nil
}

// matrixRank counts singular values above max(s) * max(n, k) * eps
func matrixRank(values []float64, n, k int) int {
	if len(values) == 0 {
		return 0
	}
	dim := n
	if k > dim {
		dim = k
	}
	tol := values[0] * float64(dim) * 2.220446049250313e-16
	rank := 0
	for _, s := range values {
		if s > tol {
			rank++
		}
	}
	return rank
}

// conditionNumber is sqrt of the eigenvalue ratio of X'X, i.e. smax/smin of X
func conditionNumber(values []float64, k int) float64 {
	if len(values) < k {
		return math.Inf(1)
	}
	smallest := values[len(values)-1]
	if smallest == 0 {
		return math.Inf(1)
	}
	return values[0] / smallest
}
