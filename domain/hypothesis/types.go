package hypothesis

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"pricehypo/domain/core"
)

// Significance level for the fuel-type t-test
const Alpha = 0.05

// Decimals kept on every numeric output
const Decimals = 4

// Conclusion is the binary decision of the t-test
type Conclusion string

const (
	RejectH0       Conclusion = "Reject H0"
	FailToRejectH0 Conclusion = "Fail to Reject H0"
)

// Conclude maps a p-value to a decision at Alpha. NaN never rejects.
func Conclude(pValue float64) Conclusion {
	if pValue < Alpha {
		return RejectH0
	}
	return FailToRejectH0
}

// Round keeps Decimals places using the exact binary value of x, ties to even.
// Non-finite values pass through.
func Round(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', Decimals, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// TTestResult holds the diesel vs petrol price comparison
type TTestResult struct {
	TStatistic float64    `json:"t_statistic"`
	PValue     float64    `json:"p_value"`
	Conclusion Conclusion `json:"conclusion"`
}

// NewTTestResult rounds the raw statistics and derives the conclusion from the unrounded p-value
func NewTTestResult(tStat, pValue float64) *TTestResult {
	return &TTestResult{
		TStatistic: Round(tStat),
		PValue:     Round(pValue),
		Conclusion: Conclude(pValue),
	}
}

// RegressionResult holds the headline numbers of the OLS fit
type RegressionResult struct {
	Summary     string  `json:"summary"`
	RSquared    float64 `json:"r_squared"`
	AdjRSquared float64 `json:"adj_r_squared"`
	FStatistic  float64 `json:"f_statistic"`
	FPValue     float64 `json:"f_pvalue"`
}

// Outcome is the result bundle of one pipeline run: either results or an error message
type Outcome struct {
	TTest      *TTestResult      `json:"t_test,omitempty"`
	Regression *RegressionResult `json:"regression,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Failed builds the error-only bundle
func Failed(err error) Outcome {
	return Outcome{Error: err.Error()}
}

// OK reports whether the run completed without error
func (o Outcome) OK() bool {
	return o.Error == ""
}

// Fingerprint hashes every numeric output so reruns can be compared byte for byte
func (o Outcome) Fingerprint() core.Hash {
	var b strings.Builder
	if o.TTest != nil {
		b.WriteString("t_test|")
		writeNumbers(&b, o.TTest.TStatistic, o.TTest.PValue)
		b.WriteString(string(o.TTest.Conclusion))
		b.WriteByte('\n')
	}
	if o.Regression != nil {
		b.WriteString("regression|")
		writeNumbers(&b, o.Regression.RSquared, o.Regression.AdjRSquared, o.Regression.FStatistic, o.Regression.FPValue)
		b.WriteByte('\n')
	}
	if o.Error != "" {
		b.WriteString("error|" + o.Error)
	}
	return core.NewHash([]byte(b.String()))
}

func writeNumbers(b *strings.Builder, values ...float64) {
	for _, v := range values {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('|')
	}
}

// finite maps NaN and infinities to nil so they encode as JSON null
func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

func (r TTestResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TStatistic *float64   `json:"t_statistic"`
		PValue     *float64   `json:"p_value"`
		Conclusion Conclusion `json:"conclusion"`
	}{finite(r.TStatistic), finite(r.PValue), r.Conclusion})
}

func (r RegressionResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Summary     string   `json:"summary"`
		RSquared    *float64 `json:"r_squared"`
		AdjRSquared *float64 `json:"adj_r_squared"`
		FStatistic  *float64 `json:"f_statistic"`
		FPValue     *float64 `json:"f_pvalue"`
	}{r.Summary, finite(r.RSquared), finite(r.AdjRSquared), finite(r.FStatistic), finite(r.FPValue)})
}
