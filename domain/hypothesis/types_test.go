package hypothesis

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{-4.123105625617661, -4.1231},
		{0.05409, 0.0541},
		{0.81234999, 0.8123},
		{12.00004, 12.0},
		{1545.0, 1545.0},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Round(tt.in), "Round(%v)", tt.in)
	}

	assert.True(t, math.IsNaN(Round(math.NaN())))
	assert.True(t, math.IsInf(Round(math.Inf(1)), 1))
}

func TestConclude(t *testing.T) {
	assert.Equal(t, RejectH0, Conclude(0.0499))
	assert.Equal(t, FailToRejectH0, Conclude(0.05))
	assert.Equal(t, FailToRejectH0, Conclude(0.3))
	assert.Equal(t, FailToRejectH0, Conclude(math.NaN()))
}

func TestNewTTestResult_ConclusionUsesUnroundedPValue(t *testing.T) {
	// 0.04999 rounds to 0.05 but is still below alpha
	r := NewTTestResult(2.1, 0.04999)
	assert.Equal(t, 0.05, r.PValue)
	assert.Equal(t, RejectH0, r.Conclusion)
}

func TestOutcome_JSONKeys(t *testing.T) {
	out := Outcome{
		TTest: NewTTestResult(-4.1231056, 0.0540863),
		Regression: &RegressionResult{
			Summary:     "OLS Regression Results",
			RSquared:    0.91,
			AdjRSquared: 0.88,
			FStatistic:  math.NaN(),
			FPValue:     math.NaN(),
		},
	}
	data, err := json.Marshal(out)
	require.NoError(t, err)

	var decoded map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "t_test")
	assert.Contains(t, decoded, "regression")
	assert.NotContains(t, decoded, "error")
	assert.Equal(t, -4.1231, decoded["t_test"]["t_statistic"])
	assert.Equal(t, "Fail to Reject H0", decoded["t_test"]["conclusion"])
	assert.Nil(t, decoded["regression"]["f_statistic"])
	assert.Equal(t, 0.91, decoded["regression"]["r_squared"])
}

func TestFailed(t *testing.T) {
	out := Failed(errors.New("boom"))
	assert.False(t, out.OK())
	assert.Nil(t, out.TTest)
	assert.Nil(t, out.Regression)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"boom"}`, string(data))
}

func TestFingerprint(t *testing.T) {
	a := Outcome{TTest: NewTTestResult(1.5, 0.2)}
	b := Outcome{TTest: NewTTestResult(1.5, 0.2)}
	c := Outcome{TTest: NewTTestResult(1.5, 0.02)}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
