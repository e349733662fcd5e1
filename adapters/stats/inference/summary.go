package inference

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const summaryWidth = 78

// Summary renders the model in the conventional "OLS Regression Results" layout.
// at stamps the Date and Time rows.
func (m *OLSModel) Summary(at time.Time) string {
	diag := Diagnose(m.Resid)

	var b strings.Builder
	width := summaryWidth
	nameWidth := 10
	for _, name := range m.Names {
		if len(name) > nameWidth {
			nameWidth = len(name)
		}
	}
	if w := nameWidth + 6*11; w > width {
		width = w
	}
	double := strings.Repeat("=", width)
	single := strings.Repeat("-", width)

	title := "OLS Regression Results"
	pad := (width - len(title)) / 2
	b.WriteString(strings.Repeat(" ", pad) + title + "\n")
	b.WriteString(double + "\n")

	writePairs(&b, width, [][2][2]string{
		{{"Dep. Variable:", m.DepVar}, {"R-squared:", pyf("%#8.3f", m.RSquared)}},
		{{"Model:", "OLS"}, {"Adj. R-squared:", pyf("%#8.3f", m.AdjRSquared)}},
		{{"Method:", "Least Squares"}, {"F-statistic:", pyf("%#8.4g", m.FValue)}},
		{{"Date:", at.Format("Mon, 02 Jan 2006")}, {"Prob (F-statistic):", pyf("%#6.3g", m.FPValue)}},
		{{"Time:", at.Format("15:04:05")}, {"Log-Likelihood:", pyf("%#8.5g", m.LogLik)}},
		{{"No. Observations:", fmt.Sprintf("%d", m.NObs)}, {"AIC:", pyf("%#8.4g", m.AIC)}},
		{{"Df Residuals:", fmt.Sprintf("%.0f", m.DfResid)}, {"BIC:", pyf("%#8.4g", m.BIC)}},
		{{"Df Model:", fmt.Sprintf("%.0f", m.DfModel)}, {"", ""}},
		{{"Covariance Type:", "nonrobust"}, {"", ""}},
	})
	b.WriteString(double + "\n")

	b.WriteString(fmt.Sprintf("%-*s%11s%11s%11s%11s%11s%11s\n", nameWidth, "",
		"coef", "std err", "t", "P>|t|", "[0.025", "0.975]"))
	b.WriteString(single + "\n")
	for j, name := range m.Names {
		b.WriteString(fmt.Sprintf("%-*s%11s%11s%11s%11s%11s%11s\n", nameWidth, name,
			forg(m.Params[j], 4), forg(m.BSE[j], 4), pyf("%.3f", m.TValues[j]),
			pyf("%.3f", m.PValues[j]), forg(m.ConfLow[j], 3), forg(m.ConfHigh[j], 3)))
	}
	b.WriteString(double + "\n")

	writePairs(&b, width, [][2][2]string{
		{{"Omnibus:", pyf("%#6.3f", diag.Omnibus)}, {"Durbin-Watson:", pyf("%#8.3f", diag.DurbinWatson)}},
		{{"Prob(Omnibus):", pyf("%#6.3f", diag.OmnibusPValue)}, {"Jarque-Bera (JB):", pyf("%#8.3f", diag.JarqueBera)}},
		{{"Skew:", pyf("%#6.3f", diag.Skew)}, {"Prob(JB):", pyf("%#8.3g", diag.JBPValue)}},
		{{"Kurtosis:", pyf("%#6.3f", diag.Kurtosis)}, {"Cond. No.", pyf("%#8.3g", m.CondNo)}},
	})
	b.WriteString(double + "\n")

	b.WriteString("\nNotes:\n")
	b.WriteString("[1] Standard Errors assume that the covariance matrix of the errors is correctly specified.")
	note := 2
	if m.Rank < len(m.Names) {
		b.WriteString(fmt.Sprintf("\n[%d] The design matrix is rank deficient (rank %d of %d columns); estimates use the pseudo-inverse.",
			note, m.Rank, len(m.Names)))
		note++
	}
	if m.CondNo > 1000 {
		b.WriteString(fmt.Sprintf("\n[%d] The condition number is large, %s. This might indicate that there are\nstrong multicollinearity or other numerical problems.",
			note, strings.TrimSpace(pyf("%.3g", m.CondNo))))
	}
	return b.String()
}

// writePairs lays out two label/value columns, each half of the table width
func writePairs(b *strings.Builder, width int, rows [][2][2]string) {
	half := width / 2
	for _, row := range rows {
		left := cell(row[0][0], row[0][1], half)
		right := cell(row[1][0], row[1][1], width-half)
		b.WriteString(strings.TrimRight(left+right, " ") + "\n")
	}
}

func cell(label, value string, width int) string {
	value = strings.TrimSpace(value)
	gap := width - len(label) - len(value) - 1
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value + " "
}

// pyf formats finite values with format and spells non-finite ones nan/inf
func pyf(format string, x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return fmt.Sprintf(format, x)
}

// forg picks fixed or general notation by magnitude, like the coefficient table of common stats packages
func forg(x float64, prec int) string {
	general := math.Abs(x) >= 1e4 || math.Abs(x) < 1e-4
	if prec == 3 {
		if general {
			return pyf("%.3g", x)
		}
		return pyf("%.3f", x)
	}
	if general {
		return pyf("%.4g", x)
	}
	return pyf("%.4f", x)
}
