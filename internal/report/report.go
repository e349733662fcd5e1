package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"pricehypo/domain/hypothesis"
	"pricehypo/domain/run"
	"pricehypo/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Format selects how an outcome is rendered
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

const (
	TTestHeader      = "=== Statistical Hypothesis Test (T-Test) ==="
	RegressionHeader = "=== Complex Hypothesis Test (Multiple Linear Regression) ==="
)

// ParseFormat accepts a format name case-insensitively ("md" is an alias for markdown)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", errors.InvalidInput(fmt.Sprintf("unknown report format %q", s))
}

// ContentType returns the HTTP media type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Write renders one outcome
func Write(w io.Writer, format Format, outcome hypothesis.Outcome) error {
	switch format {
	case FormatText:
		return writeText(w, outcome)
	case FormatJSON:
		return writeJSON(w, outcome)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(outcome))
		return err
	case FormatHTML:
		_, err := w.Write(HTML(outcome))
		return err
	}
	return errors.InvalidInput(fmt.Sprintf("unknown report format %q", format))
}

// WriteBatch renders several run records. JSON emits one array, HTML one
// page, and the other formats one report per record under a heading naming its source.
func WriteBatch(w io.Writer, format Format, records []run.Record) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatHTML:
		var md strings.Builder
		for _, rec := range records {
			md.WriteString("# " + rec.Source + "\n\n")
			md.WriteString(Markdown(rec.Outcome) + "\n")
		}
		_, err := w.Write(renderHTML(md.String(), "Batch analysis"))
		return err
	}

	for i, rec := range records {
		heading := fmt.Sprintf("==> %s <==\n", rec.Source)
		if format == FormatMarkdown {
			heading = fmt.Sprintf("# %s\n\n", rec.Source)
		}
		if i > 0 {
			heading = "\n" + heading
		}
		if _, err := io.WriteString(w, heading); err != nil {
			return err
		}
		if err := Write(w, format, rec.Outcome); err != nil {
			return err
		}
	}
	return nil
}

func writeText(w io.Writer, o hypothesis.Outcome) error {
	var b strings.Builder
	if o.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", o.Error)
	}

	b.WriteString("\n" + TTestHeader + "\n")
	if t := o.TTest; t != nil {
		fmt.Fprintf(&b, "T-Statistic: %s\n", FormatFloat(t.TStatistic))
		fmt.Fprintf(&b, "P-Value: %s\n", FormatFloat(t.PValue))
		fmt.Fprintf(&b, "Conclusion: %s\n", t.Conclusion)
	}

	b.WriteString("\n" + RegressionHeader + "\n")
	if r := o.Regression; r != nil {
		fmt.Fprintf(&b, "R-squared: %s\n", FormatFloat(r.RSquared))
		fmt.Fprintf(&b, "Adjusted R-squared: %s\n", FormatFloat(r.AdjRSquared))
		fmt.Fprintf(&b, "F-statistic: %s\n", FormatFloat(r.FStatistic))
		fmt.Fprintf(&b, "F-statistic p-value: %s\n", FormatFloat(r.FPValue))
		b.WriteString("\nDetailed Summary:\n")
		b.WriteString(r.Summary + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Markdown renders the outcome as a Markdown document
func Markdown(o hypothesis.Outcome) string {
	var b strings.Builder
	if o.Error != "" {
		fmt.Fprintf(&b, "**Error:** %s\n\n", o.Error)
	}

	b.WriteString("## Statistical Hypothesis Test (T-Test)\n\n")
	if t := o.TTest; t != nil {
		b.WriteString("| Statistic | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| T-Statistic | %s |\n", FormatFloat(t.TStatistic))
		fmt.Fprintf(&b, "| P-Value | %s |\n", FormatFloat(t.PValue))
		fmt.Fprintf(&b, "| Conclusion | %s |\n\n", t.Conclusion)
	} else {
		b.WriteString("_Not run: Diesel and Petrol indicators are both required._\n\n")
	}

	b.WriteString("## Complex Hypothesis Test (Multiple Linear Regression)\n\n")
	if r := o.Regression; r != nil {
		b.WriteString("| Statistic | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| R-squared | %s |\n", FormatFloat(r.RSquared))
		fmt.Fprintf(&b, "| Adjusted R-squared | %s |\n", FormatFloat(r.AdjRSquared))
		fmt.Fprintf(&b, "| F-statistic | %s |\n", FormatFloat(r.FStatistic))
		fmt.Fprintf(&b, "| F-statistic p-value | %s |\n\n", FormatFloat(r.FPValue))
		b.WriteString("### Detailed Summary\n\n```\n" + r.Summary + "\n```\n")
	} else {
		b.WriteString("_Not run._\n")
	}
	return b.String()
}

// HTML renders the Markdown report as a complete HTML page
func HTML(o hypothesis.Outcome) []byte {
	return renderHTML(Markdown(o), "Price hypothesis tests")
}

func renderHTML(md, title string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: title,
	})
	return markdown.ToHTML([]byte(md), p, renderer)
}

// FormatFloat prints the shortest round-trip digits with a trailing ".0" on
// integral values. Exponent form is used below 1e-4 and from 1e16 up.
func FormatFloat(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}

	abs := math.Abs(x)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
