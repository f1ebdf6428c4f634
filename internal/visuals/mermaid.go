package visuals

import (
	"fmt"
	"strings"

	"jira-burnup/internal/forecast"
)

// chartTheme pins the line palette so the series keep a stable visual
// identity: scope gray, completed green, confidence band light blue,
// mean forecast blue.
const chartTheme = `%%{
  init: {
    "themeVariables": {
      "xyChart": {
        "plotColorPalette": "gray, green, lightblue, lightblue, blue"
      }
    }
  }
}%%`

// GenerateBurnupChart creates a Mermaid xychart-beta burnup chart from a
// forecast result. The output is raw chart code (no markdown fences) ready
// to paste into any Mermaid renderer.
func GenerateBurnupChart(r forecast.Result, title string) string {
	if len(r.Dates) == 0 {
		return ""
	}

	var labels []string
	for _, d := range r.Dates {
		labels = append(labels, fmt.Sprintf("\"%s\"", d.Format("01/02")))
	}

	// Headroom above the tallest series so the top line stays readable.
	maxY := maxOf(r.TotalScope, r.Completed, r.Forecast.Mean, r.Forecast.Optimistic, r.Forecast.Pessimistic) + 10

	var sb strings.Builder
	sb.WriteString(chartTheme)
	sb.WriteString("\nxychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis \"Date\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Story Points\" 0 --> %.0f\n", maxY))
	sb.WriteString(fmt.Sprintf("    line \"Total Scope\" [%s]\n", joinValues(r.TotalScope)))
	sb.WriteString(fmt.Sprintf("    line \"Completed\" [%s]\n", joinValues(r.Completed)))
	sb.WriteString(fmt.Sprintf("    line \"Optimistic (80%% upper)\" [%s]\n", joinValues(r.Forecast.Optimistic)))
	sb.WriteString(fmt.Sprintf("    line \"Pessimistic (80%% lower)\" [%s]\n", joinValues(r.Forecast.Pessimistic)))
	sb.WriteString(fmt.Sprintf("    line \"Forecast (mean)\" [%s]", joinValues(r.Forecast.Mean)))

	return sb.String()
}

func joinValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return strings.Join(parts, ", ")
}

func maxOf(series ...[]float64) float64 {
	max := 0.0
	for _, s := range series {
		for _, v := range s {
			if v > max {
				max = v
			}
		}
	}
	return max
}
