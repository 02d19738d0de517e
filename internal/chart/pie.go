// Package chart renders the expense distribution as an inline SVG pie.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	gochart "github.com/wcharczuk/go-chart/v2"

	"budget/internal/core"
)

// ErrNoData is returned when there is nothing to chart.
var ErrNoData = errors.New("chart: no expenses to plot")

// Options controls the rendered size in pixels.
type Options struct {
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{Width: 480, Height: 480}
}

// Label formats a slice label the same way for the chart and its legend,
// e.g. "Food 80.0%".
func Label(ca core.CategoryAmount) string {
	return fmt.Sprintf("%s %s%%", ca.Category, ca.Share.Shift(2).StringFixed(1))
}

// Pie renders dist as an SVG document safe to embed in a template.
func Pie(dist []core.CategoryAmount, opts Options) (template.HTML, error) {
	if len(dist) == 0 {
		return "", ErrNoData
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions()
	}

	values := make([]gochart.Value, 0, len(dist))
	for _, ca := range dist {
		if !ca.Amount.Positive() {
			continue
		}
		values = append(values, gochart.Value{
			Label: Label(ca),
			Value: ca.Amount.Decimal().InexactFloat64(),
		})
	}
	if len(values) == 0 {
		return "", ErrNoData
	}

	pie := gochart.PieChart{
		Width:  opts.Width,
		Height: opts.Height,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pie.Render(gochart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render pie chart: %w", err)
	}
	// The SVG is generated from our own labels, which come from a fixed enum.
	return template.HTML(buf.String()), nil
}
