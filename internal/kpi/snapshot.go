// Package kpi computes the dashboard's engagement and campaign KPI sets
// from the tenant's precomputed aggregate-metrics table.
package kpi

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
)

// Metric is one row of kpi_aggregate_table. Either the numeric or the
// string value may be NULL depending on the metric.
type Metric struct {
	Name  string
	Value sql.NullFloat64
	Text  sql.NullString
}

// Snapshot maps metric names to their rows. Computations treat it as a
// read-only view; missing or NULL entries fall back to defaults.
type Snapshot map[string]Metric

// num returns the metric's numeric value, or def when the metric is absent
// or NULL. Divisor-style metrics pass def=1 to avoid division by zero.
func (s Snapshot) num(name string, def float64) float64 {
	m, ok := s[name]
	if !ok || !m.Value.Valid {
		return def
	}
	return m.Value.Float64
}

// text returns the metric's string value, or "N/A" when absent or NULL.
func (s Snapshot) text(name string) string {
	m, ok := s[name]
	if !ok || !m.Text.Valid {
		return "N/A"
	}
	return m.Text.String
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// fmtRound renders a value rounded to two decimals with at least one digit
// after the point, so ratios come out as "25.0" rather than "25".
func fmtRound(v float64) string {
	s := strconv.FormatFloat(round2(v), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func percent(v float64) string { return fmtRound(v) + "%" }
func minutes(v float64) string { return fmtRound(v) + " mins" }
func millis(v float64) string  { return fmtRound(v) + " ms" }
