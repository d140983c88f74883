// Package metrics computes unit counts and yield from the status and
// cover-mismatch columns of an inspection sheet.
package metrics

import "strings"

// Sentinels are the status strings with special meaning. Comparison is
// case-insensitive on trimmed values.
type Sentinels struct {
	Accepted      string
	Rework        string
	CoverMismatch string
}

// DefaultSentinels matches the inspection sheets the report was built for.
var DefaultSentinels = Sentinels{
	Accepted:      "Accepted",
	Rework:        "REWORK",
	CoverMismatch: "Cover Mismatch",
}

// List returns the non-empty sentinels, used to exclude them from reason
// classification.
func (s Sentinels) List() []string {
	var out []string
	for _, v := range []string{s.Accepted, s.Rework, s.CoverMismatch} {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

type Metrics struct {
	Total         int `json:"total"`
	Accepted      int `json:"accepted"`
	Rejected      int `json:"rejected"`
	Reworked      int `json:"reworked"`
	CoverMismatch int `json:"cover_mismatch"`
}

// Yield is accepted/total*100, or 0 when there are no units.
func (m Metrics) Yield() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Accepted) / float64(m.Total) * 100
}

// Calculate counts units over the status column and cover mismatches over
// the cover column. Total is the number of non-empty status cells.
func Calculate(status, cover []string, s Sentinels) Metrics {
	var m Metrics
	for _, raw := range status {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		m.Total++
		switch {
		case equal(v, s.Accepted):
			m.Accepted++
		case equal(v, s.Rework):
			m.Reworked++
		case equal(v, s.CoverMismatch):
		default:
			m.Rejected++
		}
	}
	for _, raw := range cover {
		if equal(strings.TrimSpace(raw), s.CoverMismatch) {
			m.CoverMismatch++
		}
	}
	return m
}

func equal(v, sentinel string) bool {
	sentinel = strings.TrimSpace(sentinel)
	return sentinel != "" && strings.EqualFold(v, sentinel)
}
