package aggregator

import (
	"strings"

	"fqc-report-go/internal/classify"
)

// ReasonCount is one distinct rejection reason, trimmed with its original
// case, and how many rows carried it.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// Bucket holds the reasons classified into one category.
type Bucket struct {
	Category string        `json:"category"`
	Title    string        `json:"title"`
	Reasons  []ReasonCount `json:"reasons"`
}

// Total sums the counts in the bucket.
func (b Bucket) Total() int {
	n := 0
	for _, rc := range b.Reasons {
		n += rc.Count
	}
	return n
}

// Map returns the bucket as reason -> count.
func (b Bucket) Map() map[string]int {
	m := make(map[string]int, len(b.Reasons))
	for _, rc := range b.Reasons {
		m[rc.Reason] = rc.Count
	}
	return m
}

// Aggregation is the outcome of Aggregate. Buckets are in catalog order
// with "other" last; Excluded holds sentinel reasons that were skipped.
type Aggregation struct {
	Buckets  []Bucket      `json:"buckets"`
	Excluded []ReasonCount `json:"excluded,omitempty"`
}

// Bucket looks up a bucket by category name.
func (a Aggregation) Bucket(category string) (Bucket, bool) {
	for _, b := range a.Buckets {
		if b.Category == category {
			return b, true
		}
	}
	return Bucket{}, false
}

// Total is the sum over every bucket plus the excluded reasons.
func (a Aggregation) Total() int {
	n := Sum(a.Excluded)
	for _, b := range a.Buckets {
		n += b.Total()
	}
	return n
}

// Tally counts distinct trimmed reasons in first-seen order. Blank cells do
// not represent a rejection and are skipped.
func Tally(cells []string) []ReasonCount {
	idx := map[string]int{}
	var out []ReasonCount
	for _, c := range cells {
		r := strings.TrimSpace(c)
		if r == "" {
			continue
		}
		if i, ok := idx[r]; ok {
			out[i].Count++
			continue
		}
		idx[r] = len(out)
		out = append(out, ReasonCount{Reason: r, Count: 1})
	}
	return out
}

// Sum adds up the counts.
func Sum(counts []ReasonCount) int {
	n := 0
	for _, rc := range counts {
		n += rc.Count
	}
	return n
}

// Without drops reasons equal to any of the sentinels, ignoring case.
func Without(counts []ReasonCount, sentinels []string) []ReasonCount {
	out := make([]ReasonCount, 0, len(counts))
	for _, rc := range counts {
		if !isSentinel(rc.Reason, sentinels) {
			out = append(out, rc)
		}
	}
	return out
}

type Aggregator struct {
	cls       *classify.Classifier
	sentinels []string
}

// New builds an aggregator. Reasons equal to a sentinel (trimmed,
// case-insensitive, the same rule metrics.Calculate applies) never reach the
// classifier.
func New(cls *classify.Classifier, sentinels []string) *Aggregator {
	s := make([]string, 0, len(sentinels))
	for _, v := range sentinels {
		if v = strings.TrimSpace(v); v != "" {
			s = append(s, v)
		}
	}
	return &Aggregator{cls: cls, sentinels: s}
}

// Aggregate classifies every non-sentinel reason into exactly one bucket.
// Every catalog category gets a bucket, empty or not, in the catalog's
// display order with "other" last.
func (a *Aggregator) Aggregate(counts []ReasonCount) Aggregation {
	cat := a.cls.Catalog()
	names := append(cat.DisplayNames(), classify.Other)

	buckets := make([]Bucket, len(names))
	pos := make(map[string]int, len(names))
	for i, n := range names {
		buckets[i] = Bucket{Category: n, Title: cat.Title(n), Reasons: []ReasonCount{}}
		pos[n] = i
	}

	seen := map[string]int{}
	var excluded []ReasonCount
	for _, rc := range counts {
		reason := strings.TrimSpace(rc.Reason)
		if isSentinel(reason, a.sentinels) {
			excluded = append(excluded, rc)
			continue
		}
		// Untrimmed duplicates from callers other than Tally fold together.
		if j, ok := seen[reason]; ok {
			b := &buckets[j]
			for k := range b.Reasons {
				if b.Reasons[k].Reason == reason {
					b.Reasons[k].Count += rc.Count
				}
			}
			continue
		}
		i := pos[a.cls.Classify(reason)]
		seen[reason] = i
		buckets[i].Reasons = append(buckets[i].Reasons, ReasonCount{Reason: reason, Count: rc.Count})
	}
	return Aggregation{Buckets: buckets, Excluded: excluded}
}

func isSentinel(reason string, sentinels []string) bool {
	for _, s := range sentinels {
		if strings.EqualFold(reason, s) {
			return true
		}
	}
	return false
}
