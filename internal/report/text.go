package report

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// EncodeText renders the plain-text report.
func EncodeText(r *Report) []byte {
	var b bytes.Buffer
	fmt.Fprintln(&b, r.Header())
	fmt.Fprintln(&b)
	for _, l := range r.Summary() {
		fmt.Fprintf(&b, "%s: %v\n", l.Label, l.Value)
	}

	width := 0
	for _, bk := range r.Buckets {
		for _, rc := range bk.Reasons {
			width = max(width, utf8.RuneCountInString(rc.Reason))
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "REJECTION DETAILS:")
	for _, bk := range r.Buckets {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, SectionTitle(bk))
		if len(bk.Reasons) == 0 {
			fmt.Fprintln(&b, "None")
			continue
		}
		for _, rc := range bk.Reasons {
			fmt.Fprintf(&b, "%-*s  %d\n", width, rc.Reason, rc.Count)
		}
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "COVER MISMATCH: %d\n", r.Metrics.CoverMismatch)
	return b.Bytes()
}
