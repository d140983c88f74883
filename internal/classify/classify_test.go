package classify_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fqc-report-go/internal/catalog"
	"fqc-report-go/internal/classify"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Dust inside resin ", "dust inside resin"},
		{"  DUST   INSIDE\tRESIN", "dust inside resin"},
		{"", ""},
		{"   ", ""},
		{"Accepted", "accepted"},
	}
	for _, tt := range tests {
		if got := classify.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSequenceRatio(t *testing.T) {
	var s classify.SequenceRatio
	tests := []struct {
		a, b string
		want float64
	}{
		{"abcd", "bcde", 0.75},
		{"dust inside resin", "dust inside resin", 1},
		{"", "", 1},
		{"abc", "", 0},
		{"dust inside resin", "dust on resin", 0.8},
	}
	for _, tt := range tests {
		if got := s.Ratio(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshteinRatio(t *testing.T) {
	var s classify.LevenshteinRatio
	if got := s.Ratio("kitten", "sitting"); math.Abs(got-4.0/7.0) > 1e-9 {
		t.Fatalf("Ratio(kitten, sitting) = %v, want 4/7", got)
	}
	if got := s.Ratio("", ""); got != 1 {
		t.Fatalf("Ratio of empty strings = %v, want 1", got)
	}
}

func TestSimilarityByName(t *testing.T) {
	for _, name := range []string{"", "sequence", "Levenshtein"} {
		if _, err := classify.SimilarityByName(name); err != nil {
			t.Errorf("SimilarityByName(%q): %v", name, err)
		}
	}
	if _, err := classify.SimilarityByName("jaro"); err == nil {
		t.Fatal("expected error for unknown similarity")
	}
}

func TestNewCatalog_NormalizesKeywords(t *testing.T) {
	cat, err := classify.NewCatalog(classify.Category{
		Name:     " Casting ",
		Keywords: []string{"DUST INSIDE RESIN ", "dust inside resin", "", "  Micro  Bubbles"},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	want := []classify.Category{{
		Name:     "casting",
		Title:    "CASTING",
		Keywords: []string{"dust inside resin", "micro bubbles"},
	}}
	if diff := cmp.Diff(want, cat.Categories()); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
}

func TestNewCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name string
		cats []classify.Category
	}{
		{"empty name", []classify.Category{{Name: " "}}},
		{"reserved other", []classify.Category{{Name: "Other"}}},
		{"duplicate", []classify.Category{{Name: "shell"}, {Name: "SHELL"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := classify.NewCatalog(tt.cats...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCatalog_DisplayOrder(t *testing.T) {
	base := classify.MustCatalog(
		classify.Category{Name: "polishing", Keywords: []string{"side scratch"}},
		classify.Category{Name: "shell", Keywords: []string{"side scratch on shell"}},
		classify.Category{Name: "casting", Keywords: []string{"micro bubbles"}},
	)
	if diff := cmp.Diff(base.Names(), base.DisplayNames()); diff != "" {
		t.Errorf("default display order mismatch (-want +got):\n%s", diff)
	}

	cat, err := base.WithDisplayOrder("Shell")
	if err != nil {
		t.Fatalf("WithDisplayOrder: %v", err)
	}
	if diff := cmp.Diff([]string{"shell", "polishing", "casting"}, cat.DisplayNames()); diff != "" {
		t.Errorf("DisplayNames mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"polishing", "shell", "casting"}, cat.Names()); diff != "" {
		t.Errorf("priority changed (-want +got):\n%s", diff)
	}
	if got := classify.NewClassifier(cat).Classify("side scratch"); got != "polishing" {
		t.Errorf("Classify = %q, want polishing", got)
	}

	for _, bad := range [][]string{{"other"}, {"assembly"}, {"shell", "SHELL"}} {
		if _, err := base.WithDisplayOrder(bad...); err == nil {
			t.Errorf("WithDisplayOrder(%v): expected error", bad)
		}
	}
}

func TestClassify_StandardCatalog(t *testing.T) {
	cat, ok := catalog.Builtin(catalog.Standard)
	if !ok {
		t.Fatal("standard catalog missing")
	}
	c := classify.NewClassifier(cat)

	tests := []struct {
		reason string
		want   string
	}{
		{"Dust inside resin ", "casting"},
		{"DUST ON RESIN", "casting"},
		{"Xyzzy Unknown Defect", classify.Other},
		{"side scracth", "polishing"},
		{"White patch on PCB", "assembly"},
		{"BATTERY ISSUES", "functional"},
		{"Dent on shell", "shell"},
		{"discolouration", "shell"},
		{"12345", classify.Other},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			if got := c.Classify(tt.reason); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.reason, got, tt.want)
			}
		})
	}
}

func TestClassify_ReducedCatalog(t *testing.T) {
	cat, _ := catalog.Builtin(catalog.Reduced)
	c := classify.NewClassifier(cat)
	if got := c.Classify("White patch on PCB"); got != classify.Other {
		t.Errorf("assembly reason in reduced catalog = %q, want other", got)
	}
	if got := c.Classify("Micro bubble"); got != "casting" {
		t.Errorf("Classify(Micro bubble) = %q, want casting", got)
	}
}

func TestClassify_FirstCategoryWins(t *testing.T) {
	cat := classify.MustCatalog(
		classify.Category{Name: "first", Keywords: []string{"scratch on shell"}},
		classify.Category{Name: "second", Keywords: []string{"scratch on shell"}},
	)
	c := classify.NewClassifier(cat)
	for i := 0; i < 10; i++ {
		if got := c.Classify("Scratch on shell"); got != "first" {
			t.Fatalf("Classify = %q, want first", got)
		}
	}

	// A better score in a later category does not beat an earlier hit.
	cat = classify.MustCatalog(
		classify.Category{Name: "early", Keywords: []string{"scratch on shel"}},
		classify.Category{Name: "late", Keywords: []string{"scratch on shell"}},
	)
	m := classify.NewClassifier(cat).Match("scratch on shell")
	if m.Category != "early" || m.Keyword != "scratch on shel" {
		t.Fatalf("Match = %+v, want early/scratch on shel", m)
	}
}

func TestClassify_EmptyCatalog(t *testing.T) {
	for _, cat := range []*classify.Catalog{nil, classify.MustCatalog()} {
		c := classify.NewClassifier(cat)
		if got := c.Classify("dust inside resin"); got != classify.Other {
			t.Fatalf("Classify with empty catalog = %q, want other", got)
		}
	}
}

func TestClassify_NeverReturnsCategoryBelowCutoff(t *testing.T) {
	cat, _ := catalog.Builtin(catalog.Standard)
	var seq classify.SequenceRatio
	c := classify.NewClassifier(cat)
	reasons := []string{"dust on resin", "scratch", "wrong coil", "white mark", "sensor", "not charge"}
	for _, r := range reasons {
		m := c.Match(r)
		if m.Category == classify.Other {
			continue
		}
		hit := false
		for _, cc := range cat.Categories() {
			if cc.Name != m.Category {
				continue
			}
			for _, kw := range cc.Keywords {
				if seq.Ratio(kw, classify.Normalize(r)) >= classify.DefaultCutoff {
					hit = true
				}
			}
		}
		if !hit {
			t.Errorf("%q classified as %q without a keyword above cutoff", r, m.Category)
		}
	}
}

func TestClassify_CustomSimilarityAndCutoff(t *testing.T) {
	cat := classify.MustCatalog(classify.Category{Name: "casting", Keywords: []string{"dust inside resin"}})
	exact := classify.SimilarityFunc(func(a, b string) float64 {
		if a == b {
			return 1
		}
		return 0
	})
	c := classify.NewClassifier(cat, classify.WithSimilarity(exact))
	if got := c.Classify("dust on resin"); got != classify.Other {
		t.Errorf("exact similarity Classify = %q, want other", got)
	}
	if got := c.Classify("DUST INSIDE RESIN"); got != "casting" {
		t.Errorf("exact similarity Classify = %q, want casting", got)
	}

	loose := classify.NewClassifier(cat, classify.WithCutoff(0.3))
	if got := loose.Classify("dust"); got != "casting" {
		t.Errorf("cutoff 0.3 Classify(dust) = %q, want casting", got)
	}
}
