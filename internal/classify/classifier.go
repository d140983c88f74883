package classify

// DefaultCutoff is the minimum similarity for a keyword to count as a hit.
const DefaultCutoff = 0.8

// Match describes how a reason was classified. Keyword and Score are empty
// when the reason fell through to Other.
type Match struct {
	Category string
	Keyword  string
	Score    float64
}

type Classifier struct {
	catalog *Catalog
	sim     Similarity
	cutoff  float64
}

type Option func(*Classifier)

// WithCutoff overrides DefaultCutoff.
func WithCutoff(cutoff float64) Option {
	return func(c *Classifier) { c.cutoff = cutoff }
}

// WithSimilarity swaps the similarity measure; SequenceRatio is the default.
func WithSimilarity(s Similarity) Option {
	return func(c *Classifier) {
		if s != nil {
			c.sim = s
		}
	}
}

func NewClassifier(cat *Catalog, opts ...Option) *Classifier {
	c := &Classifier{catalog: cat, sim: SequenceRatio{}, cutoff: DefaultCutoff}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Classifier) Catalog() *Catalog { return c.catalog }

func (c *Classifier) Cutoff() float64 { return c.cutoff }

// Classify returns the name of the first category, in catalog order, whose
// best keyword meets the cutoff, or Other.
func (c *Classifier) Classify(reason string) string {
	return c.Match(reason).Category
}

// Match is Classify with the winning keyword and score attached.
func (c *Classifier) Match(reason string) Match {
	r := Normalize(reason)
	if c.catalog == nil {
		return Match{Category: Other}
	}
	for _, cat := range c.catalog.categories {
		kw, score, ok := c.best(r, cat.Keywords)
		if ok {
			return Match{Category: cat.Name, Keyword: kw, Score: score}
		}
	}
	return Match{Category: Other}
}

// best finds the highest scoring keyword at or above the cutoff. On equal
// scores the earlier keyword is kept.
func (c *Classifier) best(reason string, keywords []string) (string, float64, bool) {
	var (
		bestKW    string
		bestScore float64
		found     bool
	)
	for _, kw := range keywords {
		s := c.sim.Ratio(kw, reason)
		if s < c.cutoff {
			continue
		}
		if !found || s > bestScore {
			bestKW, bestScore, found = kw, s, true
		}
	}
	return bestKW, bestScore, found
}
