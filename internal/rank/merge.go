// Package rank folds per-engine result lists into consolidated results and
// scores them into the final ranked page.
package rank

import (
	"math"
	"sort"

	"github.com/0xhtml/search-engine/internal/engine"
	"github.com/0xhtml/search-engine/internal/result"
)

const (
	// PageSize is the fixed size of one response page.
	PageSize = 12
	// maxScored caps how many positions per engine contribute to the
	// rating, the tail is discarded.
	maxScored = 50
)

// positionScore converts a zero-based rank within one engine's list into a
// score. Strictly decreasing and bounded by 10.
func positionScore(i int) float64 {
	return math.Pow(1.25, -float64(i)) * 10
}

// Combined is the mutable merge of all sightings of one resource across
// engines during a single request.
type Combined struct {
	res     result.Result
	rating  float64
	engines map[string]float64
	seq     int
}

// Result returns the current representative record.
func (c *Combined) Result() result.Result { return c.res }

// Rating returns the accumulated position-based rating.
func (c *Combined) Rating() float64 { return c.rating }

// EngineNames returns the sorted names of all contributing engines.
func (c *Combined) EngineNames() []string {
	names := make([]string, 0, len(c.engines))
	for name := range c.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Combined) maxWeight() float64 {
	max := 0.0
	for _, w := range c.engines {
		if w > max {
			max = w
		}
	}
	return max
}

// Set is the consolidated result set of one request, keyed by normalized
// resource identity. It is not safe for concurrent use: the dispatcher
// serializes all folds through a single coordinator.
type Set struct {
	byKey map[string]*Combined
	order []*Combined
}

func NewSet() *Set {
	return &Set{byKey: make(map[string]*Combined)}
}

func (s *Set) Len() int { return len(s.order) }

// All returns the consolidated results in first-seen order.
func (s *Set) All() []*Combined { return s.order }

// foldKey is the identity a result merges under. Answer results never merge
// with web or image sightings of the same URL, and two answers merge only
// when their text is identical.
func foldKey(r result.Result) string {
	if r.Kind == result.KindAnswer {
		return "answer\x00" + r.URL.Key() + "\x00" + r.Text
	}
	return r.URL.Key()
}

// Fold merges one engine's result list into the set. Positions beyond
// maxScored are ignored. Folding the same engine twice never double-counts
// its rating contribution.
func (s *Set) Fold(eng *engine.Engine, results []result.Result) {
	for i, r := range results {
		if i >= maxScored {
			break
		}
		score := positionScore(i)

		key := foldKey(r)
		c, ok := s.byKey[key]
		if !ok {
			c = &Combined{
				res:     r,
				rating:  score * eng.Weight,
				engines: map[string]float64{eng.Name: eng.Weight},
				seq:     len(s.order),
			}
			s.byKey[key] = c
			s.order = append(s.order, c)
			continue
		}
		c.update(r, score, eng)
	}
}

// update applies the merge field-resolution rules for a second-or-later
// sighting of the same resource.
func (c *Combined) update(r result.Result, score float64, eng *engine.Engine) {
	maxWeight := c.maxWeight()

	// A web sighting wins over an image representative. The richer-variant
	// policy is fixed: once web, always web.
	if c.res.Kind == result.KindImage && r.Kind == result.KindWeb {
		c.res.Kind = result.KindWeb
		c.res.Src = ""
	}

	if len(r.Title) > len(c.res.Title) {
		c.res.Title = r.Title
	}
	if len(r.Text) > len(c.res.Text) {
		c.res.Text = r.Text
	}

	switch {
	case c.res.URL.Scheme != "https" && r.URL.Scheme == "https":
		c.res.URL = r.URL
	case eng.Weight > maxWeight:
		c.res.URL = r.URL
	case eng.Weight == maxWeight && len(r.URL.String()) > len(c.res.URL.String()):
		c.res.URL = r.URL
	}

	if c.res.Kind == result.KindImage && r.Kind == result.KindImage {
		if c.res.Src == "" || eng.Weight > maxWeight {
			c.res.Src = r.Src
		}
	}

	if _, contributed := c.engines[eng.Name]; !contributed {
		c.rating += score * eng.Weight
		c.engines[eng.Name] = eng.Weight
	}
}
