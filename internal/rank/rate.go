package rank

import (
	"strings"

	"github.com/0xhtml/search-engine/internal/lang"
	"github.com/0xhtml/search-engine/internal/query"
	"github.com/0xhtml/search-engine/internal/result"
	"github.com/0xhtml/search-engine/internal/spam"
)

// Rated is one entry of the final ranked list.
type Rated struct {
	Result  result.Result
	Rating  float64
	Engines []string
	seq     int
}

// Rate evaluates every consolidated result, orders them and returns the
// requested page. Answers always precede non-answers, within each group the
// order is by rating descending with first-seen order breaking ties.
func Rate(s *Set, q query.Query, det lang.Detector, deny *spam.List) []Rated {
	rated := make([]Rated, 0, s.Len())
	for _, c := range s.All() {
		rated = append(rated, Rated{
			Result:  c.Result(),
			Rating:  eval(c, q, det, deny),
			Engines: c.EngineNames(),
			seq:     c.seq,
		})
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	ranked := topN(rated, PageSize*page)

	start := PageSize * (page - 1)
	if start > len(ranked) {
		start = len(ranked)
	}
	return ranked[start:]
}

// eval adjusts a consolidated result's position rating by language match and
// host reputation.
func eval(c *Combined, q query.Query, det lang.Detector, deny *spam.List) float64 {
	rating := c.Rating()
	res := c.Result()

	text := res.Title
	if res.Kind == result.KindAnswer {
		text = res.Text
	} else if res.Text != "" {
		text += " " + res.Text
	}

	// Han script on a non-Chinese query is a flat penalty and takes the
	// place of the confidence blend, the two never stack.
	if q.Lang != "zh" && lang.ContainsHan(text) {
		rating *= 0.5
	} else {
		rating *= (det.Confidence(text, q.Lang) + 1) / 2
	}

	host := res.URL.CmpHost()
	switch {
	case host == "reddit.com":
		rating *= 2
	case host == "docs.python.org", host == "stackoverflow.com", host == "github.com":
		rating *= 1.5
	case host == "wikipedia.org" || strings.HasSuffix(host, ".wikipedia.org"):
		rating *= 1.25
	case strings.HasSuffix(host, ".fandom.com"), deny != nil && deny.Contains(host):
		rating *= 0.5
	}

	return rating
}

// before reports whether a ranks ahead of b.
func before(a, b Rated) bool {
	aAns := a.Result.Kind == result.KindAnswer
	bAns := b.Result.Kind == result.KindAnswer
	if aAns != bAns {
		return aAns
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	return a.seq < b.seq
}
