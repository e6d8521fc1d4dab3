// Package query parses raw query text into the immutable Query passed to
// every engine.
package query

import (
	"errors"
	"fmt"
	"strings"
)

// Mode determines which type of results a search returns.
type Mode string

const (
	ModeWeb     Mode = "web"
	ModeImages  Mode = "images"
	ModeScholar Mode = "scholar"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeWeb, ModeImages, ModeScholar:
		return Mode(s), nil
	case "":
		return ModeWeb, nil
	default:
		return "", fmt.Errorf("unknown search mode %q", s)
	}
}

// Feature is a bitset of capabilities an engine must declare before a query
// requiring them is routed to it.
type Feature uint8

const (
	FeaturePaging Feature = 1 << iota
	FeatureQuotes
	FeatureSite
)

// Has reports whether f contains all features of other.
func (f Feature) Has(other Feature) bool {
	return f&other == other
}

var ErrEmptyQuery = errors.New("empty query")

// Query is a parsed search request. It is immutable and passed by value.
type Query struct {
	Words []string
	Lang  string
	Site  string
	Mode  Mode
	Page  int
}

// String reassembles the query into a query string: phrases are quoted and
// the site restriction is appended as a site: token.
func (q Query) String() string {
	var b strings.Builder

	for i, word := range q.Words {
		if i > 0 {
			b.WriteByte(' ')
		}
		if strings.ContainsRune(word, ' ') {
			b.WriteByte('"')
			b.WriteString(word)
			b.WriteByte('"')
		} else {
			b.WriteString(word)
		}
	}

	if q.Site != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("site:")
		b.WriteString(q.Site)
	}

	return b.String()
}

// RequiredFeatures computes the feature set an engine must support to honor
// this query.
func (q Query) RequiredFeatures() Feature {
	var f Feature
	for _, word := range q.Words {
		if strings.ContainsRune(word, ' ') {
			f |= FeatureQuotes
			break
		}
	}
	if q.Site != "" {
		f |= FeatureSite
	}
	if q.Page != 1 {
		f |= FeaturePaging
	}
	return f
}
