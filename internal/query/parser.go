package query

import (
	"strings"

	"github.com/0xhtml/search-engine/internal/lang"
)

// DefaultLang is the final language fallback when neither the query nor the
// Accept-Language header yields one.
const DefaultLang = "en"

// Parser turns raw query text into a Query. The language detector resolves
// the query language when no explicit lang: token is present.
type Parser struct {
	detector lang.Detector
}

func NewParser(detector lang.Detector) *Parser {
	return &Parser{detector: detector}
}

// Parse tokenizes raw and resolves the query language. It returns
// ErrEmptyQuery when no word tokens remain after parsing.
func (p *Parser) Parse(raw, acceptLanguage string, mode Mode, page int) (Query, error) {
	var (
		words    []string
		language string
		site     string
	)

	for _, tok := range newTokenizer(raw).tokenize() {
		switch tok.typ {
		case tokenLang:
			language = tok.value
		case tokenSite:
			site = tok.value
		default:
			words = append(words, tok.value)
		}
	}

	if len(words) == 0 {
		return Query{}, ErrEmptyQuery
	}

	if language == "" {
		language = p.resolveLang(strings.Join(words, " "), acceptLanguage)
	}

	return Query{
		Words: words,
		Lang:  language,
		Site:  site,
		Mode:  mode,
		Page:  page,
	}, nil
}

func (p *Parser) resolveLang(text, acceptLanguage string) string {
	candidates := lang.ParseAcceptLanguage(acceptLanguage)
	if len(candidates) == 0 {
		candidates = []string{DefaultLang}
	}

	if detected := p.detector.Detect(text, candidates); detected != "" {
		return detected
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return DefaultLang
}
