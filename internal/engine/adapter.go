package engine

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/0xhtml/search-engine/internal/httpx"
	"github.com/0xhtml/search-engine/internal/query"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) " +
	"Gecko/20100101 Firefox/125.0"

// PageMode describes how an engine expects the page to be encoded.
type PageMode int

const (
	// PageNone: the engine does not page.
	PageNone PageMode = iota
	// PageNumber: 1-based page number.
	PageNumber
	// PageNumberZero: 0-based page number.
	PageNumberZero
	// PageOffset: result offset, (page-1)*PageSize.
	PageOffset
)

// requestTemplate is the shared request-building half of the HTML and JSON
// adapters. The zero value of each field falls back to a sensible default so
// engine definitions stay short.
type requestTemplate struct {
	// URL is the endpoint without query string.
	URL string
	// Method defaults to GET.
	Method string
	// QueryKey is the query parameter carrying the search terms,
	// defaulting to "q".
	QueryKey string
	// Params are static request parameters sent with every search.
	Params url.Values
	// Headers are additional request headers.
	Headers map[string]string

	PageParam string
	PageMode  PageMode
	// PageSize is only needed for PageOffset.
	PageSize int

	// LangParam and LangMap narrow the search by language: the mapped
	// value is added only when a mapping exists for the query language,
	// a missing mapping means the parameter is omitted entirely.
	LangParam string
	LangMap   map[string]string
}

func (t *requestTemplate) values(q query.Query, page int) url.Values {
	values := url.Values{}
	for key, vals := range t.Params {
		values[key] = vals
	}

	queryKey := t.QueryKey
	if queryKey == "" {
		queryKey = "q"
	}
	values.Set(queryKey, q.String())

	if t.PageParam != "" {
		switch t.PageMode {
		case PageNumber:
			values.Set(t.PageParam, strconv.Itoa(page))
		case PageNumberZero:
			values.Set(t.PageParam, strconv.Itoa(page-1))
		case PageOffset:
			values.Set(t.PageParam, strconv.Itoa((page-1)*t.PageSize))
		}
	}

	if t.LangParam != "" {
		if mapped, ok := t.LangMap[q.Lang]; ok {
			values.Set(t.LangParam, mapped)
		}
	}

	return values
}

func (t *requestTemplate) header() http.Header {
	header := http.Header{}
	header.Set("User-Agent", userAgent)
	for key, value := range t.Headers {
		header.Set(key, value)
	}
	return header
}

func (t *requestTemplate) get(q query.Query, page int) *httpx.RequestSpec {
	return &httpx.RequestSpec{
		Method: http.MethodGet,
		URL:    t.URL + "?" + t.values(q, page).Encode(),
		Header: t.header(),
	}
}
