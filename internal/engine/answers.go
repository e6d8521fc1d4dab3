package engine

import (
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/0xhtml/search-engine/internal/httpx"
	"github.com/0xhtml/search-engine/internal/query"
	"github.com/0xhtml/search-engine/internal/result"
)

// InstantAnswerAdapter queries the DuckDuckGo instant answer API and yields
// at most one answer result. Queries without an abstract yield nothing.
type InstantAnswerAdapter struct{}

func (a *InstantAnswerAdapter) BuildRequest(q query.Query, _ int) (*httpx.RequestSpec, error) {
	values := url.Values{}
	values.Set("q", q.String())
	values.Set("format", "json")
	values.Set("no_html", "1")
	values.Set("no_redirect", "1")

	header := http.Header{}
	header.Set("User-Agent", userAgent)

	return &httpx.RequestSpec{
		Method: http.MethodGet,
		URL:    "https://api.duckduckgo.com/?" + values.Encode(),
		Header: header,
	}, nil
}

func (a *InstantAnswerAdapter) ParseResponse(resp *httpx.Response) ([]result.Result, error) {
	text := gjson.GetBytes(resp.Body, "AbstractText").String()
	source := gjson.GetBytes(resp.Body, "AbstractURL").String()
	if text == "" || source == "" {
		return nil, nil
	}

	answer, err := result.NewAnswer(source, text)
	if err != nil {
		return nil, nil
	}
	return []result.Result{answer}, nil
}

var _ Adapter = (*InstantAnswerAdapter)(nil)
