package dto

import (
	"github.com/0xhtml/search-engine/internal/rank"
	"github.com/0xhtml/search-engine/internal/search"
	"github.com/0xhtml/search-engine/pkg/pagination"
	"github.com/0xhtml/search-engine/pkg/utils"
)

type SearchResult struct {
	Kind    string   `json:"kind"`
	URL     string   `json:"url"`
	Title   string   `json:"title,omitempty"`
	Text    string   `json:"text,omitempty"`
	Src     string   `json:"src,omitempty"`
	Rating  float64  `json:"rating"`
	Engines []string `json:"engines"`
}

type SearchResponse struct {
	Query   string                         `json:"query"`
	Lang    string                         `json:"lang"`
	Mode    string                         `json:"mode"`
	Results *pagination.Page[SearchResult] `json:"results"`
	Errors  map[string]string              `json:"errors,omitempty"`
}

// NewSearchResponse maps a completed search into its wire shape. Ratings are
// rounded to two decimals, per-engine errors are flattened to their message.
func NewSearchResponse(resp *search.Response) *SearchResponse {
	items := make([]SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		items = append(items, newSearchResult(r))
	}

	var errs map[string]string
	if len(resp.Errors) > 0 {
		errs = make(map[string]string, len(resp.Errors))
		for name, err := range resp.Errors {
			errs[name] = err.Error()
		}
	}

	return &SearchResponse{
		Query:   resp.Query.String(),
		Lang:    resp.Query.Lang,
		Mode:    string(resp.Query.Mode),
		Results: pagination.NewPage(items, resp.Query.Page, rank.PageSize),
		Errors:  errs,
	}
}

func newSearchResult(r rank.Rated) SearchResult {
	return SearchResult{
		Kind:    r.Result.Kind.String(),
		URL:     r.Result.URL.String(),
		Title:   r.Result.Title,
		Text:    r.Result.Text,
		Src:     r.Result.Src,
		Rating:  utils.RoundDecimal(r.Rating, 2),
		Engines: r.Engines,
	}
}
