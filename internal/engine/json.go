package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/0xhtml/search-engine/internal/httpx"
	"github.com/0xhtml/search-engine/internal/query"
	"github.com/0xhtml/search-engine/internal/result"
)

// JSONAdapter extracts results from a JSON response using gjson paths.
// ResultPath selects the repeated result array, the field paths are relative
// to one array element.
type JSONAdapter struct {
	requestTemplate

	Kind result.Kind

	ResultPath string
	TitlePath  string
	URLPath    string
	// TextPath is optional.
	TextPath string
	// SrcPath is required for image adapters.
	SrcPath string
}

func (a *JSONAdapter) BuildRequest(q query.Query, page int) (*httpx.RequestSpec, error) {
	if a.Method != http.MethodPost {
		return a.get(q, page), nil
	}

	payload := make(map[string]string)
	for key, vals := range a.values(q, page) {
		if len(vals) > 0 {
			payload[key] = vals[0]
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	header := a.header()
	header.Set("Content-Type", "application/json")
	return &httpx.RequestSpec{
		Method: http.MethodPost,
		URL:    a.URL,
		Header: header,
		Body:   body,
	}, nil
}

func (a *JSONAdapter) ParseResponse(resp *httpx.Response) ([]result.Result, error) {
	if !gjson.ValidBytes(resp.Body) {
		return nil, fmt.Errorf("invalid json response")
	}

	var results []result.Result
	for _, node := range gjson.GetBytes(resp.Body, a.ResultPath).Array() {
		res, err := a.parseNode(resp, node)
		if err != nil {
			slog.Warn("skipping result node", "error", err)
			continue
		}
		results = append(results, res)
	}
	return results, nil
}

func (a *JSONAdapter) parseNode(resp *httpx.Response, node gjson.Result) (result.Result, error) {
	rawURL := node.Get(a.URLPath).String()
	if rawURL == "" {
		return result.Result{}, fmt.Errorf("result node has no url")
	}
	resolved, err := resolveRef(resp, rawURL)
	if err != nil {
		return result.Result{}, err
	}

	title := node.Get(a.TitlePath).String()

	var text string
	if a.TextPath != "" {
		text = node.Get(a.TextPath).String()
	}

	if a.Kind == result.KindImage {
		src := node.Get(a.SrcPath).String()
		if src == "" {
			return result.Result{}, fmt.Errorf("result node has no image source")
		}
		resolvedSrc, err := resolveRef(resp, src)
		if err != nil {
			return result.Result{}, err
		}
		return result.NewImage(resolved, title, text, resolvedSrc)
	}

	return result.NewWeb(resolved, title, text)
}

var _ Adapter = (*JSONAdapter)(nil)
