// Package engine defines the upstream search backends: their static
// configuration, the adapter contract that turns a query into an upstream
// request and a response into results, and the concrete adapter kinds.
package engine

import (
	"context"
	"strings"

	"github.com/0xhtml/search-engine/internal/httpx"
	"github.com/0xhtml/search-engine/internal/query"
	"github.com/0xhtml/search-engine/internal/result"
)

// Adapter is the per-backend request/response contract. Implementations must
// be safe for concurrent use.
type Adapter interface {
	// BuildRequest turns the query and 1-based page into an upstream
	// request.
	BuildRequest(q query.Query, page int) (*httpx.RequestSpec, error)
	// ParseResponse extracts results from an upstream response. Failures
	// on individual result nodes are skipped, not fatal.
	ParseResponse(resp *httpx.Response) ([]result.Result, error)
}

// Engine is one upstream search backend. Engines are built at startup and
// read-only during request handling.
type Engine struct {
	// Name is the unique engine identity used in logs, metrics and the
	// per-engine error map.
	Name string
	// Weight is the relative trust multiplier. Engines with weight above
	// 1.0 form the important tier the dispatcher waits for
	// unconditionally.
	Weight float64
	Mode   query.Mode
	// Features are the query capabilities this engine can honor.
	Features query.Feature
	// PageSize is how many results one upstream page carries.
	PageSize int
	// Languages restricts the engine to a set of ISO codes. Nil means
	// all languages.
	Languages map[string]bool
	// Domain is the engine's own site. A site:-restricted query matching
	// this domain is routed here even without the SITE feature.
	Domain string

	Adapter Adapter
}

// Important reports whether the engine belongs to the important tier.
func (e *Engine) Important() bool { return e.Weight > 1 }

// SupportsLanguage reports whether the engine can serve queries in lang.
func (e *Engine) SupportsLanguage(lang string) bool {
	return e.Languages == nil || e.Languages[lang]
}

// Search performs one page fetch for q against the shared transport.
// Transport failures and non-2xx statuses surface as typed engine errors.
func (e *Engine) Search(ctx context.Context, client *httpx.Client, q query.Query, page int) ([]result.Result, error) {
	spec, err := e.Adapter.BuildRequest(q, page)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(ctx, spec)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return e.Adapter.ParseResponse(resp)
}

// Select filters engines down to those applicable to q: same mode, required
// features supported and query language served. A site restriction matching
// the engine's own domain counts as SITE support.
func Select(engines []*Engine, q query.Query) []*Engine {
	required := q.RequiredFeatures()

	var selected []*Engine
	for _, e := range engines {
		if e.Mode != q.Mode {
			continue
		}
		features := e.Features
		if q.Site != "" && matchesDomain(q.Site, e.Domain) {
			features |= query.FeatureSite
		}
		if !features.Has(required) {
			continue
		}
		if !e.SupportsLanguage(q.Lang) {
			continue
		}
		selected = append(selected, e)
	}
	return selected
}

func matchesDomain(site, domain string) bool {
	if domain == "" {
		return false
	}
	site = strings.TrimPrefix(strings.ToLower(site), "www.")
	return site == domain || strings.HasSuffix(site, "."+domain)
}
