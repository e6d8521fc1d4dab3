package engine

import (
	"net/http"
	"time"

	"github.com/0xhtml/search-engine/internal/httpx"
	"github.com/0xhtml/search-engine/internal/query"
	"github.com/0xhtml/search-engine/internal/result"
)

const consentTTL = 24 * time.Hour

// GoogleAdapter is an HTMLAdapter that attaches the consent cookies Google
// requires before serving result pages. The consent value is kept in the
// adapter's session cache and regenerated when it expires.
type GoogleAdapter struct {
	HTMLAdapter

	sessions *SessionCache
}

func NewGoogleAdapter(html HTMLAdapter) *GoogleAdapter {
	return &GoogleAdapter{HTMLAdapter: html, sessions: NewSessionCache()}
}

func (a *GoogleAdapter) BuildRequest(q query.Query, page int) (*httpx.RequestSpec, error) {
	spec, err := a.HTMLAdapter.BuildRequest(q, page)
	if err != nil {
		return nil, err
	}

	consent, err := a.sessions.GetOrFill("consent", consentTTL, func() (string, error) {
		return "YES+cb." + time.Now().UTC().Format("20060102") + "-17-p0.de+F+917", nil
	})
	if err != nil {
		return nil, err
	}

	spec.Cookies = append(spec.Cookies,
		&http.Cookie{Name: "CONSENT", Value: consent},
		&http.Cookie{Name: "SOCS", Value: "CAISHAgBEhJnd3NfMjAyNDAxMzEtMF9SQzIaAmRlIAEaBgiAo-2tBg"},
	)
	return spec, nil
}

// ParseResponse drops the cached consent when the page yields nothing: an
// empty result list is what a consent interstitial parses to, and the next
// request should negotiate a fresh cookie.
func (a *GoogleAdapter) ParseResponse(resp *httpx.Response) ([]result.Result, error) {
	results, err := a.HTMLAdapter.ParseResponse(resp)
	if err != nil || len(results) == 0 {
		a.sessions.Invalidate("consent")
	}
	return results, err
}

var _ Adapter = (*GoogleAdapter)(nil)
