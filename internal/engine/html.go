package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/0xhtml/search-engine/internal/httpx"
	"github.com/0xhtml/search-engine/internal/query"
	"github.com/0xhtml/search-engine/internal/result"
)

// HTMLAdapter extracts results from an HTML response using CSS selectors.
// Selectors for optional fields may be empty. Relative result links are
// resolved against the response's final URL after redirects.
type HTMLAdapter struct {
	requestTemplate

	// Kind of results this adapter yields, web or image.
	Kind result.Kind

	// ResultSel selects the repeated result nodes.
	ResultSel string
	// TitleSel selects the title within a result node.
	TitleSel string
	// LinkSel selects the element carrying the result URL in LinkAttr
	// (default "href").
	LinkSel  string
	LinkAttr string
	// TextSel selects the snippet, optional.
	TextSel string
	// SrcSel selects the element carrying the image source URL in
	// SrcAttr (default "src"), image adapters only.
	SrcSel  string
	SrcAttr string
}

func (a *HTMLAdapter) BuildRequest(q query.Query, page int) (*httpx.RequestSpec, error) {
	spec := a.get(q, page)
	spec.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;"+
		"q=0.9,image/avif,image/webp,*/*;q=0.8")
	return spec, nil
}

func (a *HTMLAdapter) ParseResponse(resp *httpx.Response) ([]result.Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var results []result.Result
	doc.Find(a.ResultSel).Each(func(_ int, sel *goquery.Selection) {
		res, err := a.parseNode(resp, sel)
		if err != nil {
			slog.Warn("skipping result node", "error", err)
			return
		}
		results = append(results, res)
	})
	return results, nil
}

func (a *HTMLAdapter) parseNode(resp *httpx.Response, sel *goquery.Selection) (result.Result, error) {
	title := strings.TrimSpace(sel.Find(a.TitleSel).First().Text())

	linkAttr := a.LinkAttr
	if linkAttr == "" {
		linkAttr = "href"
	}
	link := sel
	if a.LinkSel != "" {
		link = sel.Find(a.LinkSel).First()
	}
	href, ok := link.Attr(linkAttr)
	if !ok {
		return result.Result{}, fmt.Errorf("result node has no %s", linkAttr)
	}
	resolved, err := resolveRef(resp, href)
	if err != nil {
		return result.Result{}, err
	}

	var text string
	if a.TextSel != "" {
		text = strings.TrimSpace(sel.Find(a.TextSel).First().Text())
	}

	if a.Kind == result.KindImage {
		srcAttr := a.SrcAttr
		if srcAttr == "" {
			srcAttr = "src"
		}
		src, ok := sel.Find(a.SrcSel).First().Attr(srcAttr)
		if !ok {
			return result.Result{}, fmt.Errorf("result node has no %s", srcAttr)
		}
		resolvedSrc, err := resolveRef(resp, src)
		if err != nil {
			return result.Result{}, err
		}
		return result.NewImage(resolved, title, text, resolvedSrc)
	}

	return result.NewWeb(resolved, title, text)
}

// resolveRef resolves a possibly relative reference against the final
// response URL.
func resolveRef(resp *httpx.Response, ref string) (string, error) {
	parsed, err := resp.FinalURL.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", ref, err)
	}
	return parsed.String(), nil
}

var _ Adapter = (*HTMLAdapter)(nil)
