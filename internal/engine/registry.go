package engine

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"gopkg.in/yaml.v3"

	"github.com/0xhtml/search-engine/internal/query"
	"github.com/0xhtml/search-engine/internal/result"
)

// Overrides tweak the static engine definitions from a YAML config file.
type Overrides struct {
	Engines map[string]Override `yaml:"engines"`
}

type Override struct {
	Weight   *float64 `yaml:"weight"`
	Disabled bool     `yaml:"disabled"`
}

// LoadOverrides decodes engine overrides from r.
func LoadOverrides(r io.Reader) (*Overrides, error) {
	var o Overrides
	if err := yaml.NewDecoder(r).Decode(&o); err != nil {
		return nil, fmt.Errorf("decode engine overrides: %w", err)
	}
	return &o, nil
}

// Registry builds the engine set: the static defaults with overrides
// applied, each validated. An engine with invalid metadata is not registered,
// the error is logged loudly and the remaining engines stay usable.
func Registry(overrides *Overrides) []*Engine {
	var engines []*Engine
	seen := make(map[string]bool)

	for _, e := range defaults() {
		if overrides != nil {
			if o, ok := overrides.Engines[e.Name]; ok {
				if o.Disabled {
					slog.Info("engine disabled by config", "engine", e.Name)
					continue
				}
				if o.Weight != nil {
					e.Weight = *o.Weight
				}
			}
		}

		if err := validate(e, seen); err != nil {
			slog.Error("skipping misconfigured engine", "error", err)
			continue
		}
		seen[e.Name] = true
		engines = append(engines, e)
	}

	return engines
}

func validate(e *Engine, seen map[string]bool) error {
	switch {
	case e.Name == "":
		return &ConfigurationError{Engine: e.Name, Reason: "empty name"}
	case seen[e.Name]:
		return &ConfigurationError{Engine: e.Name, Reason: "duplicate name"}
	case e.Weight <= 0:
		return &ConfigurationError{Engine: e.Name, Reason: "weight must be positive"}
	case e.PageSize <= 0:
		return &ConfigurationError{Engine: e.Name, Reason: "page size must be positive"}
	case e.Mode != query.ModeWeb && e.Mode != query.ModeImages && e.Mode != query.ModeScholar:
		return &ConfigurationError{Engine: e.Name, Reason: fmt.Sprintf("unknown mode %q", e.Mode)}
	case e.Adapter == nil:
		return &ConfigurationError{Engine: e.Name, Reason: "missing adapter"}
	}
	return nil
}

func langs(codes ...string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, c := range codes {
		m[c] = true
	}
	return m
}

// googleLangs maps query languages onto the hl parameter. A missing mapping
// means the parameter is omitted and the search runs unrestricted.
var googleLangs = map[string]string{
	"en": "en", "de": "de", "fr": "fr", "es": "es", "it": "it", "nl": "nl",
}

var bingLangs = map[string]string{
	"en": "en-US", "de": "de-DE", "fr": "fr-FR", "es": "es-ES", "it": "it-IT",
}

var mojeekLangs = map[string]string{
	"en": "en", "de": "de", "fr": "fr",
}

// defaults returns fresh engine values on every call. Each engine owns its
// configuration, nothing is aliased from a shared default.
func defaults() []*Engine {
	return []*Engine{
		{
			Name:     "google",
			Weight:   1.3,
			Mode:     query.ModeWeb,
			Features: query.FeatureQuotes | query.FeatureSite | query.FeaturePaging,
			PageSize: 10,
			Adapter: NewGoogleAdapter(HTMLAdapter{
				requestTemplate: requestTemplate{
					URL:       "https://www.google.com/search",
					PageParam: "start",
					PageMode:  PageOffset,
					PageSize:  10,
					LangParam: "hl",
					LangMap:   googleLangs,
				},
				Kind:      result.KindWeb,
				ResultSel: "div.g",
				TitleSel:  "h3",
				LinkSel:   "a",
				TextSel:   "div.VwiC3b",
			}),
		},
		{
			Name:     "google images",
			Weight:   1.3,
			Mode:     query.ModeImages,
			Features: query.FeatureQuotes | query.FeatureSite,
			PageSize: 20,
			Adapter: NewGoogleAdapter(HTMLAdapter{
				requestTemplate: requestTemplate{
					URL:       "https://www.google.com/search",
					Params:    url.Values{"tbm": {"isch"}},
					LangParam: "hl",
					LangMap:   googleLangs,
				},
				Kind:      result.KindImage,
				ResultSel: "div[data-ri]",
				TitleSel:  "h3",
				LinkSel:   "a",
				SrcSel:    "img",
			}),
		},
		{
			Name:     "bing",
			Weight:   1.3,
			Mode:     query.ModeWeb,
			Features: query.FeatureQuotes | query.FeatureSite | query.FeaturePaging,
			PageSize: 10,
			Adapter: &HTMLAdapter{
				requestTemplate: requestTemplate{
					URL:       "https://www.bing.com/search",
					PageParam: "first",
					PageMode:  PageOffset,
					PageSize:  10,
					LangParam: "setlang",
					LangMap:   bingLangs,
				},
				Kind:      result.KindWeb,
				ResultSel: "li.b_algo",
				TitleSel:  "h2",
				LinkSel:   "h2 a",
				TextSel:   "div.b_caption p",
			},
		},
		{
			Name:     "bing images",
			Weight:   1.3,
			Mode:     query.ModeImages,
			Features: query.FeatureQuotes | query.FeatureSite,
			PageSize: 35,
			Adapter: &HTMLAdapter{
				requestTemplate: requestTemplate{
					URL:       "https://www.bing.com/images/search",
					LangParam: "setlang",
					LangMap:   bingLangs,
				},
				Kind:      result.KindImage,
				ResultSel: "div.imgpt",
				TitleSel:  "div.img_info",
				LinkSel:   "a.iusc",
				SrcSel:    "img",
			},
		},
		{
			Name:     "mojeek",
			Weight:   1,
			Mode:     query.ModeWeb,
			Features: query.FeatureQuotes | query.FeatureSite | query.FeaturePaging,
			PageSize: 10,
			Adapter: &HTMLAdapter{
				requestTemplate: requestTemplate{
					URL:       "https://www.mojeek.com/search",
					PageParam: "s",
					PageMode:  PageOffset,
					PageSize:  10,
					LangParam: "lb",
					LangMap:   mojeekLangs,
				},
				Kind:      result.KindWeb,
				ResultSel: "ul.results-standard li",
				TitleSel:  "h2 a",
				LinkSel:   "h2 a",
				TextSel:   "p.s",
			},
		},
		{
			Name:     "mojeek images",
			Weight:   1,
			Mode:     query.ModeImages,
			PageSize: 30,
			Adapter: &HTMLAdapter{
				requestTemplate: requestTemplate{
					URL:    "https://www.mojeek.com/search",
					Params: url.Values{"fmt": {"images"}},
				},
				Kind:      result.KindImage,
				ResultSel: "ul.results-image li",
				TitleSel:  "a",
				LinkSel:   "a",
				SrcSel:    "img",
			},
		},
		{
			Name:      "right dao",
			Weight:    1,
			Mode:      query.ModeWeb,
			Features:  query.FeatureQuotes | query.FeatureSite,
			PageSize:  10,
			Languages: langs("en"),
			Adapter: &HTMLAdapter{
				requestTemplate: requestTemplate{
					URL: "https://rightdao.com/search",
				},
				Kind:      result.KindWeb,
				ResultSel: "div.item",
				TitleSel:  "div.title",
				LinkSel:   "div.title a",
				TextSel:   "div.description",
			},
		},
		{
			Name:      "alexandria",
			Weight:    1,
			Mode:      query.ModeWeb,
			Features:  query.FeatureSite,
			PageSize:  12,
			Languages: langs("en"),
			Adapter: &JSONAdapter{
				requestTemplate: requestTemplate{
					URL:    "https://api.alexandria.org",
					Params: url.Values{"a": {"1"}, "c": {"a"}},
				},
				Kind:       result.KindWeb,
				ResultPath: "results",
				TitlePath:  "title",
				URLPath:    "url",
				TextPath:   "snippet",
			},
		},
		{
			Name:      "stract",
			Weight:    1,
			Mode:      query.ModeWeb,
			Features:  query.FeatureQuotes | query.FeatureSite,
			PageSize:  20,
			Languages: langs("en"),
			Adapter: &JSONAdapter{
				requestTemplate: requestTemplate{
					URL:      "https://stract.com/beta/api/search",
					Method:   http.MethodPost,
					QueryKey: "query",
				},
				Kind:       result.KindWeb,
				ResultPath: "webpages",
				TitlePath:  "title",
				URLPath:    "url",
				TextPath:   "snippet.text",
			},
		},
		{
			Name:     "yep",
			Weight:   1,
			Mode:     query.ModeWeb,
			Features: query.FeatureSite,
			PageSize: 20,
			Adapter: &JSONAdapter{
				requestTemplate: requestTemplate{
					URL:    "https://api.yep.com/fs/2/search",
					Params: url.Values{"client": {"web_gui_final"}, "type": {"web"}},
				},
				Kind:       result.KindWeb,
				ResultPath: "1.results",
				TitlePath:  "title",
				URLPath:    "url",
				TextPath:   "snippet",
			},
		},
		{
			Name:     "yep images",
			Weight:   1,
			Mode:     query.ModeImages,
			PageSize: 60,
			Adapter: &JSONAdapter{
				requestTemplate: requestTemplate{
					URL:    "https://api.yep.com/fs/2/search",
					Params: url.Values{"client": {"web_gui_final"}, "type": {"images"}},
				},
				Kind:       result.KindImage,
				ResultPath: "1.results",
				TitlePath:  "title",
				URLPath:    "host_page",
				SrcPath:    "image_id",
			},
		},
		{
			Name:     "sese",
			Weight:   1,
			Mode:     query.ModeWeb,
			Features: query.FeatureSite,
			PageSize: 12,
			Adapter: &JSONAdapter{
				requestTemplate: requestTemplate{
					URL:    "https://se-proxy.azurewebsites.net/api/search",
					Params: url.Values{"slice": {"0:12"}},
				},
				Kind:       result.KindWeb,
				ResultPath: "结果",
				TitlePath:  "信息.标题",
				URLPath:    "网址",
				TextPath:   "信息.描述",
			},
		},
		{
			Name:     "reddit",
			Weight:   1,
			Mode:     query.ModeWeb,
			PageSize: 25,
			Domain:   "reddit.com",
			Adapter: &JSONAdapter{
				requestTemplate: requestTemplate{
					URL: "https://www.reddit.com/search.json",
				},
				Kind:       result.KindWeb,
				ResultPath: "data.children",
				TitlePath:  "data.title",
				URLPath:    "data.permalink",
				TextPath:   "data.selftext",
			},
		},
		{
			Name:     "ddg answers",
			Weight:   1,
			Mode:     query.ModeWeb,
			PageSize: 1,
			Adapter:  &InstantAnswerAdapter{},
		},
		{
			Name:     "semantic scholar",
			Weight:   1.2,
			Mode:     query.ModeScholar,
			Features: query.FeatureQuotes | query.FeaturePaging,
			PageSize: 20,
			Adapter: &JSONAdapter{
				requestTemplate: requestTemplate{
					URL:       "https://api.semanticscholar.org/graph/v1/paper/search",
					QueryKey:  "query",
					Params:    url.Values{"fields": {"title,abstract,url"}, "limit": {"20"}},
					PageParam: "offset",
					PageMode:  PageOffset,
					PageSize:  20,
				},
				Kind:       result.KindWeb,
				ResultPath: "data",
				TitlePath:  "title",
				URLPath:    "url",
				TextPath:   "abstract",
			},
		},
		{
			Name:     "crossref",
			Weight:   1,
			Mode:     query.ModeScholar,
			Features: query.FeaturePaging,
			PageSize: 20,
			Adapter: &JSONAdapter{
				requestTemplate: requestTemplate{
					URL:       "https://api.crossref.org/works",
					QueryKey:  "query",
					Params:    url.Values{"rows": {"20"}},
					PageParam: "offset",
					PageMode:  PageOffset,
					PageSize:  20,
				},
				Kind:       result.KindWeb,
				ResultPath: "message.items",
				TitlePath:  "title.0",
				URLPath:    "URL",
				TextPath:   "abstract",
			},
		},
	}
}
