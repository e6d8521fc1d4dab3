// Package search is the request-level orchestrator: it parses the raw query,
// selects the applicable engines, dispatches the fan-out and ranks the fold
// into one response page.
package search

import (
	"context"
	"log/slog"

	"github.com/0xhtml/search-engine/internal/apperr"
	"github.com/0xhtml/search-engine/internal/dispatch"
	"github.com/0xhtml/search-engine/internal/engine"
	"github.com/0xhtml/search-engine/internal/lang"
	"github.com/0xhtml/search-engine/internal/query"
	"github.com/0xhtml/search-engine/internal/rank"
	"github.com/0xhtml/search-engine/internal/spam"
)

// Params is one raw search request as it arrives from the transport layer.
type Params struct {
	Query          string
	AcceptLanguage string
	Mode           string
	Page           int
}

// Response is one ranked result page plus the per-engine failures behind it.
type Response struct {
	Query   query.Query
	Results []rank.Rated
	Errors  map[string]error
}

// Service is the search orchestrator. Safe for concurrent use.
type Service struct {
	parser     *query.Parser
	engines    []*engine.Engine
	dispatcher *dispatch.Dispatcher
	detector   lang.Detector
	deny       *spam.List
	logger     *slog.Logger
}

func NewService(
	parser *query.Parser,
	engines []*engine.Engine,
	dispatcher *dispatch.Dispatcher,
	detector lang.Detector,
	deny *spam.List,
	logger *slog.Logger,
) *Service {
	return &Service{
		parser:     parser,
		engines:    engines,
		dispatcher: dispatcher,
		detector:   detector,
		deny:       deny,
		logger:     logger,
	}
}

// Search runs one search end to end. Invalid input surfaces as a
// ValidationError, upstream engine failures never fail the search and are
// reported per engine in the response.
func (s *Service) Search(ctx context.Context, p Params) (*Response, error) {
	mode, err := query.ParseMode(p.Mode)
	if err != nil {
		return nil, apperr.NewValidationWrap("invalid search mode", err)
	}
	if p.Page < 1 {
		return nil, apperr.NewValidation("page must be at least 1")
	}

	q, err := s.parser.Parse(p.Query, p.AcceptLanguage, mode, p.Page)
	if err != nil {
		return nil, apperr.NewValidationWrap("invalid query", err)
	}

	engines := engine.Select(s.engines, q)
	if len(engines) == 0 {
		s.logger.Warn("no engines match query",
			"query", q.String(), "mode", q.Mode, "lang", q.Lang)
		return &Response{Query: q, Errors: map[string]error{}}, nil
	}

	set, errs := s.dispatcher.Dispatch(ctx, engines, q)
	results := rank.Rate(set, q, s.detector, s.deny)

	s.logger.Info("search completed",
		"query", q.String(), "mode", q.Mode, "lang", q.Lang, "page", q.Page,
		"engines", len(engines), "failed", len(errs), "results", len(results))

	return &Response{Query: q, Results: results, Errors: errs}, nil
}
