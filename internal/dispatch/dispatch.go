// Package dispatch fans a query out to the selected engines, enforces the
// two-tier deadline and folds the responses into one consolidated set.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/0xhtml/search-engine/internal/engine"
	"github.com/0xhtml/search-engine/internal/httpx"
	"github.com/0xhtml/search-engine/internal/metrics"
	"github.com/0xhtml/search-engine/internal/query"
	"github.com/0xhtml/search-engine/internal/rank"
	"github.com/0xhtml/search-engine/internal/result"
)

const (
	// cacheTTL is how long a successful upstream page response is reused.
	cacheTTL = 24 * time.Hour
	// baseGrace is the deadline granted to ordinary engines when no
	// important engine reported a usable elapsed time.
	baseGrace = time.Second
)

// Dispatcher coordinates concurrent engine searches. Safe for concurrent use.
type Dispatcher struct {
	client *httpx.Client
	cache  *gocache.Cache
	sink   metrics.Sink
	logger *slog.Logger
}

func New(client *httpx.Client, sink metrics.Sink, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		client: client,
		cache:  gocache.New(cacheTTL, time.Hour),
		sink:   sink,
		logger: logger,
	}
}

// outcome is the single message an engine goroutine reports back: the pages
// fetched before the first failure, the slowest successful page fetch (zero
// when no page succeeded) and the failure itself, if any.
type outcome struct {
	engine  *engine.Engine
	results []result.Result
	elapsed time.Duration
	err     error
}

// cachedPage retains the original fetch duration so cache hits feed the same
// timing into the ordinary-tier deadline as the live fetch did.
type cachedPage struct {
	results []result.Result
	elapsed time.Duration
}

// Dispatch searches all engines concurrently and folds their results into a
// consolidated set. Important engines (weight above 1) are waited for
// unconditionally. Ordinary engines get a deadline derived from the slowest
// important response: half of it, but at least what remains of one second.
// Engines still in flight at the deadline are cancelled and reported
// in the error map under their name.
func (d *Dispatcher) Dispatch(ctx context.Context, engines []*engine.Engine, q query.Query) (*rank.Set, map[string]error) {
	set := rank.NewSet()
	errs := make(map[string]error)
	if len(engines) == 0 {
		return set, errs
	}

	ordCtx, cancelOrdinary := context.WithCancel(ctx)
	defer cancelOrdinary()

	out := make(chan outcome, len(engines))
	importantLeft := 0
	for _, eng := range engines {
		runCtx := ordCtx
		if eng.Important() {
			runCtx = ctx
			importantLeft++
		}
		go d.runEngine(runCtx, eng, q, out)
	}

	remaining := len(engines)
	var maxElapsed time.Duration
	fold := func(o outcome) {
		remaining--
		if o.engine.Important() {
			importantLeft--
			if o.elapsed > maxElapsed {
				maxElapsed = o.elapsed
			}
		}
		if o.err != nil {
			errs[o.engine.Name] = o.err
			d.logger.Warn("engine search failed",
				"engine", o.engine.Name, "error", o.err)
		}
		set.Fold(o.engine, o.results)
	}

	for importantLeft > 0 {
		fold(<-out)
	}

	grace := maxElapsed / 2
	if rest := baseGrace - maxElapsed; rest > grace {
		grace = rest
	}
	timer := time.NewTimer(grace)
	defer timer.Stop()

	for remaining > 0 {
		select {
		case o := <-out:
			fold(o)
		case <-timer.C:
			cancelOrdinary()
		}
	}

	for name, err := range errs {
		d.sink.RecordError(ctx, name, err)
	}
	return set, errs
}

// maxPage is how many upstream pages the engine must serve to cover the
// requested result page.
func maxPage(eng *engine.Engine, q query.Query) int {
	if !eng.Features.Has(query.FeaturePaging) {
		return 1
	}
	return (rank.PageSize*q.Page + eng.PageSize - 1) / eng.PageSize
}

// runEngine fetches the engine's pages in order and reports exactly one
// outcome. A page failure stops the engine, earlier pages still count.
func (d *Dispatcher) runEngine(ctx context.Context, eng *engine.Engine, q query.Query, out chan<- outcome) {
	o := outcome{engine: eng}
	for page := 1; page <= maxPage(eng, q); page++ {
		results, elapsed, err := d.searchPage(ctx, eng, q, page)
		if err != nil {
			o.err = err
			break
		}
		o.results = append(o.results, results...)
		if elapsed > o.elapsed {
			o.elapsed = elapsed
		}
	}
	out <- o
}

// searchPage serves one upstream page, from the response cache when
// possible. Only successful responses are cached.
func (d *Dispatcher) searchPage(ctx context.Context, eng *engine.Engine, q query.Query, page int) ([]result.Result, time.Duration, error) {
	key := cacheKey(eng, q, page)
	if v, ok := d.cache.Get(key); ok {
		hit := v.(cachedPage)
		return hit.results, hit.elapsed, nil
	}

	start := time.Now()
	results, err := eng.Search(ctx, d.client, q, page)
	elapsed := time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			err = &engine.TimeoutError{}
		}
		return nil, 0, err
	}

	d.cache.Set(key, cachedPage{results: results, elapsed: elapsed}, gocache.DefaultExpiration)
	d.sink.RecordSuccess(ctx, eng.Name, len(results), elapsed)
	return results, elapsed, nil
}

func cacheKey(eng *engine.Engine, q query.Query, page int) string {
	return fmt.Sprintf("%s\x00%s\x00%s\x00%s\x00%d", eng.Name, q.Mode, q.Lang, q.String(), page)
}
