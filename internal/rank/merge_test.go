package rank

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xhtml/search-engine/internal/engine"
	"github.com/0xhtml/search-engine/internal/result"
)

func mustWeb(t *testing.T, rawURL, title, text string) result.Result {
	t.Helper()
	r, err := result.NewWeb(rawURL, title, text)
	require.NoError(t, err)
	return r
}

func mustImage(t *testing.T, rawURL, title, src string) result.Result {
	t.Helper()
	r, err := result.NewImage(rawURL, title, "", src)
	require.NoError(t, err)
	return r
}

func TestFoldMergesSameResource(t *testing.T) {
	a := &engine.Engine{Name: "a", Weight: 1}
	b := &engine.Engine{Name: "b", Weight: 1.3}

	s := NewSet()
	s.Fold(a, []result.Result{mustWeb(t, "http://example.com/page", "Example", "short")})
	s.Fold(b, []result.Result{mustWeb(t, "https://example.com/page", "Example Domain", "a much longer snippet")})

	require.Equal(t, 1, s.Len())
	c := s.All()[0]
	assert.InDelta(t, 10*1+10*1.3, c.Rating(), 1e-9)
	assert.Equal(t, "Example Domain", c.Result().Title)
	assert.Equal(t, "a much longer snippet", c.Result().Text)
	assert.Equal(t, "https", c.Result().URL.Scheme)
	assert.Equal(t, []string{"a", "b"}, c.EngineNames())
}

func TestFoldSameEngineCountsOnce(t *testing.T) {
	a := &engine.Engine{Name: "a", Weight: 1}
	results := []result.Result{mustWeb(t, "https://example.com/", "Example", "")}

	s := NewSet()
	s.Fold(a, results)
	s.Fold(a, results)

	require.Equal(t, 1, s.Len())
	assert.InDelta(t, 10.0, s.All()[0].Rating(), 1e-9)
}

func TestFoldURLResolution(t *testing.T) {
	t.Run("higher weight wins", func(t *testing.T) {
		s := NewSet()
		s.Fold(&engine.Engine{Name: "a", Weight: 1}, []result.Result{
			mustWeb(t, "https://example.com/page/", "Example", ""),
		})
		s.Fold(&engine.Engine{Name: "b", Weight: 1.3}, []result.Result{
			mustWeb(t, "https://example.com/page", "Example", ""),
		})
		assert.Equal(t, "https://example.com/page", s.All()[0].Result().URL.String())
	})

	t.Run("equal weight keeps longer", func(t *testing.T) {
		s := NewSet()
		s.Fold(&engine.Engine{Name: "a", Weight: 1}, []result.Result{
			mustWeb(t, "https://example.com/page", "Example", ""),
		})
		s.Fold(&engine.Engine{Name: "b", Weight: 1}, []result.Result{
			mustWeb(t, "https://example.com/page/", "Example", ""),
		})
		assert.Equal(t, "https://example.com/page/", s.All()[0].Result().URL.String())
	})

	t.Run("lower weight never replaces", func(t *testing.T) {
		s := NewSet()
		s.Fold(&engine.Engine{Name: "a", Weight: 1.3}, []result.Result{
			mustWeb(t, "https://example.com/page", "Example", ""),
		})
		s.Fold(&engine.Engine{Name: "b", Weight: 1}, []result.Result{
			mustWeb(t, "https://example.com/page/", "Example", ""),
		})
		assert.Equal(t, "https://example.com/page", s.All()[0].Result().URL.String())
	})
}

func TestFoldWebWinsOverImage(t *testing.T) {
	s := NewSet()
	s.Fold(&engine.Engine{Name: "a", Weight: 1}, []result.Result{
		mustImage(t, "https://example.com/cat", "Cat", "https://img.example.com/cat.jpg"),
	})
	s.Fold(&engine.Engine{Name: "b", Weight: 1}, []result.Result{
		mustWeb(t, "https://example.com/cat", "Cat pictures", ""),
	})

	require.Equal(t, 1, s.Len())
	got := s.All()[0].Result()
	assert.Equal(t, result.KindWeb, got.Kind)
	assert.Empty(t, got.Src)
}

func TestFoldAnswersKeepSeparateIdentity(t *testing.T) {
	web := mustWeb(t, "https://en.wikipedia.org/wiki/Go", "Go", "")
	ans, err := result.NewAnswer("https://en.wikipedia.org/wiki/Go", "Go is a programming language.")
	require.NoError(t, err)

	s := NewSet()
	s.Fold(&engine.Engine{Name: "a", Weight: 1}, []result.Result{web, ans})
	assert.Equal(t, 2, s.Len())
}

func TestFoldIgnoresTailPositions(t *testing.T) {
	results := make([]result.Result, maxScored+5)
	for i := range results {
		results[i] = mustWeb(t, fmt.Sprintf("https://example.com/p%d", i), "p", "")
	}

	s := NewSet()
	s.Fold(&engine.Engine{Name: "a", Weight: 1}, results)
	assert.Equal(t, maxScored, s.Len())
}

func TestPositionScore(t *testing.T) {
	assert.InDelta(t, 10.0, positionScore(0), 1e-9)
	assert.InDelta(t, 8.0, positionScore(1), 1e-9)
	for i := 1; i < maxScored; i++ {
		assert.Less(t, positionScore(i), positionScore(i-1))
	}
}
