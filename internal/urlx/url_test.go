package urlx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var urlsEqualByComparison = [][2]string{
	{"http://example.com", "http://example.com/"},
	{"http://example.com/foo", "http://example.com/foo/"},
	{"http://example.com/bar.html#section1", "http://example.com/bar.html"},
	{"https://example.com/", "http://example.com/"},
	{"http://example.com/foo//bar.html", "http://example.com/foo/bar.html"},
	{"http://www.example.com/", "http://example.com/"},
	{
		"http://example.com/display?lang=en&article=fred",
		"http://example.com/display?article=fred&lang=en",
	},
	{"http://example.com/display?", "http://example.com/display"},
	{"http://en.m.wikipedia.org/", "http://en.wikipedia.org/"},
	{"http://en.wikipedia.org/A%E2%80%93B", "http://en.wikipedia.org/A-B"},
}

var urlsUnequal = [][2]string{
	{"http://foo.com/", "http://bar.com/"},
	{"http://example.com/foo", "http://example.com/bar"},
	{"http://example.com/?foo", "http://example.com/?bar"},
	{"http://example.com/?a=1", "http://example.com/?a=2"},
}

func TestParseRejectsNonHTTP(t *testing.T) {
	for _, raw := range []string{"ftp://example.com/", "/relative/path", "mailto:foo@bar.com", ""} {
		_, err := Parse(raw)
		assert.Error(t, err, raw)
	}
}

func TestEqualByComparison(t *testing.T) {
	for _, pair := range urlsEqualByComparison {
		a, err := Parse(pair[0])
		require.NoError(t, err)
		b, err := Parse(pair[1])
		require.NoError(t, err)

		assert.True(t, a.Equal(b), "%s == %s", pair[0], pair[1])
		assert.True(t, b.Equal(a), "%s == %s", pair[1], pair[0])
	}
}

func TestUnequal(t *testing.T) {
	for _, pair := range urlsUnequal {
		a, err := Parse(pair[0])
		require.NoError(t, err)
		b, err := Parse(pair[1])
		require.NoError(t, err)

		assert.False(t, a.Equal(b), "%s != %s", pair[0], pair[1])
		assert.False(t, b.Equal(a), "%s != %s", pair[1], pair[0])
	}
}

func TestEqualIsReflexive(t *testing.T) {
	for _, pair := range append(urlsEqualByComparison, urlsUnequal...) {
		for _, raw := range pair {
			u, err := Parse(raw)
			require.NoError(t, err)
			assert.True(t, u.Equal(u), raw)
		}
	}
}

// Transitivity: a == b and b == c implies a == c. Key equality gives us this
// for free, the test documents it.
func TestEqualIsTransitive(t *testing.T) {
	a, _ := Parse("https://www.example.com/foo/")
	b, _ := Parse("http://example.com/foo")
	c, _ := Parse("http://www.example.com/foo//")

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(c))
	assert.True(t, a.Equal(c))
}

func TestStringRoundTrip(t *testing.T) {
	for _, raw := range []string{
		"http://example.com/",
		"https://example.com/foo?a=1&b=2",
		"http://example.com/bar.html#section1",
	} {
		u, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, u.String())
	}
}

func TestWithScheme(t *testing.T) {
	u, err := Parse("http://example.com/foo")
	require.NoError(t, err)

	https := u.WithScheme("https")
	assert.Equal(t, "https://example.com/foo", https.String())
	assert.Equal(t, "http", u.Scheme)
}
