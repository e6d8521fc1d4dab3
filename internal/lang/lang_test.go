package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   []string
	}{
		{"", nil},
		{"de", []string{"de"}},
		{"de-DE,de;q=0.9,en;q=0.8", []string{"de", "en"}},
		{"en;q=0.5,fr", []string{"fr", "en"}},
		{"da, en-gb;q=0.8, en;q=0.7", []string{"da", "en"}},
		{"garbage;;;;", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAcceptLanguage(tt.header), "header %q", tt.header)
	}
}

func TestContainsHan(t *testing.T) {
	assert.False(t, ContainsHan("hello world"))
	assert.False(t, ContainsHan("カタカナ")) // kana is not Han
	assert.True(t, ContainsHan("中文"))
	assert.True(t, ContainsHan("mixed 漢 text"))
}
