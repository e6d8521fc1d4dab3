// Package result defines the result records returned by engine adapters.
package result

import (
	"errors"
	"fmt"

	"github.com/0xhtml/search-engine/internal/urlx"
)

// Kind discriminates the closed set of result variants.
type Kind int

const (
	KindWeb Kind = iota
	KindImage
	KindAnswer
)

func (k Kind) String() string {
	switch k {
	case KindWeb:
		return "web"
	case KindImage:
		return "image"
	case KindAnswer:
		return "answer"
	default:
		return "unknown"
	}
}

var errEmptyTitle = errors.New("result has no title")

// Result is a single record returned by one engine. Web and image results
// carry a title, image results additionally the source image URL and answer
// results are direct answers rather than links to crawl.
type Result struct {
	Kind  Kind
	URL   *urlx.URL
	Title string
	Text  string
	Src   string
}

// NewWeb builds a web result, validating the URL and title invariants.
func NewWeb(rawURL, title, text string) (Result, error) {
	u, err := urlx.Parse(rawURL)
	if err != nil {
		return Result{}, err
	}
	if title == "" {
		return Result{}, errEmptyTitle
	}
	return Result{Kind: KindWeb, URL: u, Title: title, Text: text}, nil
}

// NewImage builds an image result. src is the URL of the full-size image.
func NewImage(rawURL, title, text, src string) (Result, error) {
	u, err := urlx.Parse(rawURL)
	if err != nil {
		return Result{}, err
	}
	if title == "" {
		return Result{}, errEmptyTitle
	}
	if src == "" {
		return Result{}, fmt.Errorf("image result %q has no source url", rawURL)
	}
	return Result{Kind: KindImage, URL: u, Title: title, Text: text, Src: src}, nil
}

// NewAnswer builds a direct answer pointing at rawURL as its source.
func NewAnswer(rawURL, text string) (Result, error) {
	u, err := urlx.Parse(rawURL)
	if err != nil {
		return Result{}, err
	}
	if text == "" {
		return Result{}, errors.New("answer result has no text")
	}
	return Result{Kind: KindAnswer, URL: u, Text: text}, nil
}
