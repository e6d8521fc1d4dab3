package query

import "strings"

type tokenType int

const (
	tokenWord tokenType = iota
	tokenLang
	tokenSite
)

type token struct {
	typ   tokenType
	value string
}

// tokenizer breaks raw query text into word, lang and site tokens.
type tokenizer struct {
	input string
	pos   int
}

func newTokenizer(input string) *tokenizer {
	return &tokenizer{input: input}
}

func (t *tokenizer) tokenize() []token {
	var tokens []token

	for t.pos < len(t.input) {
		t.skipWhitespace()
		if t.pos >= len(t.input) {
			break
		}

		if t.input[t.pos] == '"' {
			if tok, ok := t.readPhrase(); ok {
				tokens = append(tokens, tok)
			}
			continue
		}

		word := t.readWord()
		if word == "" {
			continue
		}
		tokens = append(tokens, classify(word))
	}

	return tokens
}

func (t *tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && (t.input[t.pos] == ' ' || t.input[t.pos] == '\t') {
		t.pos++
	}
}

// readPhrase reads a double-quoted phrase. An unterminated quote is tolerated
// and reads to the end of the input. Blank phrases are dropped.
func (t *tokenizer) readPhrase() (token, bool) {
	t.pos++ // opening quote
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '"' {
		t.pos++
	}
	phrase := t.input[start:t.pos]
	if t.pos < len(t.input) {
		t.pos++ // closing quote
	}

	words := strings.Fields(phrase)
	if len(words) == 0 {
		return token{}, false
	}
	return token{typ: tokenWord, value: strings.Join(words, " ")}, true
}

func (t *tokenizer) readWord() string {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != ' ' && t.input[t.pos] != '\t' {
		t.pos++
	}
	return t.input[start:t.pos]
}

// classify turns a raw word into a lang, site or literal word token. A
// leading : or :: that does not match the two-letter lang shorthand stays a
// literal word.
func classify(word string) token {
	if value, ok := strings.CutPrefix(word, "lang:"); ok && value != "" {
		return token{typ: tokenLang, value: value}
	}
	if value, ok := strings.CutPrefix(word, "site:"); ok && value != "" {
		return token{typ: tokenSite, value: value}
	}
	if len(word) == 3 && word[0] == ':' && isLetter(word[1]) && isLetter(word[2]) {
		return token{typ: tokenLang, value: strings.ToLower(word[1:])}
	}
	return token{typ: tokenWord, value: word}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
