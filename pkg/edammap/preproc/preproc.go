package preproc

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/unicode/norm"
)

// PreProcessor turns raw text into normalized token sequences.
// It is stateless per call and safe for concurrent use once constructed.
type PreProcessor struct {
	stopwords map[string]struct{}
	stemming  bool
}

// New creates a PreProcessor with the given stopword list.
// When stemming is enabled, surviving tokens are reduced to their
// Snowball English stem.
func New(stopwords []string, stemming bool) *PreProcessor {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &PreProcessor{stopwords: stops, stemming: stemming}
}

// Stemming reports whether this PreProcessor stems tokens. The IDF table
// for a run must have been built with the same setting.
func (p *PreProcessor) Stemming() bool {
	return p.stemming
}

// Process splits text into normalized tokens, removing stopwords and
// optionally stemming. Repeated terms are preserved in order.
// Processing already-processed output yields the same sequence.
func (p *PreProcessor) Process(text string) []string {
	text = norm.NFKC.String(text)

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := p.processToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// processToken applies cleaning, stopword filtering, and stemming.
func (p *PreProcessor) processToken(token string) string {
	word := cleanToken(token)
	if word == "" || len(word) <= 1 {
		return ""
	}

	// Pure-numeric tokens carry no annotation signal. Mixed tokens
	// like "utf-8" or "blast2" are kept.
	if isNumericOnly(word) {
		return ""
	}

	if p.isStopword(word) {
		return ""
	}

	if p.stemming {
		if stemmed, err := snowball.Stem(word, "english", false); err == nil && stemmed != "" {
			word = stemmed
		}
	}

	return word
}

// cleanToken strips leading/trailing hyphens and collapses consecutive hyphens.
func cleanToken(token string) string {
	token = strings.Trim(token, "-")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	return token
}

func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func (p *PreProcessor) isStopword(word string) bool {
	_, ok := p.stopwords[word]
	return ok
}
