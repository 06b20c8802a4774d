package idf

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// DefaultWeight is returned for terms absent from the table. Unseen terms
// must not fail scoring, they just get a neutral weight.
const DefaultWeight = 0.5

// Table maps a normalized term to its inverse-document-frequency weight.
// Built once, read-only thereafter; safe for concurrent lookup.
type Table struct {
	weights       map[string]float64
	defaultWeight float64
}

// NewTable creates a Table from an in-memory term→weight map.
func NewTable(weights map[string]float64, defaultWeight float64) *Table {
	if weights == nil {
		weights = map[string]float64{}
	}
	return &Table{weights: weights, defaultWeight: defaultWeight}
}

// Value returns the weight of a term, or the default weight for unseen terms.
func (t *Table) Value(term string) float64 {
	if w, ok := t.weights[term]; ok {
		return w
	}
	return t.defaultWeight
}

// Len returns the number of terms in the table.
func (t *Table) Len() int {
	return len(t.weights)
}

// Load reads a table from a tab-separated file of "term\tweight" lines.
// Blank lines and lines starting with '#' are skipped.
func Load(path string, defaultWeight float64) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open idf table %s: %w", path, err)
	}
	defer f.Close()

	weights := make(map[string]float64)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		term, value, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("idf table %s line %d: missing tab separator", path, lineNo)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("idf table %s line %d: %w", path, lineNo, err)
		}
		weights[strings.TrimSpace(term)] = w
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read idf table %s: %w", path, err)
	}

	return &Table{weights: weights, defaultWeight: defaultWeight}, nil
}

// Build computes an IDF table from a tokenized corpus. Each inner slice is
// one document's token sequence. Weights are log10(N/df) scaled to [0,1],
// so a term present in every document weighs 0 and the rarest terms
// approach 1.
func Build(docs [][]string, defaultWeight float64) *Table {
	df := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := float64(len(docs))
	weights := make(map[string]float64, len(df))
	if n > 1 {
		max := math.Log10(n)
		for term, count := range df {
			weights[term] = math.Log10(n/float64(count)) / max
		}
	} else {
		for term := range df {
			weights[term] = defaultWeight
		}
	}

	return &Table{weights: weights, defaultWeight: defaultWeight}
}

// WriteFile persists the table as tab-separated "term\tweight" lines,
// sorted by term so output is reproducible.
func (t *Table) WriteFile(path string) error {
	terms := make([]string, 0, len(t.weights))
	for term := range t.weights {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create idf table %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, term := range terms {
		fmt.Fprintf(w, "%s\t%g\n", term, t.weights[term])
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write idf table %s: %w", path, err)
	}
	return f.Close()
}
