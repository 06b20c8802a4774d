package tools

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/edamontology/edammap/pkg/edammap/edam"
	"github.com/edamontology/edammap/pkg/edammap/internalerr"
)

// GenericLoader reads a generic CSV export. The first row is a header
// naming the columns; multi-valued cells are separated by '|'.
//
// Recognized columns: name, keywords, description, webpages, docs,
// publications, annotations. Unknown columns are ignored.
type GenericLoader struct{}

// Load reads a generic CSV file.
func (l *GenericLoader) Load(path string) ([]Tool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read generic input %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse generic input %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%w: generic input %s has no header row", internalerr.ErrInvalidInput, path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("%w: generic input %s is missing the name column", internalerr.ErrInvalidInput, path)
	}

	cell := func(row []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]Tool, 0, len(rows)-1)
	for n, row := range rows[1:] {
		t := Tool{
			ID:             fmt.Sprintf("%s:%d", path, n+1),
			Name:           cell(row, "name"),
			Keywords:       splitMulti(cell(row, "keywords")),
			Description:    cell(row, "description"),
			Webpages:       splitMulti(cell(row, "webpages")),
			Docs:           splitMulti(cell(row, "docs")),
			PublicationIDs: splitMulti(cell(row, "publications")),
		}
		for _, a := range splitMulti(cell(row, "annotations")) {
			u := edam.URI(a)
			if u.Branch() != "" {
				t.Annotations = append(t.Annotations, u)
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// splitMulti splits a pipe-separated cell into trimmed non-empty values.
func splitMulti(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, "|") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
