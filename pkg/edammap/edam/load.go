package edam

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/edamontology/edammap/pkg/edammap/internalerr"
)

// owlClass mirrors one owl:Class element of the EDAM RDF/XML serialization.
// Element names are matched by local name, so the oboInOwl/rdfs namespaces
// need no explicit mapping.
type owlClass struct {
	About          string   `xml:"about,attr"`
	Labels         []string `xml:"label"`
	ExactSynonyms  []string `xml:"hasExactSynonym"`
	NarrowSynonyms []string `xml:"hasNarrowSynonym"`
	BroadSynonyms  []string `xml:"hasBroadSynonym"`
	Definitions    []string `xml:"hasDefinition"`
	Comments       []string `xml:"comment"`
	Deprecated     []string `xml:"deprecated"`
}

type rdfDoc struct {
	Classes []owlClass `xml:"Class"`
}

// Load parses the EDAM ontology from its RDF/XML serialization and returns
// the concept map keyed by URI. Obsolete (deprecated) concepts are skipped.
func Load(path string) (map[URI]Concept, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: ontology %s", internalerr.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read ontology %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes an EDAM RDF/XML document from memory.
func Parse(data []byte) (map[URI]Concept, error) {
	var doc rdfDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse ontology: %w", err)
	}

	concepts := make(map[URI]Concept, len(doc.Classes))
	for _, c := range doc.Classes {
		uri := URI(strings.TrimSpace(c.About))
		if uri.Branch() == "" {
			continue // blank nodes, non-EDAM classes, owl:Thing
		}
		if isDeprecated(c.Deprecated) {
			continue
		}
		concept := Concept{
			URI:            uri,
			Label:          first(c.Labels),
			ExactSynonyms:  cleanSynonyms(c.ExactSynonyms),
			NarrowSynonyms: cleanSynonyms(c.NarrowSynonyms),
			BroadSynonyms:  cleanSynonyms(c.BroadSynonyms),
			Definition:     first(c.Definitions),
			Comment:        strings.Join(trimAll(c.Comments), " "),
		}
		concepts[uri] = concept
	}
	if len(concepts) == 0 {
		return nil, fmt.Errorf("parse ontology: no concepts found")
	}
	return concepts, nil
}

func isDeprecated(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "true" {
			return true
		}
	}
	return false
}

func first(values []string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// cleanSynonyms trims and deduplicates a synonym list, preserving first-seen order.
func cleanSynonyms(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		s := strings.TrimSpace(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
