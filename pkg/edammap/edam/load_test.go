package edam

import (
	"testing"
)

const sampleOWL = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#"
         xmlns:oboInOwl="http://www.geneontology.org/formats/oboInOwl#">
  <owl:Class rdf:about="http://edamontology.org/operation_0292">
    <rdfs:label>Sequence alignment</rdfs:label>
    <oboInOwl:hasDefinition>Align two or more molecular sequences.</oboInOwl:hasDefinition>
    <oboInOwl:hasExactSynonym>Sequence alignment construction</oboInOwl:hasExactSynonym>
    <oboInOwl:hasExactSynonym>Sequence alignment construction</oboInOwl:hasExactSynonym>
    <oboInOwl:hasNarrowSynonym>Pairwise sequence alignment</oboInOwl:hasNarrowSynonym>
    <rdfs:comment>See also multiple alignment.</rdfs:comment>
  </owl:Class>
  <owl:Class rdf:about="http://edamontology.org/topic_0003">
    <rdfs:label>Topic</rdfs:label>
  </owl:Class>
  <owl:Class rdf:about="http://edamontology.org/data_0005">
    <rdfs:label>Resource type</rdfs:label>
    <owl:deprecated>true</owl:deprecated>
  </owl:Class>
  <owl:Class rdf:about="http://www.w3.org/2002/07/owl#Thing"/>
</rdf:RDF>`

func TestParseConcepts(t *testing.T) {
	concepts, err := Parse([]byte(sampleOWL))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(concepts) != 2 {
		t.Fatalf("Expected 2 concepts (deprecated and non-EDAM skipped), got %d", len(concepts))
	}

	c, ok := concepts[URI("http://edamontology.org/operation_0292")]
	if !ok {
		t.Fatal("operation_0292 missing")
	}
	if c.Label != "Sequence alignment" {
		t.Errorf("Label = %q", c.Label)
	}
	if c.Definition != "Align two or more molecular sequences." {
		t.Errorf("Definition = %q", c.Definition)
	}
	if len(c.ExactSynonyms) != 1 {
		t.Errorf("Duplicate exact synonym should be deduplicated, got %v", c.ExactSynonyms)
	}
	if len(c.NarrowSynonyms) != 1 || c.NarrowSynonyms[0] != "Pairwise sequence alignment" {
		t.Errorf("NarrowSynonyms = %v", c.NarrowSynonyms)
	}
	if c.Comment != "See also multiple alignment." {
		t.Errorf("Comment = %q", c.Comment)
	}
}

func TestParseSkipsDeprecated(t *testing.T) {
	concepts, err := Parse([]byte(sampleOWL))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := concepts[URI("http://edamontology.org/data_0005")]; ok {
		t.Error("Deprecated concept should be excluded")
	}
}

func TestURIBranch(t *testing.T) {
	cases := []struct {
		uri    URI
		branch Branch
	}{
		{"http://edamontology.org/topic_0102", BranchTopic},
		{"http://edamontology.org/operation_2928", BranchOperation},
		{"http://edamontology.org/data_0006", BranchData},
		{"http://edamontology.org/format_1915", BranchFormat},
		{"http://www.w3.org/2002/07/owl#Thing", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := c.uri.Branch(); got != c.branch {
			t.Errorf("Branch(%q) = %q, want %q", c.uri, got, c.branch)
		}
	}
}
