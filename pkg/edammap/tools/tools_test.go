package tools

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/edamontology/edammap/pkg/edammap/edam"
	"github.com/edamontology/edammap/pkg/edammap/internalerr"
)

func TestValidateRequiresName(t *testing.T) {
	tool := Tool{ID: "x", Description: "does things"}
	err := tool.Validate(Limits{})
	if err == nil {
		t.Fatal("Expected validation error for empty name")
	}
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Error should wrap ErrInvalidInput, got %v", err)
	}
}

func TestValidateLimits(t *testing.T) {
	tool := Tool{
		Name:           "BLAST",
		Keywords:       []string{"a", "b", "c"},
		Webpages:       []string{"https://example.org"},
		PublicationIDs: []string{"10.1000/x", "10.1000/y"},
	}

	if err := tool.Validate(Limits{}); err != nil {
		t.Errorf("Zero limits mean unlimited, got %v", err)
	}
	if err := tool.Validate(Limits{MaxKeywords: 2}); err == nil {
		t.Error("Expected keyword limit violation")
	}
	if err := tool.Validate(Limits{MaxPublicationIDs: 1}); err == nil {
		t.Error("Expected publication ID limit violation")
	}
	if err := tool.Validate(Limits{MaxKeywords: 3, MaxLinks: 5, MaxPublicationIDs: 2}); err != nil {
		t.Errorf("Within limits should pass, got %v", err)
	}
}

const biotoolsSample = `{
  "count": 1,
  "list": [
    {
      "biotoolsID": "blast",
      "name": "BLAST",
      "description": "Basic Local Alignment Search Tool.",
      "homepage": "https://blast.example.org",
      "toolType": ["Web application"],
      "topic": [{"uri": "http://edamontology.org/topic_0080", "term": "Sequence analysis"}],
      "function": [
        {
          "operation": [{"uri": "http://edamontology.org/operation_0292", "term": "Sequence alignment"}],
          "input": [{"data": {"uri": "http://edamontology.org/data_0006"}, "format": [{"uri": "http://edamontology.org/format_1929"}]}]
        }
      ],
      "documentation": [{"url": "https://blast.example.org/docs", "type": "User manual"}],
      "publication": [{"pmid": "2231712"}, {"doi": "10.1016/S0022-2836(05)80360-2"}]
    }
  ]
}`

func TestBiotoolsLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "biotools.json")
	if err := os.WriteFile(path, []byte(biotoolsSample), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := (&BiotoolsLoader{}).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 tool, got %d", len(loaded))
	}

	tool := loaded[0]
	if tool.Name != "BLAST" || tool.ID != "blast" {
		t.Errorf("Unexpected identity: %+v", tool)
	}
	if len(tool.Keywords) != 1 || tool.Keywords[0] != "Web application" {
		t.Errorf("Keywords = %v", tool.Keywords)
	}
	if len(tool.Webpages) != 1 || len(tool.Docs) != 1 {
		t.Errorf("Links not loaded: webpages=%v docs=%v", tool.Webpages, tool.Docs)
	}
	if len(tool.PublicationIDs) != 2 || tool.PublicationIDs[0] != "2231712" {
		t.Errorf("PublicationIDs = %v", tool.PublicationIDs)
	}

	wantAnnotations := []edam.URI{
		"http://edamontology.org/topic_0080",
		"http://edamontology.org/operation_0292",
		"http://edamontology.org/data_0006",
		"http://edamontology.org/format_1929",
	}
	if len(tool.Annotations) != len(wantAnnotations) {
		t.Fatalf("Annotations = %v", tool.Annotations)
	}
	for i, want := range wantAnnotations {
		if tool.Annotations[i] != want {
			t.Errorf("Annotation %d = %q, want %q", i, tool.Annotations[i], want)
		}
	}
}

func TestGenericLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools.csv")
	content := "name,keywords,description,webpages,annotations\n" +
		"Clustal,alignment|phylogeny,Multiple sequence alignment program,https://clustal.example.org,http://edamontology.org/operation_0492\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := (&GenericLoader{}).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 tool, got %d", len(loaded))
	}

	tool := loaded[0]
	if tool.Name != "Clustal" {
		t.Errorf("Name = %q", tool.Name)
	}
	if len(tool.Keywords) != 2 || tool.Keywords[1] != "phylogeny" {
		t.Errorf("Keywords = %v", tool.Keywords)
	}
	if len(tool.Annotations) != 1 || tool.Annotations[0].Branch() != edam.BranchOperation {
		t.Errorf("Annotations = %v", tool.Annotations)
	}
}

func TestForFormat(t *testing.T) {
	if _, err := ForFormat("biotools"); err != nil {
		t.Errorf("biotools should be known: %v", err)
	}
	if _, err := ForFormat("generic"); err != nil {
		t.Errorf("generic should be known: %v", err)
	}
	if _, err := ForFormat("seqwiki"); err == nil {
		t.Error("Unknown format should error")
	}
}
