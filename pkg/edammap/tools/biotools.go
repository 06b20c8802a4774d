package tools

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/edamontology/edammap/pkg/edammap/edam"
)

// BiotoolsLoader reads the bio.tools JSON export, either the paginated
// form {"count": N, "list": [...]} or a bare tool array.
type BiotoolsLoader struct{}

type biotoolsEdam struct {
	URI  string `json:"uri"`
	Term string `json:"term"`
}

type biotoolsIO struct {
	Data   biotoolsEdam   `json:"data"`
	Format []biotoolsEdam `json:"format"`
}

type biotoolsFunction struct {
	Operation []biotoolsEdam `json:"operation"`
	Input     []biotoolsIO   `json:"input"`
	Output    []biotoolsIO   `json:"output"`
}

type biotoolsLink struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type biotoolsPublication struct {
	DOI   string `json:"doi"`
	PMID  string `json:"pmid"`
	PMCID string `json:"pmcid"`
}

type biotoolsTool struct {
	ID            string                `json:"biotoolsID"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Homepage      string                `json:"homepage"`
	ToolType      []string              `json:"toolType"`
	Topic         []biotoolsEdam        `json:"topic"`
	Function      []biotoolsFunction    `json:"function"`
	Link          []biotoolsLink        `json:"link"`
	Documentation []biotoolsLink        `json:"documentation"`
	Publication   []biotoolsPublication `json:"publication"`
}

type biotoolsList struct {
	Count int            `json:"count"`
	List  []biotoolsTool `json:"list"`
}

// Load reads a bio.tools JSON file.
func (l *BiotoolsLoader) Load(path string) ([]Tool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read biotools input %s: %w", path, err)
	}

	var raw []biotoolsTool
	var listed biotoolsList
	if err := json.Unmarshal(data, &listed); err == nil && listed.List != nil {
		raw = listed.List
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse biotools input %s: %w", path, err)
	}

	out := make([]Tool, 0, len(raw))
	for _, bt := range raw {
		out = append(out, bt.toTool())
	}
	return out, nil
}

func (bt *biotoolsTool) toTool() Tool {
	t := Tool{
		ID:          bt.ID,
		Name:        strings.TrimSpace(bt.Name),
		Description: strings.TrimSpace(bt.Description),
	}

	for _, tt := range bt.ToolType {
		if tt = strings.TrimSpace(tt); tt != "" {
			t.Keywords = append(t.Keywords, tt)
		}
	}

	if hp := strings.TrimSpace(bt.Homepage); hp != "" {
		t.Webpages = append(t.Webpages, hp)
	}
	for _, link := range bt.Link {
		if u := strings.TrimSpace(link.URL); u != "" {
			t.Webpages = append(t.Webpages, u)
		}
	}
	for _, doc := range bt.Documentation {
		if u := strings.TrimSpace(doc.URL); u != "" {
			t.Docs = append(t.Docs, u)
		}
	}

	for _, pub := range bt.Publication {
		// Prefer the most specific identifier available.
		switch {
		case pub.PMCID != "":
			t.PublicationIDs = append(t.PublicationIDs, pub.PMCID)
		case pub.PMID != "":
			t.PublicationIDs = append(t.PublicationIDs, pub.PMID)
		case pub.DOI != "":
			t.PublicationIDs = append(t.PublicationIDs, pub.DOI)
		}
	}

	seen := make(map[edam.URI]struct{})
	addAnnotation := func(uri string) {
		u := edam.URI(strings.TrimSpace(uri))
		if u == "" || u.Branch() == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		t.Annotations = append(t.Annotations, u)
	}

	for _, topic := range bt.Topic {
		addAnnotation(topic.URI)
	}
	for _, fn := range bt.Function {
		for _, op := range fn.Operation {
			addAnnotation(op.URI)
		}
		for _, in := range fn.Input {
			addAnnotation(in.Data.URI)
			for _, f := range in.Format {
				addAnnotation(f.URI)
			}
		}
		for _, out := range fn.Output {
			addAnnotation(out.Data.URI)
			for _, f := range out.Format {
				addAnnotation(f.URI)
			}
		}
	}

	return t
}
