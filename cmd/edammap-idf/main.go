package main

import (
	"flag"
	"log"
	"strings"

	"github.com/edamontology/edammap/pkg/edammap/config"
	"github.com/edamontology/edammap/pkg/edammap/idf"
	"github.com/edamontology/edammap/pkg/edammap/preproc"
	"github.com/edamontology/edammap/pkg/edammap/tools"
)

// edammap-idf precomputes IDF tables from a tool corpus. Each tool record
// is one document: its name, keywords and description concatenated. Two
// tables are written, one unstemmed and one stemmed, so either kind of run
// can use a table built with matching normalization.
func main() {
	var (
		inputPath     = flag.String("input", "", "Tool records file (required)")
		inputType     = flag.String("type", "biotools", "Input format: biotools or generic")
		stopwordsPath = flag.String("stopwords", "", "Stopword list YAML (optional)")
		outPath       = flag.String("output", "idf.tsv", "Unstemmed table output path")
		outStemmed    = flag.String("output-stemmed", "idf-stemmed.tsv", "Stemmed table output path")
	)
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("--input required")
	}

	loader, err := tools.ForFormat(*inputType)
	if err != nil {
		log.Fatal(err)
	}
	list, err := loader.Load(*inputPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d tool records", len(list))

	terms := preproc.DefaultStopwords
	if *stopwordsPath != "" {
		sw, err := config.LoadStopwords(*stopwordsPath)
		if err != nil {
			log.Fatal(err)
		}
		terms = sw.Terms
	}

	for _, run := range []struct {
		stemming bool
		path     string
	}{
		{false, *outPath},
		{true, *outStemmed},
	} {
		pp := preproc.New(terms, run.stemming)

		docs := make([][]string, 0, len(list))
		for _, t := range list {
			text := strings.Join(append([]string{t.Name, t.Description}, t.Keywords...), " ")
			docs = append(docs, pp.Process(text))
		}

		table := idf.Build(docs, idf.DefaultWeight)
		if err := table.WriteFile(run.path); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %d terms to %s (stemming=%v)", table.Len(), run.path, run.stemming)
	}
}
