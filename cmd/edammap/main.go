package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/edamontology/edammap/pkg/edammap"
	"github.com/edamontology/edammap/pkg/edammap/config"
	"github.com/edamontology/edammap/pkg/edammap/edam"
	"github.com/edamontology/edammap/pkg/edammap/fetch"
	"github.com/edamontology/edammap/pkg/edammap/internalerr"
	"github.com/edamontology/edammap/pkg/edammap/output"
	"github.com/edamontology/edammap/pkg/edammap/tools"
)

func main() {
	var (
		edamPath      = flag.String("edam", "", "EDAM ontology file in RDF/XML (required)")
		inputPath     = flag.String("input", "", "Tool records file (required)")
		inputType     = flag.String("type", "biotools", "Input format: biotools or generic")
		stopwordsPath = flag.String("stopwords", "", "Stopword list YAML (optional)")
		mapperPath    = flag.String("mapper", "", "Mapper configuration YAML (optional)")
		idfPath       = flag.String("idf", "", "IDF table, unstemmed (optional)")
		idfStemmed    = flag.String("idf-stemmed", "", "IDF table, stemmed (optional)")
		stem          = flag.Bool("stem", false, "Enable stemming (uses the stemmed IDF table)")
		threads       = flag.Int("threads", 4, "Number of mapper workers")
		doFetch       = flag.Bool("fetch", false, "Resolve webpage/doc/publication text over the network")
		fetchCache    = flag.String("fetch-cache", "", "SQLite fetch cache path (optional, implies --fetch)")
		outputPath    = flag.String("output", "", "Text report path (default stdout)")
		jsonPath      = flag.String("json", "", "JSON report path (optional)")
		bench         = flag.Bool("benchmark", false, "Score mappings against the records' annotations")
	)
	flag.Parse()

	if *edamPath == "" {
		log.Fatal("--edam required")
	}
	if *inputPath == "" {
		log.Fatal("--input required")
	}

	ctx := context.Background()

	concepts, err := edam.Load(*edamPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d concepts", len(concepts))

	loader, err := tools.ForFormat(*inputType)
	if err != nil {
		log.Fatal(err)
	}
	list, err := loader.Load(*inputPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d tool records", len(list))

	components, err := (&config.Loader{
		StopwordsPath:  *stopwordsPath,
		MapperPath:     *mapperPath,
		IdfPath:        *idfPath,
		IdfStemmedPath: *idfStemmed,
		Stemming:       *stem,
	}).Load()
	if err != nil {
		log.Fatal(err)
	}

	var fetcher fetch.Fetcher = fetch.Absent{}
	if *doFetch || *fetchCache != "" {
		fetcher = fetch.NewHTTP(fetch.Options{})
		if *fetchCache != "" {
			cache, err := fetch.OpenCache(ctx, *fetchCache, fetcher)
			if err != nil {
				log.Fatal(err)
			}
			defer cache.Close()
			fetcher = cache
		}
	}

	engine := edammap.New(edammap.Options{
		Concepts:     concepts,
		PreProcessor: components.PreProcessor,
		Idf:          components.Idf,
		Fetcher:      fetcher,
		Limits:       components.Limits,
		MapperArgs:   components.MapperArgs,
		Workers:      *threads,
	})

	stop := progress(engine, len(list))
	start := time.Now()
	mappings, err := engine.MapAll(ctx, list)
	stop()
	if err != nil {
		if errors.Is(err, internalerr.ErrInvalidInput) {
			log.Fatalf("invalid input: %v", err)
		}
		log.Fatal(err)
	}
	log.Printf("mapped %d records in %s", len(list), time.Since(start).Round(time.Millisecond))

	report := output.New(concepts, list, mappings, nil)
	if *bench {
		res, err := engine.Benchmark(list, mappings)
		if err != nil {
			log.Fatal(err)
		}
		report.Results = &res
	}

	out := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	if err := report.WriteText(out); err != nil {
		log.Fatal(err)
	}

	if *jsonPath != "" {
		f, err := os.Create(*jsonPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := report.WriteJSON(f); err != nil {
			log.Fatal(err)
		}
	}
}

// progress logs batch completion once a second until stopped.
func progress(engine *edammap.Edammap, total int) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				log.Printf("progress %d/%d", engine.Progress(), total)
			}
		}
	}()
	return func() { close(done) }
}
