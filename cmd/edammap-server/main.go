package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/edamontology/edammap/pkg/edammap"
	"github.com/edamontology/edammap/pkg/edammap/benchmark"
	"github.com/edamontology/edammap/pkg/edammap/config"
	"github.com/edamontology/edammap/pkg/edammap/edam"
	"github.com/edamontology/edammap/pkg/edammap/fetch"
	"github.com/edamontology/edammap/pkg/edammap/internalerr"
	"github.com/edamontology/edammap/pkg/edammap/mapping"
	"github.com/edamontology/edammap/pkg/edammap/output"
	"github.com/edamontology/edammap/pkg/edammap/tools"
)

// mapRequest is one tool record submitted for annotation. Annotations are
// optional; when present the response carries benchmark measures.
type mapRequest struct {
	Name           string   `json:"name"`
	Keywords       []string `json:"keywords,omitempty"`
	Description    string   `json:"description,omitempty"`
	Webpages       []string `json:"webpages,omitempty"`
	Docs           []string `json:"docs,omitempty"`
	PublicationIDs []string `json:"publication_ids,omitempty"`
	Annotations    []string `json:"annotations,omitempty"`
}

type mapResponse struct {
	RunID   string               `json:"run_id"`
	Matches []output.MatchReport `json:"matches"`
	Measure *benchmark.Measure   `json:"measure,omitempty"`
}

type server struct {
	engine  *edammap.Edammap
	timeout time.Duration
}

// maxRequestBody caps one /map request. A single tool record is a few KB;
// anything near the cap is garbage input.
const maxRequestBody = 1 << 20

func main() {
	var (
		edamPath      = flag.String("edam", "", "EDAM ontology file in RDF/XML (required)")
		addr          = flag.String("addr", "127.0.0.1:8572", "Listen address")
		stopwordsPath = flag.String("stopwords", "", "Stopword list YAML (optional)")
		mapperPath    = flag.String("mapper", "", "Mapper configuration YAML (optional)")
		idfPath       = flag.String("idf", "", "IDF table, unstemmed (optional)")
		idfStemmed    = flag.String("idf-stemmed", "", "IDF table, stemmed (optional)")
		stem          = flag.Bool("stem", false, "Enable stemming (uses the stemmed IDF table)")
		doFetch       = flag.Bool("fetch", false, "Resolve webpage/doc/publication text over the network")
		fetchCache    = flag.String("fetch-cache", "", "SQLite fetch cache path (optional, implies --fetch)")
		timeout       = flag.Duration("timeout", 30*time.Second, "Per-request mapping timeout")
	)
	flag.Parse()

	if *edamPath == "" {
		log.Fatal("--edam required")
	}

	ctx := context.Background()

	concepts, err := edam.Load(*edamPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d concepts", len(concepts))

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

	srv := &server{
		engine: edammap.New(edammap.Options{
			Concepts:     concepts,
			PreProcessor: components.PreProcessor,
			Idf:          components.Idf,
			Fetcher:      fetcher,
			Limits:       components.Limits,
			MapperArgs:   components.MapperArgs,
		}),
		timeout: *timeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /map", srv.handleMap)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	log.Printf("listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func (s *server) handleMap(w http.ResponseWriter, r *http.Request) {
	var req mapRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	tool := tools.Tool{
		Name:           req.Name,
		Keywords:       req.Keywords,
		Description:    req.Description,
		Webpages:       req.Webpages,
		Docs:           req.Docs,
		PublicationIDs: req.PublicationIDs,
	}
	for _, a := range req.Annotations {
		u := edam.URI(a)
		if u.Branch() != "" {
			tool.Annotations = append(tool.Annotations, u)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	m, err := s.engine.MapTool(ctx, tool)
	if err != nil {
		if errors.Is(err, internalerr.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := mapResponse{
		RunID:   output.NewRunID(),
		Matches: matches(s.engine.Concepts(), m),
	}
	if len(tool.Annotations) > 0 {
		measure := benchmark.Evaluate(tool.Annotations, m)
		resp.Measure = &measure
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("write response: %v", err)
	}
}

func matches(concepts map[edam.URI]edam.Concept, m mapping.Mapping) []output.MatchReport {
	out := make([]output.MatchReport, 0, m.Len())
	for _, cs := range m.Scores {
		mr := output.MatchReport{
			URI:    cs.URI,
			Branch: cs.URI.Branch(),
			Match:  cs.Match,
			Score:  cs.Score,
		}
		if c, ok := concepts[cs.URI]; ok {
			mr.Label = c.Label
		}
		out = append(out, mr)
	}
	return out
}
