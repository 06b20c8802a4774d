package config

import (
	"fmt"

	"github.com/edamontology/edammap/pkg/edammap/idf"
	"github.com/edamontology/edammap/pkg/edammap/internalerr"
	"github.com/edamontology/edammap/pkg/edammap/mapping"
	"github.com/edamontology/edammap/pkg/edammap/preproc"
	"github.com/edamontology/edammap/pkg/edammap/tools"
)

// Loader loads configuration files and constructs the run components.
// Empty paths fall back to built-in defaults.
type Loader struct {
	StopwordsPath string
	MapperPath    string

	// IdfPath and IdfStemmedPath name the two independently built tables;
	// Stemming selects which one is used. Never mix them within one run.
	IdfPath        string
	IdfStemmedPath string
	Stemming       bool
}

// Components holds the loaded run components.
type Components struct {
	PreProcessor *preproc.PreProcessor
	Idf          *idf.Table
	MapperArgs   mapping.Args
	Limits       tools.Limits
}

// Load reads all configuration files and returns initialized components.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	terms := preproc.DefaultStopwords
	if l.StopwordsPath != "" {
		sw, err := LoadStopwords(l.StopwordsPath)
		if err != nil {
			return nil, err
		}
		terms = sw.Terms
	}
	comp.PreProcessor = preproc.New(terms, l.Stemming)

	idfPath := l.IdfPath
	if l.Stemming {
		idfPath = l.IdfStemmedPath
	}
	if idfPath != "" {
		table, err := idf.Load(idfPath, idf.DefaultWeight)
		if err != nil {
			return nil, err
		}
		comp.Idf = table
	} else {
		// No table: every term gets the default weight, so overlap
		// degrades to a plain token-fraction measure.
		comp.Idf = idf.NewTable(nil, idf.DefaultWeight)
	}

	comp.MapperArgs = mapping.DefaultArgs()
	if l.MapperPath != "" {
		mf, err := LoadMapperFile(l.MapperPath)
		if err != nil {
			return nil, err
		}
		comp.MapperArgs = mf.Args
		comp.Limits = tools.Limits{
			MaxKeywords:       mf.MaxKeywords,
			MaxLinks:          mf.MaxLinks,
			MaxPublicationIDs: mf.MaxPublicationIDs,
		}
	}

	if comp.MapperArgs.Threshold <= 0 {
		return nil, fmt.Errorf("%w: mapper threshold must be positive, got %f",
			internalerr.ErrInvalidConfig, comp.MapperArgs.Threshold)
	}
	return comp, nil
}
