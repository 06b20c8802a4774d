package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edamontology/edammap/pkg/edammap/internalerr"
	"github.com/edamontology/edammap/pkg/edammap/mapping"
)

// Stopwords is the stopword list file: a YAML document with a "terms" list.
type Stopwords struct {
	Terms []string `yaml:"terms"`
}

// LoadStopwords loads a stopword list from a YAML file.
func LoadStopwords(path string) (*Stopwords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load stopwords: %w", err)
	}

	var sw Stopwords
	if err := yaml.Unmarshal(data, &sw); err != nil {
		return nil, fmt.Errorf("%w: stopwords %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	return &sw, nil
}

// MapperFile is the mapper configuration file: the scoring parameters plus
// the input field limits.
type MapperFile struct {
	mapping.Args `yaml:",inline"`

	MaxKeywords       int `yaml:"max_keywords"`
	MaxLinks          int `yaml:"max_links"`
	MaxPublicationIDs int `yaml:"max_publication_ids"`
}

// LoadMapperFile loads scoring parameters from a YAML file. Fields left
// out of the file keep the defaults.
func LoadMapperFile(path string) (*MapperFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load mapper config: %w", err)
	}

	mf := &MapperFile{Args: mapping.DefaultArgs()}
	if err := yaml.Unmarshal(data, mf); err != nil {
		return nil, fmt.Errorf("%w: mapper config %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	if mf.Threshold < 0 || mf.Threshold > 1 {
		return nil, fmt.Errorf("%w: mapper config %s: threshold %f out of range [0,1]",
			internalerr.ErrInvalidConfig, path, mf.Threshold)
	}
	return mf, nil
}
