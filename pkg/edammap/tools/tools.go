package tools

import (
	"fmt"
	"strings"

	"github.com/edamontology/edammap/pkg/edammap/edam"
	"github.com/edamontology/edammap/pkg/edammap/internalerr"
)

// Tool is one record describing a piece of scientific software, the unit
// that gets annotated with EDAM concepts.
type Tool struct {
	ID             string
	Name           string
	Keywords       []string
	Description    string
	Webpages       []string
	Docs           []string
	PublicationIDs []string

	// Annotations is the known-correct concept set, used only for
	// benchmarking. Empty when not benchmarking.
	Annotations []edam.URI
}

// Limits bounds the list-valued fields of a Tool. Zero means unlimited.
type Limits struct {
	MaxKeywords       int
	MaxLinks          int
	MaxPublicationIDs int
}

// Validate checks required fields and configured maxima. Name is the only
// required field; everything else degrades gracefully when missing.
func (t *Tool) Validate(limits Limits) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: tool name is required (id %q)", internalerr.ErrInvalidInput, t.ID)
	}
	if limits.MaxKeywords > 0 && len(t.Keywords) > limits.MaxKeywords {
		return fmt.Errorf("%w: number of keywords (%d) is greater than maximum allowed (%d)",
			internalerr.ErrInvalidInput, len(t.Keywords), limits.MaxKeywords)
	}
	if limits.MaxLinks > 0 && len(t.Webpages)+len(t.Docs) > limits.MaxLinks {
		return fmt.Errorf("%w: number of links (%d) is greater than maximum allowed (%d)",
			internalerr.ErrInvalidInput, len(t.Webpages)+len(t.Docs), limits.MaxLinks)
	}
	if limits.MaxPublicationIDs > 0 && len(t.PublicationIDs) > limits.MaxPublicationIDs {
		return fmt.Errorf("%w: number of publication IDs (%d) is greater than maximum allowed (%d)",
			internalerr.ErrInvalidInput, len(t.PublicationIDs), limits.MaxPublicationIDs)
	}
	return nil
}

// Loader reads tool records from a registry export file.
type Loader interface {
	Load(path string) ([]Tool, error)
}

// ForFormat returns the loader for a format tag. Known formats are
// "biotools" (bio.tools JSON export) and "generic" (CSV).
func ForFormat(format string) (Loader, error) {
	switch format {
	case "biotools":
		return &BiotoolsLoader{}, nil
	case "generic":
		return &GenericLoader{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown input format %q", internalerr.ErrInvalidInput, format)
	}
}
