package edam

import "strings"

// Branch is one of the four top-level EDAM sub-ontologies.
type Branch string

const (
	BranchTopic     Branch = "topic"
	BranchOperation Branch = "operation"
	BranchData      Branch = "data"
	BranchFormat    Branch = "format"
)

// Branches lists all known branches in canonical order.
var Branches = []Branch{BranchTopic, BranchOperation, BranchData, BranchFormat}

// URI identifies one EDAM concept, e.g. "http://edamontology.org/topic_0102".
// Identity is the full URI string.
type URI string

// Branch derives the sub-ontology from the URI fragment.
// Unknown or malformed URIs yield an empty Branch.
func (u URI) Branch() Branch {
	frag := string(u)
	if i := strings.LastIndexByte(frag, '/'); i >= 0 {
		frag = frag[i+1:]
	}
	if i := strings.IndexByte(frag, '_'); i >= 0 {
		frag = frag[:i]
	}
	switch Branch(frag) {
	case BranchTopic, BranchOperation, BranchData, BranchFormat:
		return Branch(frag)
	}
	return ""
}

// Concept is one node of the EDAM ontology. Immutable once loaded.
type Concept struct {
	URI            URI
	Label          string
	ExactSynonyms  []string
	NarrowSynonyms []string
	BroadSynonyms  []string
	Definition     string
	Comment        string
	Obsolete       bool
}
