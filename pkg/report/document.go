// Package report renders a dependency graph into the artifacts written by a scan.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Sumatoshi-tech/depmap/pkg/depgraph"
)

// NodeType is the only node kind emitted today.
const NodeType = "file"

// Document is the serialized form of a graph shared by the JSON and YAML artifacts.
type Document struct {
	Nodes   []DocNode  `json:"nodes"                         yaml:"nodes"`
	Edges   []DocEdge  `json:"edges"                         yaml:"edges"`
	Summary DocSummary `json:"external_dependencies_summary" yaml:"external_dependencies_summary"`
}

// DocNode is one file of the document.
type DocNode struct {
	ID       string       `json:"id"                    yaml:"id"`
	Path     string       `json:"path"                  yaml:"path"`
	Type     string       `json:"type"                  yaml:"type"`
	External ExternalDeps `json:"external_dependencies" yaml:"external_dependencies"`
}

// ExternalDeps lists the external packages referenced by one file.
type ExternalDeps struct {
	Stdlib     []string `json:"stdlib"      yaml:"stdlib"`
	ThirdParty []string `json:"third-party" yaml:"third-party"`
}

// DocEdge is a directed dependency between two files.
type DocEdge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// DocSummary is the repository-wide union of external packages.
type DocSummary struct {
	Stdlib          []string `json:"stdlib"            yaml:"stdlib"`
	ThirdParty      []string `json:"third-party"       yaml:"third-party"`
	StdlibCount     int      `json:"stdlib_count"      yaml:"stdlib_count"`
	ThirdPartyCount int      `json:"third-party_count" yaml:"third-party_count"`
}

// NewDocument converts a graph into its serialized form. Empty lists stay
// non-nil so they encode as [].
func NewDocument(g *depgraph.Graph) Document {
	doc := Document{
		Nodes: make([]DocNode, 0, len(g.Nodes)),
		Edges: make([]DocEdge, 0, len(g.Edges)),
		Summary: DocSummary{
			Stdlib:          list(g.Summary.Stdlib),
			ThirdParty:      list(g.Summary.ThirdParty),
			StdlibCount:     len(g.Summary.Stdlib),
			ThirdPartyCount: len(g.Summary.ThirdParty),
		},
	}

	for _, n := range g.Nodes {
		doc.Nodes = append(doc.Nodes, DocNode{
			ID:   n.Path,
			Path: n.Path,
			Type: NodeType,
			External: ExternalDeps{
				Stdlib:     list(n.Stdlib),
				ThirdParty: list(n.ThirdParty),
			},
		})
	}

	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, DocEdge{Source: e.Source, Target: e.Target})
	}

	return doc
}

// JSON encodes the graph with two-space indentation and a trailing newline.
func JSON(g *depgraph.Graph) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	err := enc.Encode(NewDocument(g))
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}

	return buf.Bytes(), nil
}

func list(items []string) []string {
	if items == nil {
		return []string{}
	}

	return items
}
