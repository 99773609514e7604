package report

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/depmap/pkg/depgraph"
)

const yamlIndent = 2

// YAML encodes the same document as JSON in YAML form.
func YAML(g *depgraph.Graph) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	err := enc.Encode(NewDocument(g))
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	return buf.Bytes(), nil
}
