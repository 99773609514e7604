package report_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/depmap/pkg/depgraph"
	"github.com/Sumatoshi-tech/depmap/pkg/lang"
	"github.com/Sumatoshi-tech/depmap/pkg/report"
)

func sampleGraph() *depgraph.Graph {
	return &depgraph.Graph{
		Nodes: []depgraph.Node{
			{Path: "app/main.py", Language: lang.Python, Stdlib: []string{"os"}, ThirdParty: []string{"requests"}},
			{Path: "app/util.py", Language: lang.Python, Stdlib: []string{}, ThirdParty: []string{}},
			{Path: "web/index.js", Language: lang.JavaScript, Stdlib: []string{}, ThirdParty: []string{"<react>"}},
		},
		Edges: []depgraph.Edge{
			{Source: "app/main.py", Target: "app/util.py"},
			{Source: "app/util.py", Target: "app/main.py"},
		},
		Summary: depgraph.Summary{
			Stdlib:     []string{"os"},
			ThirdParty: []string{"<react>", "requests"},
		},
	}
}

func TestJSON_Shape(t *testing.T) {
	t.Parallel()

	data, err := report.JSON(sampleGraph())
	require.NoError(t, err)

	assert.True(t, bytes.HasSuffix(data, []byte("}\n")))
	assert.Contains(t, string(data), "\n  \"nodes\": [")
	assert.Contains(t, string(data), `"<react>"`, "HTML characters must not be escaped")

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	summary, ok := doc["external_dependencies_summary"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 1, summary["stdlib_count"], 0)
	assert.InDelta(t, 2, summary["third-party_count"], 0)

	nodes, ok := doc["nodes"].([]any)
	require.True(t, ok)
	require.Len(t, nodes, 3)

	first, ok := nodes[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "app/main.py", first["id"])
	assert.Equal(t, "app/main.py", first["path"])
	assert.Equal(t, "file", first["type"])
}

func TestJSON_EmptyListsEncodeAsArrays(t *testing.T) {
	t.Parallel()

	data, err := report.JSON(&depgraph.Graph{Nodes: []depgraph.Node{{Path: "a.txt"}}})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"edges": []`)
	assert.Contains(t, string(data), `"stdlib": []`)
	assert.Contains(t, string(data), `"third-party": []`)
	assert.NotContains(t, string(data), "null")
}

func TestJSON_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := report.JSON(sampleGraph())
	require.NoError(t, err)

	second, err := report.JSON(sampleGraph())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidate_AcceptsRenderedJSON(t *testing.T) {
	t.Parallel()

	data, err := report.JSON(sampleGraph())
	require.NoError(t, err)

	violations, err := report.Validate(data)
	require.NoError(t, err)
	assert.Empty(t, violations)
	require.NoError(t, report.Check(data))
}

func TestValidate_ReportsViolations(t *testing.T) {
	t.Parallel()

	doc := `{"nodes":[{"id":"a","path":"a","type":"dir","external_dependencies":{"stdlib":[],"third-party":[]}}],
"edges":[{"source":"a"}],
"external_dependencies_summary":{"stdlib":["os","os"],"third-party":[],"stdlib_count":1,"third-party_count":0}}`

	violations, err := report.Validate([]byte(doc))
	require.NoError(t, err)
	assert.NotEmpty(t, violations)

	err = report.Check([]byte(doc))
	require.ErrorIs(t, err, report.ErrSchemaViolation)
}

func TestValidate_RejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := report.Validate([]byte("{not json"))
	require.Error(t, err)
}

func TestMarkdown_Sections(t *testing.T) {
	t.Parallel()

	g := sampleGraph()
	g.Errors = []depgraph.ScanError{{File: "broken.py", Message: "permission denied"}}

	md := string(report.Markdown(g, 0))

	assert.True(t, strings.HasPrefix(md, "# Dependency Graph\n"))
	assert.Contains(t, md, "## Statistics\n")
	assert.Contains(t, md, "- **Total files**: 3\n")
	assert.Contains(t, md, "- **Intra-repo dependencies**: 2\n")
	assert.Contains(t, md, "- **External stdlib dependencies**: 1\n")
	assert.Contains(t, md, "- **External third-party dependencies**: 2\n")
	assert.Contains(t, md, "### Standard Library\n\n- `os`\n")
	assert.Contains(t, md, "### Third-Party Packages\n\n- `<react>`\n- `requests`\n")
	assert.Contains(t, md, "## Most Depended Upon Files\n\n- `app/main.py` (1 dependents)\n- `app/util.py` (1 dependents)\n")
	assert.Contains(t, md, "## Files with Most Dependencies\n")
	assert.Contains(t, md, "## Circular Dependencies\n\n- `app/main.py`, `app/util.py`\n")
	assert.Contains(t, md, "The following errors occurred during dependency analysis:")
	assert.Contains(t, md, "- Error scanning broken.py: permission denied\n")
	assert.True(t, strings.HasSuffix(md, "\n"))
	assert.False(t, strings.HasSuffix(md, "\n\n"))
}

func TestMarkdown_CapsExternalLists(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, 7)
	for i := range 7 {
		names = append(names, fmt.Sprintf("pkg%d", i))
	}

	g := &depgraph.Graph{Summary: depgraph.Summary{Stdlib: names}}

	md := string(report.Markdown(g, 5))

	assert.Contains(t, md, "- `pkg4`\n- _+2 more_\n")
	assert.NotContains(t, md, "`pkg5`")
	assert.NotContains(t, md, "### Third-Party Packages")
	assert.NotContains(t, md, "## Most Depended Upon Files")
	assert.NotContains(t, md, "## Errors")
}

func TestYAML_MatchesDocument(t *testing.T) {
	t.Parallel()

	data, err := report.YAML(sampleGraph())
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, yaml.Unmarshal(data, &doc))

	assert.Equal(t, report.NewDocument(sampleGraph()), doc)
	assert.Contains(t, string(data), "third-party_count: 2")
}

func TestHTML_IsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := report.HTML(sampleGraph())
	require.NoError(t, err)

	second, err := report.HTML(sampleGraph())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, string(first), "depmap_dependency_graph")
	assert.Contains(t, string(first), "app/util.py")
}

func TestParseFormats(t *testing.T) {
	t.Parallel()

	formats, err := report.ParseFormats([]string{"html", "yml", "md"})
	require.NoError(t, err)
	assert.Equal(t, []report.Format{
		report.FormatJSON, report.FormatMarkdown, report.FormatYAML, report.FormatHTML,
	}, formats)

	_, err = report.ParseFormats([]string{"pdf"})
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestRenderAllAndWrite(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out", "nested")

	artifacts, err := report.RenderAll(sampleGraph(), dir, report.DefaultFormats, report.Options{Validate: true})
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	require.NoError(t, report.Write(artifacts))

	for _, a := range artifacts {
		got, readErr := os.ReadFile(a.Path)
		require.NoError(t, readErr)
		assert.Equal(t, a.Content, got)
	}

	assert.FileExists(t, filepath.Join(dir, "dependencies.json"))
	assert.FileExists(t, filepath.Join(dir, "dependencies.md"))
}

func TestWrite_WrapsErrors(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := report.Write([]report.Artifact{{Path: filepath.Join(blocker, "dependencies.json")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write "+filepath.Join(blocker, "dependencies.json"))
}
