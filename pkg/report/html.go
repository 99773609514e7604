package report

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/depmap/pkg/depgraph"
)

const (
	// chartID is fixed so repeated renders are byte-identical.
	chartID = "depmap_dependency_graph"

	chartWidth  = "100%"
	chartHeight = "900px"

	baseSymbolSize = 8
	maxSymbolSize  = 40
	repulsion      = 120
	edgeLength     = 80

	unknownCategory = "Other"
)

// HTML renders an interactive force-directed plot of the graph. Node size
// grows with the number of dependents and color follows the language.
func HTML(g *depgraph.Graph) ([]byte, error) {
	categories, index := languageCategories(g)
	dependents := g.Dependents()

	nodes := make([]opts.GraphNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, opts.GraphNode{
			Name:       n.Path,
			Value:      float32(dependents[n.Path]),
			Category:   index[categoryName(n.Language)],
			SymbolSize: min(baseSymbolSize+2*dependents[n.Path], maxSymbolSize),
		})
	}

	links := make([]opts.GraphLink, 0, len(g.Edges))
	for _, e := range g.Edges {
		links = append(links, opts.GraphLink{Source: e.Source, Target: e.Target})
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Dependency Graph",
			Width:     chartWidth,
			Height:    chartHeight,
			ChartID:   chartID,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Dependency Graph",
			Subtitle: fmt.Sprintf("%d files, %d dependencies", len(g.Nodes), len(g.Edges)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	graph.AddSeries("files", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:     "force",
			Force:      &opts.GraphForce{Repulsion: repulsion, EdgeLength: edgeLength},
			Roam:       opts.Bool(true),
			Draggable:  opts.Bool(true),
			EdgeSymbol: []string{"none", "arrow"},
			Categories: categories,
		}),
	)

	var buf bytes.Buffer

	err := graph.Render(&buf)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	return buf.Bytes(), nil
}

func categoryName(language string) string {
	if language == "" {
		return unknownCategory
	}

	return language
}

func languageCategories(g *depgraph.Graph) ([]*opts.GraphCategory, map[string]int) {
	var names []string
	for _, n := range g.Nodes {
		names = append(names, categoryName(n.Language))
	}

	slices.Sort(names)
	names = slices.Compact(names)

	categories := make([]*opts.GraphCategory, len(names))
	index := make(map[string]int, len(names))

	for i, name := range names {
		categories[i] = &opts.GraphCategory{Name: name}
		index[name] = i
	}

	return categories, index
}
