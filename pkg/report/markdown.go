package report

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/depmap/pkg/depgraph"
)

const (
	// DefaultDisplayCap bounds each external dependency list in the Markdown report.
	DefaultDisplayCap = 50

	topFiles = 10
)

// Markdown renders the human-readable report. displayCap <= 0 uses DefaultDisplayCap.
func Markdown(g *depgraph.Graph, displayCap int) []byte {
	if displayCap <= 0 {
		displayCap = DefaultDisplayCap
	}

	var b strings.Builder

	b.WriteString("# Dependency Graph\n\n")
	b.WriteString("Intra-repository dependency analysis across all supported languages.\n\n")

	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- **Total files**: %d\n", len(g.Nodes))
	fmt.Fprintf(&b, "- **Intra-repo dependencies**: %d\n", len(g.Edges))
	fmt.Fprintf(&b, "- **External stdlib dependencies**: %d\n", len(g.Summary.Stdlib))
	fmt.Fprintf(&b, "- **External third-party dependencies**: %d\n\n", len(g.Summary.ThirdParty))

	if len(g.Summary.Stdlib) > 0 || len(g.Summary.ThirdParty) > 0 {
		b.WriteString("## External Dependencies\n\n")
		writeCapped(&b, "Standard Library", g.Summary.Stdlib, displayCap)
		writeCapped(&b, "Third-Party Packages", g.Summary.ThirdParty, displayCap)
	}

	writeRanking(&b, "Most Depended Upon Files", "dependents", depgraph.Top(g.Dependents(), topFiles))
	writeRanking(&b, "Files with Most Dependencies", "dependencies", depgraph.Top(g.Dependencies(), topFiles))

	if cycles := g.Cycles(); len(cycles) > 0 {
		b.WriteString("## Circular Dependencies\n\n")

		for _, cycle := range cycles {
			quoted := make([]string, len(cycle))
			for i, p := range cycle {
				quoted[i] = "`" + p + "`"
			}

			fmt.Fprintf(&b, "- %s\n", strings.Join(quoted, ", "))
		}

		b.WriteString("\n")
	}

	if len(g.Errors) > 0 {
		b.WriteString("## Errors\n\n")
		b.WriteString("The following errors occurred during dependency analysis:\n\n")

		for _, e := range g.Errors {
			fmt.Fprintf(&b, "- Error scanning %s: %s\n", e.File, e.Message)
		}

		b.WriteString("\n")
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n")
}

func writeCapped(b *strings.Builder, title string, names []string, displayCap int) {
	if len(names) == 0 {
		return
	}

	fmt.Fprintf(b, "### %s\n\n", title)

	shown := names
	if len(shown) > displayCap {
		shown = shown[:displayCap]
	}

	for _, name := range shown {
		fmt.Fprintf(b, "- `%s`\n", name)
	}

	if rest := len(names) - len(shown); rest > 0 {
		fmt.Fprintf(b, "- _+%d more_\n", rest)
	}

	b.WriteString("\n")
}

func writeRanking(b *strings.Builder, title, unit string, ranked []depgraph.PathCount) {
	if len(ranked) == 0 {
		return
	}

	fmt.Fprintf(b, "## %s\n\n", title)

	for _, pc := range ranked {
		fmt.Fprintf(b, "- `%s` (%d %s)\n", pc.Path, pc.Count, unit)
	}

	b.WriteString("\n")
}
