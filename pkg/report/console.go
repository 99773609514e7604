package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/Sumatoshi-tech/depmap/pkg/depgraph"
	"github.com/Sumatoshi-tech/depmap/pkg/lang"
)

// consoleErrorLimit bounds the errors echoed to the terminal; the Markdown report lists all.
const consoleErrorLimit = 5

// ColorEnabled reports whether w should receive ANSI colors.
func ColorEnabled(w io.Writer, disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Console prints scan results for humans.
type Console struct {
	w     io.Writer
	ok    *color.Color
	warn  *color.Color
	fail  *color.Color
	muted *color.Color
}

// NewConsole returns a console writing to w.
func NewConsole(w io.Writer, useColor bool) *Console {
	c := &Console{
		w:     w,
		ok:    color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		fail:  color.New(color.FgRed),
		muted: color.New(color.Faint),
	}

	for _, col := range []*color.Color{c.ok, c.warn, c.fail, c.muted} {
		if useColor {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}

	return c
}

// Summary prints the scan statistics table.
func (c *Console) Summary(g *depgraph.Graph) {
	refs := g.Stats.References

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Metric", "Value"})
	tbl.AppendRows([]table.Row{
		{"Files", g.Stats.Files},
		{"Scanned", g.Stats.Scanned},
		{"Skipped", g.Stats.Skipped},
		{"Errors", g.Stats.Errors},
		{"References", refs.Total()},
		{"Intra-repo dependencies", len(g.Edges)},
		{"Stdlib packages", len(g.Summary.Stdlib)},
		{"Third-party packages", len(g.Summary.ThirdParty)},
		{"Cycles", len(g.Cycles())},
		{"Duration", g.Stats.Duration.Round(time.Millisecond).String()},
	})

	fmt.Fprintln(c.w, tbl.Render())
}

// Written reports the artifacts that were written.
func (c *Console) Written(artifacts []Artifact) {
	for _, a := range artifacts {
		c.ok.Fprintf(c.w, "Dependency graph %s written: ", a.Format)
		fmt.Fprintf(c.w, "%s ", a.Path)
		c.muted.Fprintf(c.w, "(%s)\n", humanize.Bytes(uint64(len(a.Content))))
	}
}

// DryRun reports what a scan would have written.
func (c *Console) DryRun(g *depgraph.Graph, artifacts []Artifact) {
	for _, a := range artifacts {
		c.warn.Fprint(c.w, "[DRY RUN] ")
		fmt.Fprintf(c.w, "Would write %s to: %s (%s)\n",
			a.Format.FileName(), a.Path, humanize.Bytes(uint64(len(a.Content))))
	}

	c.warn.Fprint(c.w, "[DRY RUN] ")
	fmt.Fprintf(c.w, "Nodes: %d, Edges: %d\n", len(g.Nodes), len(g.Edges))

	if len(g.Errors) > 0 {
		c.warn.Fprint(c.w, "[DRY RUN] ")
		fmt.Fprintf(c.w, "Errors: %d\n", len(g.Errors))
	}
}

// Errors echoes the first scan errors.
func (c *Console) Errors(errs []depgraph.ScanError) {
	if len(errs) == 0 {
		return
	}

	c.fail.Fprintf(c.w, "\nError: %d error(s) occurred during dependency analysis\n", len(errs))

	for i, e := range errs {
		if i == consoleErrorLimit {
			fmt.Fprintf(c.w, "  ... and %d more\n", len(errs)-consoleErrorLimit)

			break
		}

		fmt.Fprintf(c.w, "  - %s\n", e.Error())
	}
}

// Violations prints schema violations of a validated document.
func (c *Console) Violations(label string, violations []Violation) {
	if len(violations) == 0 {
		c.ok.Fprintf(c.w, "%s is a valid dependency graph\n", label)

		return
	}

	c.fail.Fprintf(c.w, "%s does not match the dependency graph schema\n", label)

	for _, v := range violations {
		c.fail.Fprintf(c.w, "  - %s\n", v)
	}
}

// Languages prints the language registry.
func (c *Console) Languages(defs []lang.Definition) {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Language", "Family", "Extensions", "Priority", "Enabled"})

	for _, d := range defs {
		tbl.AppendRow(table.Row{
			d.Name,
			string(d.Family),
			strings.Join(d.Extensions, " "),
			d.Priority,
			strconv.FormatBool(d.Enabled),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d languages", len(defs))})

	fmt.Fprintln(c.w, tbl.Render())
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}
