package report

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineChange is one added or removed line of a drift diff.
type LineChange struct {
	Op   diffmatchpatch.Operation
	Line string
}

// LineDiff compares two rendered artifacts line by line and returns only the
// changed lines, in document order.
func LineDiff(expected, actual []byte) []LineChange {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(string(expected), string(actual))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var changes []LineChange

	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}

			changes = append(changes, LineChange{Op: d.Type, Line: strings.TrimSuffix(line, "\n")})
		}
	}

	return changes
}

// Drift prints a line diff between the committed artifact and a fresh render.
func (c *Console) Drift(label string, changes []LineChange) {
	if len(changes) == 0 {
		c.ok.Fprintf(c.w, "%s is up to date\n", label)

		return
	}

	c.fail.Fprintf(c.w, "%s is out of date (%d changed line(s))\n", label, len(changes))

	for _, ch := range changes {
		switch ch.Op {
		case diffmatchpatch.DiffInsert:
			c.ok.Fprintf(c.w, "+ %s\n", ch.Line)
		case diffmatchpatch.DiffDelete:
			c.fail.Fprintf(c.w, "- %s\n", ch.Line)
		case diffmatchpatch.DiffEqual:
		}
	}

	fmt.Fprintln(c.w)
}
