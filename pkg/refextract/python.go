package refextract

import (
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/depmap/pkg/textnorm"
)

var (
	pyImport = regexp.MustCompile(`^\s*import\s+([\w.,\s]+?)\s*$`)
	pyFrom   = regexp.MustCompile(`^\s*from\s+([\w.]+)\s+import\s+\(?([^)#]+)\)?`)
)

const pyWildcard = "*"

// Python extracts dotted module references. from-imports expand to one
// reference per imported name; relative forms keep their leading dots.
func Python(content string) []Reference {
	view := textnorm.Normalize(content, textnorm.Python())
	lines := view.CodeLines()

	var refs []Reference

	for i := 0; i < len(lines); i++ {
		stmt := lines[i].Text

		trimmed := strings.TrimSpace(stmt)
		if !strings.HasPrefix(trimmed, "import ") && !strings.HasPrefix(trimmed, "from ") {
			continue
		}

		stmt, i = joinPythonStatement(lines, i)

		for part := range strings.SplitSeq(stmt, ";") {
			refs = append(refs, parsePythonStatement(part)...)
		}
	}

	return refs
}

// joinPythonStatement folds an open parenthesis or trailing backslash
// continuation into one logical line and returns the index of its last line.
func joinPythonStatement(lines []textnorm.Line, idx int) (string, int) {
	acc := lines[idx].Text

	switch {
	case strings.Contains(acc, "(") && !strings.Contains(acc, ")"):
		for idx+1 < len(lines) {
			idx++
			next := lines[idx].Text
			acc += " " + strings.TrimSpace(next)

			if strings.Contains(next, ")") {
				break
			}
		}
	case strings.HasSuffix(strings.TrimRight(acc, " \t\r"), `\`):
		acc = strings.TrimSuffix(strings.TrimRight(acc, " \t\r"), `\`)

		for idx+1 < len(lines) {
			idx++
			acc += " " + strings.TrimSpace(lines[idx].Text)

			tail := strings.TrimRight(acc, " \t\r")
			if !strings.HasSuffix(tail, `\`) {
				break
			}

			acc = strings.TrimSuffix(tail, `\`)
		}
	}

	return acc, idx
}

func parsePythonStatement(stmt string) []Reference {
	if m := pyImport.FindStringSubmatch(stmt); m != nil {
		var refs []Reference

		for item := range strings.SplitSeq(m[1], ",") {
			name := stripAlias(item)
			if name != "" {
				refs = append(refs, plain(name))
			}
		}

		return refs
	}

	m := pyFrom.FindStringSubmatch(stmt)
	if m == nil {
		return nil
	}

	module := m[1]
	relativeOnly := strings.Trim(module, ".") == ""

	var refs []Reference

	for item := range strings.SplitSeq(m[2], ",") {
		name := stripAlias(item)

		switch {
		case name == "":
			continue
		case name == pyWildcard:
			refs = append(refs, plain(module))
		case relativeOnly:
			refs = append(refs, plain(module+name))
		default:
			refs = append(refs, plain(module+"."+name))
		}
	}

	return refs
}

// stripAlias turns "name as alias" into "name".
func stripAlias(item string) string {
	fields := strings.Fields(item)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}
