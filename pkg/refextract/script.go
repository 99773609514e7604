package refextract

import (
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/depmap/pkg/textnorm"
)

var (
	sqlPsql    = regexp.MustCompile(`(?m)^[ \t]*\\(?:include_relative|include|ir|i)[ \t]+(?:'([^'\n]+)'|([^\s;]+))`)
	sqlPlus    = regexp.MustCompile(`(?m)^[ \t]*@@?[ \t]*([^\s;=]+)[ \t]*;?[ \t\r]*$`)
	sqlSource  = regexp.MustCompile(`(?mi)^[ \t]*source[ \t]+([^\s;]+)`)
	sqlCmdRead = regexp.MustCompile(`(?mi)^[ \t]*:r[ \t]+(?:"([^"\n]+)"|([^\s;]+))`)
	sqlExec    = regexp.MustCompile(`(?i)\bEXEC(?:UTE)?\b[^;\n]*?'([^'\n]+\.sql)'`)

	rubyRequire = regexp.MustCompile(
		`(?m)^[ \t]*(require_relative|require|load)\b[ \t]*\(?[ \t]*(?:'([^'\n]+)'|"([^"\n]+)")`)
)

const rubyRelative = "require_relative"

// SQL extracts script inclusions from psql, SQL*Plus, MySQL and sqlcmd
// meta-commands plus EXEC statements naming a .sql literal.
func SQL(content string) []Reference {
	view := textnorm.Normalize(content, textnorm.SQL())

	build := func(m []string) (Reference, bool) {
		raw := strings.TrimSpace(firstGroup(m))

		return plain(raw), raw != ""
	}

	var hits []hit
	for _, re := range []*regexp.Regexp{sqlPsql, sqlPlus, sqlSource, sqlCmdRead, sqlExec} {
		hits = append(hits, scan(view, re, build)...)
	}

	return ordered(hits)
}

// Ruby extracts require, require_relative and load targets. require_relative
// targets are made explicitly relative.
func Ruby(content string) []Reference {
	view := textnorm.Normalize(content, textnorm.Ruby())

	return ordered(scan(view, rubyRequire, func(m []string) (Reference, bool) {
		target := m[2]
		if target == "" {
			target = m[3]
		}

		if target == "" {
			return Reference{}, false
		}

		if m[1] == rubyRelative && !strings.HasPrefix(target, ".") {
			target = "./" + target
		}

		return plain(target), true
	}))
}
