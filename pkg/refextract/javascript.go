package refextract

import (
	"regexp"

	"github.com/Sumatoshi-tech/depmap/pkg/textnorm"
)

var (
	jsImport     = regexp.MustCompile(`\bimport\s+(?:[\w\s{},*$]+\s+from\s+)?['"]([^'"\n]+)['"]`)
	jsExportFrom = regexp.MustCompile(`\bexport\s+(?:[\w\s{},*$]+\s+)?from\s+['"]([^'"\n]+)['"]`)
	jsRequire    = regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"\n]+)['"]\s*\)`)
	jsDynamic    = regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"\n]+)['"]\s*\)`)
)

// JavaScript extracts module specifiers from ES imports, re-exports,
// require calls and dynamic imports, grouped in that order.
func JavaScript(content string) []Reference {
	view := textnorm.Normalize(content, textnorm.JavaScript())

	build := func(m []string) (Reference, bool) { return plain(m[1]), true }

	var refs []Reference

	for _, re := range []*regexp.Regexp{jsImport, jsExportFrom, jsRequire, jsDynamic} {
		refs = append(refs, ordered(scan(view, re, build))...)
	}

	return refs
}
