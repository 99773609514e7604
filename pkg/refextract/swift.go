package refextract

import (
	"regexp"

	"github.com/Sumatoshi-tech/depmap/pkg/textnorm"
)

var swiftImport = regexp.MustCompile(
	`(?m)^[ \t]*(?:@[\w]+(?:\([^)\n]*\))?[ \t]+)*import[ \t]+` +
		`(?:(?:typealias|struct|class|enum|protocol|let|var|func)[ \t]+)?([\w.]+)`)

// Swift extracts imported module paths, skipping attributes and kind tokens.
func Swift(content string) []Reference {
	view := textnorm.Normalize(content, textnorm.Swift())

	return ordered(scan(view, swiftImport, func(m []string) (Reference, bool) {
		return plain(m[1]), true
	}))
}
