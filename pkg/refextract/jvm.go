package refextract

import (
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/depmap/pkg/textnorm"
)

var (
	jvmImport = regexp.MustCompile(
		"(?m)^[ \\t]*import[ \\t]+(?:static[ \\t]+)?`?([\\w.`]+?)`?(\\.\\*|\\._|\\.\\{[^}\\n]*\\})?(?:[ \\t]+as[ \\t]+\\w+)?[ \\t]*;?[ \\t\\r]*$")
	csUsing = regexp.MustCompile(
		`(?m)^[ \t]*(?:global[ \t]+)?using[ \t]+(?:static[ \t]+)?(?:\w+[ \t]*=[ \t]*)?([\w.]+)[ \t]*;`)
)

// JVM extracts Java, Kotlin and Scala imports. Wildcards and Scala
// selectors reduce to the package prefix.
func JVM(content string) []Reference {
	view := textnorm.Normalize(content, textnorm.CLike())

	return ordered(scan(view, jvmImport, func(m []string) (Reference, bool) {
		path := strings.Trim(strings.ReplaceAll(m[1], "`", ""), ".")
		if path == "" {
			return Reference{}, false
		}

		return plain(path), true
	}))
}

// CSharp extracts namespaces from using directives, including global,
// static and alias forms.
func CSharp(content string) []Reference {
	view := textnorm.Normalize(content, textnorm.CLike())

	return ordered(scan(view, csUsing, func(m []string) (Reference, bool) {
		return plain(m[1]), m[1] != ""
	}))
}
