package refextract

import (
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/depmap/pkg/textnorm"
)

var (
	assetAttr   = regexp.MustCompile(`(?i)\b(?:href|src)[ \t]*=[ \t]*(?:"([^"\n]*)"|'([^'\n]*)'|([^\s>"']+))`)
	assetURL    = regexp.MustCompile(`(?i)\burl\(\s*(?:"([^"\n]*)"|'([^'\n]*)'|([^)\s"']+))\s*\)`)
	assetImport = regexp.MustCompile(`(?i)@import[ \t]+(?:"([^"\n]+)"|'([^'\n]+)')`)
	urlScheme   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
)

// cdnHosts are hostname fragments of public asset CDNs.
var cdnHosts = []string{
	"cdn.",
	"cdnjs.",
	"jsdelivr.",
	"unpkg.com",
	"googleapis.com",
	"gstatic.com",
	"bootstrapcdn.com",
	"cloudflare.com",
	"code.jquery.com",
	"fontawesome.com",
}

var templateMarkers = []string{"{{", "{%", "<%", "${"}

// Asset extracts local stylesheet, script, image and import references from
// HTML and CSS. Remote, inline and templated references are dropped.
func Asset(content string) []Reference {
	view := textnorm.Normalize(content, textnorm.Markup())

	build := func(m []string) (Reference, bool) {
		ref, ok := localAsset(firstGroup(m))

		return plain(ref), ok
	}

	var hits []hit
	for _, re := range []*regexp.Regexp{assetAttr, assetURL, assetImport} {
		hits = append(hits, scan(view, re, build)...)
	}

	return ordered(hits)
}

func localAsset(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)

	switch {
	case ref == "", strings.HasPrefix(ref, "#"), strings.HasPrefix(ref, "//"):
		return "", false
	case urlScheme.MatchString(ref):
		return "", false
	}

	lower := strings.ToLower(ref)
	for _, host := range cdnHosts {
		if strings.Contains(lower, host) {
			return "", false
		}
	}

	for _, marker := range templateMarkers {
		if strings.Contains(ref, marker) {
			return "", false
		}
	}

	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}

	return ref, ref != ""
}
