package refextract

import (
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/depmap/pkg/textnorm"
)

var (
	cInclude = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*(?:include|import)[ \t]*([<"])([^>"\n]+)[>"]`)

	rustUse     = regexp.MustCompile(`(?m)^[ \t]*(?:pub(?:[ \t]*\([^)\n]*\))?[ \t]+)?use[ \t]+([^;]+);`)
	rustMod     = regexp.MustCompile(`(?m)^[ \t]*(?:pub(?:[ \t]*\([^)\n]*\))?[ \t]+)?mod[ \t]+(\w+)[ \t]*;`)
	rustExtern  = regexp.MustCompile(`(?m)^[ \t]*extern[ \t]+crate[ \t]+(\w+)`)
	rustAlias   = regexp.MustCompile(`\s+as\s+\w+`)
	rustSpacing = regexp.MustCompile(`\s+`)

	goImportLine  = regexp.MustCompile(`(?m)^[ \t]*import[ \t]+(?:[\w.]+[ \t]+)?"([^"\n]+)"`)
	goImportBlock = regexp.MustCompile(`(?ms)^[ \t]*import[ \t]*\((.*?)\)`)
	goImportSpec  = regexp.MustCompile(`(?m)^[ \t]*(?:[\w.]+[ \t]+)?"([^"\n]+)"`)
)

const rustSep = "::"

// CInclude extracts #include and #import paths verbatim. Angle-bracket
// includes are marked with FormAngle.
func CInclude(content string) []Reference {
	view := textnorm.Normalize(content, textnorm.CLike())

	return ordered(scan(view, cInclude, func(m []string) (Reference, bool) {
		form := FormPlain
		if m[1] == "<" {
			form = FormAngle
		}

		return Reference{Raw: strings.TrimSpace(m[2]), Form: form}, true
	}))
}

// Rust extracts use paths, mod declarations and extern crates in source order.
func Rust(content string) []Reference {
	view := textnorm.Normalize(content, textnorm.Rust())

	var hits []hit

	for _, loc := range rustUse.FindAllStringSubmatchIndex(view.Text, -1) {
		if view.InString(loc[0]) {
			continue
		}

		for _, path := range expandUseTree(view.Text[loc[2]:loc[3]]) {
			hits = append(hits, hit{offset: loc[0], ref: plain(path)})
		}
	}

	hits = append(hits, scan(view, rustMod, func(m []string) (Reference, bool) {
		return Reference{Raw: m[1], Form: FormModule}, true
	})...)

	hits = append(hits, scan(view, rustExtern, func(m []string) (Reference, bool) {
		return plain(m[1]), true
	})...)

	return ordered(hits)
}

// expandUseTree flattens one level of `a::{b, c}` groups. Nested groups
// collapse to their prefix.
func expandUseTree(tree string) []string {
	tree = rustAlias.ReplaceAllString(tree, "")
	tree = rustSpacing.ReplaceAllString(tree, "")
	tree = strings.TrimPrefix(tree, rustSep)

	open := strings.IndexByte(tree, '{')
	if open < 0 {
		leaf := trimUseLeaf(tree)
		if leaf == "" {
			return nil
		}

		return []string{leaf}
	}

	prefix := strings.TrimSuffix(tree[:open], rustSep)

	closing := strings.LastIndexByte(tree, '}')
	if closing < open {
		return nonEmpty(prefix)
	}

	var paths []string

	for _, item := range splitTopLevel(tree[open+1:closing]) {
		switch {
		case item == "":
			continue
		case item == "self" || item == "*" || strings.Contains(item, "{"):
			paths = append(paths, prefix)
		case prefix == "":
			paths = append(paths, trimUseLeaf(item))
		default:
			paths = append(paths, prefix+rustSep+trimUseLeaf(item))
		}
	}

	return dedupeInOrder(paths)
}

func trimUseLeaf(path string) string {
	return strings.TrimSuffix(strings.TrimSuffix(path, "*"), rustSep)
}

// splitTopLevel splits on commas that are not nested inside braces.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)

	for i := range len(s) {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, s[start:])
}

// Go extracts quoted import paths from single imports and import blocks.
func Go(content string) []Reference {
	view := textnorm.Normalize(content, textnorm.Go())

	hits := scan(view, goImportLine, func(m []string) (Reference, bool) {
		return plain(m[1]), true
	})

	for _, loc := range goImportBlock.FindAllStringSubmatchIndex(view.Text, -1) {
		if view.InString(loc[0]) {
			continue
		}

		body := view.Text[loc[2]:loc[3]]

		for _, spec := range goImportSpec.FindAllStringSubmatchIndex(body, -1) {
			hits = append(hits, hit{offset: loc[2] + spec[0], ref: plain(body[spec[2]:spec[3]])})
		}
	}

	return ordered(hits)
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}

	return []string{s}
}

func dedupeInOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]

	for _, item := range items {
		if item == "" {
			continue
		}

		if _, dup := seen[item]; dup {
			continue
		}

		seen[item] = struct{}{}
		out = append(out, item)
	}

	return out
}
