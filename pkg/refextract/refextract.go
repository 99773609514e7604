// Package refextract finds raw import, include and asset references in source text.
//
// Every extractor works on a textnorm.View, so references inside comments
// never match and matches that begin inside string literals are dropped.
package refextract

import (
	"regexp"
	"slices"

	"github.com/Sumatoshi-tech/depmap/pkg/lang"
	"github.com/Sumatoshi-tech/depmap/pkg/textnorm"
)

// Form records syntax that changes how a reference is resolved or classified.
type Form uint8

const (
	// FormPlain is an ordinary reference.
	FormPlain Form = iota
	// FormAngle is a C-family <header> include.
	FormAngle
	// FormModule is a Rust `mod name;` declaration.
	FormModule
)

// Reference is one raw reference string found in a file.
type Reference struct {
	Raw  string
	Form Form
}

// Func extracts references from file content.
type Func func(content string) []Reference

// For returns the extractor for family, or nil when the family carries no references.
func For(family lang.Family) Func {
	switch family {
	case lang.FamilyPython:
		return Python
	case lang.FamilyJavaScript:
		return JavaScript
	case lang.FamilyC:
		return CInclude
	case lang.FamilyRust:
		return Rust
	case lang.FamilyGo:
		return Go
	case lang.FamilyJVM:
		return JVM
	case lang.FamilyCSharp:
		return CSharp
	case lang.FamilySwift:
		return Swift
	case lang.FamilyAsset:
		return Asset
	case lang.FamilySQL:
		return SQL
	case lang.FamilyRuby:
		return Ruby
	case lang.FamilyNone:
		return nil
	}

	return nil
}

// Extract runs the extractor for family over content.
func Extract(family lang.Family, content string) []Reference {
	fn := For(family)
	if fn == nil {
		return nil
	}

	return fn(content)
}

type hit struct {
	offset int
	ref    Reference
}

// ordered returns references in source order. Hits from different patterns
// at the same offset keep their insertion order.
func ordered(hits []hit) []Reference {
	slices.SortStableFunc(hits, func(a, b hit) int { return a.offset - b.offset })

	refs := make([]Reference, 0, len(hits))
	for _, h := range hits {
		refs = append(refs, h.ref)
	}

	return refs
}

// scan applies re to the view and calls build for every match that starts
// outside a string literal. build returns false to drop the match.
func scan(view *textnorm.View, re *regexp.Regexp, build func(m []string) (Reference, bool)) []hit {
	var hits []hit

	for _, loc := range re.FindAllStringSubmatchIndex(view.Text, -1) {
		if view.InString(loc[0]) {
			continue
		}

		ref, ok := build(submatches(view.Text, loc))
		if ok {
			hits = append(hits, hit{offset: loc[0], ref: ref})
		}
	}

	return hits
}

func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)

	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 {
			groups[i] = text[start:end]
		}
	}

	return groups
}

func plain(raw string) Reference {
	return Reference{Raw: raw}
}

// firstGroup returns the first non-empty capture, used by alternations of quote styles.
func firstGroup(groups []string) string {
	for _, g := range groups[1:] {
		if g != "" {
			return g
		}
	}

	return ""
}
