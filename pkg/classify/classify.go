// Package classify labels unresolved references as standard library or
// third-party using static tables. Classification is pure: it depends only
// on the reference and its family.
package classify

import (
	"strings"

	"golang.org/x/mod/module"

	"github.com/Sumatoshi-tech/depmap/pkg/lang"
	"github.com/Sumatoshi-tech/depmap/pkg/refextract"
)

// Kind is the classification of an external reference.
type Kind uint8

const (
	// Unknown references are dropped.
	Unknown Kind = iota
	// Stdlib marks standard library or runtime core references.
	Stdlib
	// ThirdParty marks everything else that is not local.
	ThirdParty
)

// String returns the bucket name used in reports.
func (k Kind) String() string {
	switch k {
	case Stdlib:
		return "stdlib"
	case ThirdParty:
		return "third-party"
	case Unknown:
		return "unknown"
	}

	return "unknown"
}

// Func classifies one reference.
type Func func(ref refextract.Reference) Kind

// For returns the classifier of family. Families without one classify every
// reference as Unknown.
func For(family lang.Family) Func {
	switch family {
	case lang.FamilyPython:
		return python
	case lang.FamilyJavaScript:
		return javascript
	case lang.FamilyC:
		return cHeader
	case lang.FamilyRust:
		return rust
	case lang.FamilyGo:
		return goPackage
	case lang.FamilyJVM:
		return jvm
	case lang.FamilyCSharp:
		return csharp
	case lang.FamilySwift:
		return swift
	case lang.FamilyRuby:
		return ruby
	case lang.FamilyAsset, lang.FamilySQL, lang.FamilyNone:
		return unknown
	}

	return unknown
}

// Classify labels ref as written in a file of family.
func Classify(family lang.Family, ref refextract.Reference) Kind {
	return For(family)(ref)
}

// Package returns the name under which ref is reported: the top-level
// module for namespace languages, the full path for path-identified ones.
func Package(family lang.Family, ref refextract.Reference) string {
	raw := ref.Raw

	switch family {
	case lang.FamilyPython:
		return firstSegment(raw, ".")
	case lang.FamilyRust:
		return firstSegment(raw, "::")
	case lang.FamilySwift:
		return firstSegment(raw, ".")
	case lang.FamilyJavaScript:
		return jsPackage(raw)
	case lang.FamilyC, lang.FamilyGo, lang.FamilyJVM, lang.FamilyCSharp,
		lang.FamilyRuby, lang.FamilyAsset, lang.FamilySQL, lang.FamilyNone:
		return raw
	}

	return raw
}

func unknown(refextract.Reference) Kind { return Unknown }

func python(ref refextract.Reference) Kind {
	if ref.Raw == "" || strings.HasPrefix(ref.Raw, ".") {
		return Unknown
	}

	return inTable(pythonStdlib, firstSegment(ref.Raw, "."))
}

const nodePrefix = "node:"

func javascript(ref refextract.Reference) Kind {
	raw := ref.Raw

	switch {
	case raw == "", strings.HasPrefix(raw, "."), strings.HasPrefix(raw, "/"):
		return Unknown
	case strings.HasPrefix(raw, "@"):
		return ThirdParty
	}

	name, prefixed := strings.CutPrefix(raw, nodePrefix)
	module := firstSegment(name, "/")

	if _, ok := nodePrefixOnly[module]; ok && prefixed {
		return Stdlib
	}

	return inTable(nodeCore, module)
}

// jsPackage trims a specifier to its package: @scope/name or the first segment.
func jsPackage(raw string) string {
	parts := strings.SplitN(raw, "/", 3)

	if strings.HasPrefix(raw, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}

	return parts[0]
}

// cHeader never returns Unknown: a header found nowhere is third-party.
func cHeader(ref refextract.Reference) Kind {
	if _, ok := cHeaders[ref.Raw]; ok {
		return Stdlib
	}

	return ThirdParty
}

func rust(ref refextract.Reference) Kind {
	if ref.Form == refextract.FormModule || ref.Raw == "" {
		return Unknown
	}

	top := firstSegment(ref.Raw, "::")
	switch top {
	case "crate", "self", "super":
		return Unknown
	}

	return inTable(rustStdlib, top)
}

// cgoPseudoPackage is the import that enables cgo.
const cgoPseudoPackage = "C"

func goPackage(ref refextract.Reference) Kind {
	if ref.Raw == cgoPseudoPackage {
		return Stdlib
	}

	if err := module.CheckImportPath(ref.Raw); err != nil {
		return Unknown
	}

	return inTable(goStdlib, firstSegment(ref.Raw, "/"))
}

func jvm(ref refextract.Reference) Kind {
	if ref.Raw == "" {
		return Unknown
	}

	return dottedPrefix(jvmStdlibPrefixes, ref.Raw)
}

func csharp(ref refextract.Reference) Kind {
	if ref.Raw == "" {
		return Unknown
	}

	return dottedPrefix(dotnetStdlibPrefixes, ref.Raw)
}

func swift(ref refextract.Reference) Kind {
	if ref.Raw == "" {
		return Unknown
	}

	return inTable(swiftModules, firstSegment(ref.Raw, "."))
}

// ruby treats explicit paths and .rb scripts as local.
func ruby(ref refextract.Reference) Kind {
	raw := ref.Raw

	switch {
	case raw == "", strings.HasPrefix(raw, "."), strings.HasPrefix(raw, "/"), strings.HasSuffix(raw, ".rb"):
		return Unknown
	}

	return inTable(rubyStdlib, firstSegment(raw, "/"))
}

func inTable(table map[string]struct{}, key string) Kind {
	if _, ok := table[key]; ok {
		return Stdlib
	}

	return ThirdParty
}

// dottedPrefix matches name against namespace prefixes on segment boundaries.
func dottedPrefix(prefixes []string, name string) Kind {
	for _, prefix := range prefixes {
		if name == prefix || strings.HasPrefix(name, prefix+".") {
			return Stdlib
		}
	}

	return ThirdParty
}

func firstSegment(s, sep string) string {
	head, _, _ := strings.Cut(s, sep)

	return head
}
