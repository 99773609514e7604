package resolve

import (
	"path"
	"strings"

	"github.com/Sumatoshi-tech/depmap/pkg/lang"
	"github.com/Sumatoshi-tech/depmap/pkg/refextract"
)

// Func resolves ref, found in the file at source, to a file under the tree.
type Func func(t *Tree, ref refextract.Reference, source string) (string, bool)

// For returns the resolver of family, or nil for families that never resolve.
func For(family lang.Family) Func {
	switch family {
	case lang.FamilyPython:
		return python
	case lang.FamilyJavaScript:
		return javascript
	case lang.FamilyC:
		return cInclude
	case lang.FamilyRust:
		return rust
	case lang.FamilyAsset:
		return asset
	case lang.FamilySQL:
		return sqlScript
	case lang.FamilyRuby:
		return ruby
	case lang.FamilyGo, lang.FamilyJVM, lang.FamilyCSharp, lang.FamilySwift, lang.FamilyNone:
		return nil
	}

	return nil
}

// Resolve maps ref to a repository-relative file path.
func (t *Tree) Resolve(family lang.Family, ref refextract.Reference, source string) (string, bool) {
	fn := For(family)
	if fn == nil || ref.Raw == "" {
		return "", false
	}

	return fn(t, ref, source)
}

const (
	pyExt      = ".py"
	pyInit     = "__init__.py"
	pyLevelSep = "."
)

// pySearchRoots are tried in order for absolute imports.
var pySearchRoots = []string{"", "src", "lib"}

func python(t *Tree, ref refextract.Reference, source string) (string, bool) {
	raw := ref.Raw
	if strings.HasPrefix(raw, pyLevelSep) {
		return pythonRelative(t, raw, source)
	}

	parts := strings.Split(raw, pyLevelSep)

	for _, searchRoot := range pySearchRoots {
		base := path.Join(searchRoot, parts[0])
		if !t.IsFile(base+pyExt) && !t.IsDir(base) {
			continue
		}

		if len(parts) == 1 && t.IsFile(base+pyExt) {
			return base + pyExt, true
		}

		if t.IsDir(base) {
			if target, ok := pythonWalk(t, base, parts[1:]); ok {
				return target, true
			}
		}

		return t.firstFile(base + pyExt)
	}

	return "", false
}

func pythonRelative(t *Tree, raw, source string) (string, bool) {
	rest := strings.TrimLeft(raw, pyLevelSep)
	levels := len(raw) - len(rest)

	dir := parent(source)
	for range levels - 1 {
		if dir == "." {
			return "", false
		}

		dir = parent(dir)
	}

	if rest == "" {
		return t.firstFile(path.Join(dir, pyInit))
	}

	parts := strings.Split(rest, pyLevelSep)
	target := path.Join(dir, path.Join(parts...))

	if found, ok := t.firstFile(target+pyExt, path.Join(target, pyInit)); ok {
		return found, true
	}

	// The walk must get past dir: a name missing from the current package
	// is unresolved, not the package itself.
	found, ok := pythonWalk(t, dir, parts)
	if !ok || found == path.Join(dir, pyInit) {
		return "", false
	}

	return found, true
}

// pythonWalk descends through packages under dir, preferring seg.py at each
// level and falling back to the deepest package __init__.py.
func pythonWalk(t *Tree, dir string, parts []string) (string, bool) {
	deepest := ""
	if t.IsFile(path.Join(dir, pyInit)) {
		deepest = path.Join(dir, pyInit)
	}

	cur := dir

	for _, seg := range parts {
		next := path.Join(cur, seg)
		if t.IsFile(next + pyExt) {
			return next + pyExt, true
		}

		if !t.IsFile(path.Join(next, pyInit)) {
			break
		}

		cur = next
		deepest = path.Join(next, pyInit)
	}

	return deepest, deepest != ""
}

// jsExtensions are appended to extensionless specifiers in this order.
var jsExtensions = []string{".js", ".ts", ".jsx", ".tsx", ".mjs", ".cjs"}

func javascript(t *Tree, ref refextract.Reference, source string) (string, bool) {
	target, ok := localPath(ref.Raw, source)
	if !ok {
		return "", false
	}

	candidates := make([]string, 0, 1+2*len(jsExtensions))
	candidates = append(candidates, target)

	for _, ext := range jsExtensions {
		candidates = append(candidates, target+ext)
	}

	if found, ok := t.firstFile(candidates...); ok {
		return found, true
	}

	if !t.IsDir(target) {
		return "", false
	}

	candidates = candidates[:0]
	for _, ext := range jsExtensions {
		candidates = append(candidates, path.Join(target, "index"+ext))
	}

	return t.firstFile(candidates...)
}

// localPath turns a ./, ../ or / specifier into a root-relative path.
func localPath(raw, source string) (string, bool) {
	switch {
	case strings.HasPrefix(raw, "/"):
		return within(strings.TrimLeft(raw, "/"))
	case strings.HasPrefix(raw, "."):
		return within(path.Join(parent(source), raw))
	}

	return "", false
}

// cInclude tries the including file's directory, the root, then the include
// dirs. Quote and angle forms search the same way.
func cInclude(t *Tree, ref refextract.Reference, source string) (string, bool) {
	candidates := make([]string, 0, 2+len(t.includeDirs))
	candidates = append(candidates, path.Join(parent(source), ref.Raw), ref.Raw)

	for _, dir := range t.includeDirs {
		candidates = append(candidates, path.Join(dir, ref.Raw))
	}

	return t.firstFile(candidates...)
}

const (
	rustSep       = "::"
	rustExt       = ".rs"
	rustModFile   = "mod.rs"
	rustLibFile   = "lib.rs"
	rustMainFile  = "main.rs"
	rustCratePath = "crate"
)

func rust(t *Tree, ref refextract.Reference, source string) (string, bool) {
	if ref.Form == refextract.FormModule {
		return rustModule(t, ref.Raw, source)
	}

	segments := strings.Split(ref.Raw, rustSep)
	if segments[0] != rustCratePath {
		return "", false
	}

	crateDir, crateFile, ok := rustCrateRoot(t, parent(source))
	if !ok {
		return "", false
	}

	found := ""
	cur := crateDir

	for _, seg := range segments[1:] {
		next := path.Join(cur, seg)

		switch {
		case t.IsFile(next + rustExt):
			found = next + rustExt
		case t.IsFile(path.Join(next, rustModFile)):
			found = path.Join(next, rustModFile)
		default:
			if found != "" {
				return found, true
			}

			return crateFile, true
		}

		cur = next
	}

	if found != "" {
		return found, true
	}

	return crateFile, true
}

// rustCrateRoot finds the nearest directory at or above dir holding lib.rs or main.rs.
func rustCrateRoot(t *Tree, dir string) (string, string, bool) {
	for {
		for _, name := range []string{rustLibFile, rustMainFile} {
			if candidate := path.Join(dir, name); t.IsFile(candidate) {
				return dir, candidate, true
			}
		}

		if dir == "." {
			return "", "", false
		}

		dir = parent(dir)
	}
}

func rustModule(t *Tree, name, source string) (string, bool) {
	dir := parent(source)
	base := path.Base(source)

	modDir := dir
	if base != rustModFile && base != rustLibFile && base != rustMainFile {
		modDir = path.Join(dir, strings.TrimSuffix(base, rustExt))
	}

	return t.firstFile(
		path.Join(modDir, name+rustExt),
		path.Join(modDir, name, rustModFile),
		path.Join(dir, name+rustExt),
		path.Join(dir, name, rustModFile),
	)
}

func asset(t *Tree, ref refextract.Reference, source string) (string, bool) {
	if strings.HasPrefix(ref.Raw, "/") {
		return t.firstFile(strings.TrimLeft(ref.Raw, "/"))
	}

	return t.firstFile(path.Join(parent(source), ref.Raw), ref.Raw)
}

func sqlScript(t *Tree, ref refextract.Reference, source string) (string, bool) {
	return t.firstFile(path.Join(parent(source), ref.Raw), ref.Raw)
}

const (
	rubyExt    = ".rb"
	rubyLibDir = "lib"
)

func ruby(t *Tree, ref refextract.Reference, source string) (string, bool) {
	raw := ref.Raw
	if path.Ext(raw) != rubyExt {
		raw += rubyExt
	}

	if strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../") {
		return t.firstFile(path.Join(parent(source), raw))
	}

	return t.firstFile(raw, path.Join(rubyLibDir, raw))
}
