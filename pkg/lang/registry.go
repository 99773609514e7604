package lang

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/src-d/enry/v2"
)

// ErrUnknownLanguage is returned when settings name a language the registry does not know.
var ErrUnknownLanguage = errors.New("unknown language")

// Override adjusts a single language. Nil fields are left unchanged.
type Override struct {
	Priority *int
	Enabled  *bool
}

// Settings is the user-facing language configuration.
//
// Enabled, when non-nil, disables every language first and then enables the
// listed ones. Disabled is applied next, and Overrides last.
type Settings struct {
	Enabled   []string
	Disabled  []string
	Overrides map[string]Override
}

// Registry resolves file names to language definitions.
// A Registry is read-only once configured and safe for concurrent Detect calls.
type Registry struct {
	languages map[string]*Definition
	byExt     map[string]string
}

// NewRegistry returns a registry populated with the built-in languages, all enabled.
func NewRegistry() *Registry {
	reg := &Registry{languages: make(map[string]*Definition)}

	for _, def := range defaultDefinitions() {
		def.Enabled = true
		reg.languages[def.Name] = &def
	}

	reg.rebuild()

	return reg
}

// Apply configures the registry. Names match case-insensitively; unknown
// names fail the whole call before anything changes.
func (r *Registry) Apply(settings Settings) error {
	settings, err := r.canonicalize(settings)
	if err != nil {
		return err
	}

	if settings.Enabled != nil {
		for _, def := range r.languages {
			def.Enabled = false
		}

		for _, name := range settings.Enabled {
			r.languages[name].Enabled = true
		}
	}

	for _, name := range settings.Disabled {
		r.languages[name].Enabled = false
	}

	for name, ov := range settings.Overrides {
		def := r.languages[name]

		if ov.Enabled != nil {
			def.Enabled = *ov.Enabled
		}

		if ov.Priority != nil {
			def.Priority = *ov.Priority
		}
	}

	r.rebuild()

	return nil
}

func (r *Registry) canonicalize(settings Settings) (Settings, error) {
	out := Settings{Overrides: make(map[string]Override, len(settings.Overrides))}

	names := func(in []string) ([]string, error) {
		if in == nil {
			return nil, nil
		}

		canon := make([]string, 0, len(in))

		for _, name := range in {
			c, ok := r.Canonical(name)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
			}

			canon = append(canon, c)
		}

		return canon, nil
	}

	var err error

	out.Enabled, err = names(settings.Enabled)
	if err != nil {
		return Settings{}, err
	}

	out.Disabled, err = names(settings.Disabled)
	if err != nil {
		return Settings{}, err
	}

	for name, ov := range settings.Overrides {
		c, ok := r.Canonical(name)
		if !ok {
			return Settings{}, fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
		}

		out.Overrides[c] = ov
	}

	return out, nil
}

// Canonical returns the registered spelling of a language name, ignoring case.
func (r *Registry) Canonical(name string) (string, bool) {
	if _, ok := r.languages[name]; ok {
		return name, true
	}

	for registered := range r.languages {
		if strings.EqualFold(registered, name) {
			return registered, true
		}
	}

	return "", false
}

// rebuild maps each extension to the highest-priority language claiming it.
// Ties go to the lexically smaller name so the mapping never depends on map order.
func (r *Registry) rebuild() {
	r.byExt = make(map[string]string)

	for _, def := range r.languages {
		for _, ext := range def.Extensions {
			current, taken := r.byExt[ext]
			if !taken {
				r.byExt[ext] = def.Name

				continue
			}

			other := r.languages[current]
			if def.Priority > other.Priority || (def.Priority == other.Priority && def.Name < other.Name) {
				r.byExt[ext] = def.Name
			}
		}
	}
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	def, ok := r.languages[name]
	if !ok {
		return Definition{}, false
	}

	return *def, true
}

// Languages returns every definition sorted by name.
func (r *Registry) Languages() []Definition {
	defs := make([]Definition, 0, len(r.languages))
	for _, def := range r.languages {
		defs = append(defs, *def)
	}

	slices.SortFunc(defs, func(a, b Definition) int { return strings.Compare(a.Name, b.Name) })

	return defs
}

// Detect returns the enabled language for the file at relPath.
// The registered extension table wins; otherwise enry's extension table is
// consulted and its answer is accepted only when it names an enabled
// registered language.
func (r *Registry) Detect(relPath string) (Definition, bool) {
	base := path.Base(relPath)
	ext := path.Ext(base)

	if ext != "" {
		name, ok := r.byExt[ext]
		if !ok {
			name, ok = r.byExt[strings.ToLower(ext)]
		}

		if ok {
			return r.enabled(name)
		}
	}

	guess, _ := enry.GetLanguageByExtension(base)
	if guess == "" {
		return Definition{}, false
	}

	return r.enabled(guess)
}

func (r *Registry) enabled(name string) (Definition, bool) {
	def, ok := r.languages[name]
	if !ok || !def.Enabled {
		return Definition{}, false
	}

	return *def, true
}
