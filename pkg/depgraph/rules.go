package depgraph

import (
	"github.com/Sumatoshi-tech/depmap/pkg/classify"
	"github.com/Sumatoshi-tech/depmap/pkg/lang"
	"github.com/Sumatoshi-tech/depmap/pkg/refextract"
	"github.com/Sumatoshi-tech/depmap/pkg/resolve"
)

// Rule is the per-language pipeline: extract, try to resolve, classify the rest.
// Resolve is nil for languages whose references never name files.
type Rule struct {
	Family   lang.Family
	Extract  refextract.Func
	Resolve  resolve.Func
	Classify classify.Func
}

// Rules maps a language tag to its rule.
type Rules map[string]Rule

// RuleFor returns the rule of a dependency family.
func RuleFor(family lang.Family) Rule {
	return Rule{
		Family:   family,
		Extract:  refextract.For(family),
		Resolve:  resolve.For(family),
		Classify: classify.For(family),
	}
}

// DefaultRules builds a rule for every registered language that carries references.
func DefaultRules(reg *lang.Registry) Rules {
	rules := make(Rules)

	for _, def := range reg.Languages() {
		if !def.HasDependencies() {
			continue
		}

		rules[def.Name] = RuleFor(def.Family)
	}

	return rules
}

func (r Rule) packageName(ref refextract.Reference) string {
	return classify.Package(r.Family, ref)
}
