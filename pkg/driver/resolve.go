package driver

import (
	"math"

	"github.com/xyce-xdm/xdm-core/pkg/expr"
	"github.com/xyce-xdm/xdm-core/pkg/utils"
)

// ResolveParams evaluates every .PARAM assignment in raw (in file order,
// since later params may reference only-just-defined ones and some
// dialects allow forward references across lines) against ev's symbol
// table, re-evaluating the whole set on every pass until the set of
// still-NaN names stops changing (spec §8 scenario 4's "iterate until the
// NaN set stabilizes"). It returns the names that remained NaN after
// stabilization.
func ResolveParams(ev *expr.Evaluator, raw *utils.OrderedMap[string, string]) []string {
	prevNaN := map[string]bool{}

	for {
		curNaN := map[string]bool{}
		for _, name := range raw.Keys() {
			exprText, _ := raw.Get(name)
			v := ev.EvalText(exprText)
			ev.Symbols.Variables[name] = v
			if math.IsNaN(v) {
				curNaN[name] = true
			}
		}
		if sameSet(prevNaN, curNaN) {
			return sortedKeys(curNaN)
		}
		prevNaN = curNaN
	}
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// Simple insertion sort: the list is small (unresolved params only) and
	// this avoids pulling in "sort" for a handful of strings.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
