package stdlib

import "github.com/luasand/luasand/object"

// All builds the fixed set of host libraries the evaluator binds into
// every fresh environment (they are not looked up by `require`): string,
// table, math, os, io, coroutine, package. Grounded on
// spec.md §4.4's library table.
func All() map[string]*object.Library {
	return map[string]*object.Library{
		"string":    StringLibrary(),
		"table":     TableLibrary(),
		"math":      MathLibrary(),
		"os":        OSLibrary(),
		"io":        IOLibrary(),
		"coroutine": CoroutineLibrary(),
		"package":   PackageLibrary(),
	}
}
