package lang

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// programs caches compiled expressions keyed by the xxh3 hash of their source.
var programs sync.Map

// entry tracks a single compilation so that concurrent callers compiling the
// same source share one result.
type entry struct {
	once   sync.Once
	source string
	prog   *Program
	err    error
}

// Compile parses and validates an expression. The source may include the
// "?[" and "]" delimiters. Results, including failures, are cached by source
// text, so repeated expressions are parsed once.
func Compile(source string) (*Program, error) {
	prog, _, err := compileCached(source)

	return prog, err
}

// compileCached is [Compile] that also reports whether the result came from
// the cache.
func compileCached(source string) (prog *Program, hit bool, err error) {
	key := xxh3.HashString(source)

	value, loaded := programs.LoadOrStore(key, &entry{source: source})

	e, _ := value.(*entry)
	if e.source != source {
		// Hash collision: compile without caching.
		prog, err = compile(source)

		return prog, false, err
	}

	e.once.Do(func() { e.prog, e.err = compile(source) })

	return e.prog, loaded, e.err
}

// ClearCache discards all cached programs.
func ClearCache() {
	programs.Clear()
}
