// Package sampling draws references under uniqueness constraints: rows drawn
// without replacement from a pool, and distinct (left, right) pairs for bridge
// tables.
//
// Sampling never fails on a shortfall. Callers read Result.Produced as the
// authoritative row count and report the gap as a warning.
package sampling

// DefaultBudgetFactor multiplies the target to give the rejection-sampling attempt budget
const DefaultBudgetFactor = 5

// Source is the randomness sampling draws from
type Source interface {
	IntRange(min, max int) int
}

// Result reports how a sampling call went
type Result struct {
	Requested int
	Produced  int
	Attempts  int
}

// Degraded reports whether fewer rows were produced than requested
func (r Result) Degraded() bool {
	return r.Produced < r.Requested
}

// Shuffle permutes items in place (Fisher-Yates)
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.IntRange(0, i)
		items[i], items[j] = items[j], items[i]
	}
}

// WithoutReplacement returns up to n distinct elements of pool in random order.
// The pool itself is left untouched.
func WithoutReplacement[T any](src Source, pool []T, n int) ([]T, Result) {
	res := Result{Requested: n}
	if n <= 0 || len(pool) == 0 {
		return nil, res
	}

	k := n
	if k > len(pool) {
		k = len(pool)
	}

	work := make([]T, len(pool))
	copy(work, pool)

	// Partial Fisher-Yates: only the first k slots are settled
	for i := 0; i < k; i++ {
		j := src.IntRange(i, len(work)-1)
		work[i], work[j] = work[j], work[i]
	}

	res.Produced = k
	res.Attempts = k
	return work[:k], res
}
