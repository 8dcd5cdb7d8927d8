package sampling

// Pair is one (left, right) association of a bridge table
type Pair struct {
	Left  int64
	Right int64
}

// UniquePairs emits up to target distinct pairs drawn from left × right.
//
// When target covers the whole pair space every pair is enumerated and shuffled,
// so the result is exact. Otherwise pairs are drawn by rejection sampling with a
// budget of budgetFactor × target attempts; duplicates consume budget. An error
// from emit stops sampling and is returned as is.
func UniquePairs(src Source, left, right []int64, target, budgetFactor int, emit func(Pair) error) (Result, error) {
	res := Result{Requested: target}
	if target <= 0 || len(left) == 0 || len(right) == 0 {
		return res, nil
	}
	if budgetFactor <= 0 {
		budgetFactor = DefaultBudgetFactor
	}

	space := len(left) * len(right)
	if target >= space {
		return enumeratePairs(src, left, right, res, emit)
	}

	seen := make(map[Pair]struct{}, target)
	budget := budgetFactor * target
	for res.Attempts < budget && res.Produced < target {
		res.Attempts++
		p := Pair{
			Left:  left[src.IntRange(0, len(left)-1)],
			Right: right[src.IntRange(0, len(right)-1)],
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if err := emit(p); err != nil {
			return res, err
		}
		res.Produced++
	}
	return res, nil
}

func enumeratePairs(src Source, left, right []int64, res Result, emit func(Pair) error) (Result, error) {
	all := make([]Pair, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			all = append(all, Pair{Left: l, Right: r})
		}
	}
	Shuffle(src, all)

	for _, p := range all {
		res.Attempts++
		if err := emit(p); err != nil {
			return res, err
		}
		res.Produced++
	}
	return res, nil
}
