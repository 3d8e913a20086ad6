package engine

import (
	"math/rand"
	"slices"
)

// DistinctOptions returns count unique values containing correct, drawn from
// pool and shuffled. Values from pool equal to correct or repeated are
// skipped. Fewer than count values come back when the pool runs dry.
func DistinctOptions(correct int, pool []int, count int, r *rand.Rand) []int {
	if count <= 0 {
		return nil
	}
	candidates := make([]int, 0, len(pool))
	seen := map[int]struct{}{correct: {}}
	for _, v := range pool {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		candidates = append(candidates, v)
	}
	r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	out := []int{correct}
	for _, v := range candidates {
		if len(out) == count {
			break
		}
		out = append(out, v)
	}
	Shuffle(out, r)
	return out
}

// NearbyOptions returns count unique positive values around correct. Each
// distractor is correct plus an offset in [lo, hi]; offsets that would give
// zero, a negative number or the correct value itself are never used.
func NearbyOptions(correct, lo, hi, count int, r *rand.Rand) []int {
	var pool []int
	for off := lo; off <= hi; off++ {
		if v := correct + off; off != 0 && v > 0 {
			pool = append(pool, v)
		}
	}
	return DistinctOptions(correct, pool, count, r)
}

// Shuffle permutes vals in place.
func Shuffle[T any](vals []T, r *rand.Rand) {
	r.Shuffle(len(vals), func(i, j int) {
		vals[i], vals[j] = vals[j], vals[i]
	})
}

// Pick returns a random element of vals. vals must not be empty.
func Pick[T any](vals []T, r *rand.Rand) T {
	return vals[r.Intn(len(vals))]
}

// IntBetween returns a uniform integer in [lo, hi].
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// IndexOf returns the position of v in vals, or -1.
func IndexOf(vals []int, v int) int {
	return slices.Index(vals, v)
}
