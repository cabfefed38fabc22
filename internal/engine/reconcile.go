package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// reconcileCents rounds a list of exact cent amounts, known to sum to the
// integer target, into integers that sum to exactly the target. It is the
// largest-remainder (Hamilton) method:
//
//  1. floor every amount and keep its fractional remainder
//  2. the floors undershoot the target by a small deficit of whole cents
//  3. hand one extra cent each to the largest remainders, ties broken by
//     input order so the result is deterministic
//
// The input order is the order the caller supplied people in, never a sort by
// name or id, so re-running the computation always lands the odd cent on the
// same person.
func reconcileCents(exact []decimal.Decimal, target int64) []int64 {
	n := len(exact)
	if n == 0 {
		return nil
	}

	rounded := make([]int64, n)
	remainders := make([]decimal.Decimal, n)
	var floorSum int64
	for i, amount := range exact {
		floor := amount.Floor()
		rounded[i] = floor.IntPart()
		remainders[i] = amount.Sub(floor)
		floorSum += rounded[i]
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})

	deficit := target - floorSum
	for k := int64(0); k < deficit; k++ {
		rounded[order[k%int64(n)]]++
	}
	// Exact inputs can carry a hair of excess from fixed-precision division;
	// in that case the floors can overshoot and cents come back off the
	// smallest remainders instead.
	for k := int64(0); k < -deficit; k++ {
		rounded[order[n-1-int(k%int64(n))]]--
	}

	return rounded
}
