package engine

import "github.com/shopspring/decimal"

// splitCharge distributes one bill-level charge across people and returns the
// reconciled per-person cents, indexed like the people slice. People outside
// the eligible set always receive zero.
//
// Proportional shares are charge × personSubtotal / assignedSubtotal, computed
// in decimal. When the eligible people's subtotals sum to zero a proportional
// split has no base to work from, so it degenerates to an equal split; the
// second return value reports that fallback.
func splitCharge(amount decimal.Decimal, method SplitMethod, exact []decimal.Decimal, eligible []int, numPeople int) ([]int64, bool) {
	amountCents := toCents(amount)
	if amountCents == 0 {
		return make([]int64, numPeople), false
	}

	degenerate := false
	if method == SplitProportional {
		base := decimal.Zero
		for _, i := range eligible {
			base = base.Add(exact[i])
		}
		if base.Sign() == 0 {
			method = SplitEqual
			degenerate = true
		} else {
			return reconcileSubset(proportionalShares(amountCents, exact, eligible, base), eligible, amountCents, numPeople), degenerate
		}
	}

	return reconcileSubset(equalShares(amountCents, len(eligible)), eligible, amountCents, numPeople), degenerate
}

// proportionalShares returns each eligible person's exact slice of the charge,
// ordered like the eligible index list.
func proportionalShares(amountCents int64, exact []decimal.Decimal, eligible []int, base decimal.Decimal) []decimal.Decimal {
	amount := decimal.NewFromInt(amountCents)
	shares := make([]decimal.Decimal, len(eligible))
	for k, i := range eligible {
		shares[k] = amount.Mul(exact[i]).Div(base)
	}
	return shares
}

// equalShares returns n identical exact slices of the charge.
func equalShares(amountCents int64, n int) []decimal.Decimal {
	per := decimal.NewFromInt(amountCents).Div(decimal.NewFromInt(int64(n)))
	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = per
	}
	return shares
}

// reconcileSubset pennies-out the exact shares of the eligible people against
// the charge total and scatters the results back to full people indexing.
func reconcileSubset(shares []decimal.Decimal, eligible []int, amountCents int64, numPeople int) []int64 {
	rounded := reconcileCents(shares, amountCents)
	out := make([]int64, numPeople)
	for k, i := range eligible {
		out[i] = rounded[k]
	}
	return out
}
