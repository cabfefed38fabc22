package engine

import "github.com/shopspring/decimal"

// allocation holds each person's exact (unrounded) subtotal plus the cent
// targets the reconciler needs. exact is indexed like the people slice.
type allocation struct {
	exact         []decimal.Decimal
	subtotalCents int64
	assignedCents int64
}

// allocateItems computes every person's exact subtotal contribution:
//
//	personSubtotal = Σ over items ( fraction(item, person) × price(item) )
//
// where price is the item's unit price in cents times its quantity. The sums
// stay in decimal until reconciliation, so no binary floating-point drift can
// leak a cent.
func allocateItems(items []Item, people []Person, fractions map[string][]shareFraction) allocation {
	personIndex := make(map[string]int, len(people))
	for i, p := range people {
		personIndex[p.ID] = i
	}

	alloc := allocation{exact: make([]decimal.Decimal, len(people))}
	for _, it := range items {
		priceCents := toCents(it.UnitPrice) * int64(it.Quantity)
		alloc.subtotalCents += priceCents

		owners := fractions[it.ID]
		if len(owners) == 0 {
			// Unassigned: counts toward the bill subtotal, allocates to nobody.
			continue
		}
		alloc.assignedCents += priceCents

		price := decimal.NewFromInt(priceCents)
		for _, owner := range owners {
			i := personIndex[owner.personID]
			alloc.exact[i] = alloc.exact[i].Add(price.Mul(owner.fraction))
		}
	}

	return alloc
}

// eligiblePeople returns the indices of people counted in charge splits: those
// with a positive subtotal, or everyone when the zero-item inclusion flag is
// set. When nobody qualifies the split falls back to all people, so a bill
// with charges but no assigned items still divides evenly instead of blowing
// up mid-edit.
func eligiblePeople(exact []decimal.Decimal, includeZeroItemPeople bool) []int {
	eligible := make([]int, 0, len(exact))
	for i, sub := range exact {
		if includeZeroItemPeople || sub.Sign() > 0 {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		for i := range exact {
			eligible = append(eligible, i)
		}
	}
	return eligible
}
