package engine

import "github.com/shopspring/decimal"

// shareFraction is one person's normalized slice of one item.
type shareFraction struct {
	personID string
	fraction decimal.Decimal
}

// normalizeWeights divides each item's share weights by their sum so the
// fractions for that item add up to 1. Weights express relative ownership, so
// weights 3 and 1 normalize to 0.75 and 0.25. Items with no shares at all are
// simply absent from the result; their price still counts toward the bill
// subtotal but allocates to nobody.
//
// Weights were validated positive before this runs, so every per-item sum is
// positive and the divisions are safe.
func normalizeWeights(items []Item, shares []ItemShare) map[string][]shareFraction {
	weightSums := make(map[string]decimal.Decimal, len(items))
	for _, share := range shares {
		weightSums[share.ItemID] = weightSums[share.ItemID].Add(share.Weight)
	}

	fractions := make(map[string][]shareFraction, len(weightSums))
	for _, share := range shares {
		fractions[share.ItemID] = append(fractions[share.ItemID], shareFraction{
			personID: share.PersonID,
			fraction: share.Weight.Div(weightSums[share.ItemID]),
		})
	}

	return fractions
}
