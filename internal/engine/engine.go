// Package engine computes penny-reconciled bill totals.
//
// The entry point is ComputeTotals: given items, fractional ownership shares,
// people and the bill-level charges (tax, tip, discount, service fee), it
// returns how much each person owes, rounded to integer cents such that the
// per-person amounts sum exactly to the bill-level amounts.
//
// The computation is a pure function: no I/O, no clock, no randomness, no
// state shared across calls. Identical inputs produce identical outputs, so
// it is safe to call concurrently and to re-run on every UI edit.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitMethod selects how a bill-level charge is distributed across people.
type SplitMethod int

const (
	// SplitProportional distributes a charge in proportion to each person's
	// item subtotal.
	SplitProportional SplitMethod = iota

	// SplitEqual distributes a charge evenly across all eligible people.
	SplitEqual
)

// String returns the lowercase name of the split method.
func (m SplitMethod) String() string {
	switch m {
	case SplitProportional:
		return "proportional"
	case SplitEqual:
		return "equal"
	default:
		return fmt.Sprintf("SplitMethod(%d)", int(m))
	}
}

// Item is a single line on the receipt. Its nominal price is
// UnitPrice × Quantity.
type Item struct {
	ID        string
	Label     string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Person is a participant on the bill.
type Person struct {
	ID   string
	Name string
}

// ItemShare assigns a relative ownership weight of one item to one person.
// Weights are relative, not fractions of 1: weights 1 and 1 split an item
// 50/50, weights 2 and 1 split it 2/3 and 1/3.
type ItemShare struct {
	ItemID   string
	PersonID string
	Weight   decimal.Decimal
}

// BillConfig carries the bill-level charges and split policies.
// All charge amounts are non-negative major-unit decimals (dollars); the
// discount is given as a positive amount and applied as a reduction.
type BillConfig struct {
	Tax        decimal.Decimal
	Tip        decimal.Decimal
	Discount   decimal.Decimal
	ServiceFee decimal.Decimal

	// TaxSplitMethod governs the tax split. The discount follows the same
	// method, applied as a negative charge.
	TaxSplitMethod SplitMethod

	// TipSplitMethod governs the tip split. The service fee follows the
	// same method.
	TipSplitMethod SplitMethod

	// IncludeZeroItemPeople makes every person eligible for charge splits
	// even if no items are assigned to them. Some groups split tax and tip
	// across everyone present regardless of who ordered what.
	IncludeZeroItemPeople bool
}

// PersonTotal is one person's reconciled share of the bill, in integer cents.
// DiscountShare is negative (or zero). Total is the sum of the other five
// fields and may be negative when the discount exceeds the subtotal.
type PersonTotal struct {
	PersonID        string
	Subtotal        int64
	TaxShare        int64
	TipShare        int64
	DiscountShare   int64
	ServiceFeeShare int64
	Total           int64
}

// BillTotals is the immutable result of one computation, in integer cents.
//
// Subtotal covers every item on the bill, assigned or not; Unassigned is the
// portion of Subtotal belonging to items nobody owns. Discount is negative.
// The conservation invariants are:
//
//	sum(PersonTotals[].Subtotal) + Unassigned == Subtotal
//	sum(PersonTotals[].Total) + Unassigned == Total
type BillTotals struct {
	Subtotal   int64
	Tax        int64
	Tip        int64
	Discount   int64
	ServiceFee int64
	Total      int64
	Unassigned int64

	// PersonTotals is ordered like the people slice passed in.
	PersonTotals []PersonTotal

	// Warnings reports non-fatal degenerate conditions, such as a
	// proportional split over a zero subtotal falling back to equal.
	Warnings []string
}

// ComputeTotals turns items, ownership shares, people and bill-level charges
// into a per-person breakdown. Monetary inputs are major-unit decimals and
// are scaled to integer cents before any arithmetic; each charge is
// distributed exactly and independently penny-reconciled against its own
// rounded bill-level amount, so the grand total conserves by construction.
//
// It fails before any rounding work begins on invalid weights or charges
// (ErrValidation) and on shares referencing unknown items or people
// (ErrUnknownReference).
func ComputeTotals(items []Item, shares []ItemShare, people []Person, config BillConfig) (*BillTotals, error) {
	if err := validateInputs(items, shares, people, config); err != nil {
		return nil, err
	}

	fractions := normalizeWeights(items, shares)
	alloc := allocateItems(items, people, fractions)

	subtotals := reconcileCents(alloc.exact, alloc.assignedCents)

	eligible := eligiblePeople(alloc.exact, config.IncludeZeroItemPeople)

	var warnings []string
	distribute := func(name string, amount decimal.Decimal, method SplitMethod) []int64 {
		dist, degenerate := splitCharge(amount, method, alloc.exact, eligible, len(people))
		if degenerate {
			warnings = append(warnings, fmt.Sprintf("%s split proportionally over a zero subtotal; fell back to an equal split", name))
		}
		return dist
	}

	taxShares := distribute("tax", config.Tax, config.TaxSplitMethod)
	tipShares := distribute("tip", config.Tip, config.TipSplitMethod)
	discountShares := distribute("discount", config.Discount, config.TaxSplitMethod)
	feeShares := distribute("service fee", config.ServiceFee, config.TipSplitMethod)

	return assembleTotals(people, alloc, subtotals, taxShares, tipShares, discountShares, feeShares, config, warnings), nil
}

// assembleTotals composes the reconciled distributions into the final result.
// Pure composition; the discount flips sign here so that every person's total
// is a plain sum of its five components.
func assembleTotals(people []Person, alloc allocation, subtotals, taxShares, tipShares, discountShares, feeShares []int64, config BillConfig, warnings []string) *BillTotals {
	taxCents := toCents(config.Tax)
	tipCents := toCents(config.Tip)
	discountCents := toCents(config.Discount)
	feeCents := toCents(config.ServiceFee)

	totals := &BillTotals{
		Subtotal:     alloc.subtotalCents,
		Tax:          taxCents,
		Tip:          tipCents,
		Discount:     -discountCents,
		ServiceFee:   feeCents,
		Unassigned:   alloc.subtotalCents - alloc.assignedCents,
		PersonTotals: make([]PersonTotal, len(people)),
		Warnings:     warnings,
	}
	totals.Total = totals.Subtotal + totals.Tax + totals.Tip + totals.Discount + totals.ServiceFee

	for i, p := range people {
		pt := PersonTotal{
			PersonID:        p.ID,
			Subtotal:        subtotals[i],
			TaxShare:        taxShares[i],
			TipShare:        tipShares[i],
			DiscountShare:   -discountShares[i],
			ServiceFeeShare: feeShares[i],
		}
		pt.Total = pt.Subtotal + pt.TaxShare + pt.TipShare + pt.DiscountShare + pt.ServiceFeeShare
		totals.PersonTotals[i] = pt
	}

	return totals
}

// validateInputs checks every fatal condition up front so no partial result
// is ever produced.
func validateInputs(items []Item, shares []ItemShare, people []Person, config BillConfig) error {
	if len(people) == 0 {
		return fmt.Errorf("%w: at least one person is required", ErrValidation)
	}

	for _, it := range items {
		if it.Quantity < 1 {
			return fmt.Errorf("%w: item %q has quantity %d, must be at least 1", ErrValidation, it.ID, it.Quantity)
		}
	}

	for name, amount := range map[string]decimal.Decimal{
		"tax":         config.Tax,
		"tip":         config.Tip,
		"discount":    config.Discount,
		"service fee": config.ServiceFee,
	} {
		if amount.Sign() < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %s", ErrValidation, name, amount)
		}
	}

	itemIDs := make(map[string]bool, len(items))
	for _, it := range items {
		itemIDs[it.ID] = true
	}
	personIDs := make(map[string]bool, len(people))
	for _, p := range people {
		personIDs[p.ID] = true
	}

	for _, share := range shares {
		if share.Weight.Sign() <= 0 {
			return fmt.Errorf("%w: share of item %q for person %q has weight %s, must be positive",
				ErrValidation, share.ItemID, share.PersonID, share.Weight)
		}
		if !itemIDs[share.ItemID] {
			return fmt.Errorf("%w: share references unknown item %q", ErrUnknownReference, share.ItemID)
		}
		if !personIDs[share.PersonID] {
			return fmt.Errorf("%w: share references unknown person %q", ErrUnknownReference, share.PersonID)
		}
	}

	return nil
}

// toCents scales a major-unit decimal amount to integer cents, rounding half
// away from zero.
func toCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
