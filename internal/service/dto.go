package service

import (
	"fmt"

	"tabsplit/internal/engine"
	"tabsplit/internal/models"
)

// BillRequest is the payload for creating or updating a bill, and for the
// stateless compute endpoint. Shapes from the scanning and manual-entry UIs
// are validated here, at the boundary, before anything reaches the engine.
type BillRequest struct {
	Title   string             `json:"title"`
	GroupID string             `json:"group_id,omitempty"`
	Items   []models.Item      `json:"items"`
	People  []models.Person    `json:"people"`
	Shares  []models.ItemShare `json:"shares"`
	Config  models.BillConfig  `json:"config"`
}

// PersonTotalResponse is one person's reconciled share, in integer cents.
type PersonTotalResponse struct {
	PersonID        string `json:"person_id"`
	Name            string `json:"name"`
	Subtotal        int64  `json:"subtotal"`
	TaxShare        int64  `json:"tax_share"`
	TipShare        int64  `json:"tip_share"`
	DiscountShare   int64  `json:"discount_share"`
	ServiceFeeShare int64  `json:"service_fee_share"`
	Total           int64  `json:"total"`
}

// TotalsResponse is the bill-level breakdown, in integer cents. Discount
// amounts are negative.
type TotalsResponse struct {
	Subtotal     int64                 `json:"subtotal"`
	Tax          int64                 `json:"tax"`
	Tip          int64                 `json:"tip"`
	Discount     int64                 `json:"discount"`
	ServiceFee   int64                 `json:"service_fee"`
	Total        int64                 `json:"total"`
	Unassigned   int64                 `json:"unassigned"`
	PersonTotals []PersonTotalResponse `json:"person_totals"`
	Warnings     []string              `json:"warnings,omitempty"`
}

// BillResponse is a stored bill plus its freshly computed totals.
type BillResponse struct {
	Bill   *models.Bill    `json:"bill"`
	Totals *TotalsResponse `json:"totals"`
}

// BillSummary is the list view of a bill.
type BillSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	GroupID     string `json:"group_id,omitempty"`
	PeopleCount int    `json:"people_count"`
	Total       int64  `json:"total"`
	CreatedAt   int64  `json:"created_at"`
}

// parseSplitMethod translates the stored method name to the engine's enum.
// An empty string defaults to proportional, matching the app's default UI
// state.
func parseSplitMethod(name string) (engine.SplitMethod, error) {
	switch name {
	case models.SplitMethodProportional, "":
		return engine.SplitProportional, nil
	case models.SplitMethodEqual:
		return engine.SplitEqual, nil
	default:
		return 0, fmt.Errorf("%w: unknown split method %q", engine.ErrValidation, name)
	}
}

// toEngineInputs converts boundary models into the engine's input types.
func toEngineInputs(items []models.Item, shares []models.ItemShare, people []models.Person, config models.BillConfig) ([]engine.Item, []engine.ItemShare, []engine.Person, engine.BillConfig, error) {
	taxMethod, err := parseSplitMethod(config.TaxSplitMethod)
	if err != nil {
		return nil, nil, nil, engine.BillConfig{}, err
	}
	tipMethod, err := parseSplitMethod(config.TipSplitMethod)
	if err != nil {
		return nil, nil, nil, engine.BillConfig{}, err
	}

	engineItems := make([]engine.Item, len(items))
	for i, item := range items {
		engineItems[i] = engine.Item{
			ID:        item.ID,
			Label:     item.Label,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}
	engineShares := make([]engine.ItemShare, len(shares))
	for i, share := range shares {
		engineShares[i] = engine.ItemShare{
			ItemID:   share.ItemID,
			PersonID: share.PersonID,
			Weight:   share.Weight,
		}
	}
	enginePeople := make([]engine.Person, len(people))
	for i, person := range people {
		enginePeople[i] = engine.Person{ID: person.ID, Name: person.Name}
	}

	engineConfig := engine.BillConfig{
		Tax:                   config.Tax,
		Tip:                   config.Tip,
		Discount:              config.Discount,
		ServiceFee:            config.ServiceFee,
		TaxSplitMethod:        taxMethod,
		TipSplitMethod:        tipMethod,
		IncludeZeroItemPeople: config.IncludeZeroItemPeople,
	}
	return engineItems, engineShares, enginePeople, engineConfig, nil
}

// toTotalsResponse flattens engine output into the API shape, joining person
// names back in.
func toTotalsResponse(totals *engine.BillTotals, people []models.Person) *TotalsResponse {
	resp := &TotalsResponse{
		Subtotal:     totals.Subtotal,
		Tax:          totals.Tax,
		Tip:          totals.Tip,
		Discount:     totals.Discount,
		ServiceFee:   totals.ServiceFee,
		Total:        totals.Total,
		Unassigned:   totals.Unassigned,
		Warnings:     totals.Warnings,
		PersonTotals: make([]PersonTotalResponse, len(totals.PersonTotals)),
	}
	for i, pt := range totals.PersonTotals {
		resp.PersonTotals[i] = PersonTotalResponse{
			PersonID:        pt.PersonID,
			Name:            people[i].Name,
			Subtotal:        pt.Subtotal,
			TaxShare:        pt.TaxShare,
			TipShare:        pt.TipShare,
			DiscountShare:   pt.DiscountShare,
			ServiceFeeShare: pt.ServiceFeeShare,
			Total:           pt.Total,
		}
	}
	return resp
}
