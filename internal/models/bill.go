package models

import "github.com/shopspring/decimal"

// Split method names as stored and served. The engine has its own enum; the
// service layer translates.
const (
	SplitMethodProportional = "proportional"
	SplitMethodEqual        = "equal"
)

// Bill is a receipt being split: its line items, the people at the table,
// who owns what fraction of which item, and the bill-level charges.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id"`

	// Title is the human-readable name for the bill. Auto-generated from
	// the people on it when the client leaves it empty.
	Title string `json:"title"`

	// CreatedBy is the ID of the user who created the bill.
	CreatedBy string `json:"created_by,omitempty"`

	// GroupID optionally links the bill to a participant group.
	GroupID string `json:"group_id,omitempty"`

	Items  []Item      `json:"items"`
	People []Person    `json:"people"`
	Shares []ItemShare `json:"shares"`
	Config BillConfig  `json:"config"`

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64 `json:"created_at"`
}

// Item is a single line on the receipt. Its nominal price is
// UnitPrice × Quantity.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Label is the receipt text for the item (e.g., "Pad Thai").
	Label string `json:"label"`

	// UnitPrice is the major-unit price of one unit (e.g., dollars).
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Quantity is how many units the line covers, at least 1.
	Quantity int `json:"quantity"`
}

// Person is a participant on a bill. People are per-bill entities; they do
// not need user accounts.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string `json:"id"`

	// Name is the display name shown on the breakdown.
	Name string `json:"name"`
}

// ItemShare assigns a relative ownership weight of one item to one person.
// Weights are normalized per item, so weights 1 and 1 split an item 50/50
// and weights 2 and 1 split it 2/3 and 1/3.
type ItemShare struct {
	ItemID   string          `json:"item_id"`
	PersonID string          `json:"person_id"`
	Weight   decimal.Decimal `json:"weight"`
}

// BillConfig carries the bill-level charges and split policies. Amounts are
// non-negative major-unit decimals; the discount is recorded positive and
// applied as a reduction.
type BillConfig struct {
	Tax        decimal.Decimal `json:"tax"`
	Tip        decimal.Decimal `json:"tip"`
	Discount   decimal.Decimal `json:"discount"`
	ServiceFee decimal.Decimal `json:"service_fee"`

	// TaxSplitMethod and TipSplitMethod are "proportional" or "equal".
	// The discount follows the tax method, the service fee the tip method.
	TaxSplitMethod string `json:"tax_split_method"`
	TipSplitMethod string `json:"tip_split_method"`

	// IncludeZeroItemPeople makes people with no assigned items eligible
	// for equal and degenerate splits.
	IncludeZeroItemPeople bool `json:"include_zero_item_people"`
}
