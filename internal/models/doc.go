// Package models defines the core domain models for tabsplit.
//
// # Models
//
//   - Bill: a receipt with items, people, fractional ownership shares and
//     the charge configuration, as persisted and served over the API
//   - Item, Person, ItemShare: the pieces of a bill
//   - BillConfig: bill-level charges and split policies
//   - User: a registered account that owns bills
//   - Group: a reusable participant list for recurring bills
//
// # Design Principles
//
//  1. **Storage shapes, not math shapes**: the totals engine has its own
//     input types; the service layer converts at the boundary so dynamic
//     client payloads are validated before entering the pure computation
//  2. **Exact money**: prices and charges are decimal.Decimal, never
//     binary floats, and survive JSON and SQLite round-trips as strings
//  3. **Avoid circular references**: relationships use ID strings instead
//     of pointers
package models
