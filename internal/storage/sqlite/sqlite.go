// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"tabsplit/internal/models"
	"tabsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateBill persists a new bill with its items, people and shares.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	if bill.Title == "" {
		bill.Title = generateTitle(bill.People)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertBill(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateBill replaces an existing bill's contents while keeping its identity.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	existing, err := s.GetBill(ctx, bill.ID)
	if err != nil {
		return err
	}
	bill.CreatedAt = existing.CreatedAt
	if bill.CreatedBy == "" {
		bill.CreatedBy = existing.CreatedBy
	}
	if bill.Title == "" {
		bill.Title = generateTitle(bill.People)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", bill.ID); err != nil {
		return fmt.Errorf("failed to clear bill: %w", err)
	}
	if err := insertBill(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertBill writes a bill and its children inside an open transaction.
func insertBill(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO bills (id, title, created_by, group_id, tax, tip, discount, service_fee,
			tax_split_method, tip_split_method, include_zero_item_people, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.Title, nullable(bill.CreatedBy), nullable(bill.GroupID),
		bill.Config.Tax.String(), bill.Config.Tip.String(),
		bill.Config.Discount.String(), bill.Config.ServiceFee.String(),
		bill.Config.TaxSplitMethod, bill.Config.TipSplitMethod,
		boolToInt(bill.Config.IncludeZeroItemPeople), bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for i := range bill.People {
		p := &bill.People[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO people (id, bill_id, name, position) VALUES (?, ?, ?, ?)",
			p.ID, bill.ID, p.Name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO items (id, bill_id, label, unit_price, quantity, position) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, bill.ID, item.Label, item.UnitPrice.String(), item.Quantity, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}

	for i, share := range bill.Shares {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO item_shares (bill_id, item_id, person_id, weight, position) VALUES (?, ?, ?, ?, ?)",
			bill.ID, share.ItemID, share.PersonID, share.Weight.String(), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item share: %w", err)
		}
	}

	return nil
}

// GetBill retrieves a bill by ID, including items, people and shares in
// their original supplied order.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	var createdBy, groupID sql.NullString
	var tax, tip, discount, serviceFee string
	var includeZero int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, created_by, group_id, tax, tip, discount, service_fee,
			tax_split_method, tip_split_method, include_zero_item_people, created_at
		FROM bills WHERE id = ?`, billID,
	).Scan(&bill.ID, &bill.Title, &createdBy, &groupID, &tax, &tip, &discount, &serviceFee,
		&bill.Config.TaxSplitMethod, &bill.Config.TipSplitMethod, &includeZero, &bill.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	bill.CreatedBy = createdBy.String
	bill.GroupID = groupID.String
	bill.Config.IncludeZeroItemPeople = includeZero != 0

	if bill.Config.Tax, err = parseAmount("tax", tax); err != nil {
		return nil, err
	}
	if bill.Config.Tip, err = parseAmount("tip", tip); err != nil {
		return nil, err
	}
	if bill.Config.Discount, err = parseAmount("discount", discount); err != nil {
		return nil, err
	}
	if bill.Config.ServiceFee, err = parseAmount("service_fee", serviceFee); err != nil {
		return nil, err
	}

	if err := s.loadBillChildren(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// loadBillChildren fills People, Items and Shares, ordered by position.
func (s *SQLiteStore) loadBillChildren(ctx context.Context, bill *models.Bill) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM people WHERE bill_id = ? ORDER BY position", bill.ID)
	if err != nil {
		return fmt.Errorf("failed to get people: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return fmt.Errorf("failed to scan person: %w", err)
		}
		bill.People = append(bill.People, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate people: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, label, unit_price, quantity FROM items WHERE bill_id = ? ORDER BY position", bill.ID)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item models.Item
		var price string
		if err := itemRows.Scan(&item.ID, &item.Label, &price, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		if item.UnitPrice, err = parseAmount("unit_price", price); err != nil {
			return err
		}
		bill.Items = append(bill.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}

	shareRows, err := s.db.QueryContext(ctx,
		"SELECT item_id, person_id, weight FROM item_shares WHERE bill_id = ? ORDER BY position", bill.ID)
	if err != nil {
		return fmt.Errorf("failed to get item shares: %w", err)
	}
	defer shareRows.Close()
	for shareRows.Next() {
		var share models.ItemShare
		var weight string
		if err := shareRows.Scan(&share.ItemID, &share.PersonID, &weight); err != nil {
			return fmt.Errorf("failed to scan item share: %w", err)
		}
		if share.Weight, err = parseAmount("weight", weight); err != nil {
			return err
		}
		bill.Shares = append(bill.Shares, share)
	}
	if err := shareRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate item shares: %w", err)
	}

	return nil
}

// DeleteBill removes a bill; children cascade.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return nil
}

// ListBillsByUser returns the bills created by a user, newest first.
func (s *SQLiteStore) ListBillsByUser(ctx context.Context, userID string) ([]*models.Bill, error) {
	return s.listBills(ctx, "SELECT id FROM bills WHERE created_by = ? ORDER BY created_at DESC", userID)
}

// ListBillsByGroup returns the bills linked to a group, newest first.
func (s *SQLiteStore) ListBillsByGroup(ctx context.Context, groupID string) ([]*models.Bill, error) {
	return s.listBills(ctx, "SELECT id FROM bills WHERE group_id = ? ORDER BY created_at DESC", groupID)
}

func (s *SQLiteStore) listBills(ctx context.Context, query string, arg any) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bill id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	bills := make([]*models.Bill, 0, len(ids))
	for _, id := range ids {
		bill, err := s.GetBill(ctx, id)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

// parseAmount converts a stored decimal string back to a decimal.
func parseAmount(column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse %s %q: %w", column, value, err)
	}
	return d, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// generateTitle creates an auto-generated title from the people on the bill.
func generateTitle(people []models.Person) string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		return fmt.Sprintf("Bill - %s", time.Now().Format("Jan 2, 2006"))
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
