// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"tabsplit/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for bill storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateBill persists a new bill. The bill.ID field will be populated
	// by the store if empty.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID, with items, people and shares in
	// the order they were supplied. Returns ErrNotFound if absent.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// UpdateBill replaces an existing bill's contents.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes a bill and its items, people and shares.
	DeleteBill(ctx context.Context, billID string) error

	// ListBillsByUser returns the bills created by a user, newest first.
	ListBillsByUser(ctx context.Context, userID string) ([]*models.Bill, error)

	// ListBillsByGroup returns the bills linked to a group, newest first.
	ListBillsByGroup(ctx context.Context, groupID string) ([]*models.Bill, error)

	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns nil, nil when no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns nil, nil when no such
	// user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a new participant group.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID. Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// AddGroupMembers adds names to a group, ignoring duplicates.
	AddGroupMembers(ctx context.Context, groupID string, names []string) error

	// Close releases any resources held by the store.
	Close() error
}
