package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"tabsplit/internal/models"
	"tabsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tabsplit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testBill() *models.Bill {
	return &models.Bill{
		People: []models.Person{
			{ID: "p-alice", Name: "Alice"},
			{ID: "p-bob", Name: "Bob"},
		},
		Items: []models.Item{
			{ID: "i-pizza", Label: "Pizza", UnitPrice: dec("18.50"), Quantity: 1},
			{ID: "i-beer", Label: "Beer", UnitPrice: dec("5.25"), Quantity: 2},
		},
		Shares: []models.ItemShare{
			{ItemID: "i-pizza", PersonID: "p-alice", Weight: dec("1")},
			{ItemID: "i-pizza", PersonID: "p-bob", Weight: dec("1")},
			{ItemID: "i-beer", PersonID: "p-bob", Weight: dec("1")},
		},
		Config: models.BillConfig{
			Tax:            dec("2.41"),
			Tip:            dec("5.00"),
			Discount:       dec("0"),
			ServiceFee:     dec("0"),
			TaxSplitMethod: models.SplitMethodProportional,
			TipSplitMethod: models.SplitMethodEqual,
		},
	}
}

func TestSQLiteStoreBills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateBill generates ID and title", func(t *testing.T) {
		bill := testBill()
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if bill.ID == "" {
			t.Error("Expected bill ID to be generated")
		}
		if bill.Title == "" {
			t.Error("Expected bill title to be generated")
		}
		if bill.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetBill round-trips contents and order", func(t *testing.T) {
		original := testBill()
		original.Title = "Friday Dinner"
		if err := store.CreateBill(ctx, original); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		retrieved, err := store.GetBill(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}

		if retrieved.Title != "Friday Dinner" {
			t.Errorf("Title = %s, want Friday Dinner", retrieved.Title)
		}
		if len(retrieved.People) != 2 || retrieved.People[0].Name != "Alice" || retrieved.People[1].Name != "Bob" {
			t.Errorf("People order not preserved: %+v", retrieved.People)
		}
		if len(retrieved.Items) != 2 || retrieved.Items[0].ID != "i-pizza" {
			t.Errorf("Items order not preserved: %+v", retrieved.Items)
		}
		if !retrieved.Items[0].UnitPrice.Equal(dec("18.50")) {
			t.Errorf("UnitPrice = %s, want 18.50", retrieved.Items[0].UnitPrice)
		}
		if retrieved.Items[1].Quantity != 2 {
			t.Errorf("Quantity = %d, want 2", retrieved.Items[1].Quantity)
		}
		if len(retrieved.Shares) != 3 || !retrieved.Shares[0].Weight.Equal(dec("1")) {
			t.Errorf("Shares not preserved: %+v", retrieved.Shares)
		}
		if !retrieved.Config.Tax.Equal(dec("2.41")) {
			t.Errorf("Config.Tax = %s, want 2.41", retrieved.Config.Tax)
		}
		if retrieved.Config.TipSplitMethod != models.SplitMethodEqual {
			t.Errorf("TipSplitMethod = %s, want equal", retrieved.Config.TipSplitMethod)
		}
	})

	t.Run("GetBill unknown id returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetBill(ctx, "no-such-bill")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetBill error = %v, want ErrNotFound", err)
		}
	})

	t.Run("UpdateBill replaces contents", func(t *testing.T) {
		bill := testBill()
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		bill.Items = bill.Items[:1]
		bill.Shares = bill.Shares[:2]
		bill.Config.Tip = dec("7.50")
		if err := store.UpdateBill(ctx, bill); err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}

		retrieved, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if len(retrieved.Items) != 1 {
			t.Errorf("Items count = %d, want 1", len(retrieved.Items))
		}
		if !retrieved.Config.Tip.Equal(dec("7.50")) {
			t.Errorf("Tip = %s, want 7.50", retrieved.Config.Tip)
		}
	})

	t.Run("DeleteBill removes bill and children", func(t *testing.T) {
		bill := testBill()
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if err := store.DeleteBill(ctx, bill.ID); err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		if _, err := store.GetBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetBill after delete = %v, want ErrNotFound", err)
		}
		if err := store.DeleteBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteBill = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListBillsByUser filters by creator", func(t *testing.T) {
		mine := testBill()
		mine.CreatedBy = "user-1"
		theirs := testBill()
		theirs.CreatedBy = "user-2"
		for _, b := range []*models.Bill{mine, theirs} {
			if err := store.CreateBill(ctx, b); err != nil {
				t.Fatalf("CreateBill failed: %v", err)
			}
		}

		bills, err := store.ListBillsByUser(ctx, "user-1")
		if err != nil {
			t.Fatalf("ListBillsByUser failed: %v", err)
		}
		if len(bills) != 1 || bills[0].ID != mine.ID {
			t.Errorf("ListBillsByUser = %d bills, want just %s", len(bills), mine.ID)
		}
	})
}

func TestSQLiteStoreGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Roommates", Members: []string{"Alice", "Bob"}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == "" {
		t.Fatal("Expected group ID to be generated")
	}

	if err := store.AddGroupMembers(ctx, group.ID, []string{"Bob", "Carol"}); err != nil {
		t.Fatalf("AddGroupMembers failed: %v", err)
	}

	retrieved, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(retrieved.Members) != 3 {
		t.Errorf("Members = %v, want 3 distinct names", retrieved.Members)
	}

	bill := testBill()
	bill.GroupID = group.ID
	if err := store.CreateBill(ctx, bill); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	bills, err := store.ListBillsByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListBillsByGroup failed: %v", err)
	}
	if len(bills) != 1 || bills[0].ID != bill.ID {
		t.Errorf("ListBillsByGroup returned %d bills, want 1", len(bills))
	}
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("GetUserByEmail = %+v, want user %s", byEmail, user.ID)
	}

	byID, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID == nil || byID.Email != "alice@example.com" {
		t.Errorf("GetUserByID = %+v", byID)
	}

	missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown email, got %+v", missing)
	}

	if err := store.CreateUser(ctx, models.NewUser("alice@example.com", "Alice Again", "hash2")); err == nil {
		t.Error("expected duplicate email insert to fail")
	}
}
