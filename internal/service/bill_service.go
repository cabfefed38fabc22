// Package service exposes the HTTP API: stateless totals computation,
// bill CRUD, participant groups and authentication.
package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tabsplit/internal/engine"
	"tabsplit/internal/middleware"
	"tabsplit/internal/models"
	"tabsplit/internal/storage"
)

// BillService handles bill computation and persistence endpoints.
type BillService struct {
	store storage.Store
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store) *BillService {
	return &BillService{store: store}
}

// computeForBill runs the engine over request-shaped bill contents.
func computeForBill(items []models.Item, shares []models.ItemShare, people []models.Person, config models.BillConfig) (*TotalsResponse, error) {
	engineItems, engineShares, enginePeople, engineConfig, err := toEngineInputs(items, shares, people, config)
	if err != nil {
		return nil, err
	}
	totals, err := engine.ComputeTotals(engineItems, engineShares, enginePeople, engineConfig)
	if err != nil {
		return nil, err
	}
	return toTotalsResponse(totals, people), nil
}

// Compute handles the stateless totals endpoint: nothing is stored, the
// request is computed and the breakdown returned. This is the surface the
// live-editing UI recalculates through.
func (s *BillService) Compute(w http.ResponseWriter, r *http.Request) {
	var req BillRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	totals, err := computeForBill(req.Items, req.Shares, req.People, req.Config)
	if err != nil {
		slog.Warn("compute rejected", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// CreateBill validates, computes and persists a new bill.
func (s *BillService) CreateBill(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req BillRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	// Compute first: a bill that cannot be computed is not stored.
	totals, err := computeForBill(req.Items, req.Shares, req.People, req.Config)
	if err != nil {
		slog.Warn("CreateBill rejected", "user_id", userID, "error", err)
		writeError(w, err)
		return
	}

	bill := &models.Bill{
		Title:     req.Title,
		CreatedBy: userID,
		GroupID:   req.GroupID,
		Items:     req.Items,
		People:    req.People,
		Shares:    req.Shares,
		Config:    req.Config,
	}
	if err := s.store.CreateBill(r.Context(), bill); err != nil {
		slog.Error("CreateBill failed", "user_id", userID, "error", err)
		writeError(w, err)
		return
	}

	s.autoAddPeopleToGroup(r.Context(), bill.GroupID, bill.People)

	slog.Info("bill created", "bill_id", bill.ID, "user_id", userID, "total_cents", totals.Total)
	writeJSON(w, http.StatusCreated, BillResponse{Bill: bill, Totals: totals})
}

// GetBill retrieves a bill and recomputes its totals. Totals are never
// stored; the engine is cheap and recomputing guarantees the breakdown always
// matches the bill contents.
func (s *BillService) GetBill(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	billID := chi.URLParam(r, "billID")

	bill, err := s.store.GetBill(r.Context(), billID)
	if err != nil {
		writeError(w, err)
		return
	}
	if bill.CreatedBy != userID {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "you do not have access to this bill"})
		return
	}

	totals, err := computeForBill(bill.Items, bill.Shares, bill.People, bill.Config)
	if err != nil {
		slog.Error("stored bill failed to compute", "bill_id", billID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BillResponse{Bill: bill, Totals: totals})
}

// UpdateBill replaces a bill's contents and returns the new breakdown.
func (s *BillService) UpdateBill(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	billID := chi.URLParam(r, "billID")

	existing, err := s.store.GetBill(r.Context(), billID)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing.CreatedBy != userID {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "you do not have access to this bill"})
		return
	}

	var req BillRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	totals, err := computeForBill(req.Items, req.Shares, req.People, req.Config)
	if err != nil {
		slog.Warn("UpdateBill rejected", "bill_id", billID, "error", err)
		writeError(w, err)
		return
	}

	bill := &models.Bill{
		ID:        billID,
		Title:     req.Title,
		CreatedBy: existing.CreatedBy,
		GroupID:   req.GroupID,
		Items:     req.Items,
		People:    req.People,
		Shares:    req.Shares,
		Config:    req.Config,
	}
	if err := s.store.UpdateBill(r.Context(), bill); err != nil {
		slog.Error("UpdateBill failed", "bill_id", billID, "error", err)
		writeError(w, err)
		return
	}

	s.autoAddPeopleToGroup(r.Context(), bill.GroupID, bill.People)

	writeJSON(w, http.StatusOK, BillResponse{Bill: bill, Totals: totals})
}

// DeleteBill removes a bill.
func (s *BillService) DeleteBill(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	billID := chi.URLParam(r, "billID")

	existing, err := s.store.GetBill(r.Context(), billID)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing.CreatedBy != userID {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "you do not have access to this bill"})
		return
	}

	if err := s.store.DeleteBill(r.Context(), billID); err != nil {
		writeError(w, err)
		return
	}

	slog.Info("bill deleted", "bill_id", billID, "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// ListBills returns summaries of the caller's bills, newest first.
func (s *BillService) ListBills(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	bills, err := s.store.ListBillsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summarize(bills))
}

// summarize builds list-view entries, computing each bill's grand total.
// Bills whose stored contents no longer compute (which should not happen,
// since they computed on write) are summarized with a zero total rather than
// failing the whole listing.
func summarize(bills []*models.Bill) []BillSummary {
	summaries := make([]BillSummary, len(bills))
	for i, bill := range bills {
		summary := BillSummary{
			ID:          bill.ID,
			Title:       bill.Title,
			GroupID:     bill.GroupID,
			PeopleCount: len(bill.People),
			CreatedAt:   bill.CreatedAt,
		}
		if totals, err := computeForBill(bill.Items, bill.Shares, bill.People, bill.Config); err == nil {
			summary.Total = totals.Total
		} else {
			slog.Warn("stored bill failed to compute for summary", "bill_id", bill.ID, "error", err)
		}
		summaries[i] = summary
	}
	return summaries
}

// autoAddPeopleToGroup adds any bill people not already in the bill's group.
func (s *BillService) autoAddPeopleToGroup(ctx context.Context, groupID string, people []models.Person) {
	if groupID == "" {
		return
	}
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Warn("autoAddPeopleToGroup: failed to get group", "group_id", groupID, "error", err)
		return
	}

	memberSet := make(map[string]bool, len(group.Members))
	for _, m := range group.Members {
		memberSet[m] = true
	}
	var newMembers []string
	for _, p := range people {
		if !memberSet[p.Name] {
			newMembers = append(newMembers, p.Name)
		}
	}
	if len(newMembers) == 0 {
		return
	}

	if err := s.store.AddGroupMembers(ctx, groupID, newMembers); err != nil {
		slog.Error("autoAddPeopleToGroup: failed to add members", "group_id", groupID, "error", err)
		return
	}
	slog.Info("auto-added people to group", "group_id", groupID, "new_members", newMembers)
}
