package service

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tabsplit/internal/models"
	"tabsplit/internal/storage"
)

// GroupService handles participant group endpoints.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

type createGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// CreateGroup creates a participant group.
func (s *GroupService) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "group name is required"})
		return
	}

	group := &models.Group{Name: req.Name, Members: req.Members}
	if err := s.store.CreateGroup(r.Context(), group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		writeError(w, err)
		return
	}

	slog.Info("group created", "group_id", group.ID, "name", group.Name)
	writeJSON(w, http.StatusCreated, group)
}

// GetGroup retrieves a group and its members.
func (s *GroupService) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.store.GetGroup(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// ListGroupBills returns summaries of a group's bills, newest first.
func (s *GroupService) ListGroupBills(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	if _, err := s.store.GetGroup(r.Context(), groupID); err != nil {
		writeError(w, err)
		return
	}

	bills, err := s.store.ListBillsByGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summarize(bills))
}
