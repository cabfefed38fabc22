package models

// Group represents a reusable participant list ("Roommates", "Work Lunch").
// Groups can own bills, enabling group bill history, and new bill people are
// auto-added to the bill's group.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group.
	Name string `json:"name"`

	// Members is the list of participant names in this group.
	Members []string `json:"members"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}
