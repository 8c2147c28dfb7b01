package model

import "time"

// Item is a tracked or missing physical object.
type Item struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Reported      bool        `json:"reported"`
	ReportedSince *time.Time  `json:"reported_since,omitempty"`
	TrackedSince  *time.Time  `json:"tracked_since,omitempty"`
	OwnerID       *int64      `json:"owner_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	Images        []ItemImage `json:"images"`
}

// ItemImage is a stored image belonging to exactly one item.
// Position 0 is the primary image.
type ItemImage struct {
	ID       int64  `json:"id"`
	ItemID   string `json:"item_id"`
	Position int    `json:"position"`
	Ref      string `json:"ref"`
	MIME     string `json:"mime"`
}

// Item states.
const (
	StateTracked = "tracked"
	StateMissing = "missing"
)

// State reports the lifecycle state derived from the reported flag.
func (i *Item) State() string {
	if i.Reported {
		return StateMissing
	}
	return StateTracked
}

// PrimaryImage returns the title image, or nil if the item has none loaded.
func (i *Item) PrimaryImage() *ItemImage {
	if len(i.Images) == 0 {
		return nil
	}
	return &i.Images[0]
}

// OwnedBy reports whether the item belongs to the given user.
func (i *Item) OwnedBy(userID int64) bool {
	return i.OwnerID != nil && *i.OwnerID == userID
}
