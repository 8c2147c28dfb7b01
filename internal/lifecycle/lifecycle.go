// Package lifecycle implements item registration, the tracked/missing
// transitions, public search and owner notification.
//
// An item is Tracked (reported=false, visible to its owner only) or Missing
// (reported=true, publicly searchable), and is Deleted terminally. Identity
// is always passed in explicitly as an Actor; this package never reads
// request or session state.
package lifecycle

import (
	"context"
	"database/sql"
	"time"

	"github.com/erazemk/najdi/internal/ident"
	"github.com/erazemk/najdi/internal/model"
	"github.com/erazemk/najdi/internal/notify"
	"github.com/erazemk/najdi/internal/uploads"
)

// MaxIDAttempts bounds identifier regeneration on collision.
const MaxIDAttempts = 10

// Notifier dispatches an owner notification for an item.
type Notifier interface {
	Notify(ctx context.Context, item *model.Item, msg notify.Message) error
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID int64
	Role   string
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return model.RoleAtLeast(a.Role, model.RoleAdmin)
}

// mayManage reports whether actor can change or delete item.
func (a Actor) mayManage(item *model.Item) bool {
	return a.IsAdmin() || item.OwnedBy(a.UserID)
}

// Upload is a raw image as received from a client.
type Upload struct {
	Name string
	Data []byte
}

// NewItem holds the fields supplied when an item is registered.
type NewItem struct {
	Title  string
	Name   string
	Email  string
	Phone  string
	Images []Upload
}

// Transition is the result of a state change that may notify the owner.
// Warning is set when the change was committed but the notification failed.
type Transition struct {
	Item    *model.Item
	Warning error
}

// Service is the item lifecycle service.
type Service struct {
	DB       *sql.DB
	Uploads  uploads.Storage
	Notifier Notifier

	// Now and NewID default to time.Now and ident.Generate.
	Now   func() time.Time
	NewID func() string
}

// New creates a service with the default clock and identifier generator.
func New(db *sql.DB, storage uploads.Storage, notifier Notifier) *Service {
	return &Service{
		DB:       db,
		Uploads:  storage,
		Notifier: notifier,
		Now:      time.Now,
		NewID:    ident.Generate,
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID == nil {
		return ident.Normalize(ident.Generate())
	}
	return ident.Normalize(s.NewID())
}
