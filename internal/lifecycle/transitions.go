package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/erazemk/najdi/internal/model"
	"github.com/erazemk/najdi/internal/notify"
	"github.com/erazemk/najdi/internal/store"
)

// ReportMissing flags an item as missing and then notifies its owner. Anyone
// holding the identifier may report it, so a finder can trigger the notice;
// actor is nil for anonymous callers and is only logged. The state change is
// committed before the notification is attempted and is not undone if it
// fails; the failure is returned as Transition.Warning. Reporting an item
// that is already missing changes nothing and sends nothing.
func (s *Service) ReportMissing(ctx context.Context, actor *Actor, id string) (*Transition, error) {
	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := store.SetReported(ctx, s.DB, item.ID, true, s.now())
	if err != nil {
		return nil, err
	}
	if item, err = s.load(ctx, item.ID); err != nil {
		return nil, err
	}
	if !changed {
		return &Transition{Item: item}, nil
	}
	if actor != nil {
		slog.Info("item reported missing", "item", item.ID, "user", actor.UserID)
	} else {
		slog.Info("item reported missing", "item", item.ID, "user", "anonymous")
	}

	t := &Transition{Item: item}
	if err := s.Notifier.Notify(ctx, item, notify.ReportedMessage(item.ID)); err != nil {
		slog.Warn("owner notification failed", "item", item.ID, "error", err)
		t.Warning = err
	}
	return t, nil
}

// Unreport returns a missing item to private tracking. Only the owner or an
// admin may do so, and only items that have an owner can be tracked.
func (s *Service) Unreport(ctx context.Context, actor Actor, id string) (*model.Item, error) {
	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == nil || !actor.mayManage(item) {
		return nil, ErrForbidden
	}

	changed, err := store.SetReported(ctx, s.DB, item.ID, false, s.now())
	if err != nil {
		return nil, err
	}
	if changed {
		slog.Info("item unreported", "item", item.ID, "user", actor.UserID)
	}
	return s.load(ctx, item.ID)
}

// SendMessage relays a finder's message to the item's owner. The item's
// state is not changed.
func (s *Service) SendMessage(ctx context.Context, id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	item, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Notifier.Notify(ctx, item, notify.RelayMessage(item.ID, text)); err != nil {
		return err
	}
	slog.Info("message relayed", "item", item.ID)
	return nil
}

// Delete removes an item and all its images. Users may delete only their
// own items; admins may delete any.
func (s *Service) Delete(ctx context.Context, actor Actor, id string) error {
	item, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.mayManage(item) {
		return ErrForbidden
	}

	refs, err := store.DeleteItem(ctx, s.DB, item.ID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}

	ctx = context.WithoutCancel(ctx)
	for _, ref := range refs {
		if err := s.Uploads.Delete(ctx, ref); err != nil {
			slog.Warn("failed to delete upload", "item", item.ID, "ref", ref, "error", err)
		}
	}
	slog.Info("item deleted", "item", item.ID, "user", actor.UserID)
	return nil
}

// load returns an item or ErrItemNotFound.
func (s *Service) load(ctx context.Context, id string) (*model.Item, error) {
	item, err := store.GetItem(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}
