package lifecycle

import (
	"context"
	"errors"

	"github.com/erazemk/najdi/internal/ident"
	"github.com/erazemk/najdi/internal/model"
	"github.com/erazemk/najdi/internal/store"
	"github.com/erazemk/najdi/internal/uploads"
)

// Search looks an item up by identifier, case-insensitively. Only missing
// items are found; a tracked item is reported as ErrItemNotFound.
func (s *Service) Search(ctx context.Context, query string) (*model.Item, error) {
	id := ident.Normalize(query)
	if !ident.Valid(id) {
		return nil, ErrItemNotFound
	}
	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.Reported {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Get returns an item as seen by actor: missing items are visible to
// everyone, tracked items only to their owner and admins. A nil actor is
// anonymous.
func (s *Service) Get(ctx context.Context, actor *Actor, id string) (*model.Item, error) {
	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.Reported && (actor == nil || !actor.mayManage(item)) {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Image returns the stored image at position pos of an item visible to actor.
func (s *Service) Image(ctx context.Context, actor *Actor, id string, pos int) (*uploads.Object, error) {
	item, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if pos < 0 || pos >= len(item.Images) {
		return nil, ErrImageNotFound
	}
	obj, err := s.Uploads.Get(ctx, item.Images[pos].Ref)
	if errors.Is(err, uploads.ErrNotFound) {
		return nil, ErrImageNotFound
	}
	return obj, err
}

// ListMissing returns all publicly visible items.
func (s *Service) ListMissing(ctx context.Context) ([]model.Item, error) {
	yes := true
	return store.ListItems(ctx, s.DB, store.ItemFilter{Reported: &yes})
}

// ListOwned returns the items owned by actor.
func (s *Service) ListOwned(ctx context.Context, actor Actor) ([]model.Item, error) {
	return store.ListItemsByOwner(ctx, s.DB, actor.UserID)
}

// ListAll returns every item. Admin only.
func (s *Service) ListAll(ctx context.Context, actor Actor) ([]model.Item, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return store.ListItems(ctx, s.DB, store.ItemFilter{})
}
