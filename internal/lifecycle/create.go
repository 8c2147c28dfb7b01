package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/erazemk/najdi/internal/imaging"
	"github.com/erazemk/najdi/internal/model"
	"github.com/erazemk/najdi/internal/phone"
	"github.com/erazemk/najdi/internal/store"
)

// CreateTracked registers an item privately tracked by its owner. No
// notification is sent.
func (s *Service) CreateTracked(ctx context.Context, owner Actor, in NewItem) (*model.Item, error) {
	item, err := s.prepare(in)
	if err != nil {
		return nil, err
	}
	now := s.now()
	item.TrackedSince = &now
	item.OwnerID = &owner.UserID

	if err := s.create(ctx, item, in.Images); err != nil {
		return nil, err
	}
	slog.Info("item registered", "item", item.ID, "state", model.StateTracked, "owner", owner.UserID)
	return item, nil
}

// CreateMissing registers an item that is missing from the start, as filed
// by an admin or by the public. It has no owner and, like the tracked path,
// sends no notification.
func (s *Service) CreateMissing(ctx context.Context, in NewItem) (*model.Item, error) {
	item, err := s.prepare(in)
	if err != nil {
		return nil, err
	}
	now := s.now()
	item.Reported = true
	item.ReportedSince = &now

	if err := s.create(ctx, item, in.Images); err != nil {
		return nil, err
	}
	slog.Info("item registered", "item", item.ID, "state", model.StateMissing)
	return item, nil
}

// prepare validates the contact fields and builds the item record.
func (s *Service) prepare(in NewItem) (*model.Item, error) {
	item := &model.Item{
		Title: strings.TrimSpace(in.Title),
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: strings.TrimSpace(in.Phone),
	}

	switch {
	case item.Name == "":
		return nil, fmt.Errorf("%w: name required", ErrInvalidItem)
	case item.Email == "":
		return nil, fmt.Errorf("%w: email required", ErrInvalidItem)
	case item.Phone == "":
		return nil, fmt.Errorf("%w: phone required", ErrInvalidItem)
	}
	if _, err := mail.ParseAddress(item.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidItem)
	}
	if _, err := phone.Normalize(item.Phone); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}
	if item.Title == "" {
		item.Title = item.Name
	}
	if len(in.Images) == 0 {
		return nil, ErrNoImages
	}

	item.CreatedAt = s.now()
	return item, nil
}

// create stores the images, then inserts the item under a fresh identifier,
// regenerating it on collision. Any failure removes the images already
// stored, so no partial item survives.
func (s *Service) create(ctx context.Context, item *model.Item, files []Upload) error {
	for i, f := range files {
		photo, err := imaging.Process(f.Data)
		if err != nil {
			s.discard(ctx, item.Images)
			return fmt.Errorf("%w: image %d: %w", ErrUploadFailed, i+1, err)
		}
		ref, err := s.Uploads.Put(ctx, f.Name, photo.MIME, photo.Data)
		if err != nil {
			s.discard(ctx, item.Images)
			return fmt.Errorf("%w: image %d: %w", ErrUploadFailed, i+1, err)
		}
		item.Images = append(item.Images, model.ItemImage{Ref: ref, MIME: photo.MIME})
	}

	for attempt := 1; attempt <= MaxIDAttempts; attempt++ {
		item.ID = s.newID()
		err := store.CreateItem(ctx, s.DB, item)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrDuplicateID) {
			s.discard(ctx, item.Images)
			return err
		}
		slog.Debug("item id collision", "id", item.ID, "attempt", attempt)
	}

	s.discard(ctx, item.Images)
	return ErrIDsExhausted
}

// discard deletes stored uploads after a failed creation. It runs detached
// from ctx cancellation so an aborted request still cleans up.
func (s *Service) discard(ctx context.Context, images []model.ItemImage) {
	ctx = context.WithoutCancel(ctx)
	for _, img := range images {
		if err := s.Uploads.Delete(ctx, img.Ref); err != nil {
			slog.Warn("failed to discard upload", "ref", img.Ref, "error", err)
		}
	}
}
