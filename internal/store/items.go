package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/najdi/internal/ident"
	"github.com/erazemk/najdi/internal/model"
)

const itemColumns = `id, title, name, email, phone, reported, reported_since, tracked_since, user_id, created_at`

// ItemFilter narrows ListItems. Nil fields do not filter.
type ItemFilter struct {
	Reported *bool
	OwnerID  *int64
}

// CreateItem inserts an item and its images in one transaction. The item ID
// must already be set; ErrDuplicateID is returned if it is taken.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) error {
	item.ID = ident.Normalize(item.ID)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE id = ?`, item.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking item id: %w", err)
	}
	if exists > 0 {
		return ErrDuplicateID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.Name, item.Email, item.Phone, item.Reported,
		item.ReportedSince, item.TrackedSince, item.OwnerID, item.CreatedAt,
	)
	if err != nil {
		if isPrimaryKeyViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("creating item: %w", err)
	}

	for i := range item.Images {
		img := &item.Images[i]
		img.ItemID = item.ID
		img.Position = i
		result, err := tx.ExecContext(ctx,
			`INSERT INTO item_images (item_id, position, ref, mime) VALUES (?, ?, ?, ?)`,
			img.ItemID, img.Position, img.Ref, img.MIME,
		)
		if err != nil {
			return fmt.Errorf("creating item image: %w", err)
		}
		if img.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("getting item image id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item: %w", err)
	}
	return nil
}

// GetItem returns an item with its images by case-insensitive ID, or nil if
// it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, ident.Normalize(id),
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}

	images, err := ListItemImages(ctx, db, item.ID)
	if err != nil {
		return nil, err
	}
	item.Images = images
	return item, nil
}

// ListItems returns items matching filter, most recently reported or created first.
func ListItems(ctx context.Context, db *sql.DB, filter ItemFilter) ([]model.Item, error) {
	var where []string
	var args []any
	if filter.Reported != nil {
		where = append(where, "reported = ?")
		args = append(args, *filter.Reported)
	}
	if filter.OwnerID != nil {
		where = append(where, "user_id = ?")
		args = append(args, *filter.OwnerID)
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY COALESCE(reported_since, created_at) DESC, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	rows.Close()

	for i := range items {
		images, err := ListItemImages(ctx, db, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Images = images
	}
	return items, nil
}

// ListItemsByOwner returns all items owned by a user.
func ListItemsByOwner(ctx context.Context, db *sql.DB, userID int64) ([]model.Item, error) {
	return ListItems(ctx, db, ItemFilter{OwnerID: &userID})
}

// ListItemImages returns an item's images in position order.
func ListItemImages(ctx context.Context, db *sql.DB, itemID string) ([]model.ItemImage, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, position, ref, mime FROM item_images
		 WHERE item_id = ? ORDER BY position`, ident.Normalize(itemID),
	)
	if err != nil {
		return nil, fmt.Errorf("listing item images: %w", err)
	}
	defer rows.Close()

	var images []model.ItemImage
	for rows.Next() {
		var img model.ItemImage
		if err := rows.Scan(&img.ID, &img.ItemID, &img.Position, &img.Ref, &img.MIME); err != nil {
			return nil, fmt.Errorf("scanning item image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SetReported flips the reported flag and its timestamp in a single statement,
// so the two columns can never be observed out of step. It reports whether
// the row changed; an item already in the requested state is left untouched.
func SetReported(ctx context.Context, db *sql.DB, id string, reported bool, at time.Time) (bool, error) {
	var since *time.Time
	if reported {
		since = &at
	}
	result, err := db.ExecContext(ctx,
		`UPDATE items SET reported = ?, reported_since = ?
		 WHERE id = ? AND reported <> ?`,
		reported, since, ident.Normalize(id), reported,
	)
	if err != nil {
		return false, fmt.Errorf("updating reported state: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteItem removes an item together with its image rows and returns the
// upload references the images pointed at.
func DeleteItem(ctx context.Context, db *sql.DB, id string) ([]string, error) {
	id = ident.Normalize(id)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT ref FROM item_images WHERE item_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("listing image refs: %w", err)
	}
	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning image ref: %w", err)
		}
		refs = append(refs, ref)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing image refs: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_images WHERE item_id = ?`, id); err != nil {
		return nil, fmt.Errorf("deleting item images: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("deleting item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing delete: %w", err)
	}
	return refs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var reportedSince, trackedSince sql.NullTime
	var ownerID sql.NullInt64
	err := s.Scan(&item.ID, &item.Title, &item.Name, &item.Email, &item.Phone, &item.Reported,
		&reportedSince, &trackedSince, &ownerID, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	if reportedSince.Valid {
		t := reportedSince.Time
		item.ReportedSince = &t
	}
	if trackedSince.Valid {
		t := trackedSince.Time
		item.TrackedSince = &t
	}
	if ownerID.Valid {
		id := ownerID.Int64
		item.OwnerID = &id
	}
	return item, nil
}
