package uploads

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DBStorage keeps uploads as BLOBs in the application database.
type DBStorage struct {
	DB *sql.DB
}

// Put implements Storage.
func (s *DBStorage) Put(ctx context.Context, name, mime string, data []byte) (string, error) {
	ref := NewRef(name, time.Now().UTC())
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO uploads (ref, name, mime, data) VALUES (?, ?, ?, ?)`,
		ref, SafeName(name), mime, data,
	)
	if err != nil {
		return "", fmt.Errorf("storing upload: %w", err)
	}
	return ref, nil
}

// Get implements Storage.
func (s *DBStorage) Get(ctx context.Context, ref string) (*Object, error) {
	obj := &Object{Ref: ref}
	err := s.DB.QueryRowContext(ctx,
		`SELECT name, mime, data FROM uploads WHERE ref = ?`, ref,
	).Scan(&obj.Name, &obj.MIME, &obj.Data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting upload: %w", err)
	}
	return obj, nil
}

// Delete implements Storage. Deleting a missing reference is not an error.
func (s *DBStorage) Delete(ctx context.Context, ref string) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM uploads WHERE ref = ?`, ref); err != nil {
		return fmt.Errorf("deleting upload: %w", err)
	}
	return nil
}
