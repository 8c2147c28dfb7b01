// Package uploads stores item image bytes and hands back opaque references.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a reference does not resolve to stored data.
var ErrNotFound = errors.New("upload not found")

// Object is a stored upload.
type Object struct {
	Ref  string
	Name string
	MIME string
	Data []byte
}

// Storage persists uploaded files. Implementations generate the reference
// themselves, so the client-supplied name never becomes a path.
type Storage interface {
	Put(ctx context.Context, name, mime string, data []byte) (string, error)
	Get(ctx context.Context, ref string) (*Object, error)
	Delete(ctx context.Context, ref string) error
}

// NewRef returns a fresh reference under items/YYYY/MM/DD/ keeping only the
// extension of the suggested name.
func NewRef(name string, now time.Time) string {
	return fmt.Sprintf("items/%04d/%02d/%02d/%s%s",
		now.Year(), now.Month(), now.Day(), uuid.NewString(), SafeExt(name))
}

// SafeExt returns the lower-case extension of name if it is a known image
// extension, or an empty string.
func SafeExt(name string) string {
	switch ext := path.Ext(path.Base(name)); ext {
	case ".jpg", ".jpeg", ".JPG", ".JPEG":
		return ".jpg"
	case ".png", ".PNG":
		return ".png"
	default:
		return ""
	}
}

// SafeName strips any directory components from a client-supplied filename.
func SafeName(name string) string {
	base := path.Base(path.Clean("/" + name))
	if base == "/" || base == "." {
		return "upload"
	}
	return base
}
