package lifecycle

import "errors"

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrImageNotFound = errors.New("image not found")
	ErrForbidden     = errors.New("not allowed")
	ErrInvalidItem   = errors.New("invalid item")
	ErrNoImages      = errors.New("at least one image is required")
	ErrUploadFailed  = errors.New("image upload failed")
	ErrEmptyMessage  = errors.New("message is empty")
	ErrIDsExhausted  = errors.New("could not allocate a unique item id")
)
