package services

import (
	"errors"
	"fmt"

	"github.com/homemenu/backend/internal/store"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrRoomNotFound         = errors.New("room not found or expired")
	ErrRoomAllocationFailed = errors.New("could not allocate a room code")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrItemNotFound         = errors.New("menu item not found")
	ErrSharedMenuNotFound   = errors.New("shared menu not found")
)

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// storageError maps store failures onto ErrStorageUnavailable and keeps
// the cause in the chain.
func storageError(op string, err error) error {
	if errors.Is(err, store.ErrUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
