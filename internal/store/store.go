// Package store persists rooms, menu snapshots and joined-menu lists.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/homemenu/backend/internal/models"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrCollision   = errors.New("room code already in use")
	ErrUnavailable = errors.New("storage unavailable")
)

// RoomStore keeps rooms keyed by code. Implementations must make Put a
// single atomic check-and-set and must delete an expired room on the Get
// that discovers it.
type RoomStore interface {
	Put(ctx context.Context, room models.Room) error
	Get(ctx context.Context, code string) (*models.Room, error)
	Delete(ctx context.Context, code string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SnapshotStore keeps menu copies keyed by menu id. Get reports
// ErrNotFound for both absent and undecodable records.
type SnapshotStore interface {
	Put(ctx context.Context, menu models.Menu) error
	Get(ctx context.Context, menuID string) (*models.Menu, error)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
