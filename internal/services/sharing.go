package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/homemenu/backend/internal/models"
	"github.com/homemenu/backend/internal/roomcode"
	"github.com/homemenu/backend/internal/store"
	"github.com/homemenu/backend/pkg/logger"
)

const DefaultMaxAttempts = 5

type CodeGenerator interface {
	Generate() (string, error)
}

// SharingService mints rooms for menus and redeems room codes for menu
// snapshots.
type SharingService struct {
	Rooms       store.RoomStore
	Snapshots   store.SnapshotStore
	Codes       CodeGenerator
	MaxAttempts int
	now         func() time.Time
}

func NewSharingService(rooms store.RoomStore, snapshots store.SnapshotStore, codes CodeGenerator, maxAttempts int) *SharingService {
	if codes == nil {
		codes = roomcode.NewGenerator(nil)
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &SharingService{
		Rooms:       rooms,
		Snapshots:   snapshots,
		Codes:       codes,
		MaxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// CreateRoom allocates a fresh code for menu, records the room and stores a
// snapshot of the menu's current content. durationInDays is clamped to
// [1, 7]. If the snapshot cannot be stored the room is removed again.
func (s *SharingService) CreateRoom(ctx context.Context, menu models.Menu, ownerID string, durationInDays int) (*models.Room, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, invalidInput("owner is required")
	}

	room, err := s.allocateRoom(ctx, menu, ownerID, durationInDays)
	if err != nil {
		return nil, err
	}

	if err := s.Snapshots.Put(ctx, menu.Clone()); err != nil {
		if delErr := s.Rooms.Delete(ctx, room.RoomNumber); delErr != nil {
			logger.ErrorWithUser(ownerID, "room_compensation_failed", delErr, map[string]interface{}{
				"room_number": room.RoomNumber,
				"menu_id":     room.MenuID,
			})
		}
		logger.ErrorWithUser(ownerID, "snapshot_put_failed", err, map[string]interface{}{
			"room_number": room.RoomNumber,
			"menu_id":     room.MenuID,
		})
		return nil, storageError("store menu snapshot", err)
	}

	logger.InfoWithUser(ownerID, "room_created", map[string]interface{}{
		"room_number":     room.RoomNumber,
		"menu_id":         room.MenuID,
		"expiration_date": room.ExpirationDate,
	})
	return room, nil
}

func (s *SharingService) allocateRoom(ctx context.Context, menu models.Menu, ownerID string, durationInDays int) (*models.Room, error) {
	for attempt := 1; attempt <= s.MaxAttempts; attempt++ {
		code, err := s.Codes.Generate()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}

		room := models.NewRoom(code, ownerID, menu.ID.String(), durationInDays, s.now())
		err = s.Rooms.Put(ctx, room)
		if err == nil {
			return &room, nil
		}
		if !errors.Is(err, store.ErrCollision) {
			return nil, storageError("store room", err)
		}

		logger.InfoWithUser(ownerID, "room_code_collision", map[string]interface{}{
			"room_number": code,
			"attempt":     attempt,
		})
	}

	logger.WarnWithUser(ownerID, "room_allocation_failed", map[string]interface{}{
		"attempts": s.MaxAttempts,
		"menu_id":  menu.ID.String(),
	})
	return nil, ErrRoomAllocationFailed
}

// JoinRoom resolves code to its menu snapshot and adds it to list. Joining
// the same menu twice returns the entry already in list.
func (s *SharingService) JoinRoom(ctx context.Context, code string, list SharedMenuList) (*models.Menu, error) {
	if code == "" {
		return nil, invalidInput("room code is required")
	}
	if !roomcode.Valid(code) {
		return nil, invalidInput("room code must be %d digits", roomcode.Length)
	}

	room, err := s.Rooms.Get(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		logger.Info("room_not_found", map[string]interface{}{"room_number": code})
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, storageError("load room", err)
	}

	menu, err := s.Snapshots.Get(ctx, room.MenuID)
	if errors.Is(err, store.ErrNotFound) {
		logger.Warn("room_snapshot_missing", map[string]interface{}{
			"room_number": code,
			"menu_id":     room.MenuID,
		})
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, storageError("load menu snapshot", err)
	}

	joined, added, err := list.Add(ctx, *menu)
	if err != nil {
		return nil, storageError("add shared menu", err)
	}

	logger.Info("room_joined", map[string]interface{}{
		"room_number": code,
		"menu_id":     room.MenuID,
		"added":       added,
	})
	return joined, nil
}
