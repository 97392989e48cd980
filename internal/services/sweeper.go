package services

import (
	"context"
	"time"

	"github.com/homemenu/backend/internal/store"
	"github.com/homemenu/backend/pkg/logger"
)

// RoomSweeper periodically removes expired rooms so codes that are never
// looked up again do not linger.
type RoomSweeper struct {
	Rooms    store.RoomStore
	Interval time.Duration
	now      func() time.Time
}

func NewRoomSweeper(rooms store.RoomStore, interval time.Duration) *RoomSweeper {
	return &RoomSweeper{Rooms: rooms, Interval: interval, now: time.Now}
}

// Start runs the sweep loop in a goroutine until ctx is cancelled. A
// non-positive interval disables it.
func (s *RoomSweeper) Start(ctx context.Context) {
	if s.Interval <= 0 {
		logger.Info("room_sweeper_disabled", map[string]interface{}{
			"reason": "ROOM_SWEEP_INTERVAL is 0",
		})
		return
	}

	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, _ = s.Sweep(ctx)
			}
		}
	}()

	logger.Info("room_sweeper_started", map[string]interface{}{
		"interval": s.Interval.String(),
	})
}

func (s *RoomSweeper) Sweep(ctx context.Context) (int64, error) {
	removed, err := s.Rooms.DeleteExpired(ctx, s.now())
	if err != nil {
		logger.Error("room_sweep_failed", err, nil)
		return 0, err
	}
	if removed > 0 {
		logger.Info("room_sweep_completed", map[string]interface{}{
			"removed": removed,
		})
	}
	return removed, nil
}
