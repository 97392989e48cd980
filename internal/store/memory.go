package store

import (
	"context"
	"sync"
	"time"

	"github.com/homemenu/backend/internal/models"
)

type MemoryRoomStore struct {
	mu    sync.Mutex
	rooms map[string]models.Room
	now   func() time.Time
}

func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{rooms: make(map[string]models.Room), now: time.Now}
}

func (s *MemoryRoomStore) Put(_ context.Context, room models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.rooms[room.RoomNumber]; ok && !existing.IsExpired(s.now()) {
		return ErrCollision
	}
	s.rooms[room.RoomNumber] = room
	return nil
}

func (s *MemoryRoomStore) Get(_ context.Context, code string) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, ErrNotFound
	}
	if room.IsExpired(s.now()) {
		delete(s.rooms, code)
		return nil, ErrNotFound
	}
	return &room, nil
}

func (s *MemoryRoomStore) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
	return nil
}

func (s *MemoryRoomStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for code, room := range s.rooms {
		if room.IsExpired(now) {
			delete(s.rooms, code)
			removed++
		}
	}
	return removed, nil
}

type MemorySnapshotStore struct {
	mu    sync.RWMutex
	menus map[string]models.Menu
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{menus: make(map[string]models.Menu)}
}

func (s *MemorySnapshotStore) Put(_ context.Context, menu models.Menu) error {
	snapshot := menu.Clone()
	snapshot.RoomNumber = nil

	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[menu.ID.String()] = snapshot
	return nil
}

func (s *MemorySnapshotStore) Get(_ context.Context, menuID string) (*models.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	menu, ok := s.menus[menuID]
	if !ok {
		return nil, ErrNotFound
	}
	out := menu.Clone()
	return &out, nil
}
