package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/homemenu/backend/internal/models"
)

// SharedMenuList is the caller-owned list JoinRoom adds snapshots to. Add
// must return the existing entry unchanged when one with the same menu id
// is present; added reports whether the menu was appended.
type SharedMenuList interface {
	Add(ctx context.Context, menu models.Menu) (joined *models.Menu, added bool, err error)
}

// MenuList is an in-memory SharedMenuList.
type MenuList struct {
	mu    sync.Mutex
	menus []models.Menu
}

func NewMenuList() *MenuList {
	return &MenuList{}
}

func (l *MenuList) Add(_ context.Context, menu models.Menu) (*models.Menu, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.menus {
		if existing.ID == menu.ID {
			out := existing.Clone()
			return &out, false, nil
		}
	}

	stored := menu.Clone()
	l.menus = append(l.menus, stored)
	out := stored.Clone()
	return &out, true, nil
}

func (l *MenuList) List() []models.Menu {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Menu, len(l.menus))
	for i, menu := range l.menus {
		out[i] = menu.Clone()
	}
	return out
}

func (l *MenuList) Remove(menuID uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, menu := range l.menus {
		if menu.ID == menuID {
			l.menus = append(l.menus[:i], l.menus[i+1:]...)
			return true
		}
	}
	return false
}
