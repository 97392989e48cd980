package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/homemenu/backend/internal/models"
	"github.com/homemenu/backend/internal/store"
	"github.com/homemenu/backend/pkg/logger"
	"gorm.io/gorm"
)

const maxTitleLength = 255

// MenuManager owns every user's editable menu and list of joined menus.
// Operations on one user's menu are serialized.
type MenuManager struct {
	DB      *gorm.DB
	Sharing *SharingService
	Shared  *store.SharedMenuStore
	locks   sync.Map
}

func NewMenuManager(db *gorm.DB, sharing *SharingService, shared *store.SharedMenuStore) *MenuManager {
	return &MenuManager{DB: db, Sharing: sharing, Shared: shared}
}

func (m *MenuManager) lock(userID uuid.UUID) func() {
	value, _ := m.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func dbError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

// load returns the user's menu row, creating an empty menu on first use.
// Callers hold the user's lock.
func (m *MenuManager) load(ctx context.Context, user *models.User) (*models.UserMenu, error) {
	var row models.UserMenu
	err := m.DB.WithContext(ctx).Where("user_id = ?", user.ID).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, dbError("load menu", err)
	}

	row = models.UserMenu{UserID: user.ID}
	row.Apply(models.NewMenu(user.Username, ""))
	if err := m.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, dbError("create menu", err)
	}

	logger.InfoWithUser(user.ID.String(), "menu_provisioned", map[string]interface{}{
		"menu_id": row.MenuID.String(),
	})
	return &row, nil
}

func (m *MenuManager) save(ctx context.Context, row *models.UserMenu, menu models.Menu) error {
	row.Apply(menu)
	if err := m.DB.WithContext(ctx).Save(row).Error; err != nil {
		return dbError("save menu", err)
	}
	return nil
}

func (m *MenuManager) update(ctx context.Context, user *models.User, mutate func(menu *models.Menu) error) (*models.Menu, error) {
	unlock := m.lock(user.ID)
	defer unlock()

	row, err := m.load(ctx, user)
	if err != nil {
		return nil, err
	}

	menu := row.ToMenu()
	if err := mutate(&menu); err != nil {
		return nil, err
	}
	if err := m.save(ctx, row, menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// activeRoom returns the room currently associated with menu, or nil when
// the recorded code has expired or now belongs to another menu.
func (m *MenuManager) activeRoom(ctx context.Context, menu models.Menu) (*models.Room, error) {
	if menu.RoomNumber == nil {
		return nil, nil
	}
	room, err := m.Sharing.Rooms.Get(ctx, *menu.RoomNumber)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if room.MenuID != menu.ID.String() {
		return nil, nil
	}
	return room, nil
}

// MyMenu returns the user's menu. A recorded room number whose room is gone
// is cleared.
func (m *MenuManager) MyMenu(ctx context.Context, user *models.User) (*models.Menu, error) {
	unlock := m.lock(user.ID)
	defer unlock()

	row, err := m.load(ctx, user)
	if err != nil {
		return nil, err
	}
	menu := row.ToMenu()

	if menu.RoomNumber != nil {
		room, err := m.activeRoom(ctx, menu)
		if err != nil {
			logger.WarnWithUser(user.ID.String(), "room_status_unavailable", map[string]interface{}{
				"room_number": *menu.RoomNumber,
				"error":       err.Error(),
			})
		} else if room == nil {
			menu.ClearRoomNumber()
			if err := m.save(ctx, row, menu); err != nil {
				return nil, err
			}
		}
	}
	return &menu, nil
}

func (m *MenuManager) UpdateTitle(ctx context.Context, user *models.User, title string) (*models.Menu, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalidInput("title is required")
	}
	if len(title) > maxTitleLength {
		return nil, invalidInput("title must be at most %d characters", maxTitleLength)
	}

	return m.update(ctx, user, func(menu *models.Menu) error {
		menu.SetTitle(title)
		return nil
	})
}

func (m *MenuManager) AddItem(ctx context.Context, user *models.User, in ItemInput) (*models.MenuItem, error) {
	if err := ValidateStruct(in); err != nil {
		return nil, err
	}

	item := models.NewMenuItem(in.Name, in.Description, in.Category)
	item.IsAvailable = in.available()

	if _, err := m.update(ctx, user, func(menu *models.Menu) error {
		menu.AddItem(item)
		return nil
	}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (m *MenuManager) UpdateItem(ctx context.Context, user *models.User, itemID uuid.UUID, in ItemInput) (*models.MenuItem, error) {
	if err := ValidateStruct(in); err != nil {
		return nil, err
	}

	item := models.MenuItem{
		ID:          itemID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		IsAvailable: in.available(),
	}
	if _, err := m.update(ctx, user, func(menu *models.Menu) error {
		if !menu.UpdateItem(item) {
			return ErrItemNotFound
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (m *MenuManager) DeleteItem(ctx context.Context, user *models.User, itemID uuid.UUID) error {
	_, err := m.update(ctx, user, func(menu *models.Menu) error {
		if !menu.DeleteItem(itemID) {
			return ErrItemNotFound
		}
		return nil
	})
	return err
}

// ShareMenu returns the menu's active room, or creates one that lasts
// durationInDays. The room number is recorded only after the room and its
// snapshot were both stored.
func (m *MenuManager) ShareMenu(ctx context.Context, user *models.User, durationInDays int) (*models.Room, error) {
	unlock := m.lock(user.ID)
	defer unlock()

	row, err := m.load(ctx, user)
	if err != nil {
		return nil, err
	}
	menu := row.ToMenu()

	existing, err := m.activeRoom(ctx, menu)
	if err != nil {
		return nil, storageError("load room", err)
	}
	if existing != nil {
		return existing, nil
	}

	room, err := m.Sharing.CreateRoom(ctx, menu, user.ID.String(), durationInDays)
	if err != nil {
		return nil, err
	}

	menu.SetRoomNumber(room.RoomNumber)
	if err := m.save(ctx, row, menu); err != nil {
		// Nothing points at the room any more; release the code.
		if delErr := m.Sharing.Rooms.Delete(ctx, room.RoomNumber); delErr != nil {
			logger.ErrorWithUser(user.ID.String(), "room_compensation_failed", delErr, map[string]interface{}{
				"room_number": room.RoomNumber,
				"menu_id":     room.MenuID,
			})
		}
		return nil, err
	}
	return room, nil
}

func (m *MenuManager) JoinRoom(ctx context.Context, user *models.User, code string) (*models.Menu, error) {
	menu, err := m.Sharing.JoinRoom(ctx, code, m.Shared.ForUser(user.ID))
	if err != nil {
		return nil, err
	}
	logger.InfoWithUser(user.ID.String(), "shared_menu_joined", map[string]interface{}{
		"menu_id": menu.ID.String(),
	})
	return menu, nil
}

func (m *MenuManager) SharedMenus(ctx context.Context, user *models.User) ([]models.Menu, error) {
	menus, err := m.Shared.ForUser(user.ID).List(ctx)
	if err != nil {
		return nil, storageError("list shared menus", err)
	}
	return menus, nil
}

func (m *MenuManager) RemoveSharedMenu(ctx context.Context, user *models.User, menuID uuid.UUID) error {
	removed, err := m.Shared.ForUser(user.ID).Remove(ctx, menuID)
	if err != nil {
		return storageError("remove shared menu", err)
	}
	if !removed {
		return ErrSharedMenuNotFound
	}
	return nil
}

// WatchIdentity subscribes to feed and provisions the menu of every user
// that registers or signs in, until ctx is cancelled.
func (m *MenuManager) WatchIdentity(ctx context.Context, feed *IdentityFeed) {
	sub := feed.Subscribe()

	go func() {
		defer sub.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-sub.Events():
				if !ok {
					return
				}
				user := &models.User{Username: event.Username}
				user.ID = event.UserID
				if _, err := m.MyMenu(ctx, user); err != nil {
					logger.ErrorWithUser(event.UserID.String(), "menu_provision_failed", err, map[string]interface{}{
						"kind": string(event.Kind),
					})
				}
			}
		}
	}()
}
