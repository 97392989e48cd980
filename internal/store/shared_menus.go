package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/homemenu/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SharedMenuStore persists every user's list of joined menus in the
// shared_menus table.
type SharedMenuStore struct {
	DB *gorm.DB
}

func NewSharedMenuStore(db *gorm.DB) *SharedMenuStore {
	return &SharedMenuStore{DB: db}
}

// ForUser scopes the store to one user's list.
func (s *SharedMenuStore) ForUser(userID uuid.UUID) *UserSharedMenus {
	return &UserSharedMenus{db: s.DB, userID: userID}
}

type UserSharedMenus struct {
	db     *gorm.DB
	userID uuid.UUID
}

// Add appends menu unless an entry with the same menu id exists, in which
// case the stored entry is returned unchanged. added reports which of the
// two happened.
func (l *UserSharedMenus) Add(ctx context.Context, menu models.Menu) (*models.Menu, bool, error) {
	snapshot := menu.Clone()
	row := models.SharedMenu{
		UserID:      l.userID,
		MenuID:      snapshot.ID,
		OwnerName:   snapshot.OwnerName,
		Title:       snapshot.Title,
		Items:       snapshot.Items,
		LastUpdated: snapshot.LastUpdated,
	}

	result := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "menu_id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return nil, false, unavailable("add shared menu", result.Error)
	}
	if result.RowsAffected > 0 {
		out := row.ToMenu()
		return &out, true, nil
	}

	var existing models.SharedMenu
	if err := l.db.WithContext(ctx).
		Where("user_id = ? AND menu_id = ?", l.userID, menu.ID).
		First(&existing).Error; err != nil {
		return nil, false, unavailable("load shared menu", err)
	}
	out := existing.ToMenu()
	return &out, false, nil
}

func (l *UserSharedMenus) List(ctx context.Context) ([]models.Menu, error) {
	var rows []models.SharedMenu
	if err := l.db.WithContext(ctx).
		Where("user_id = ?", l.userID).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, unavailable("list shared menus", err)
	}

	menus := make([]models.Menu, 0, len(rows))
	for _, row := range rows {
		menus = append(menus, row.ToMenu())
	}
	return menus, nil
}

// Remove deletes the entry for menuID and reports whether one existed.
func (l *UserSharedMenus) Remove(ctx context.Context, menuID uuid.UUID) (bool, error) {
	result := l.db.WithContext(ctx).
		Where("user_id = ? AND menu_id = ?", l.userID, menuID).
		Delete(&models.SharedMenu{})
	if result.Error != nil {
		return false, unavailable("remove shared menu", result.Error)
	}
	return result.RowsAffected > 0, nil
}
