package store

import (
	"context"
	"errors"

	"github.com/homemenu/backend/internal/models"
	"github.com/homemenu/backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSnapshotStore keeps snapshots in the "menus" table.
type GormSnapshotStore struct {
	DB *gorm.DB
}

func NewGormSnapshotStore(db *gorm.DB) *GormSnapshotStore {
	return &GormSnapshotStore{DB: db}
}

func (s *GormSnapshotStore) Put(ctx context.Context, menu models.Menu) error {
	doc, err := DocumentFromMenu(menu)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&doc).Error; err != nil {
		return unavailable("put snapshot", err)
	}
	return nil
}

func (s *GormSnapshotStore) Get(ctx context.Context, menuID string) (*models.Menu, error) {
	var doc models.MenuDocument
	err := s.DB.WithContext(ctx).Where("id = ?", menuID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get snapshot", err)
	}

	menu, err := MenuFromDocument(doc)
	if err != nil {
		logger.Warn("snapshot_decode_failed", map[string]interface{}{
			"menu_id": menuID,
			"error":   err.Error(),
		})
		return nil, ErrNotFound
	}
	return &menu, nil
}
