package store

import (
	"context"
	"errors"
	"time"

	"github.com/homemenu/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormRoomStore struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewGormRoomStore(db *gorm.DB) *GormRoomStore {
	return &GormRoomStore{DB: db, now: time.Now}
}

// Put inserts room, or replaces an existing row only when that row has
// already expired. Both cases are one statement, so two concurrent Puts of
// the same code cannot both succeed.
func (s *GormRoomStore) Put(ctx context.Context, room models.Room) error {
	now := s.now().UTC()
	result := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "room_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "menu_id", "creation_date", "expiration_date",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Lt{Column: clause.Column{Table: "rooms", Name: "expiration_date"}, Value: now},
		}},
	}).Create(&room)
	if result.Error != nil {
		return unavailable("put room", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCollision
	}
	return nil
}

func (s *GormRoomStore) Get(ctx context.Context, code string) (*models.Room, error) {
	now := s.now().UTC()

	var room models.Room
	expired := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_number = ?", code).First(&room).Error; err != nil {
			return err
		}
		if !room.IsExpired(now) {
			return nil
		}
		expired = true
		return tx.Where("room_number = ? AND expiration_date < ?", code, now).Delete(&models.Room{}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get room", err)
	}
	if expired {
		return nil, ErrNotFound
	}
	return &room, nil
}

func (s *GormRoomStore) Delete(ctx context.Context, code string) error {
	if err := s.DB.WithContext(ctx).Where("room_number = ?", code).Delete(&models.Room{}).Error; err != nil {
		return unavailable("delete room", err)
	}
	return nil
}

func (s *GormRoomStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.DB.WithContext(ctx).Where("expiration_date < ?", now.UTC()).Delete(&models.Room{})
	if result.Error != nil {
		return 0, unavailable("delete expired rooms", result.Error)
	}
	return result.RowsAffected, nil
}
