package models

import "time"

const (
	MinRoomDurationDays = 1
	MaxRoomDurationDays = 7
)

// Room binds a 6-digit code to a menu snapshot until ExpirationDate.
type Room struct {
	RoomNumber     string    `json:"roomNumber" gorm:"type:varchar(6);primaryKey"`
	UserID         string    `json:"userId" gorm:"type:varchar(64);not null;index"`
	MenuID         string    `json:"menuId" gorm:"type:varchar(36);not null;index"`
	CreationDate   time.Time `json:"creationDate" gorm:"not null"`
	ExpirationDate time.Time `json:"expirationDate" gorm:"not null;index"`
}

func (Room) TableName() string {
	return "rooms"
}

func ClampDurationDays(days int) int {
	if days < MinRoomDurationDays {
		return MinRoomDurationDays
	}
	if days > MaxRoomDurationDays {
		return MaxRoomDurationDays
	}
	return days
}

func NewRoom(roomNumber, userID, menuID string, durationInDays int, now time.Time) Room {
	creation := now.UTC()
	return Room{
		RoomNumber:     roomNumber,
		UserID:         userID,
		MenuID:         menuID,
		CreationDate:   creation,
		ExpirationDate: creation.AddDate(0, 0, ClampDurationDays(durationInDays)),
	}
}

func (r Room) IsExpired(now time.Time) bool {
	return now.After(r.ExpirationDate)
}
