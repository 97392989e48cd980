package models

import (
	"time"

	"github.com/google/uuid"
)

// UserMenu is the persisted form of a user's own editable menu.
type UserMenu struct {
	BaseModel
	UserID      uuid.UUID  `json:"userID" gorm:"type:uuid;not null;uniqueIndex"`
	MenuID      uuid.UUID  `json:"menuID" gorm:"type:uuid;not null;uniqueIndex"`
	OwnerName   string     `json:"ownerName" gorm:"type:varchar(100);not null"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Items       []MenuItem `json:"items" gorm:"type:text;serializer:json"`
	RoomNumber  *string    `json:"roomNumber,omitempty" gorm:"type:varchar(6)"`
	LastUpdated time.Time  `json:"lastUpdated" gorm:"not null"`
}

func (UserMenu) TableName() string {
	return "user_menus"
}

func (u UserMenu) ToMenu() Menu {
	menu := Menu{
		ID:          u.MenuID,
		OwnerName:   u.OwnerName,
		Title:       u.Title,
		Items:       u.Items,
		RoomNumber:  u.RoomNumber,
		LastUpdated: u.LastUpdated,
	}
	if menu.Items == nil {
		menu.Items = []MenuItem{}
	}
	return menu.Clone()
}

func (u *UserMenu) Apply(menu Menu) {
	menu = menu.Clone()
	u.MenuID = menu.ID
	u.OwnerName = menu.OwnerName
	u.Title = menu.Title
	u.Items = menu.Items
	u.RoomNumber = menu.RoomNumber
	u.LastUpdated = menu.LastUpdated
}

// SharedMenu is one entry of a user's list of joined menus.
type SharedMenu struct {
	BaseModel
	UserID      uuid.UUID  `json:"userID" gorm:"type:uuid;not null;uniqueIndex:idx_shared_menus_user_menu"`
	MenuID      uuid.UUID  `json:"menuID" gorm:"type:uuid;not null;uniqueIndex:idx_shared_menus_user_menu"`
	OwnerName   string     `json:"ownerName" gorm:"type:varchar(100);not null"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Items       []MenuItem `json:"items" gorm:"type:text;serializer:json"`
	LastUpdated time.Time  `json:"lastUpdated" gorm:"not null"`
}

func (SharedMenu) TableName() string {
	return "shared_menus"
}

func (s SharedMenu) ToMenu() Menu {
	menu := Menu{
		ID:          s.MenuID,
		OwnerName:   s.OwnerName,
		Title:       s.Title,
		Items:       s.Items,
		LastUpdated: s.LastUpdated,
	}
	if menu.Items == nil {
		menu.Items = []MenuItem{}
	}
	return menu.Clone()
}

// MenuDocument is the row layout of the "menus" snapshot collection. Items
// holds a base64-encoded JSON array of MenuItem.
type MenuDocument struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	OwnerName   string    `json:"ownerName" gorm:"type:varchar(100)"`
	Title       string    `json:"title" gorm:"type:varchar(255)"`
	Items       string    `json:"items" gorm:"type:text"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (MenuDocument) TableName() string {
	return "menus"
}
