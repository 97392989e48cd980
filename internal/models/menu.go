package models

import (
	"time"

	"github.com/google/uuid"
)

type FoodCategory string

const (
	CategoryVegetable FoodCategory = "Vegetable"
	CategoryMeat      FoodCategory = "Meat"
	CategorySoup      FoodCategory = "Soup"
	CategoryMixed     FoodCategory = "Mixed"
)

func (c FoodCategory) Valid() bool {
	switch c {
	case CategoryVegetable, CategoryMeat, CategorySoup, CategoryMixed:
		return true
	default:
		return false
	}
}

type MenuItem struct {
	ID          uuid.UUID    `json:"id" validate:"required"`
	Name        string       `json:"name" validate:"required,max=100"`
	Description string       `json:"description" validate:"max=500"`
	Category    FoodCategory `json:"category" validate:"required,oneof=Vegetable Meat Soup Mixed"`
	IsAvailable bool         `json:"isAvailable"`
}

// NewMenuItem returns an available item with a fresh id.
func NewMenuItem(name, description string, category FoodCategory) MenuItem {
	return MenuItem{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Category:    category,
		IsAvailable: true,
	}
}

// Menu is the domain aggregate shared between the editor, the snapshot
// store and the joined-menu list. RoomNumber is set only while a room is
// associated with the menu.
type Menu struct {
	ID          uuid.UUID  `json:"id"`
	OwnerName   string     `json:"ownerName"`
	Title       string     `json:"title"`
	Items       []MenuItem `json:"items"`
	RoomNumber  *string    `json:"roomNumber,omitempty"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

const DefaultMenuTitle = "My Menu"

func NewMenu(ownerName, title string) Menu {
	if title == "" {
		title = DefaultMenuTitle
	}
	return Menu{
		ID:          uuid.New(),
		OwnerName:   ownerName,
		Title:       title,
		Items:       []MenuItem{},
		LastUpdated: time.Now().UTC(),
	}
}

// Clone returns a deep copy; later edits of either copy are not visible in
// the other.
func (m Menu) Clone() Menu {
	out := m
	out.Items = make([]MenuItem, len(m.Items))
	copy(out.Items, m.Items)
	if m.RoomNumber != nil {
		code := *m.RoomNumber
		out.RoomNumber = &code
	}
	return out
}

func (m *Menu) touch() {
	m.LastUpdated = time.Now().UTC()
}

func (m *Menu) SetTitle(title string) {
	m.Title = title
	m.touch()
}

func (m *Menu) AddItem(item MenuItem) {
	m.Items = append(m.Items, item)
	m.touch()
}

// UpdateItem replaces the item with the same id and reports whether one was
// found.
func (m *Menu) UpdateItem(item MenuItem) bool {
	for i := range m.Items {
		if m.Items[i].ID == item.ID {
			m.Items[i] = item
			m.touch()
			return true
		}
	}
	return false
}

func (m *Menu) DeleteItem(id uuid.UUID) bool {
	for i := range m.Items {
		if m.Items[i].ID == id {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			m.touch()
			return true
		}
	}
	return false
}

func (m *Menu) SetRoomNumber(code string) {
	m.RoomNumber = &code
	m.touch()
}

// ClearRoomNumber forgets the associated room. The items are unchanged, so
// lastUpdated is left alone.
func (m *Menu) ClearRoomNumber() {
	m.RoomNumber = nil
}
