package client

import "time"

// User mirrors the account fields the server exposes.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsAvailable bool   `json:"isAvailable"`
}

type Menu struct {
	ID          string     `json:"id"`
	OwnerName   string     `json:"ownerName"`
	Title       string     `json:"title"`
	Items       []MenuItem `json:"items"`
	RoomNumber  *string    `json:"roomNumber,omitempty"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

type Room struct {
	RoomNumber     string    `json:"roomNumber"`
	UserID         string    `json:"userId"`
	MenuID         string    `json:"menuId"`
	CreationDate   time.Time `json:"creationDate"`
	ExpirationDate time.Time `json:"expirationDate"`
}

type ItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}
