package models

type User struct {
	BaseModel
	Username     string `json:"username" gorm:"type:varchar(100);not null"`
	Email        string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"type:text;not null"`
}
