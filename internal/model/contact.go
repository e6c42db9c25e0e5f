package model

import "time"

type Contact struct {
	ID     uint   `gorm:"primaryKey;autoIncrement;index" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`

	FirstName string    `gorm:"size:25;not null" json:"first_name"`
	LastName  string    `gorm:"size:30;not null" json:"last_name"`
	Phone     string    `gorm:"size:13;not null" json:"phone"`
	Birthday  time.Time `json:"birthday"`
	Inform    string    `gorm:"size:150" json:"inform"`

	// The contact's own address, unrelated to the owning user's login email
	Email string `json:"email"`
}
