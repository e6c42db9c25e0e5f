// Package model defines database models
package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Username     string `json:"username"`
	Avatar       string `json:"avatar"`
	Roles        string `json:"roles"`
	Created      time.Time `gorm:"not null" json:"created"`
	Verified     bool   `gorm:"default:false" json:"verified"`

	// Currently active refresh token. Empty means the user has to log in
	// again before refreshing.
	RefreshToken string `json:"-"`

	Contacts []Contact `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
