// Package repository implements user-scoped persistence for contacts and
// users on top of gorm. Every contact operation takes the owning user and
// filters by user_id, so a row owned by someone else is indistinguishable
// from a missing one.
package repository

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email is already registered")
	ErrInvalidFields  = errors.New("invalid fields")
)
