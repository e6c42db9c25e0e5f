package validators

import (
	"errors"
	"time"
)

const (
	maxFirstNameLen = 25
	maxLastNameLen  = 30
	maxPhoneLen     = 13
	maxInformLen    = 150
)

var (
	ErrFirstNameEmpty   = errors.New("no first name provided")
	ErrFirstNameTooLong = errors.New("first name is too long")
	ErrLastNameEmpty    = errors.New("no last name provided")
	ErrLastNameTooLong  = errors.New("last name is too long")
	ErrPhoneEmpty       = errors.New("no phone number provided")
	ErrPhoneTooLong     = errors.New("phone number is too long")
	ErrInformTooLong    = errors.New("inform note is too long")
	ErrBirthdayInFuture = errors.New("birthday can't be in the future")
)

// ContactFields holds the mutable fields of a contact as submitted
// by a client, before they're copied onto a database row
type ContactFields struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Birthday  time.Time `json:"birthday"`
	Inform    string    `json:"inform"`
	Email     string    `json:"email"`
}

func ContactValidator(f *ContactFields) error {
	if f.FirstName == "" {
		return ErrFirstNameEmpty
	}

	if len(f.FirstName) > maxFirstNameLen {
		return ErrFirstNameTooLong
	}

	if f.LastName == "" {
		return ErrLastNameEmpty
	}

	if len(f.LastName) > maxLastNameLen {
		return ErrLastNameTooLong
	}

	if f.Phone == "" {
		return ErrPhoneEmpty
	}

	if len(f.Phone) > maxPhoneLen {
		return ErrPhoneTooLong
	}

	if len(f.Inform) > maxInformLen {
		return ErrInformTooLong
	}

	if f.Birthday.After(time.Now()) {
		return ErrBirthdayInFuture
	}

	if f.Email != "" {
		return EmailValidator(f.Email)
	}

	return nil
}
