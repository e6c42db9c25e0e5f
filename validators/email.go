// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmailEmpty   = errors.New("no email address provided")
	ErrEmailInvalid = errors.New("invalid email address provided")
)

// EmailValidator accepts plain addresses only. Display names and
// domains without a dot get rejected even though they parse.
func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return ErrEmailInvalid
	}

	domain := e[strings.LastIndex(e, "@")+1:]
	if !strings.Contains(domain, ".") {
		return ErrEmailInvalid
	}

	return nil
}
