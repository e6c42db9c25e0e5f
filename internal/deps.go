package internal

import (
	"okravets/contacts-api/internal/repository"
	"okravets/contacts-api/internal/service"
	"okravets/contacts-api/pkg/security"

	"gorm.io/gorm"
)

// Deps bundles everything the handlers need. It's built once at
// startup and passed down explicitly, no package-level state.
type Deps struct {
	DB       *gorm.DB
	Argon    *security.ArgonHash
	Tokens   *security.TokenMaker
	Users    *repository.UserRepo
	Contacts *repository.ContactRepo
	Auth     *service.Auth
	Mail     service.MailDispatcher
	Avatars  *service.AvatarStore
}
