package repository

import (
	"fmt"
	"testing"
	"time"

	"okravets/contacts-api/internal/model"
	"okravets/contacts-api/validators"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Contact{}))

	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           "u-" + email,
		Email:        email,
		PasswordHash: "hash",
		Created:      time.Now(),
		Verified:     true,
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

func testFields(firstName string) *validators.ContactFields {
	return &validators.ContactFields{
		FirstName: firstName,
		LastName:  "Tester",
		Phone:     "123456789",
		Birthday:  time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		Inform:    "note",
		Email:     "contact@example.com",
	}
}
