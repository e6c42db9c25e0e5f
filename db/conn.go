// Package db opens the backing relational store
package db

import (
	"fmt"

	"okravets/contacts-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the configured database (sqlite for small setups, postgres
// for real ones) and migrates the schema
func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	dsn := viper.GetString("db.dsn")

	switch viper.GetString("db.driver") {
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	if err := db.AutoMigrate(model.User{}, model.Contact{}); err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
