package persistence

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/TmanScript/umoja-swap-collection/internal/interface/repository"
)

// NewPostgres opens the relational store and runs schema migration for
// the admin and ledger tables.
func NewPostgres(uri string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(uri), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := repository.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
