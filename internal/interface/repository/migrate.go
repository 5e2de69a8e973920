package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the relational schema: admin accounts and
// the two ledger tables. The swap ledger carries a real foreign key to
// admins(admin_id) so writes with an unrecognized admin id are rejected
// by the database, not silently stored.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Admin{}, &SwapHistory{}, &CollectionHistory{}); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	const constraint = "fk_swap_history_admin"
	if !db.Migrator().HasConstraint(&SwapHistory{}, constraint) {
		err := db.Exec(
			"ALTER TABLE swap_history ADD CONSTRAINT " + constraint +
				" FOREIGN KEY (admin_id) REFERENCES admins(admin_id)",
		).Error
		if err != nil {
			return fmt.Errorf("adding %s: %w", constraint, err)
		}
	}
	return nil
}
