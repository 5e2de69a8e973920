package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
)

// GormAdminRepository implements the admin account store on postgres.
type GormAdminRepository struct {
	db *gorm.DB
}

// NewGormAdminRepository creates a new GORM admin repository.
func NewGormAdminRepository(db *gorm.DB) repository.AdminRepository {
	return &GormAdminRepository{db: db}
}

// Admin GORM model for database mapping. AdminID is the value the swap
// ledger references; it is distinct from the surrogate primary key.
type Admin struct {
	ID           uint   `gorm:"primaryKey"`
	AdminID      string `gorm:"column:admin_id;uniqueIndex"`
	Name         string `gorm:"column:name"`
	Phone        string `gorm:"column:phone;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash"`
}

// TableName overrides the default table name.
func (Admin) TableName() string {
	return "admins"
}

// FindByPhone returns the admin account registered under a phone
// number, or (nil, nil) when none exists.
func (r *GormAdminRepository) FindByPhone(ctx context.Context, phone string) (*entity.Admin, error) {
	var row Admin
	result := r.db.WithContext(ctx).Where("phone = ?", phone).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &entity.Admin{
		AdminID:      row.AdminID,
		Name:         row.Name,
		Phone:        row.Phone,
		PasswordHash: row.PasswordHash,
	}, nil
}
