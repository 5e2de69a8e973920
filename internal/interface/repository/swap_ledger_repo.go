package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
	"github.com/TmanScript/umoja-swap-collection/pkg/utils"
)

// GormSwapLedgerRepository implements the swap ledger on postgres.
type GormSwapLedgerRepository struct {
	db *gorm.DB
}

// NewGormSwapLedgerRepository creates a new GORM swap ledger repository.
func NewGormSwapLedgerRepository(db *gorm.DB) repository.SwapLedgerRepository {
	return &GormSwapLedgerRepository{db: db}
}

// SwapHistory GORM model for database mapping. AdminID references
// admins.admin_id; inserts with an unknown admin fail with a
// foreign-key violation, which the swap workflow reports specially.
type SwapHistory struct {
	ID           uint   `gorm:"primaryKey"`
	CustomerID   string `gorm:"column:customer_id"`
	CustomerName string `gorm:"column:customer_name"`
	AdminID      string `gorm:"column:admin_id;index"`
	AdminName    string `gorm:"column:admin_name"`
	OldDevice    string `gorm:"column:old_device"`
	NewDevice    string `gorm:"column:new_device"`
	Date         string `gorm:"column:date"`
	Status       string `gorm:"column:status"`
}

// TableName overrides the default table name.
func (SwapHistory) TableName() string {
	return "swap_history"
}

// RecordSwap appends one swap attempt record.
func (r *GormSwapLedgerRepository) RecordSwap(ctx context.Context, record *entity.SwapRecord) error {
	row := SwapHistory{
		CustomerID:   record.CustomerID,
		CustomerName: record.CustomerName,
		AdminID:      record.AdminID,
		AdminName:    record.AdminName,
		OldDevice:    record.OldDevice,
		NewDevice:    record.NewDevice,
		Date:         record.Date,
		Status:       record.Status,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ledgerWriteError("record swap history", err)
	}
	record.ID = row.ID
	return nil
}

// GetSwapHistory returns one admin's records, most recent first. The
// admin id goes through the same coercion applied on writes so numeric
// and string forms address the same history.
func (r *GormSwapLedgerRepository) GetSwapHistory(ctx context.Context, adminID string) ([]entity.SwapRecord, error) {
	var rows []SwapHistory
	result := r.db.WithContext(ctx).
		Where("admin_id = ?", utils.CoerceAdminID(adminID)).
		Order("date DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]entity.SwapRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, entity.SwapRecord{
			ID:           row.ID,
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			AdminID:      row.AdminID,
			AdminName:    row.AdminName,
			OldDevice:    row.OldDevice,
			NewDevice:    row.NewDevice,
			Date:         row.Date,
			Status:       row.Status,
		})
	}
	return records, nil
}
