package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
)

// GormCollectionLedgerRepository implements the collection ledger on
// postgres.
type GormCollectionLedgerRepository struct {
	db *gorm.DB
}

// NewGormCollectionLedgerRepository creates a new GORM collection ledger
// repository.
func NewGormCollectionLedgerRepository(db *gorm.DB) repository.CollectionLedgerRepository {
	return &GormCollectionLedgerRepository{db: db}
}

// CollectionHistory GORM model for database mapping.
type CollectionHistory struct {
	ID         uint   `gorm:"primaryKey"`
	CustomerID string `gorm:"column:customer_id"`
	FullName   string `gorm:"column:full_name"`
	Barcode    string `gorm:"column:barcode"`
	SIM        string `gorm:"column:sim"`
	Agent      string `gorm:"column:agent;index"`
	Province   string `gorm:"column:province"`
	Date       string `gorm:"column:date"`
	CreatedAt  time.Time
}

// TableName overrides the default table name.
func (CollectionHistory) TableName() string {
	return "collection_history"
}

func collectionRecord(row CollectionHistory) entity.CollectionRecord {
	return entity.CollectionRecord{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		FullName:   row.FullName,
		Barcode:    row.Barcode,
		SIM:        row.SIM,
		Agent:      row.Agent,
		Province:   row.Province,
		Date:       row.Date,
		CreatedAt:  row.CreatedAt,
	}
}

// RecordCollection appends one collection record.
func (r *GormCollectionLedgerRepository) RecordCollection(ctx context.Context, record *entity.CollectionRecord) error {
	row := CollectionHistory{
		CustomerID: record.CustomerID,
		FullName:   record.FullName,
		Barcode:    record.Barcode,
		SIM:        record.SIM,
		Agent:      record.Agent,
		Province:   record.Province,
		Date:       record.Date,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ledgerWriteError("record collection history", err)
	}
	record.ID = row.ID
	record.CreatedAt = row.CreatedAt
	return nil
}

// GetCollectionHistory returns one agent's records, most recent first.
func (r *GormCollectionLedgerRepository) GetCollectionHistory(ctx context.Context, agent string) ([]entity.CollectionRecord, error) {
	var rows []CollectionHistory
	result := r.db.WithContext(ctx).
		Where("agent = ?", agent).
		Order("date DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]entity.CollectionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, collectionRecord(row))
	}
	return records, nil
}

// GetAllCollectionHistory returns every record ascending by date for the
// statistics aggregator.
func (r *GormCollectionLedgerRepository) GetAllCollectionHistory(ctx context.Context) ([]entity.CollectionRecord, error) {
	var rows []CollectionHistory
	result := r.db.WithContext(ctx).Order("date ASC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]entity.CollectionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, collectionRecord(row))
	}
	return records, nil
}
