package repository

import (
	"context"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
)

// SwapLedgerRepository is the append-only swap transaction history.
type SwapLedgerRepository interface {
	// RecordSwap appends one record. Insert rejections surface as
	// *entity.LedgerWriteError carrying the backend error code.
	RecordSwap(ctx context.Context, record *entity.SwapRecord) error
	// GetSwapHistory returns the acting admin's records, most recent
	// first. The admin id goes through the same numeric coercion
	// applied on writes.
	GetSwapHistory(ctx context.Context, adminID string) ([]entity.SwapRecord, error)
}

// CollectionLedgerRepository is the append-only collection history.
type CollectionLedgerRepository interface {
	RecordCollection(ctx context.Context, record *entity.CollectionRecord) error
	// GetCollectionHistory returns one agent's records, most recent first.
	GetCollectionHistory(ctx context.Context, agent string) ([]entity.CollectionRecord, error)
	// GetAllCollectionHistory returns every record ascending by date,
	// feeding the statistics aggregator.
	GetAllCollectionHistory(ctx context.Context) ([]entity.CollectionRecord, error)
}
