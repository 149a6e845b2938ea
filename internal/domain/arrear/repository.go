package arrear

import "context"

type Repository interface {
	CreateBatch(ctx context.Context, b Batch) (Batch, error)
	GetBatchByID(ctx context.Context, id string) (Batch, error)
	ListBatches(ctx context.Context) ([]Batch, error)
	// ReplaceRecords swaps a draft batch's records and exclusions.
	ReplaceRecords(ctx context.Context, batchID string, records []Record, excluded []Exclusion) error
	SetStatus(ctx context.Context, batchID string, status Status) error
}
