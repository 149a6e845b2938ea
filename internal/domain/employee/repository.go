package employee

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	// ListActive returns employees on the rolls at the given period start
	// (no date of leaving, or one on/after periodStart).
	ListActive(ctx context.Context, periodStart time.Time) ([]Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	// UpdateWage overwrites only the ten wage components. Used by arrear
	// finalization.
	UpdateWage(ctx context.Context, id string, wage WageStructure) error
	Delete(ctx context.Context, id string) error
}
