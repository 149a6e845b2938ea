package payroll

import (
	"context"

	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
)

type Repository interface {
	// Upsert writes a result keyed on (employee_id, month, year); re-runs
	// replace draft rows rather than duplicating them.
	Upsert(ctx context.Context, r Result) (Result, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (Result, error)
	ListByPeriod(ctx context.Context, month, year int) ([]Result, error)
	// PeriodStatuses returns the distinct statuses present for a period,
	// letting callers detect a partially-applied freeze.
	PeriodStatuses(ctx context.Context, month, year int) ([]Status, error)
	// SetPeriodStatus flips every result row for the period in one
	// statement.
	SetPeriodStatus(ctx context.Context, month, year int, status Status) error
	// SetLeaveSnapshot freezes a ledger copy onto one result row.
	SetLeaveSnapshot(ctx context.Context, employeeID string, month, year int, snapshot ledger.LeaveLedger) error
	// HasFinalizedResult reports whether the employee has a finalized
	// result in the given period (arrear eligibility).
	HasFinalizedResult(ctx context.Context, employeeID string, month, year int) (bool, error)
	CountByPeriodStatus(ctx context.Context, month, year int, status Status) (int, error)
}
