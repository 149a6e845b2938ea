package ledger

import "context"

type AttendanceRepository interface {
	// Upsert supersedes any existing record for the same
	// (employee, month, year).
	Upsert(ctx context.Context, a Attendance) (Attendance, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (Attendance, error)
	ListByPeriod(ctx context.Context, month, year int) ([]Attendance, error)
}

type LeaveLedgerRepository interface {
	GetByEmployee(ctx context.Context, employeeID string) (LeaveLedger, error)
	// Save writes the ledger if the stored version still matches
	// l.Version, bumping it by one; otherwise ErrLedgerVersionConflict.
	Save(ctx context.Context, l LeaveLedger) (LeaveLedger, error)
	// Upsert creates the ledger on first use, version 1.
	Upsert(ctx context.Context, l LeaveLedger) (LeaveLedger, error)
}

type AdvanceLedgerRepository interface {
	GetByEmployee(ctx context.Context, employeeID string) (AdvanceLedger, error)
	Upsert(ctx context.Context, a AdvanceLedger) (AdvanceLedger, error)
	ListAll(ctx context.Context) ([]AdvanceLedger, error)
}

type FineRepository interface {
	Upsert(ctx context.Context, f FineRecord) (FineRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (FineRecord, error)
	ListByPeriod(ctx context.Context, month, year int) ([]FineRecord, error)
}
