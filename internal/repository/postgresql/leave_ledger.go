package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/database"
)

type leaveLedgerRepositoryImpl struct {
	db *database.DB
}

func NewLeaveLedgerRepository(db *database.DB) ledger.LeaveLedgerRepository {
	return &leaveLedgerRepositoryImpl{db: db}
}

const leaveLedgerColumns = `
	employee_id,
	el_opening, el_eligible, el_encashed, el_availed, el_balance,
	sl_eligible, sl_availed, sl_balance,
	cl_accumulation, cl_availed, cl_balance,
	version, updated_at
`

func scanLeaveLedger(row pgx.Row) (ledger.LeaveLedger, error) {
	var l ledger.LeaveLedger
	err := row.Scan(
		&l.EmployeeID,
		&l.EL.Opening, &l.EL.Eligible, &l.EL.Encashed, &l.EL.Availed, &l.EL.Balance,
		&l.SL.Eligible, &l.SL.Availed, &l.SL.Balance,
		&l.CL.Accumulation, &l.CL.Availed, &l.CL.Balance,
		&l.Version, &l.UpdatedAt,
	)
	return l, err
}

func (r *leaveLedgerRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) (ledger.LeaveLedger, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveLedgerColumns + ` FROM leave_ledgers WHERE employee_id = $1`

	l, err := scanLeaveLedger(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.LeaveLedger{}, ledger.ErrLeaveLedgerNotFound
		}
		return ledger.LeaveLedger{}, fmt.Errorf("failed to get leave ledger: %w", err)
	}

	return l, nil
}

// Save writes the ledger only when the stored version still matches the
// one the caller read. The version column is the concurrency guard for
// read-modify-write cycles on a shared ledger row.
func (r *leaveLedgerRepositoryImpl) Save(ctx context.Context, l ledger.LeaveLedger) (ledger.LeaveLedger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_ledgers SET
			el_opening = $2, el_eligible = $3, el_encashed = $4, el_availed = $5, el_balance = $6,
			sl_eligible = $7, sl_availed = $8, sl_balance = $9,
			cl_accumulation = $10, cl_availed = $11, cl_balance = $12,
			version = version + 1, updated_at = NOW()
		WHERE employee_id = $1 AND version = $13
		RETURNING version, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.EmployeeID,
		l.EL.Opening, l.EL.Eligible, l.EL.Encashed, l.EL.Availed, l.EL.Balance,
		l.SL.Eligible, l.SL.Availed, l.SL.Balance,
		l.CL.Accumulation, l.CL.Availed, l.CL.Balance,
		l.Version,
	).Scan(&l.Version, &l.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.LeaveLedger{}, ledger.ErrLedgerVersionConflict
		}
		return ledger.LeaveLedger{}, fmt.Errorf("failed to save leave ledger: %w", err)
	}

	return l, nil
}

func (r *leaveLedgerRepositoryImpl) Upsert(ctx context.Context, l ledger.LeaveLedger) (ledger.LeaveLedger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_ledgers (
			employee_id,
			el_opening, el_eligible, el_encashed, el_availed, el_balance,
			sl_eligible, sl_availed, sl_balance,
			cl_accumulation, cl_availed, cl_balance,
			version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1)
		ON CONFLICT (employee_id) DO UPDATE SET
			el_opening = EXCLUDED.el_opening,
			el_eligible = EXCLUDED.el_eligible,
			el_encashed = EXCLUDED.el_encashed,
			el_availed = EXCLUDED.el_availed,
			el_balance = EXCLUDED.el_balance,
			sl_eligible = EXCLUDED.sl_eligible,
			sl_availed = EXCLUDED.sl_availed,
			sl_balance = EXCLUDED.sl_balance,
			cl_accumulation = EXCLUDED.cl_accumulation,
			cl_availed = EXCLUDED.cl_availed,
			cl_balance = EXCLUDED.cl_balance,
			version = leave_ledgers.version + 1,
			updated_at = NOW()
		RETURNING version, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.EmployeeID,
		l.EL.Opening, l.EL.Eligible, l.EL.Encashed, l.EL.Availed, l.EL.Balance,
		l.SL.Eligible, l.SL.Availed, l.SL.Balance,
		l.CL.Accumulation, l.CL.Availed, l.CL.Balance,
	).Scan(&l.Version, &l.UpdatedAt)
	if err != nil {
		return ledger.LeaveLedger{}, fmt.Errorf("failed to upsert leave ledger: %w", err)
	}

	return l, nil
}
