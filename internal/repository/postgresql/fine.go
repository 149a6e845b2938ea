package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/database"
)

type fineRepositoryImpl struct {
	db *database.DB
}

func NewFineRepository(db *database.DB) ledger.FineRepository {
	return &fineRepositoryImpl{db: db}
}

func (r *fineRepositoryImpl) Upsert(ctx context.Context, f ledger.FineRecord) (ledger.FineRecord, error) {
	q := GetQuerier(ctx, r.db)

	if f.ID == "" {
		f.ID = uuid.New().String()
	}

	query := `
		INSERT INTO fine_records (id, employee_id, month, year, amount, reason, tax)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, month, year) DO UPDATE SET
			amount = EXCLUDED.amount,
			reason = EXCLUDED.reason,
			tax = EXCLUDED.tax,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		f.ID, f.EmployeeID, f.Month, f.Year, f.Amount, f.Reason, f.Tax,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return ledger.FineRecord{}, fmt.Errorf("failed to upsert fine record: %w", err)
	}

	return f, nil
}

func (r *fineRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (ledger.FineRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, year, amount, reason, tax, created_at, updated_at
		FROM fine_records
		WHERE employee_id = $1 AND month = $2 AND year = $3
	`

	var f ledger.FineRecord
	err := q.QueryRow(ctx, query, employeeID, month, year).Scan(
		&f.ID, &f.EmployeeID, &f.Month, &f.Year, &f.Amount, &f.Reason, &f.Tax,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.FineRecord{}, ledger.ErrFineNotFound
		}
		return ledger.FineRecord{}, fmt.Errorf("failed to get fine record: %w", err)
	}

	return f, nil
}

func (r *fineRepositoryImpl) ListByPeriod(ctx context.Context, month, year int) ([]ledger.FineRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, year, amount, reason, tax, created_at, updated_at
		FROM fine_records
		WHERE month = $1 AND year = $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list fine records: %w", err)
	}
	defer rows.Close()

	var records []ledger.FineRecord
	for rows.Next() {
		var f ledger.FineRecord
		err := rows.Scan(
			&f.ID, &f.EmployeeID, &f.Month, &f.Year, &f.Amount, &f.Reason, &f.Tax,
			&f.CreatedAt, &f.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
