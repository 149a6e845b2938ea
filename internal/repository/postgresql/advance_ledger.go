package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/database"
)

type advanceLedgerRepositoryImpl struct {
	db *database.DB
}

func NewAdvanceLedgerRepository(db *database.DB) ledger.AdvanceLedgerRepository {
	return &advanceLedgerRepositoryImpl{db: db}
}

func (r *advanceLedgerRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) (ledger.AdvanceLedger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, opening, total_advance, monthly_installment, paid_amount, balance, updated_at
		FROM advance_ledgers
		WHERE employee_id = $1
	`

	var a ledger.AdvanceLedger
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&a.EmployeeID, &a.Opening, &a.TotalAdvance, &a.MonthlyInstallment,
		&a.PaidAmount, &a.Balance, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.AdvanceLedger{}, ledger.ErrAdvanceLedgerNotFound
		}
		return ledger.AdvanceLedger{}, fmt.Errorf("failed to get advance ledger: %w", err)
	}

	return a, nil
}

func (r *advanceLedgerRepositoryImpl) Upsert(ctx context.Context, a ledger.AdvanceLedger) (ledger.AdvanceLedger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO advance_ledgers (
			employee_id, opening, total_advance, monthly_installment, paid_amount, balance
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id) DO UPDATE SET
			opening = EXCLUDED.opening,
			total_advance = EXCLUDED.total_advance,
			monthly_installment = EXCLUDED.monthly_installment,
			paid_amount = EXCLUDED.paid_amount,
			balance = EXCLUDED.balance,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID, a.Opening, a.TotalAdvance, a.MonthlyInstallment, a.PaidAmount, a.Balance,
	).Scan(&a.UpdatedAt)
	if err != nil {
		return ledger.AdvanceLedger{}, fmt.Errorf("failed to upsert advance ledger: %w", err)
	}

	return a, nil
}

func (r *advanceLedgerRepositoryImpl) ListAll(ctx context.Context) ([]ledger.AdvanceLedger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, opening, total_advance, monthly_installment, paid_amount, balance, updated_at
		FROM advance_ledgers
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list advance ledgers: %w", err)
	}
	defer rows.Close()

	var ledgers []ledger.AdvanceLedger
	for rows.Next() {
		var a ledger.AdvanceLedger
		err := rows.Scan(
			&a.EmployeeID, &a.Opening, &a.TotalAdvance, &a.MonthlyInstallment,
			&a.PaidAmount, &a.Balance, &a.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ledgers, nil
}
