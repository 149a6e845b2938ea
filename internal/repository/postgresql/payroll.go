package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/domain/payroll"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `
	id, employee_id, month, year, status,
	earnings, deductions, employer_contributions, wage_bases,
	gratuity_accrual, net_pay, payable_days, days_in_month,
	esi_remark, warnings, leave_snapshot,
	created_at, updated_at
`

func scanPayrollResult(row pgx.Row) (payroll.Result, error) {
	var res payroll.Result
	var earnings, deductions, contributions, bases, warnings, snapshot []byte
	err := row.Scan(
		&res.ID, &res.EmployeeID, &res.Month, &res.Year, &res.Status,
		&earnings, &deductions, &contributions, &bases,
		&res.GratuityAccrual, &res.NetPay, &res.PayableDays, &res.DaysInMonth,
		&res.ESIRemark, &warnings, &snapshot,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return payroll.Result{}, err
	}

	if err := json.Unmarshal(earnings, &res.Earnings); err != nil {
		return payroll.Result{}, fmt.Errorf("failed to decode earnings: %w", err)
	}
	if err := json.Unmarshal(deductions, &res.Deductions); err != nil {
		return payroll.Result{}, fmt.Errorf("failed to decode deductions: %w", err)
	}
	if err := json.Unmarshal(contributions, &res.EmployerContributions); err != nil {
		return payroll.Result{}, fmt.Errorf("failed to decode employer contributions: %w", err)
	}
	if err := json.Unmarshal(bases, &res.WageBases); err != nil {
		return payroll.Result{}, fmt.Errorf("failed to decode wage bases: %w", err)
	}
	if len(warnings) > 0 {
		if err := json.Unmarshal(warnings, &res.Warnings); err != nil {
			return payroll.Result{}, fmt.Errorf("failed to decode warnings: %w", err)
		}
	}
	if len(snapshot) > 0 {
		var l ledger.LeaveLedger
		if err := json.Unmarshal(snapshot, &l); err != nil {
			return payroll.Result{}, fmt.Errorf("failed to decode leave snapshot: %w", err)
		}
		res.LeaveSnapshot = &l
	}

	return res, nil
}

func (r *payrollRepositoryImpl) Upsert(ctx context.Context, res payroll.Result) (payroll.Result, error) {
	q := GetQuerier(ctx, r.db)

	if res.ID == "" {
		res.ID = uuid.New().String()
	}

	earnings, err := json.Marshal(res.Earnings)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("failed to encode earnings: %w", err)
	}
	deductions, err := json.Marshal(res.Deductions)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("failed to encode deductions: %w", err)
	}
	contributions, err := json.Marshal(res.EmployerContributions)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("failed to encode employer contributions: %w", err)
	}
	bases, err := json.Marshal(res.WageBases)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("failed to encode wage bases: %w", err)
	}
	warnings, err := json.Marshal(res.Warnings)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("failed to encode warnings: %w", err)
	}

	query := `
		INSERT INTO payroll_results (
			id, employee_id, month, year, status,
			earnings, deductions, employer_contributions, wage_bases,
			gratuity_accrual, net_pay, payable_days, days_in_month,
			esi_remark, warnings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (employee_id, month, year) DO UPDATE SET
			status = EXCLUDED.status,
			earnings = EXCLUDED.earnings,
			deductions = EXCLUDED.deductions,
			employer_contributions = EXCLUDED.employer_contributions,
			wage_bases = EXCLUDED.wage_bases,
			gratuity_accrual = EXCLUDED.gratuity_accrual,
			net_pay = EXCLUDED.net_pay,
			payable_days = EXCLUDED.payable_days,
			days_in_month = EXCLUDED.days_in_month,
			esi_remark = EXCLUDED.esi_remark,
			warnings = EXCLUDED.warnings,
			leave_snapshot = NULL,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		res.ID, res.EmployeeID, res.Month, res.Year, res.Status,
		earnings, deductions, contributions, bases,
		res.GratuityAccrual, res.NetPay, res.PayableDays, res.DaysInMonth,
		res.ESIRemark, warnings,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("failed to upsert payroll result: %w", err)
	}

	return res, nil
}

func (r *payrollRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.Result, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payroll_results WHERE employee_id = $1 AND month = $2 AND year = $3`

	res, err := scanPayrollResult(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Result{}, payroll.ErrResultNotFound
		}
		return payroll.Result{}, fmt.Errorf("failed to get payroll result: %w", err)
	}

	return res, nil
}

func (r *payrollRepositoryImpl) ListByPeriod(ctx context.Context, month, year int) ([]payroll.Result, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payroll_results WHERE month = $1 AND year = $2 ORDER BY employee_id`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll results: %w", err)
	}
	defer rows.Close()

	var results []payroll.Result
	for rows.Next() {
		res, err := scanPayrollResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *payrollRepositoryImpl) PeriodStatuses(ctx context.Context, month, year int) ([]payroll.Status, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT DISTINCT status FROM payroll_results WHERE month = $1 AND year = $2`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query period statuses: %w", err)
	}
	defer rows.Close()

	var statuses []payroll.Status
	for rows.Next() {
		var s payroll.Status
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

func (r *payrollRepositoryImpl) SetPeriodStatus(ctx context.Context, month, year int, status payroll.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payroll_results SET status = $3, updated_at = NOW() WHERE month = $1 AND year = $2`

	tag, err := q.Exec(ctx, query, month, year, status)
	if err != nil {
		return fmt.Errorf("failed to set period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrNoDraftResults
	}

	return nil
}

func (r *payrollRepositoryImpl) SetLeaveSnapshot(ctx context.Context, employeeID string, month, year int, snapshot ledger.LeaveLedger) error {
	q := GetQuerier(ctx, r.db)

	encoded, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode leave snapshot: %w", err)
	}

	query := `
		UPDATE payroll_results SET leave_snapshot = $4, updated_at = NOW()
		WHERE employee_id = $1 AND month = $2 AND year = $3
		RETURNING id
	`

	var id string
	if err := q.QueryRow(ctx, query, employeeID, month, year, encoded).Scan(&id); err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrResultNotFound
		}
		return fmt.Errorf("failed to set leave snapshot: %w", err)
	}

	return nil
}

func (r *payrollRepositoryImpl) HasFinalizedResult(ctx context.Context, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_results
			WHERE employee_id = $1 AND month = $2 AND year = $3 AND status = $4
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, month, year, payroll.StatusFinalized).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check finalized result: %w", err)
	}

	return exists, nil
}

func (r *payrollRepositoryImpl) CountByPeriodStatus(ctx context.Context, month, year int, status payroll.Status) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM payroll_results WHERE month = $1 AND year = $2 AND status = $3`

	var count int
	if err := q.QueryRow(ctx, query, month, year, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payroll results: %w", err)
	}

	return count, nil
}
