package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) ledger.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, a ledger.Attendance) (ledger.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, month, year,
			present_days, earned_leave, encashed_days, sick_leave, casual_leave, lop_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id, month, year) DO UPDATE SET
			present_days = EXCLUDED.present_days,
			earned_leave = EXCLUDED.earned_leave,
			encashed_days = EXCLUDED.encashed_days,
			sick_leave = EXCLUDED.sick_leave,
			casual_leave = EXCLUDED.casual_leave,
			lop_days = EXCLUDED.lop_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.Month, a.Year,
		a.PresentDays, a.EarnedLeave, a.EncashedDays, a.SickLeave, a.CasualLeave, a.LOPDays,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return ledger.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (ledger.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, year,
			present_days, earned_leave, encashed_days, sick_leave, casual_leave, lop_days,
			created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND month = $2 AND year = $3
	`

	var a ledger.Attendance
	err := q.QueryRow(ctx, query, employeeID, month, year).Scan(
		&a.ID, &a.EmployeeID, &a.Month, &a.Year,
		&a.PresentDays, &a.EarnedLeave, &a.EncashedDays, &a.SickLeave, &a.CasualLeave, &a.LOPDays,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Attendance{}, ledger.ErrAttendanceNotFound
		}
		return ledger.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepositoryImpl) ListByPeriod(ctx context.Context, month, year int) ([]ledger.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, year,
			present_days, earned_leave, encashed_days, sick_leave, casual_leave, lop_days,
			created_at, updated_at
		FROM attendances
		WHERE month = $1 AND year = $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []ledger.Attendance
	for rows.Next() {
		var a ledger.Attendance
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Month, &a.Year,
			&a.PresentDays, &a.EarnedLeave, &a.EncashedDays, &a.SickLeave, &a.CasualLeave, &a.LOPDays,
			&a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
