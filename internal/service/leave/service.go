package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/domain/payroll"
	"github.com/vetanpay/payroll-backend-go/internal/repository/postgresql"
)

// FinalizationChecker reports whether a payroll period is locked.
type FinalizationChecker interface {
	IsFinalized(ctx context.Context, month, year int) (bool, error)
}

// Service owns attendance imports and the leave reconciliation that runs
// with them.
type Service struct {
	tx             postgresql.Transactor
	employeeRepo   employee.Repository
	attendanceRepo ledger.AttendanceRepository
	leaveRepo      ledger.LeaveLedgerRepository
	periods        FinalizationChecker
}

func NewService(
	tx postgresql.Transactor,
	employeeRepo employee.Repository,
	attendanceRepo ledger.AttendanceRepository,
	leaveRepo ledger.LeaveLedgerRepository,
	periods FinalizationChecker,
) *Service {
	return &Service{
		tx:             tx,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		periods:        periods,
	}
}

// SaveAttendance validates and stores one attendance record, reconciling
// the employee's leave ledger in the same transaction. A re-save for the
// same period supersedes the earlier record rather than double counting
// its leave.
func (s *Service) SaveAttendance(ctx context.Context, req ledger.SaveAttendanceRequest) (ledger.SaveAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.SaveAttendanceResponse{}, err
	}

	finalized, err := s.periods.IsFinalized(ctx, req.Month, req.Year)
	if err != nil {
		return ledger.SaveAttendanceResponse{}, err
	}
	if finalized {
		return ledger.SaveAttendanceResponse{}, payroll.ErrPeriodFinalized
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return ledger.SaveAttendanceResponse{}, err
	}

	next := req.ToAttendance()

	var prev *ledger.Attendance
	existing, err := s.attendanceRepo.GetByEmployeePeriod(ctx, req.EmployeeID, req.Month, req.Year)
	switch {
	case err == nil:
		prev = &existing
	case !errors.Is(err, ledger.ErrAttendanceNotFound):
		return ledger.SaveAttendanceResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	lgr, err := s.leaveRepo.GetByEmployee(ctx, req.EmployeeID)
	ledgerExists := err == nil
	if err != nil {
		if !errors.Is(err, ledger.ErrLeaveLedgerNotFound) {
			return ledger.SaveAttendanceResponse{}, fmt.Errorf("failed to load leave ledger: %w", err)
		}
		lgr = ledger.LeaveLedger{EmployeeID: req.EmployeeID}
	}

	if err := ValidateUsage(lgr, prev, next); err != nil {
		return ledger.SaveAttendanceResponse{}, err
	}

	reconciled := Reconcile(lgr, prev, next)

	var resp ledger.SaveAttendanceResponse
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		saved, err := s.attendanceRepo.Upsert(txCtx, next)
		if err != nil {
			return err
		}

		var savedLedger ledger.LeaveLedger
		if ledgerExists {
			savedLedger, err = s.leaveRepo.Save(txCtx, reconciled)
		} else {
			savedLedger, err = s.leaveRepo.Upsert(txCtx, reconciled)
		}
		if err != nil {
			return err
		}

		resp = ledger.SaveAttendanceResponse{
			Attendance:  saved,
			LeaveLedger: savedLedger,
		}
		return nil
	})
	if err != nil {
		return ledger.SaveAttendanceResponse{}, err
	}

	periodStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := periodStart.AddDate(0, 1, -1).Day()
	if next.TotalDays().GreaterThan(decimal.NewFromInt(int64(daysInMonth))) {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf(
			"attendance total %s exceeds %d days in month", next.TotalDays().String(), daysInMonth))
	}

	return resp, nil
}

// GetAttendance returns one stored record.
func (s *Service) GetAttendance(ctx context.Context, employeeID string, month, year int) (ledger.Attendance, error) {
	return s.attendanceRepo.GetByEmployeePeriod(ctx, employeeID, month, year)
}

// ListAttendance returns every record in the period.
func (s *Service) ListAttendance(ctx context.Context, month, year int) ([]ledger.Attendance, error) {
	return s.attendanceRepo.ListByPeriod(ctx, month, year)
}
