package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/domain/payroll"
	"github.com/vetanpay/payroll-backend-go/internal/domain/statutory"
	"github.com/vetanpay/payroll-backend-go/internal/domain/user"
	"github.com/vetanpay/payroll-backend-go/internal/repository/postgresql"
)

type Service struct {
	tx             postgresql.Transactor
	calculator     *Calculator
	payrollRepo    payroll.Repository
	employeeRepo   employee.Repository
	attendanceRepo ledger.AttendanceRepository
	leaveRepo      ledger.LeaveLedgerRepository
	advanceRepo    ledger.AdvanceLedgerRepository
	fineRepo       ledger.FineRepository
	statutoryRepo  statutory.Repository

	mu      sync.Mutex
	periods map[string]*sync.Mutex
}

func NewService(
	tx postgresql.Transactor,
	calculator *Calculator,
	payrollRepo payroll.Repository,
	employeeRepo employee.Repository,
	attendanceRepo ledger.AttendanceRepository,
	leaveRepo ledger.LeaveLedgerRepository,
	advanceRepo ledger.AdvanceLedgerRepository,
	fineRepo ledger.FineRepository,
	statutoryRepo statutory.Repository,
) *Service {
	return &Service{
		tx:             tx,
		calculator:     calculator,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		advanceRepo:    advanceRepo,
		fineRepo:       fineRepo,
		statutoryRepo:  statutoryRepo,
		periods:        map[string]*sync.Mutex{},
	}
}

// periodLock serializes RunBatch, Freeze and Unlock per month/year so two
// concurrent requests cannot interleave reads and writes of one period.
func (s *Service) periodLock(month, year int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%d-%02d", year, month)
	if _, ok := s.periods[key]; !ok {
		s.periods[key] = &sync.Mutex{}
	}
	return s.periods[key]
}

// IsFinalized reports whether the period carries at least one finalized
// result. A finalized period rejects all recalculation and ledger edits.
func (s *Service) IsFinalized(ctx context.Context, month, year int) (bool, error) {
	statuses, err := s.payrollRepo.PeriodStatuses(ctx, month, year)
	if err != nil {
		return false, fmt.Errorf("failed to load period statuses: %w", err)
	}
	for _, st := range statuses {
		if st == payroll.StatusFinalized {
			return true, nil
		}
	}
	return false, nil
}

// RunBatch recalculates the whole period for every active employee and
// upserts draft results. Finalized periods are rejected. Per-employee
// failures are collected, not fatal: one bad record never sinks the batch.
func (s *Service) RunBatch(ctx context.Context, month, year int) (payroll.BatchSummary, error) {
	lock := s.periodLock(month, year)
	lock.Lock()
	defer lock.Unlock()

	finalized, err := s.IsFinalized(ctx, month, year)
	if err != nil {
		return payroll.BatchSummary{}, err
	}
	if finalized {
		return payroll.BatchSummary{}, payroll.ErrPeriodFinalized
	}

	cfg, err := s.statutoryRepo.GetConfig(ctx)
	if err != nil {
		return payroll.BatchSummary{}, fmt.Errorf("failed to load statutory config: %w", err)
	}

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := periodStart.AddDate(0, 1, -1).Day()

	employees, err := s.employeeRepo.ListActive(ctx, periodStart)
	if err != nil {
		return payroll.BatchSummary{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	summary := payroll.BatchSummary{Month: month, Year: year}

	// Attendance imported for an employee who is not on the active rolls
	// is skipped, not computed, and reported back to the operator.
	activeIDs := make(map[string]struct{}, len(employees))
	for _, emp := range employees {
		activeIDs[emp.ID] = struct{}{}
	}
	attendances, err := s.attendanceRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return payroll.BatchSummary{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	for _, att := range attendances {
		if _, ok := activeIDs[att.EmployeeID]; !ok {
			summary.Skipped = append(summary.Skipped, att.EmployeeID)
		}
	}

	for _, emp := range employees {
		result, err := s.calculateOne(ctx, emp, cfg, month, year, daysInMonth)
		if err != nil {
			summary.Failures = append(summary.Failures, payroll.BatchFailure{
				EmployeeID: emp.ID,
				Reason:     err.Error(),
			})
			continue
		}
		if _, err := s.payrollRepo.Upsert(ctx, result); err != nil {
			summary.Failures = append(summary.Failures, payroll.BatchFailure{
				EmployeeID: emp.ID,
				Reason:     fmt.Sprintf("failed to save result: %v", err),
			})
			continue
		}
		summary.Processed++
	}

	// Employees off the active rolls keep their outstanding advances on
	// the books. The batch cannot deduct from them, so it surfaces them
	// for recovery-pending follow-up.
	advances, err := s.advanceRepo.ListAll(ctx)
	if err != nil {
		return payroll.BatchSummary{}, fmt.Errorf("failed to list advance ledgers: %w", err)
	}
	for _, adv := range advances {
		if _, ok := activeIDs[adv.EmployeeID]; ok {
			continue
		}
		if adv.Balance.IsPositive() {
			summary.RecoveryPending = append(summary.RecoveryPending, adv.EmployeeID)
		}
	}

	return summary, nil
}

func (s *Service) calculateOne(ctx context.Context, emp employee.Employee, cfg statutory.Config, month, year, daysInMonth int) (payroll.Result, error) {
	input := CalculationInput{
		Employee:    emp,
		Config:      cfg,
		Month:       month,
		Year:        year,
		DaysInMonth: daysInMonth,
	}

	att, err := s.attendanceRepo.GetByEmployeePeriod(ctx, emp.ID, month, year)
	switch {
	case err == nil:
		input.Attendance = &att
	case !errors.Is(err, ledger.ErrAttendanceNotFound):
		return payroll.Result{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	adv, err := s.advanceRepo.GetByEmployee(ctx, emp.ID)
	switch {
	case err == nil:
		input.Advance = &adv
	case !errors.Is(err, ledger.ErrAdvanceLedgerNotFound):
		return payroll.Result{}, fmt.Errorf("failed to load advance ledger: %w", err)
	}

	fine, err := s.fineRepo.GetByEmployeePeriod(ctx, emp.ID, month, year)
	switch {
	case err == nil:
		input.Fine = &fine
	case !errors.Is(err, ledger.ErrFineNotFound):
		return payroll.Result{}, fmt.Errorf("failed to load fine record: %w", err)
	}

	return s.calculator.Calculate(input)
}

// Freeze flips every draft result in the period to finalized, snapshots
// each employee's live leave ledger onto the result, and applies the
// period's advance recoveries to the advance ledgers. All in one
// transaction so a crash can never leave a half-finalized period.
func (s *Service) Freeze(ctx context.Context, actor user.Role, month, year int) error {
	if !actor.CanFinalize() {
		return user.ErrAdminAccessRequired
	}

	lock := s.periodLock(month, year)
	lock.Lock()
	defer lock.Unlock()

	results, err := s.payrollRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return fmt.Errorf("failed to list period results: %w", err)
	}
	if len(results) == 0 {
		return payroll.ErrNoDraftResults
	}
	for _, r := range results {
		if r.Status == payroll.StatusFinalized {
			return payroll.ErrPeriodFinalized
		}
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.SetPeriodStatus(txCtx, month, year, payroll.StatusFinalized); err != nil {
			return fmt.Errorf("failed to finalize period: %w", err)
		}

		for _, r := range results {
			snapshot, err := s.leaveRepo.GetByEmployee(txCtx, r.EmployeeID)
			if err == nil {
				if err := s.payrollRepo.SetLeaveSnapshot(txCtx, r.EmployeeID, month, year, snapshot); err != nil {
					return fmt.Errorf("failed to snapshot leave ledger for %s: %w", r.EmployeeID, err)
				}
			} else if !errors.Is(err, ledger.ErrLeaveLedgerNotFound) {
				return fmt.Errorf("failed to load leave ledger for %s: %w", r.EmployeeID, err)
			}

			if !r.Deductions.AdvanceRecovery.IsPositive() {
				continue
			}
			adv, err := s.advanceRepo.GetByEmployee(txCtx, r.EmployeeID)
			if err != nil {
				if errors.Is(err, ledger.ErrAdvanceLedgerNotFound) {
					continue
				}
				return fmt.Errorf("failed to load advance ledger for %s: %w", r.EmployeeID, err)
			}
			adv.PaidAmount = adv.PaidAmount.Add(r.Deductions.AdvanceRecovery)
			adv.Recalculate()
			if _, err := s.advanceRepo.Upsert(txCtx, adv); err != nil {
				return fmt.Errorf("failed to apply advance recovery for %s: %w", r.EmployeeID, err)
			}
		}

		return nil
	})
}

// Unlock reverts the period's results to draft so it can be recalculated.
// Applied advance recoveries are not rolled back here; a subsequent
// freeze applies recovery again on the re-computed figures.
func (s *Service) Unlock(ctx context.Context, actor user.Role, month, year int) error {
	if !actor.CanFinalize() {
		return user.ErrAdminAccessRequired
	}

	lock := s.periodLock(month, year)
	lock.Lock()
	defer lock.Unlock()

	finalized, err := s.IsFinalized(ctx, month, year)
	if err != nil {
		return err
	}
	if !finalized {
		return payroll.ErrPeriodNotFinalized
	}

	if err := s.payrollRepo.SetPeriodStatus(ctx, month, year, payroll.StatusDraft); err != nil {
		return fmt.Errorf("failed to unlock period: %w", err)
	}
	return nil
}

// ListPeriod returns every stored result for the period.
func (s *Service) ListPeriod(ctx context.Context, month, year int) ([]payroll.Result, error) {
	results, err := s.payrollRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list period results: %w", err)
	}
	return results, nil
}

// GetResult returns one employee's stored result for the period.
func (s *Service) GetResult(ctx context.Context, employeeID string, month, year int) (payroll.Result, error) {
	return s.payrollRepo.GetByEmployeePeriod(ctx, employeeID, month, year)
}

// PeriodStatus summarizes where the period sits in the draft/finalized
// state machine.
func (s *Service) PeriodStatus(ctx context.Context, month, year int) (payroll.PeriodStatusResponse, error) {
	statuses, err := s.payrollRepo.PeriodStatuses(ctx, month, year)
	if err != nil {
		return payroll.PeriodStatusResponse{}, fmt.Errorf("failed to load period statuses: %w", err)
	}
	total, err := s.payrollRepo.CountByPeriodStatus(ctx, month, year, payroll.StatusDraft)
	if err != nil {
		return payroll.PeriodStatusResponse{}, fmt.Errorf("failed to count draft results: %w", err)
	}
	finalized, err := s.payrollRepo.CountByPeriodStatus(ctx, month, year, payroll.StatusFinalized)
	if err != nil {
		return payroll.PeriodStatusResponse{}, fmt.Errorf("failed to count finalized results: %w", err)
	}
	total += finalized

	if len(statuses) > 1 {
		return payroll.PeriodStatusResponse{}, payroll.ErrMixedPeriodStatus
	}

	status := payroll.StatusDraft
	if total > 0 && finalized == total {
		status = payroll.StatusFinalized
	}
	return payroll.PeriodStatusResponse{
		Month:     month,
		Year:      year,
		Status:    string(status),
		Results:   total,
		Finalized: status == payroll.StatusFinalized,
	}, nil
}
