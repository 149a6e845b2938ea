package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/domain/payroll"
	"github.com/vetanpay/payroll-backend-go/internal/domain/statutory"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

// FinalizationChecker reports whether a payroll period is locked.
type FinalizationChecker interface {
	IsFinalized(ctx context.Context, month, year int) (bool, error)
}

// LeavePolicyProvider supplies the configured per-year leave credits.
type LeavePolicyProvider interface {
	GetLeavePolicy(ctx context.Context) (statutory.LeavePolicy, error)
}

// Service owns manual edits to the leave and advance ledgers and the fine
// records. Edits carry the period they are entered against so a finalized
// month stays immutable.
type Service struct {
	employeeRepo employee.Repository
	leaveRepo    ledger.LeaveLedgerRepository
	advanceRepo  ledger.AdvanceLedgerRepository
	fineRepo     ledger.FineRepository
	periods      FinalizationChecker
	policies     LeavePolicyProvider
}

func NewService(
	employeeRepo employee.Repository,
	leaveRepo ledger.LeaveLedgerRepository,
	advanceRepo ledger.AdvanceLedgerRepository,
	fineRepo ledger.FineRepository,
	periods FinalizationChecker,
	policies LeavePolicyProvider,
) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		leaveRepo:    leaveRepo,
		advanceRepo:  advanceRepo,
		fineRepo:     fineRepo,
		periods:      periods,
		policies:     policies,
	}
}

func (s *Service) guardPeriod(ctx context.Context, month, year int) error {
	finalized, err := s.periods.IsFinalized(ctx, month, year)
	if err != nil {
		return err
	}
	if finalized {
		return payroll.ErrPeriodFinalized
	}
	return nil
}

// GetLeaveLedger returns the employee's running leave ledger.
func (s *Service) GetLeaveLedger(ctx context.Context, employeeID string) (ledger.LeaveLedger, error) {
	return s.leaveRepo.GetByEmployee(ctx, employeeID)
}

// UpdateLeaveLedger applies a manual ledger-screen edit. Only the fields
// present in the request change; balances are always re-derived. The save
// is optimistic: a stale version is rejected so two operators cannot
// silently clobber each other.
func (s *Service) UpdateLeaveLedger(ctx context.Context, req ledger.UpdateLeaveLedgerRequest) (ledger.LeaveLedger, error) {
	if err := req.Validate(); err != nil {
		return ledger.LeaveLedger{}, err
	}
	if err := s.guardPeriod(ctx, req.Month, req.Year); err != nil {
		return ledger.LeaveLedger{}, err
	}

	lgr, err := s.leaveRepo.GetByEmployee(ctx, req.EmployeeID)
	exists := err == nil
	if err != nil {
		if !errors.Is(err, ledger.ErrLeaveLedgerNotFound) {
			return ledger.LeaveLedger{}, fmt.Errorf("failed to load leave ledger: %w", err)
		}
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return ledger.LeaveLedger{}, err
		}
		lgr = ledger.LeaveLedger{EmployeeID: req.EmployeeID}
	}

	if exists && lgr.Version != req.Version {
		return ledger.LeaveLedger{}, ledger.ErrLedgerVersionConflict
	}

	if req.ELOpening != nil {
		lgr.EL.Opening = *req.ELOpening
	}
	if req.ELEligible != nil {
		lgr.EL.Eligible = *req.ELEligible
	}
	if req.ELEncashed != nil {
		lgr.EL.Encashed = *req.ELEncashed
	}
	if req.ELAvailed != nil {
		lgr.EL.Availed = *req.ELAvailed
	}
	if req.SLEligible != nil {
		lgr.SL.Eligible = *req.SLEligible
	}
	if req.SLAvailed != nil {
		lgr.SL.Availed = *req.SLAvailed
	}
	if req.CLAccumulation != nil {
		lgr.CL.Accumulation = *req.CLAccumulation
	}
	if req.CLAvailed != nil {
		lgr.CL.Availed = *req.CLAvailed
	}
	if err := s.checkLeavePolicy(ctx, lgr); err != nil {
		return ledger.LeaveLedger{}, err
	}
	lgr.Recalculate()

	if exists {
		return s.leaveRepo.Save(ctx, lgr)
	}
	return s.leaveRepo.Upsert(ctx, lgr)
}

// checkLeavePolicy bounds a manual edit by the configured leave policy.
// No policy on record means unbounded credits.
func (s *Service) checkLeavePolicy(ctx context.Context, l ledger.LeaveLedger) error {
	policy, err := s.policies.GetLeavePolicy(ctx)
	if err != nil {
		if errors.Is(err, statutory.ErrLeavePolicyNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load leave policy: %w", err)
	}

	var errs validator.ValidationErrors
	if l.EL.Eligible.GreaterThan(policy.ELPerYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "el_eligible",
			Message: "eligible " + l.EL.Eligible.String() + " exceeds yearly credit " + policy.ELPerYear.String(),
		})
	}
	if l.EL.Opening.GreaterThan(policy.ELMaxCarryForward) {
		errs = append(errs, validator.ValidationError{
			Field:   "el_opening",
			Message: "opening " + l.EL.Opening.String() + " exceeds carry-forward cap " + policy.ELMaxCarryForward.String(),
		})
	}
	if l.SL.Eligible.GreaterThan(policy.SLPerYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "sl_eligible",
			Message: "eligible " + l.SL.Eligible.String() + " exceeds yearly credit " + policy.SLPerYear.String(),
		})
	}
	if l.CL.Accumulation.GreaterThan(policy.CLPerYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "cl_accumulation",
			Message: "accumulation " + l.CL.Accumulation.String() + " exceeds yearly credit " + policy.CLPerYear.String(),
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GetAdvanceLedger returns the employee's running advance record.
func (s *Service) GetAdvanceLedger(ctx context.Context, employeeID string) (ledger.AdvanceLedger, error) {
	return s.advanceRepo.GetByEmployee(ctx, employeeID)
}

// ListAdvanceLedgers returns every advance record.
func (s *Service) ListAdvanceLedgers(ctx context.Context) ([]ledger.AdvanceLedger, error) {
	return s.advanceRepo.ListAll(ctx)
}

// UpdateAdvanceLedger applies a manual edit to the advance running record
// and re-derives the balance.
func (s *Service) UpdateAdvanceLedger(ctx context.Context, req ledger.UpdateAdvanceLedgerRequest) (ledger.AdvanceLedger, error) {
	if err := req.Validate(); err != nil {
		return ledger.AdvanceLedger{}, err
	}
	if err := s.guardPeriod(ctx, req.Month, req.Year); err != nil {
		return ledger.AdvanceLedger{}, err
	}

	adv, err := s.advanceRepo.GetByEmployee(ctx, req.EmployeeID)
	if err != nil {
		if !errors.Is(err, ledger.ErrAdvanceLedgerNotFound) {
			return ledger.AdvanceLedger{}, fmt.Errorf("failed to load advance ledger: %w", err)
		}
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return ledger.AdvanceLedger{}, err
		}
		adv = ledger.AdvanceLedger{EmployeeID: req.EmployeeID}
	}

	if req.Opening != nil {
		adv.Opening = *req.Opening
	}
	if req.TotalAdvance != nil {
		adv.TotalAdvance = *req.TotalAdvance
	}
	if req.MonthlyInstallment != nil {
		adv.MonthlyInstallment = *req.MonthlyInstallment
	}
	if req.PaidAmount != nil {
		adv.PaidAmount = *req.PaidAmount
	}
	adv.Recalculate()

	return s.advanceRepo.Upsert(ctx, adv)
}

// SaveFine records a fine, and optionally the manual income-tax figure,
// for one employee's period.
func (s *Service) SaveFine(ctx context.Context, req ledger.SaveFineRequest) (ledger.FineRecord, error) {
	if err := req.Validate(); err != nil {
		return ledger.FineRecord{}, err
	}
	if err := s.guardPeriod(ctx, req.Month, req.Year); err != nil {
		return ledger.FineRecord{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return ledger.FineRecord{}, err
	}

	return s.fineRepo.Upsert(ctx, ledger.FineRecord{
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Year:       req.Year,
		Amount:     req.Amount,
		Reason:     req.Reason,
		Tax:        req.Tax,
	})
}

// ListFines returns every fine recorded in the period.
func (s *Service) ListFines(ctx context.Context, month, year int) ([]ledger.FineRecord, error) {
	return s.fineRepo.ListByPeriod(ctx, month, year)
}
