package arrear

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/domain/arrear"
	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/domain/payroll"
	"github.com/vetanpay/payroll-backend-go/internal/domain/user"
	"github.com/vetanpay/payroll-backend-go/internal/repository/postgresql"
)

// Service owns wage-revision arrear batches: drafting, recomputation and
// the finalization that rewrites employee master wages.
type Service struct {
	tx           postgresql.Transactor
	arrearRepo   arrear.Repository
	employeeRepo employee.Repository
	payrollRepo  payroll.Repository
}

func NewService(
	tx postgresql.Transactor,
	arrearRepo arrear.Repository,
	employeeRepo employee.Repository,
	payrollRepo payroll.Repository,
) *Service {
	return &Service{
		tx:           tx,
		arrearRepo:   arrearRepo,
		employeeRepo: employeeRepo,
		payrollRepo:  payrollRepo,
	}
}

// CreateDraft builds a draft arrear batch from a revision request. An
// employee enters the batch only when the revised gross strictly exceeds
// the current one and a finalized payroll exists for the effective period;
// everyone else lands in the exclusion list with the reason.
func (s *Service) CreateDraft(ctx context.Context, req arrear.CreateBatchRequest) (arrear.Batch, error) {
	if err := req.Validate(); err != nil {
		return arrear.Batch{}, err
	}

	elapsed := arrear.ElapsedMonths(req.EffectiveMonth, req.EffectiveYear, req.Month, req.Year)
	if elapsed <= 0 {
		return arrear.Batch{}, arrear.ErrEffectiveNotPast
	}

	records, excluded, err := s.buildRecords(ctx, req, elapsed)
	if err != nil {
		return arrear.Batch{}, err
	}
	if len(records) == 0 {
		return arrear.Batch{}, arrear.ErrNoEligibleEmployees
	}

	return s.arrearRepo.CreateBatch(ctx, arrear.Batch{
		Month:          req.Month,
		Year:           req.Year,
		EffectiveMonth: req.EffectiveMonth,
		EffectiveYear:  req.EffectiveYear,
		Status:         arrear.StatusDraft,
		Records:        records,
		Excluded:       excluded,
	})
}

func (s *Service) buildRecords(ctx context.Context, req arrear.CreateBatchRequest, elapsed int) ([]arrear.Record, []arrear.Exclusion, error) {
	targets, err := s.revisionTargets(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(targets))
	for id := range targets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var records []arrear.Record
	var excluded []arrear.Exclusion
	for _, id := range ids {
		emp := targets[id]

		eligible, err := s.payrollRepo.HasFinalizedResult(ctx, id, req.EffectiveMonth, req.EffectiveYear)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check eligibility for %s: %w", id, err)
		}
		if !eligible {
			excluded = append(excluded, arrear.Exclusion{
				EmployeeID: id,
				Reason:     "no finalized payroll in the effective period",
			})
			continue
		}

		var revised employee.WageStructure
		switch req.RevisionType {
		case arrear.RevisionPercentage:
			pct, ok := req.EmployeePercents[id]
			if !ok {
				pct = *req.FlatPercent
			}
			revised = ApplyPercent(emp.Wage, pct)
		case arrear.RevisionAdHoc:
			revised = ApplyDeltas(emp.Wage, req.EmployeeDeltas[id])
		default:
			return nil, nil, arrear.ErrInvalidRevisionType
		}

		delta := revised.Gross().Sub(emp.Wage.Gross())
		if !delta.IsPositive() {
			excluded = append(excluded, arrear.Exclusion{
				EmployeeID: id,
				Reason:     "revised gross does not exceed the current gross",
			})
			continue
		}

		records = append(records, BuildRecord(id, emp.Wage, revised, elapsed))
	}

	return records, excluded, nil
}

// revisionTargets resolves which employees the revision addresses: the
// named ones in per-employee modes, or the whole active roll for a flat
// percentage.
func (s *Service) revisionTargets(ctx context.Context, req arrear.CreateBatchRequest) (map[string]employee.Employee, error) {
	targets := map[string]employee.Employee{}

	named := make([]string, 0, len(req.EmployeePercents)+len(req.EmployeeDeltas))
	for id := range req.EmployeePercents {
		named = append(named, id)
	}
	for id := range req.EmployeeDeltas {
		named = append(named, id)
	}

	if req.RevisionType == arrear.RevisionPercentage && req.FlatPercent != nil {
		periodStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
		employees, err := s.employeeRepo.ListActive(ctx, periodStart)
		if err != nil {
			return nil, fmt.Errorf("failed to list active employees: %w", err)
		}
		for _, emp := range employees {
			targets[emp.ID] = emp
		}
	}

	for _, id := range named {
		if _, ok := targets[id]; ok {
			continue
		}
		emp, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		targets[id] = emp
	}

	return targets, nil
}

// GetBatch returns one batch with its records and exclusions.
func (s *Service) GetBatch(ctx context.Context, id string) (arrear.Batch, error) {
	return s.arrearRepo.GetBatchByID(ctx, id)
}

// ListBatches returns every batch, newest processing period first.
func (s *Service) ListBatches(ctx context.Context) ([]arrear.Batch, error) {
	return s.arrearRepo.ListBatches(ctx)
}

// Recompute refreshes a draft batch against the current employee master:
// old wages are re-read, deltas and totals re-derived, and records whose
// delta is no longer positive move to the exclusion list. The revised
// wages proposed at draft time are kept as the targets.
func (s *Service) Recompute(ctx context.Context, batchID string) (arrear.Batch, error) {
	b, err := s.arrearRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		return arrear.Batch{}, err
	}
	if b.Status == arrear.StatusFinalized {
		return arrear.Batch{}, arrear.ErrBatchFinalized
	}

	elapsed := arrear.ElapsedMonths(b.EffectiveMonth, b.EffectiveYear, b.Month, b.Year)

	var records []arrear.Record
	excluded := b.Excluded
	for _, rec := range b.Records {
		emp, err := s.employeeRepo.GetByID(ctx, rec.EmployeeID)
		if err != nil {
			if err == employee.ErrEmployeeNotFound {
				excluded = append(excluded, arrear.Exclusion{
					EmployeeID: rec.EmployeeID,
					Reason:     "employee no longer exists",
				})
				continue
			}
			return arrear.Batch{}, err
		}

		delta := rec.NewWage.Gross().Sub(emp.Wage.Gross())
		if !delta.IsPositive() {
			excluded = append(excluded, arrear.Exclusion{
				EmployeeID: rec.EmployeeID,
				Reason:     "revised gross does not exceed the current gross",
			})
			continue
		}

		records = append(records, BuildRecord(rec.EmployeeID, emp.Wage, rec.NewWage, elapsed))
	}

	if err := s.arrearRepo.ReplaceRecords(ctx, batchID, records, excluded); err != nil {
		return arrear.Batch{}, err
	}

	return s.arrearRepo.GetBatchByID(ctx, batchID)
}

// Finalize locks the batch and overwrites each included employee's master
// wage with the revised structure, in one transaction. There is no
// un-finalize: a wrong batch is corrected by a fresh revision.
func (s *Service) Finalize(ctx context.Context, actor user.Role, batchID string) (arrear.Batch, error) {
	if !actor.CanFinalize() {
		return arrear.Batch{}, user.ErrAdminAccessRequired
	}

	b, err := s.arrearRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		return arrear.Batch{}, err
	}
	if b.Status == arrear.StatusFinalized {
		return arrear.Batch{}, arrear.ErrBatchFinalized
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, rec := range b.Records {
			if err := s.employeeRepo.UpdateWage(txCtx, rec.EmployeeID, rec.NewWage); err != nil {
				return fmt.Errorf("failed to apply revised wage for %s: %w", rec.EmployeeID, err)
			}
		}

		return s.arrearRepo.SetStatus(txCtx, batchID, arrear.StatusFinalized)
	})
	if err != nil {
		return arrear.Batch{}, err
	}

	b.Status = arrear.StatusFinalized
	return b, nil
}

// TotalArrear sums a batch's record totals.
func TotalArrear(b arrear.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range b.Records {
		total = total.Add(rec.TotalArrear)
	}
	return total
}
