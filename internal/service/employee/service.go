package employee

import (
	"context"
	"errors"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/repository/postgresql"
)

// Service owns the employee master: CRUD plus the bulk import merge.
type Service struct {
	tx           postgresql.Transactor
	employeeRepo employee.Repository
}

func NewService(tx postgresql.Transactor, employeeRepo employee.Repository) *Service {
	return &Service{tx: tx, employeeRepo: employeeRepo}
}

func (s *Service) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]employee.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// Upsert creates the employee or fully replaces an existing record with
// the same ID.
func (s *Service) Upsert(ctx context.Context, req employee.UpsertEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	incoming := req.ToEmployee()

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	switch {
	case err == nil:
		return s.employeeRepo.Update(ctx, merge(existing, incoming))
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return s.employeeRepo.Create(ctx, incoming)
	default:
		return employee.Employee{}, err
	}
}

// merge folds an imported row into the stored record. Fields a sheet
// cannot carry are preserved: the photo stays, and service records are
// appended rather than replaced.
func merge(existing, incoming employee.Employee) employee.Employee {
	if incoming.PhotoURL == nil {
		incoming.PhotoURL = existing.PhotoURL
	}
	if len(incoming.ServiceRecords) > 0 {
		incoming.ServiceRecords = append(existing.ServiceRecords, incoming.ServiceRecords...)
	} else {
		incoming.ServiceRecords = existing.ServiceRecords
	}
	incoming.CreatedAt = existing.CreatedAt
	return incoming
}

// BulkImport upserts a sheet of employee rows in one transaction. Rows
// with an existing ID merge; the rest create.
func (s *Service) BulkImport(ctx context.Context, req employee.BulkImportRequest) (employee.BulkImportResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.BulkImportResponse{}, err
	}

	var resp employee.BulkImportResponse
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, row := range req.Employees {
			incoming := row.ToEmployee()

			existing, err := s.employeeRepo.GetByID(txCtx, row.ID)
			switch {
			case err == nil:
				if _, err := s.employeeRepo.Update(txCtx, merge(existing, incoming)); err != nil {
					return err
				}
				resp.Merged++
			case errors.Is(err, employee.ErrEmployeeNotFound):
				if _, err := s.employeeRepo.Create(txCtx, incoming); err != nil {
					return err
				}
				resp.Created++
			default:
				return err
			}
			resp.IDs = append(resp.IDs, row.ID)
		}
		return nil
	})
	if err != nil {
		return employee.BulkImportResponse{}, err
	}

	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.employeeRepo.Delete(ctx, id)
}
