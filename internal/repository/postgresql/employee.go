package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, name, designation, division, branch, site,
	pan, uan, pf_number, esi_number,
	basic, da, retaining_allowance, hra, conveyance, washing, attire,
	special1, special2, special3,
	pf_exempt, esi_exempt, pf_higher_wages, higher_pension_opted, vpf_rate,
	doj, dol, photo_url, service_records, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var serviceRecords []byte
	err := row.Scan(
		&e.ID, &e.Name, &e.Designation, &e.Division, &e.Branch, &e.Site,
		&e.PAN, &e.UAN, &e.PFNumber, &e.ESINumber,
		&e.Wage.Basic, &e.Wage.DA, &e.Wage.RetainingAllowance, &e.Wage.HRA,
		&e.Wage.Conveyance, &e.Wage.Washing, &e.Wage.Attire,
		&e.Wage.Special1, &e.Wage.Special2, &e.Wage.Special3,
		&e.PFExempt, &e.ESIExempt, &e.PFHigherWages, &e.HigherPensionOpted, &e.VPFRate,
		&e.DOJ, &e.DOL, &e.PhotoURL, &serviceRecords, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	if len(serviceRecords) > 0 {
		if err := json.Unmarshal(serviceRecords, &e.ServiceRecords); err != nil {
			return employee.Employee{}, fmt.Errorf("failed to decode service records: %w", err)
		}
	}
	return e, nil
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	serviceRecords, err := json.Marshal(e.ServiceRecords)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to encode service records: %w", err)
	}

	query := `
		INSERT INTO employees (
			id, name, designation, division, branch, site,
			pan, uan, pf_number, esi_number,
			basic, da, retaining_allowance, hra, conveyance, washing, attire,
			special1, special2, special3,
			pf_exempt, esi_exempt, pf_higher_wages, higher_pension_opted, vpf_rate,
			doj, dol, photo_url, service_records
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29
		)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		e.ID, e.Name, e.Designation, e.Division, e.Branch, e.Site,
		e.PAN, e.UAN, e.PFNumber, e.ESINumber,
		e.Wage.Basic, e.Wage.DA, e.Wage.RetainingAllowance, e.Wage.HRA,
		e.Wage.Conveyance, e.Wage.Washing, e.Wage.Attire,
		e.Wage.Special1, e.Wage.Special2, e.Wage.Special3,
		e.PFExempt, e.ESIExempt, e.PFHigherWages, e.HigherPensionOpted, e.VPFRate,
		e.DOJ, e.DOL, e.PhotoURL, serviceRecords,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return e, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *employeeRepositoryImpl) ListActive(ctx context.Context, periodStart time.Time) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE dol IS NULL OR dol >= $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, periodStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	serviceRecords, err := json.Marshal(e.ServiceRecords)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to encode service records: %w", err)
	}

	query := `
		UPDATE employees SET
			name = $2, designation = $3, division = $4, branch = $5, site = $6,
			pan = $7, uan = $8, pf_number = $9, esi_number = $10,
			basic = $11, da = $12, retaining_allowance = $13, hra = $14,
			conveyance = $15, washing = $16, attire = $17,
			special1 = $18, special2 = $19, special3 = $20,
			pf_exempt = $21, esi_exempt = $22, pf_higher_wages = $23,
			higher_pension_opted = $24, vpf_rate = $25,
			doj = $26, dol = $27, photo_url = $28, service_records = $29,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		e.ID, e.Name, e.Designation, e.Division, e.Branch, e.Site,
		e.PAN, e.UAN, e.PFNumber, e.ESINumber,
		e.Wage.Basic, e.Wage.DA, e.Wage.RetainingAllowance, e.Wage.HRA,
		e.Wage.Conveyance, e.Wage.Washing, e.Wage.Attire,
		e.Wage.Special1, e.Wage.Special2, e.Wage.Special3,
		e.PFExempt, e.ESIExempt, e.PFHigherWages, e.HigherPensionOpted, e.VPFRate,
		e.DOJ, e.DOL, e.PhotoURL, serviceRecords,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee %s: %w", e.ID, err)
	}

	return e, nil
}

func (r *employeeRepositoryImpl) UpdateWage(ctx context.Context, id string, wage employee.WageStructure) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			basic = $2, da = $3, retaining_allowance = $4, hra = $5,
			conveyance = $6, washing = $7, attire = $8,
			special1 = $9, special2 = $10, special3 = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		id,
		wage.Basic, wage.DA, wage.RetainingAllowance, wage.HRA,
		wage.Conveyance, wage.Washing, wage.Attire,
		wage.Special1, wage.Special2, wage.Special3,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update wage for employee %s: %w", id, err)
	}

	return nil
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
