package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/statutory"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/database"
)

type statutoryRepositoryImpl struct {
	db *database.DB
}

func NewStatutoryRepository(db *database.DB) statutory.Repository {
	return &statutoryRepositoryImpl{db: db}
}

// A single active row holds the whole configuration; the calculator always
// reads the latest one.
func (r *statutoryRepositoryImpl) GetConfig(ctx context.Context) (statutory.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id,
			epf_ceiling, epf_employee_rate, epf_employer_rate, eps_rate, edli_rate,
			esi_ceiling, esi_employee_rate, esi_employer_rate,
			pt_slabs, pt_cycle,
			lwf_employee_amount, lwf_employer_amount, lwf_cycle, lwf_months,
			bonus_rate, bonus_wage_ceiling,
			updated_at
		FROM statutory_configs
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var c statutory.Config
	var ptSlabs, lwfMonths []byte
	err := q.QueryRow(ctx, query).Scan(
		&c.ID,
		&c.EPFCeiling, &c.EPFEmployeeRate, &c.EPFEmployerRate, &c.EPSRate, &c.EDLIRate,
		&c.ESICeiling, &c.ESIEmployeeRate, &c.ESIEmployerRate,
		&ptSlabs, &c.PTCycle,
		&c.LWFEmployeeAmount, &c.LWFEmployerAmount, &c.LWFCycle, &lwfMonths,
		&c.BonusRate, &c.BonusWageCeiling,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return statutory.Config{}, statutory.ErrConfigNotFound
		}
		return statutory.Config{}, fmt.Errorf("failed to get statutory config: %w", err)
	}

	if err := json.Unmarshal(ptSlabs, &c.PTSlabs); err != nil {
		return statutory.Config{}, fmt.Errorf("failed to decode pt slabs: %w", err)
	}
	if err := json.Unmarshal(lwfMonths, &c.LWFMonths); err != nil {
		return statutory.Config{}, fmt.Errorf("failed to decode lwf months: %w", err)
	}

	return c, nil
}

func (r *statutoryRepositoryImpl) UpsertConfig(ctx context.Context, c statutory.Config) (statutory.Config, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if len(c.LWFMonths) == 0 {
		c.LWFMonths = statutory.DefaultLWFMonths(c.LWFCycle)
	}

	ptSlabs, err := json.Marshal(c.PTSlabs)
	if err != nil {
		return statutory.Config{}, fmt.Errorf("failed to encode pt slabs: %w", err)
	}
	lwfMonths, err := json.Marshal(c.LWFMonths)
	if err != nil {
		return statutory.Config{}, fmt.Errorf("failed to encode lwf months: %w", err)
	}

	query := `
		INSERT INTO statutory_configs (
			id,
			epf_ceiling, epf_employee_rate, epf_employer_rate, eps_rate, edli_rate,
			esi_ceiling, esi_employee_rate, esi_employer_rate,
			pt_slabs, pt_cycle,
			lwf_employee_amount, lwf_employer_amount, lwf_cycle, lwf_months,
			bonus_rate, bonus_wage_ceiling
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			epf_ceiling = EXCLUDED.epf_ceiling,
			epf_employee_rate = EXCLUDED.epf_employee_rate,
			epf_employer_rate = EXCLUDED.epf_employer_rate,
			eps_rate = EXCLUDED.eps_rate,
			edli_rate = EXCLUDED.edli_rate,
			esi_ceiling = EXCLUDED.esi_ceiling,
			esi_employee_rate = EXCLUDED.esi_employee_rate,
			esi_employer_rate = EXCLUDED.esi_employer_rate,
			pt_slabs = EXCLUDED.pt_slabs,
			pt_cycle = EXCLUDED.pt_cycle,
			lwf_employee_amount = EXCLUDED.lwf_employee_amount,
			lwf_employer_amount = EXCLUDED.lwf_employer_amount,
			lwf_cycle = EXCLUDED.lwf_cycle,
			lwf_months = EXCLUDED.lwf_months,
			bonus_rate = EXCLUDED.bonus_rate,
			bonus_wage_ceiling = EXCLUDED.bonus_wage_ceiling,
			updated_at = NOW()
		RETURNING updated_at
	`

	err = q.QueryRow(ctx, query,
		c.ID,
		c.EPFCeiling, c.EPFEmployeeRate, c.EPFEmployerRate, c.EPSRate, c.EDLIRate,
		c.ESICeiling, c.ESIEmployeeRate, c.ESIEmployerRate,
		ptSlabs, c.PTCycle,
		c.LWFEmployeeAmount, c.LWFEmployerAmount, c.LWFCycle, lwfMonths,
		c.BonusRate, c.BonusWageCeiling,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return statutory.Config{}, fmt.Errorf("failed to upsert statutory config: %w", err)
	}

	return c, nil
}

func (r *statutoryRepositoryImpl) GetLeavePolicy(ctx context.Context) (statutory.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, el_per_year, el_max_carry_forward, sl_per_year, cl_per_year, updated_at
		FROM leave_policies
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var p statutory.LeavePolicy
	err := q.QueryRow(ctx, query).Scan(
		&p.ID, &p.ELPerYear, &p.ELMaxCarryForward, &p.SLPerYear, &p.CLPerYear, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return statutory.LeavePolicy{}, statutory.ErrLeavePolicyNotFound
		}
		return statutory.LeavePolicy{}, fmt.Errorf("failed to get leave policy: %w", err)
	}

	return p, nil
}

func (r *statutoryRepositoryImpl) UpsertLeavePolicy(ctx context.Context, p statutory.LeavePolicy) (statutory.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leave_policies (id, el_per_year, el_max_carry_forward, sl_per_year, cl_per_year)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			el_per_year = EXCLUDED.el_per_year,
			el_max_carry_forward = EXCLUDED.el_max_carry_forward,
			sl_per_year = EXCLUDED.sl_per_year,
			cl_per_year = EXCLUDED.cl_per_year,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.ELPerYear, p.ELMaxCarryForward, p.SLPerYear, p.CLPerYear,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return statutory.LeavePolicy{}, fmt.Errorf("failed to upsert leave policy: %w", err)
	}

	return p, nil
}
