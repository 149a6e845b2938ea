package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/arrear"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/database"
)

type arrearRepositoryImpl struct {
	db *database.DB
}

func NewArrearRepository(db *database.DB) arrear.Repository {
	return &arrearRepositoryImpl{db: db}
}

func (r *arrearRepositoryImpl) CreateBatch(ctx context.Context, b arrear.Batch) (arrear.Batch, error) {
	q := GetQuerier(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	excluded, err := json.Marshal(b.Excluded)
	if err != nil {
		return arrear.Batch{}, fmt.Errorf("failed to encode exclusions: %w", err)
	}

	query := `
		INSERT INTO arrear_batches (id, month, year, effective_month, effective_year, status, excluded)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		b.ID, b.Month, b.Year, b.EffectiveMonth, b.EffectiveYear, b.Status, excluded,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return arrear.Batch{}, fmt.Errorf("failed to create arrear batch: %w", err)
	}

	for i := range b.Records {
		b.Records[i].BatchID = b.ID
	}
	if err := r.insertRecords(ctx, b.ID, b.Records); err != nil {
		return arrear.Batch{}, err
	}

	return b, nil
}

func (r *arrearRepositoryImpl) insertRecords(ctx context.Context, batchID string, records []arrear.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO arrear_records (
			id, batch_id, employee_id, old_wage, new_wage,
			monthly_delta, elapsed_months, total_arrear
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		oldWage, err := json.Marshal(rec.OldWage)
		if err != nil {
			return fmt.Errorf("failed to encode old wage: %w", err)
		}
		newWage, err := json.Marshal(rec.NewWage)
		if err != nil {
			return fmt.Errorf("failed to encode new wage: %w", err)
		}
		_, err = q.Exec(ctx, query,
			rec.ID, batchID, rec.EmployeeID, oldWage, newWage,
			rec.MonthlyDelta, rec.ElapsedMonths, rec.TotalArrear,
		)
		if err != nil {
			return fmt.Errorf("failed to insert arrear record for %s: %w", rec.EmployeeID, err)
		}
	}

	return nil
}

func (r *arrearRepositoryImpl) GetBatchByID(ctx context.Context, id string) (arrear.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, year, effective_month, effective_year, status, excluded, created_at, updated_at
		FROM arrear_batches
		WHERE id = $1
	`

	var b arrear.Batch
	var excluded []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Month, &b.Year, &b.EffectiveMonth, &b.EffectiveYear,
		&b.Status, &excluded, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return arrear.Batch{}, arrear.ErrBatchNotFound
		}
		return arrear.Batch{}, fmt.Errorf("failed to get arrear batch: %w", err)
	}

	if len(excluded) > 0 {
		if err := json.Unmarshal(excluded, &b.Excluded); err != nil {
			return arrear.Batch{}, fmt.Errorf("failed to decode exclusions: %w", err)
		}
	}

	records, err := r.listRecords(ctx, id)
	if err != nil {
		return arrear.Batch{}, err
	}
	b.Records = records

	return b, nil
}

func (r *arrearRepositoryImpl) listRecords(ctx context.Context, batchID string) ([]arrear.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, batch_id, employee_id, old_wage, new_wage,
			monthly_delta, elapsed_months, total_arrear
		FROM arrear_records
		WHERE batch_id = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list arrear records: %w", err)
	}
	defer rows.Close()

	var records []arrear.Record
	for rows.Next() {
		var rec arrear.Record
		var oldWage, newWage []byte
		err := rows.Scan(
			&rec.ID, &rec.BatchID, &rec.EmployeeID, &oldWage, &newWage,
			&rec.MonthlyDelta, &rec.ElapsedMonths, &rec.TotalArrear,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(oldWage, &rec.OldWage); err != nil {
			return nil, fmt.Errorf("failed to decode old wage: %w", err)
		}
		if err := json.Unmarshal(newWage, &rec.NewWage); err != nil {
			return nil, fmt.Errorf("failed to decode new wage: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *arrearRepositoryImpl) ListBatches(ctx context.Context) ([]arrear.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, year, effective_month, effective_year, status, excluded, created_at, updated_at
		FROM arrear_batches
		ORDER BY year DESC, month DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list arrear batches: %w", err)
	}
	defer rows.Close()

	var batches []arrear.Batch
	for rows.Next() {
		var b arrear.Batch
		var excluded []byte
		err := rows.Scan(
			&b.ID, &b.Month, &b.Year, &b.EffectiveMonth, &b.EffectiveYear,
			&b.Status, &excluded, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if len(excluded) > 0 {
			if err := json.Unmarshal(excluded, &b.Excluded); err != nil {
				return nil, fmt.Errorf("failed to decode exclusions: %w", err)
			}
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range batches {
		records, err := r.listRecords(ctx, batches[i].ID)
		if err != nil {
			return nil, err
		}
		batches[i].Records = records
	}

	return batches, nil
}

func (r *arrearRepositoryImpl) ReplaceRecords(ctx context.Context, batchID string, records []arrear.Record, excluded []arrear.Exclusion) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM arrear_records WHERE batch_id = $1`, batchID); err != nil {
		return fmt.Errorf("failed to clear arrear records: %w", err)
	}

	if err := r.insertRecords(ctx, batchID, records); err != nil {
		return err
	}

	encoded, err := json.Marshal(excluded)
	if err != nil {
		return fmt.Errorf("failed to encode exclusions: %w", err)
	}

	query := `UPDATE arrear_batches SET excluded = $2, updated_at = NOW() WHERE id = $1 RETURNING id`
	var id string
	if err := q.QueryRow(ctx, query, batchID, encoded).Scan(&id); err != nil {
		if err == pgx.ErrNoRows {
			return arrear.ErrBatchNotFound
		}
		return fmt.Errorf("failed to update arrear batch: %w", err)
	}

	return nil
}

func (r *arrearRepositoryImpl) SetStatus(ctx context.Context, batchID string, status arrear.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE arrear_batches SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING id`

	var id string
	if err := q.QueryRow(ctx, query, batchID, status).Scan(&id); err != nil {
		if err == pgx.ErrNoRows {
			return arrear.ErrBatchNotFound
		}
		return fmt.Errorf("failed to set arrear batch status: %w", err)
	}

	return nil
}
