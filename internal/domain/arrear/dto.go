package arrear

import (
	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

// ComponentDeltas carries explicit per-component absolute increases for
// the ad-hoc revision mode.
type ComponentDeltas struct {
	Basic              decimal.Decimal `json:"basic"`
	DA                 decimal.Decimal `json:"da"`
	RetainingAllowance decimal.Decimal `json:"retaining_allowance"`
	HRA                decimal.Decimal `json:"hra"`
	Conveyance         decimal.Decimal `json:"conveyance"`
	Washing            decimal.Decimal `json:"washing"`
	Attire             decimal.Decimal `json:"attire"`
	Special1           decimal.Decimal `json:"special1"`
	Special2           decimal.Decimal `json:"special2"`
	Special3           decimal.Decimal `json:"special3"`
}

type CreateBatchRequest struct {
	Month          int          `json:"month"`
	Year           int          `json:"year"`
	EffectiveMonth int          `json:"effective_month"`
	EffectiveYear  int          `json:"effective_year"`
	RevisionType   RevisionType `json:"revision_type"`

	// Percentage mode: FlatPercent applies to everyone unless an entry in
	// EmployeePercents overrides it.
	FlatPercent      *decimal.Decimal           `json:"flat_percent,omitempty"`
	EmployeePercents map[string]decimal.Decimal `json:"employee_percents,omitempty"`

	// Ad-hoc mode: explicit deltas per employee.
	EmployeeDeltas map[string]ComponentDeltas `json:"employee_deltas,omitempty"`
}

func (r *CreateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1990 and 2100"})
	}
	if !validator.IsValidMonth(r.EffectiveMonth) {
		errs = append(errs, validator.ValidationError{Field: "effective_month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.EffectiveYear) {
		errs = append(errs, validator.ValidationError{Field: "effective_year", Message: "must be between 1990 and 2100"})
	}

	switch r.RevisionType {
	case RevisionPercentage:
		if r.FlatPercent == nil && len(r.EmployeePercents) == 0 {
			errs = append(errs, validator.ValidationError{Field: "flat_percent", Message: "percentage revision requires a flat percent or per-employee percents"})
		}
	case RevisionAdHoc:
		if len(r.EmployeeDeltas) == 0 {
			errs = append(errs, validator.ValidationError{Field: "employee_deltas", Message: "ad-hoc revision requires per-employee deltas"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "revision_type", Message: "must be percentage or ad_hoc"})
	}

	if validator.IsValidMonth(r.Month) && validator.IsValidMonth(r.EffectiveMonth) &&
		validator.IsValidYear(r.Year) && validator.IsValidYear(r.EffectiveYear) {
		if ElapsedMonths(r.EffectiveMonth, r.EffectiveYear, r.Month, r.Year) <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_month",
				Message: "effective period must be strictly before the processing period",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	EmployeeID    string                         `json:"employee_id"`
	OldWage       employee.WageStructureResponse `json:"old_wage"`
	NewWage       employee.WageStructureResponse `json:"new_wage"`
	Deltas        ComponentDeltas                `json:"deltas"`
	MonthlyDelta  decimal.Decimal                `json:"monthly_delta"`
	ElapsedMonths int                            `json:"elapsed_months"`
	TotalArrear   decimal.Decimal                `json:"total_arrear"`
}

// componentDeltas breaks the monthly increase down per wage line.
func componentDeltas(old, revised employee.WageStructure) ComponentDeltas {
	return ComponentDeltas{
		Basic:              revised.Basic.Sub(old.Basic),
		DA:                 revised.DA.Sub(old.DA),
		RetainingAllowance: revised.RetainingAllowance.Sub(old.RetainingAllowance),
		HRA:                revised.HRA.Sub(old.HRA),
		Conveyance:         revised.Conveyance.Sub(old.Conveyance),
		Washing:            revised.Washing.Sub(old.Washing),
		Attire:             revised.Attire.Sub(old.Attire),
		Special1:           revised.Special1.Sub(old.Special1),
		Special2:           revised.Special2.Sub(old.Special2),
		Special3:           revised.Special3.Sub(old.Special3),
	}
}

type BatchResponse struct {
	ID             string           `json:"id"`
	Month          int              `json:"month"`
	Year           int              `json:"year"`
	EffectiveMonth int              `json:"effective_month"`
	EffectiveYear  int              `json:"effective_year"`
	Status         string           `json:"status"`
	Records        []RecordResponse `json:"records"`
	Excluded       []Exclusion      `json:"excluded,omitempty"`
	TotalArrear    decimal.Decimal  `json:"total_arrear"`
}

func wageResponse(w employee.WageStructure) employee.WageStructureResponse {
	return employee.WageStructureResponse{
		Basic:              w.Basic,
		DA:                 w.DA,
		RetainingAllowance: w.RetainingAllowance,
		HRA:                w.HRA,
		Conveyance:         w.Conveyance,
		Washing:            w.Washing,
		Attire:             w.Attire,
		Special1:           w.Special1,
		Special2:           w.Special2,
		Special3:           w.Special3,
		Gross:              w.Gross(),
	}
}

func ToBatchResponse(b Batch) BatchResponse {
	records := make([]RecordResponse, 0, len(b.Records))
	total := decimal.Zero
	for _, rec := range b.Records {
		records = append(records, RecordResponse{
			EmployeeID:    rec.EmployeeID,
			OldWage:       wageResponse(rec.OldWage),
			NewWage:       wageResponse(rec.NewWage),
			Deltas:        componentDeltas(rec.OldWage, rec.NewWage),
			MonthlyDelta:  rec.MonthlyDelta,
			ElapsedMonths: rec.ElapsedMonths,
			TotalArrear:   rec.TotalArrear,
		})
		total = total.Add(rec.TotalArrear)
	}

	return BatchResponse{
		ID:             b.ID,
		Month:          b.Month,
		Year:           b.Year,
		EffectiveMonth: b.EffectiveMonth,
		EffectiveYear:  b.EffectiveYear,
		Status:         string(b.Status),
		Records:        records,
		Excluded:       b.Excluded,
		TotalArrear:    total,
	}
}
