package arrear

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
)

// RevisionType selects how proposed wages are derived from current ones.
type RevisionType string

const (
	RevisionPercentage RevisionType = "percentage"
	RevisionAdHoc      RevisionType = "ad_hoc"
)

// Record is one employee's arrear computation inside a batch: old and new
// wage structures, the monthly delta between their grosses, and the total
// due for the elapsed months.
type Record struct {
	ID            string
	BatchID       string
	EmployeeID    string
	OldWage       employee.WageStructure
	NewWage       employee.WageStructure
	MonthlyDelta  decimal.Decimal
	ElapsedMonths int
	TotalArrear   decimal.Decimal
}

// Batch groups arrear records for one processing period. EffectiveMonth /
// EffectiveYear is the past period the wage revision takes effect from.
type Batch struct {
	ID              string
	Month           int // processing period
	Year            int
	EffectiveMonth  int
	EffectiveYear   int
	Status          Status
	Records         []Record
	// Excluded lists employees the positive-delta / eligibility gates
	// dropped, with the reason, so the draft is auditable.
	Excluded  []Exclusion
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Exclusion struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// ElapsedMonths is the month distance from the effective period to the
// processing period. Arrears require a strictly positive value.
func ElapsedMonths(effectiveMonth, effectiveYear, processingMonth, processingYear int) int {
	return (processingYear-effectiveYear)*12 + (processingMonth - effectiveMonth)
}
