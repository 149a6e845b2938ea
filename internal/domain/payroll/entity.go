package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
)

// Status enum for a payroll result and, by extension, its period.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
)

// ESI remark values attached when no ESI is deducted, for exit reporting.
const (
	ESIRemarkExempt          = "exempt"
	ESIRemarkCeilingExceeded = "ceiling exceeded"
)

// Earnings is the per-line breakdown of a month's pay. Every line is
// rounded to the rupee individually; Total is the exact sum of the
// rounded lines.
type Earnings struct {
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
	Bonus              decimal.Decimal `json:"bonus"`
	LeaveEncashment    decimal.Decimal `json:"leave_encashment"`
	Total              decimal.Decimal `json:"total"`
}

type Deductions struct {
	EPF             decimal.Decimal `json:"epf"`
	VPF             decimal.Decimal `json:"vpf"`
	ESI             decimal.Decimal `json:"esi"`
	PT              decimal.Decimal `json:"pt"`
	IT              decimal.Decimal `json:"it"`
	LWF             decimal.Decimal `json:"lwf"`
	AdvanceRecovery decimal.Decimal `json:"advance_recovery"`
	Fine            decimal.Decimal `json:"fine"`
	Total           decimal.Decimal `json:"total"`
}

type EmployerContributions struct {
	EPF  decimal.Decimal `json:"epf"`
	EPS  decimal.Decimal `json:"eps"`
	EDLI decimal.Decimal `json:"edli"`
	ESI  decimal.Decimal `json:"esi"`
	LWF  decimal.Decimal `json:"lwf"`
}

// WageBases are stored explicitly so remittance exports never re-derive
// them from rounded deduction figures.
type WageBases struct {
	EPF  decimal.Decimal `json:"epf"`
	EPS  decimal.Decimal `json:"eps"`
	EDLI decimal.Decimal `json:"edli"`
}

// Result is one payroll computation per (employee, month, year).
type Result struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int
	Status     Status

	Earnings              Earnings
	Deductions            Deductions
	EmployerContributions EmployerContributions
	WageBases             WageBases

	GratuityAccrual decimal.Decimal
	NetPay          decimal.Decimal
	PayableDays     decimal.Decimal
	DaysInMonth     int

	ESIRemark string
	Warnings  []string

	// LeaveSnapshot is the leave ledger frozen at finalization, so later
	// ledger mutations cannot corrupt historical reports.
	LeaveSnapshot *ledger.LeaveLedger

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BatchFailure records one employee the batch could not compute, without
// aborting the rest.
type BatchFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// BatchSummary reports a runBatch outcome. RecoveryPending lists employees
// who are off the active rolls but still carry an outstanding advance
// balance; their recovery continues through manual ledger settlement.
type BatchSummary struct {
	Month           int            `json:"month"`
	Year            int            `json:"year"`
	Processed       int            `json:"processed"`
	Skipped         []string       `json:"skipped,omitempty"`
	RecoveryPending []string       `json:"recovery_pending,omitempty"`
	Failures        []BatchFailure `json:"failures,omitempty"`
}
