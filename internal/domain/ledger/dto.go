package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

// SaveAttendanceRequest is the canonical field set a spreadsheet import
// adapter must resolve its columns to before calling the core.
type SaveAttendanceRequest struct {
	EmployeeID   string          `json:"employee_id"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	PresentDays  decimal.Decimal `json:"present_days"`
	EarnedLeave  decimal.Decimal `json:"earned_leave"`
	EncashedDays decimal.Decimal `json:"encashed_days"`
	SickLeave    decimal.Decimal `json:"sick_leave"`
	CasualLeave  decimal.Decimal `json:"casual_leave"`
	LOPDays      decimal.Decimal `json:"lop_days"`
}

func (r *SaveAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1990 and 2100"})
	}
	for field, days := range map[string]decimal.Decimal{
		"present_days":  r.PresentDays,
		"earned_leave":  r.EarnedLeave,
		"encashed_days": r.EncashedDays,
		"sick_leave":    r.SickLeave,
		"casual_leave":  r.CasualLeave,
		"lop_days":      r.LOPDays,
	} {
		if days.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative, got " + days.String()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *SaveAttendanceRequest) ToAttendance() Attendance {
	return Attendance{
		EmployeeID:   r.EmployeeID,
		Month:        r.Month,
		Year:         r.Year,
		PresentDays:  r.PresentDays,
		EarnedLeave:  r.EarnedLeave,
		EncashedDays: r.EncashedDays,
		SickLeave:    r.SickLeave,
		CasualLeave:  r.CasualLeave,
		LOPDays:      r.LOPDays,
	}
}

type SaveAttendanceResponse struct {
	Attendance  Attendance  `json:"attendance"`
	LeaveLedger LeaveLedger `json:"leave_ledger"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// UpdateLeaveLedgerRequest is the manual ledger-screen edit. Only credit
// and usage fields are settable; balances are recomputed server-side.
type UpdateLeaveLedgerRequest struct {
	EmployeeID string `json:"-"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`

	ELOpening  *decimal.Decimal `json:"el_opening,omitempty"`
	ELEligible *decimal.Decimal `json:"el_eligible,omitempty"`
	ELEncashed *decimal.Decimal `json:"el_encashed,omitempty"`
	ELAvailed  *decimal.Decimal `json:"el_availed,omitempty"`

	SLEligible *decimal.Decimal `json:"sl_eligible,omitempty"`
	SLAvailed  *decimal.Decimal `json:"sl_availed,omitempty"`

	CLAccumulation *decimal.Decimal `json:"cl_accumulation,omitempty"`
	CLAvailed      *decimal.Decimal `json:"cl_availed,omitempty"`

	// Version the ledger was read at; the save is rejected if it moved.
	Version int `json:"version"`
}

func (r *UpdateLeaveLedgerRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1990 and 2100"})
	}
	for field, value := range map[string]*decimal.Decimal{
		"el_opening":      r.ELOpening,
		"el_eligible":     r.ELEligible,
		"el_encashed":     r.ELEncashed,
		"el_availed":      r.ELAvailed,
		"sl_eligible":     r.SLEligible,
		"sl_availed":      r.SLAvailed,
		"cl_accumulation": r.CLAccumulation,
		"cl_availed":      r.CLAvailed,
	} {
		if value != nil && value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative, got " + value.String()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAdvanceLedgerRequest mutates the advance running record; the
// balance is recomputed on every save.
type UpdateAdvanceLedgerRequest struct {
	EmployeeID string `json:"-"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`

	Opening            *decimal.Decimal `json:"opening,omitempty"`
	TotalAdvance       *decimal.Decimal `json:"total_advance,omitempty"`
	MonthlyInstallment *decimal.Decimal `json:"monthly_installment,omitempty"`
	PaidAmount         *decimal.Decimal `json:"paid_amount,omitempty"`
}

func (r *UpdateAdvanceLedgerRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1990 and 2100"})
	}
	for field, value := range map[string]*decimal.Decimal{
		"opening":             r.Opening,
		"total_advance":       r.TotalAdvance,
		"monthly_installment": r.MonthlyInstallment,
		"paid_amount":         r.PaidAmount,
	} {
		if value != nil && value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative, got " + value.String()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SaveFineRequest struct {
	EmployeeID string           `json:"employee_id"`
	Month      int              `json:"month"`
	Year       int              `json:"year"`
	Amount     decimal.Decimal  `json:"amount"`
	Reason     string           `json:"reason"`
	Tax        *decimal.Decimal `json:"tax,omitempty"`
}

func (r *SaveFineRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1990 and 2100"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative, got " + r.Amount.String()})
	}
	if r.Tax != nil && r.Tax.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "tax", Message: "must be non-negative, got " + r.Tax.String()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
