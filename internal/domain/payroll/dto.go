package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1990 and 2100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ResultResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Status     string `json:"status"`

	Earnings              Earnings              `json:"earnings"`
	Deductions            Deductions            `json:"deductions"`
	EmployerContributions EmployerContributions `json:"employer_contributions"`
	WageBases             WageBases             `json:"wage_bases"`

	GratuityAccrual decimal.Decimal `json:"gratuity_accrual"`
	NetPay          decimal.Decimal `json:"net_pay"`
	PayableDays     decimal.Decimal `json:"payable_days"`
	DaysInMonth     int             `json:"days_in_month"`

	ESIRemark string   `json:"esi_remark,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`

	LeaveSnapshot *ledger.LeaveLedger `json:"leave_snapshot,omitempty"`
}

func ToResponse(r Result) ResultResponse {
	return ResultResponse{
		ID:                    r.ID,
		EmployeeID:            r.EmployeeID,
		Month:                 r.Month,
		Year:                  r.Year,
		Status:                string(r.Status),
		Earnings:              r.Earnings,
		Deductions:            r.Deductions,
		EmployerContributions: r.EmployerContributions,
		WageBases:             r.WageBases,
		GratuityAccrual:       r.GratuityAccrual,
		NetPay:                r.NetPay,
		PayableDays:           r.PayableDays,
		DaysInMonth:           r.DaysInMonth,
		ESIRemark:             r.ESIRemark,
		Warnings:              r.Warnings,
		LeaveSnapshot:         r.LeaveSnapshot,
	}
}

func ToResponses(results []Result) []ResultResponse {
	out := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ToResponse(r))
	}
	return out
}

type PeriodStatusResponse struct {
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	Status    string `json:"status"`
	Finalized bool   `json:"finalized"`
	Results   int    `json:"results"`
}
