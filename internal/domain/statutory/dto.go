package statutory

import (
	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

type UpdateConfigRequest struct {
	EPFCeiling      decimal.Decimal `json:"epf_ceiling"`
	EPFEmployeeRate decimal.Decimal `json:"epf_employee_rate"`
	EPFEmployerRate decimal.Decimal `json:"epf_employer_rate"`
	EPSRate         decimal.Decimal `json:"eps_rate"`
	EDLIRate        decimal.Decimal `json:"edli_rate"`

	ESICeiling      decimal.Decimal `json:"esi_ceiling"`
	ESIEmployeeRate decimal.Decimal `json:"esi_employee_rate"`
	ESIEmployerRate decimal.Decimal `json:"esi_employer_rate"`

	PTSlabs []PTSlab       `json:"pt_slabs"`
	PTCycle DeductionCycle `json:"pt_cycle"`

	LWFEmployeeAmount decimal.Decimal `json:"lwf_employee_amount"`
	LWFEmployerAmount decimal.Decimal `json:"lwf_employer_amount"`
	LWFCycle          DeductionCycle  `json:"lwf_cycle"`
	LWFMonths         []int           `json:"lwf_months,omitempty"`

	BonusRate        decimal.Decimal `json:"bonus_rate"`
	BonusWageCeiling decimal.Decimal `json:"bonus_wage_ceiling"`
}

func validCycle(c DeductionCycle) bool {
	switch c {
	case CycleMonthly, CycleHalfYearly, CycleYearly:
		return true
	}
	return false
}

func (r *UpdateConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]decimal.Decimal{
		"epf_ceiling":         r.EPFCeiling,
		"epf_employee_rate":   r.EPFEmployeeRate,
		"epf_employer_rate":   r.EPFEmployerRate,
		"eps_rate":            r.EPSRate,
		"edli_rate":           r.EDLIRate,
		"esi_ceiling":         r.ESICeiling,
		"esi_employee_rate":   r.ESIEmployeeRate,
		"esi_employer_rate":   r.ESIEmployerRate,
		"lwf_employee_amount": r.LWFEmployeeAmount,
		"lwf_employer_amount": r.LWFEmployerAmount,
		"bonus_rate":          r.BonusRate,
		"bonus_wage_ceiling":  r.BonusWageCeiling,
	} {
		if value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative, got " + value.String()})
		}
	}

	if !validCycle(r.PTCycle) {
		errs = append(errs, validator.ValidationError{Field: "pt_cycle", Message: "must be monthly, half_yearly or yearly"})
	}
	if !validCycle(r.LWFCycle) {
		errs = append(errs, validator.ValidationError{Field: "lwf_cycle", Message: "must be monthly, half_yearly or yearly"})
	}
	for _, m := range r.LWFMonths {
		if !validator.IsValidMonth(m) {
			errs = append(errs, validator.ValidationError{Field: "lwf_months", Message: "months must be between 1 and 12"})
		}
	}

	// Slabs must form an ascending, non-overlapping ladder.
	for i, slab := range r.PTSlabs {
		if slab.Max.LessThan(slab.Min) {
			errs = append(errs, validator.ValidationError{Field: "pt_slabs", Message: "slab max must be >= min"})
			break
		}
		if i > 0 && slab.Min.LessThanOrEqual(r.PTSlabs[i-1].Max) {
			errs = append(errs, validator.ValidationError{Field: "pt_slabs", Message: "slabs must be ascending and non-overlapping"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateConfigRequest) ToConfig() Config {
	months := r.LWFMonths
	if len(months) == 0 {
		months = DefaultLWFMonths(r.LWFCycle)
	}

	return Config{
		EPFCeiling:        r.EPFCeiling,
		EPFEmployeeRate:   r.EPFEmployeeRate,
		EPFEmployerRate:   r.EPFEmployerRate,
		EPSRate:           r.EPSRate,
		EDLIRate:          r.EDLIRate,
		ESICeiling:        r.ESICeiling,
		ESIEmployeeRate:   r.ESIEmployeeRate,
		ESIEmployerRate:   r.ESIEmployerRate,
		PTSlabs:           r.PTSlabs,
		PTCycle:           r.PTCycle,
		LWFEmployeeAmount: r.LWFEmployeeAmount,
		LWFEmployerAmount: r.LWFEmployerAmount,
		LWFCycle:          r.LWFCycle,
		LWFMonths:         months,
		BonusRate:         r.BonusRate,
		BonusWageCeiling:  r.BonusWageCeiling,
	}
}

type UpdateLeavePolicyRequest struct {
	ELPerYear         decimal.Decimal `json:"el_per_year"`
	ELMaxCarryForward decimal.Decimal `json:"el_max_carry_forward"`
	SLPerYear         decimal.Decimal `json:"sl_per_year"`
	CLPerYear         decimal.Decimal `json:"cl_per_year"`
}

func (r *UpdateLeavePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]decimal.Decimal{
		"el_per_year":          r.ELPerYear,
		"el_max_carry_forward": r.ELMaxCarryForward,
		"sl_per_year":          r.SLPerYear,
		"cl_per_year":          r.CLPerYear,
	} {
		if value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative, got " + value.String()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
