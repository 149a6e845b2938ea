package payroll

import "errors"

var (
	ErrResultNotFound     = errors.New("payroll result not found")
	ErrPeriodFinalized    = errors.New("payroll period is finalized and locked against edits")
	ErrPeriodNotFinalized = errors.New("payroll period is not finalized")
	ErrNoDraftResults     = errors.New("no draft payroll results exist for the period")
	ErrInvalidDaysInMonth = errors.New("days in month must be positive")
	ErrPeriodMismatch     = errors.New("attendance period does not match the requested period")
	ErrMixedPeriodStatus  = errors.New("period has results in mixed draft/finalized status")
)
