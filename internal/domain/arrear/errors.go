package arrear

import "errors"

var (
	ErrBatchNotFound        = errors.New("arrear batch not found")
	ErrBatchFinalized       = errors.New("arrear batch is finalized and cannot be modified")
	ErrEffectiveNotPast     = errors.New("arrear effective period must be strictly before the processing period")
	ErrNoEligibleEmployees  = errors.New("no employees with a finalized payroll in the effective period")
	ErrInvalidRevisionType  = errors.New("invalid revision type")
)
