package response

import (
	"errors"
	"net/http"

	"github.com/vetanpay/payroll-backend-go/internal/domain/arrear"
	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/domain/payroll"
	"github.com/vetanpay/payroll-backend-go/internal/domain/statutory"
	"github.com/vetanpay/payroll-backend-go/internal/domain/user"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAccessDenied), errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee id already exists")
	case errors.Is(err, employee.ErrLeavingBeforeJoining):
		BadRequest(w, err.Error(), nil)

	// Ledger domain errors
	case errors.Is(err, ledger.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, ledger.ErrLeaveLedgerNotFound):
		NotFound(w, "Leave ledger not found")
	case errors.Is(err, ledger.ErrAdvanceLedgerNotFound):
		NotFound(w, "Advance ledger not found")
	case errors.Is(err, ledger.ErrFineNotFound):
		NotFound(w, "Fine record not found")
	case errors.Is(err, ledger.ErrLedgerVersionConflict):
		Conflict(w, "Leave ledger changed since it was read")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrResultNotFound):
		NotFound(w, "Payroll result not found")
	case errors.Is(err, payroll.ErrPeriodFinalized):
		Conflict(w, "Payroll period is finalized")
	case errors.Is(err, payroll.ErrPeriodNotFinalized):
		Conflict(w, "Payroll period is not finalized")
	case errors.Is(err, payroll.ErrNoDraftResults):
		Conflict(w, "No draft payroll results exist for the period")
	case errors.Is(err, payroll.ErrMixedPeriodStatus):
		Conflict(w, "Period has results in mixed draft/finalized status")
	case errors.Is(err, payroll.ErrInvalidDaysInMonth),
		errors.Is(err, payroll.ErrPeriodMismatch):
		BadRequest(w, err.Error(), nil)

	// Statutory domain errors
	case errors.Is(err, statutory.ErrConfigNotFound):
		NotFound(w, "Statutory config not found")
	case errors.Is(err, statutory.ErrLeavePolicyNotFound):
		NotFound(w, "Leave policy not found")

	// Arrear domain errors
	case errors.Is(err, arrear.ErrBatchNotFound):
		NotFound(w, "Arrear batch not found")
	case errors.Is(err, arrear.ErrBatchFinalized):
		Conflict(w, "Arrear batch is finalized")
	case errors.Is(err, arrear.ErrEffectiveNotPast),
		errors.Is(err, arrear.ErrNoEligibleEmployees),
		errors.Is(err, arrear.ErrInvalidRevisionType):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
