package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

// periodParams reads the {year}/{month} route segments shared by every
// period-scoped endpoint.
func periodParams(r *http.Request) (month, year int, err error) {
	month, merr := strconv.Atoi(chi.URLParam(r, "month"))
	year, yerr := strconv.Atoi(chi.URLParam(r, "year"))

	var errs validator.ValidationErrors
	if merr != nil || !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if yerr != nil || !validator.IsValidYear(year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1990 and 2100"})
	}
	if len(errs) > 0 {
		return 0, 0, errs
	}
	return month, year, nil
}
