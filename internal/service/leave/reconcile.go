package leave

import (
	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

// usageAfter projects what the ledger's usage figures become once the
// previous attendance for the period is replaced by the new one. Working
// on the delta keeps re-saves of the same period idempotent: importing the
// same sheet twice converges on the same ledger.
type usageAfter struct {
	elAvailed  decimal.Decimal
	elEncashed decimal.Decimal
	slAvailed  decimal.Decimal
	clAvailed  decimal.Decimal
}

func projectUsage(l ledger.LeaveLedger, prev *ledger.Attendance, next ledger.Attendance) usageAfter {
	u := usageAfter{
		elAvailed:  l.EL.Availed.Add(next.EarnedLeave),
		elEncashed: l.EL.Encashed.Add(next.EncashedDays),
		slAvailed:  l.SL.Availed.Add(next.SickLeave),
		clAvailed:  l.CL.Availed.Add(next.CasualLeave),
	}
	if prev != nil {
		u.elAvailed = u.elAvailed.Sub(prev.EarnedLeave)
		u.elEncashed = u.elEncashed.Sub(prev.EncashedDays)
		u.slAvailed = u.slAvailed.Sub(prev.SickLeave)
		u.clAvailed = u.clAvailed.Sub(prev.CasualLeave)
	}
	return u
}

// ValidateUsage rejects an attendance record whose leave usage would push
// the ledger past its capacity. Every breach is reported with the limit
// and the attempted figure so the operator can fix the sheet in one pass.
func ValidateUsage(l ledger.LeaveLedger, prev *ledger.Attendance, next ledger.Attendance) error {
	u := projectUsage(l, prev, next)
	var errs validator.ValidationErrors

	elUsage := u.elAvailed.Add(u.elEncashed)
	if elUsage.GreaterThan(l.EL.Capacity()) {
		errs = append(errs, validator.ValidationError{
			Field:   "earned_leave",
			Message: "availed plus encashed " + elUsage.String() + " exceeds capacity " + l.EL.Capacity().String(),
		})
	}
	if u.slAvailed.GreaterThan(l.SL.Eligible) {
		errs = append(errs, validator.ValidationError{
			Field:   "sick_leave",
			Message: "availed " + u.slAvailed.String() + " exceeds eligible " + l.SL.Eligible.String(),
		})
	}
	if u.clAvailed.GreaterThan(l.CL.Accumulation) {
		errs = append(errs, validator.ValidationError{
			Field:   "casual_leave",
			Message: "availed " + u.clAvailed.String() + " exceeds accumulation " + l.CL.Accumulation.String(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Reconcile applies the attendance's leave usage to the ledger, replacing
// whatever the previous record for the same period contributed, and
// re-derives the balances.
func Reconcile(l ledger.LeaveLedger, prev *ledger.Attendance, next ledger.Attendance) ledger.LeaveLedger {
	u := projectUsage(l, prev, next)
	l.EL.Availed = u.elAvailed
	l.EL.Encashed = u.elEncashed
	l.SL.Availed = u.slAvailed
	l.CL.Availed = u.clAvailed
	l.Recalculate()
	return l
}
