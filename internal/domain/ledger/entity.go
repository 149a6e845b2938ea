package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one record per (employee, month, year). Saving again for
// the same period supersedes the earlier record.
type Attendance struct {
	ID           string
	EmployeeID   string
	Month        int
	Year         int
	PresentDays  decimal.Decimal
	EarnedLeave  decimal.Decimal // EL availed in the period
	EncashedDays decimal.Decimal // EL surrendered for pay
	SickLeave    decimal.Decimal
	CasualLeave  decimal.Decimal
	LOPDays      decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PayableDays is the day count the wage proration runs on: present plus
// paid leave. LOP and encashed days are excluded; encashed EL is paid as a
// separate lump sum.
func (a Attendance) PayableDays() decimal.Decimal {
	return a.PresentDays.Add(a.EarnedLeave).Add(a.SickLeave).Add(a.CasualLeave)
}

// TotalDays is every day accounted for in the record, paid or not.
func (a Attendance) TotalDays() decimal.Decimal {
	return a.PresentDays.Add(a.EarnedLeave).Add(a.SickLeave).Add(a.CasualLeave).Add(a.LOPDays)
}

// EarnedLeaveLedger is the EL running balance.
// Invariant: Balance = Opening + Eligible - Encashed - Availed.
type EarnedLeaveLedger struct {
	Opening  decimal.Decimal
	Eligible decimal.Decimal
	Encashed decimal.Decimal
	Availed  decimal.Decimal
	Balance  decimal.Decimal
}

// Capacity is the headroom usage is validated against: opening plus the
// periodic credit. Validating against capacity rather than the stored
// balance keeps re-saves of the same period idempotent.
func (l EarnedLeaveLedger) Capacity() decimal.Decimal {
	return l.Opening.Add(l.Eligible)
}

// SickLeaveLedger invariant: Balance = Eligible - Availed.
type SickLeaveLedger struct {
	Eligible decimal.Decimal
	Availed  decimal.Decimal
	Balance  decimal.Decimal
}

// CasualLeaveLedger invariant: Balance = Accumulation - Availed.
type CasualLeaveLedger struct {
	Accumulation decimal.Decimal
	Availed      decimal.Decimal
	Balance      decimal.Decimal
}

// LeaveLedger is one running record per employee, not per period.
type LeaveLedger struct {
	EmployeeID string
	EL         EarnedLeaveLedger
	SL         SickLeaveLedger
	CL         CasualLeaveLedger
	// Version guards read-modify-write cycles: a save is rejected when the
	// stored version moved since the ledger was read.
	Version   int
	UpdatedAt time.Time
}

// Recalculate re-derives the three balances from their identities.
func (l *LeaveLedger) Recalculate() {
	l.EL.Balance = l.EL.Opening.Add(l.EL.Eligible).Sub(l.EL.Encashed).Sub(l.EL.Availed)
	l.SL.Balance = l.SL.Eligible.Sub(l.SL.Availed)
	l.CL.Balance = l.CL.Accumulation.Sub(l.CL.Availed)
}

// AdvanceLedger is one running record per employee.
// Invariant: Balance = Opening + TotalAdvance - PaidAmount.
type AdvanceLedger struct {
	EmployeeID         string
	Opening            decimal.Decimal
	TotalAdvance       decimal.Decimal
	MonthlyInstallment decimal.Decimal
	PaidAmount         decimal.Decimal
	Balance            decimal.Decimal
	UpdatedAt          time.Time
}

// Recalculate re-derives the balance from its identity.
func (a *AdvanceLedger) Recalculate() {
	a.Balance = a.Opening.Add(a.TotalAdvance).Sub(a.PaidAmount)
}

// RecoveryDue is the amount to recover this month: the installment, capped
// at the outstanding balance.
func (a AdvanceLedger) RecoveryDue() decimal.Decimal {
	if a.MonthlyInstallment.GreaterThan(a.Balance) {
		return a.Balance
	}
	return a.MonthlyInstallment
}

// FineRecord is one record per (employee, month, year). Tax is the manual
// income-tax override; nil means not set, which is distinct from zero.
type FineRecord struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int
	Amount     decimal.Decimal
	Reason     string
	Tax        *decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
