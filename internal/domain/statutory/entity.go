package statutory

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionCycle controls when a periodic statutory deduction is remitted.
type DeductionCycle string

const (
	CycleMonthly    DeductionCycle = "monthly"
	CycleHalfYearly DeductionCycle = "half_yearly"
	CycleYearly     DeductionCycle = "yearly"
)

// PTSlab is one rung of the professional-tax ladder. The first slab whose
// [Min, Max] contains the monthly gross wins.
type PTSlab struct {
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Amount decimal.Decimal `json:"amount"`
}

// Config is the single current statutory configuration: ceilings, rates,
// and slab tables the calculator reads. Rates are fractions (0.12), not
// percentages.
type Config struct {
	ID string

	EPFCeiling      decimal.Decimal
	EPFEmployeeRate decimal.Decimal
	EPFEmployerRate decimal.Decimal
	EPSRate         decimal.Decimal
	EDLIRate        decimal.Decimal

	ESICeiling      decimal.Decimal
	ESIEmployeeRate decimal.Decimal
	ESIEmployerRate decimal.Decimal

	PTSlabs []PTSlab
	PTCycle DeductionCycle

	LWFEmployeeAmount decimal.Decimal
	LWFEmployerAmount decimal.Decimal
	LWFCycle          DeductionCycle
	// LWFMonths lists the calendar months (1-12) the LWF contribution is
	// deducted in. Derived from the cycle at save time when absent.
	LWFMonths []int

	BonusRate        decimal.Decimal
	BonusWageCeiling decimal.Decimal

	UpdatedAt time.Time
}

// PTAmount looks up the professional-tax slab for a monthly gross.
// Slabs are ascending and non-overlapping with a catch-all top rung, so
// the first match wins; no match means no PT.
func (c Config) PTAmount(gross decimal.Decimal) decimal.Decimal {
	for _, slab := range c.PTSlabs {
		if gross.GreaterThanOrEqual(slab.Min) && gross.LessThanOrEqual(slab.Max) {
			return slab.Amount
		}
	}
	return decimal.Zero
}

// LWFDueInMonth reports whether the LWF contribution falls due in the
// given calendar month.
func (c Config) LWFDueInMonth(month int) bool {
	for _, m := range c.LWFMonths {
		if m == month {
			return true
		}
	}
	return false
}

// DefaultLWFMonths maps a cycle to its conventional remittance months.
func DefaultLWFMonths(cycle DeductionCycle) []int {
	switch cycle {
	case CycleMonthly:
		return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	case CycleHalfYearly:
		return []int{6, 12}
	case CycleYearly:
		return []int{12}
	}
	return nil
}

// LeavePolicy caps the periodic leave credits the reconciliation applies.
type LeavePolicy struct {
	ID                string
	ELPerYear         decimal.Decimal
	ELMaxCarryForward decimal.Decimal
	SLPerYear         decimal.Decimal
	CLPerYear         decimal.Decimal
	UpdatedAt         time.Time
}
