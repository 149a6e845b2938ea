package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// WageStructure holds the ten monthly wage components an employee is
// engaged on. Gross wage is always derived, never stored.
type WageStructure struct {
	Basic              decimal.Decimal
	DA                 decimal.Decimal
	RetainingAllowance decimal.Decimal
	HRA                decimal.Decimal
	Conveyance         decimal.Decimal
	Washing            decimal.Decimal
	Attire             decimal.Decimal
	Special1           decimal.Decimal
	Special2           decimal.Decimal
	Special3           decimal.Decimal
}

// Gross returns the sum of all ten components.
func (w WageStructure) Gross() decimal.Decimal {
	return w.Basic.
		Add(w.DA).
		Add(w.RetainingAllowance).
		Add(w.HRA).
		Add(w.Conveyance).
		Add(w.Washing).
		Add(w.Attire).
		Add(w.Special1).
		Add(w.Special2).
		Add(w.Special3)
}

// PFWage returns the portion of the wage structure that counts toward
// the EPF/EPS/EDLI wage base: basic + DA + retaining allowance.
func (w WageStructure) PFWage() decimal.Decimal {
	return w.Basic.Add(w.DA).Add(w.RetainingAllowance)
}

// ServiceRecord is an append-only entry in the employee's service history
// (transfers, promotions, disciplinary notes).
type ServiceRecord struct {
	Date    time.Time `json:"date"`
	Type    string    `json:"type"`
	Remarks string    `json:"remarks"`
}

type Employee struct {
	ID          string
	Name        string
	Designation string
	Division    string
	Branch      string
	Site        string

	PAN       string
	UAN       string
	PFNumber  string
	ESINumber string

	Wage WageStructure

	PFExempt           bool
	ESIExempt          bool
	PFHigherWages      bool
	HigherPensionOpted bool
	VPFRate            decimal.Decimal

	DOJ time.Time
	DOL *time.Time

	PhotoURL       *string
	ServiceRecords []ServiceRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether the employee is on the rolls at the start of the
// given period. An employee with a date of leaving before the period start
// is inactive for that period.
func (e Employee) Active(periodStart time.Time) bool {
	if e.DOL == nil {
		return true
	}
	return !e.DOL.Before(periodStart)
}

// YearsOfService returns completed years of service as of the given date,
// used for the gratuity accrual estimate.
func (e Employee) YearsOfService(asOf time.Time) int {
	if asOf.Before(e.DOJ) {
		return 0
	}
	years := asOf.Year() - e.DOJ.Year()
	anniversary := e.DOJ.AddDate(years, 0, 0)
	if anniversary.After(asOf) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
