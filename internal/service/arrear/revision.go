package arrear

import (
	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/domain/arrear"
	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
)

var oneHundred = decimal.NewFromInt(100)

func roundRupee(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// ApplyPercent raises every wage component by pct percent, rounding each
// revised component to the rupee.
func ApplyPercent(w employee.WageStructure, pct decimal.Decimal) employee.WageStructure {
	factor := decimal.NewFromInt(1).Add(pct.Div(oneHundred))
	return employee.WageStructure{
		Basic:              roundRupee(w.Basic.Mul(factor)),
		DA:                 roundRupee(w.DA.Mul(factor)),
		RetainingAllowance: roundRupee(w.RetainingAllowance.Mul(factor)),
		HRA:                roundRupee(w.HRA.Mul(factor)),
		Conveyance:         roundRupee(w.Conveyance.Mul(factor)),
		Washing:            roundRupee(w.Washing.Mul(factor)),
		Attire:             roundRupee(w.Attire.Mul(factor)),
		Special1:           roundRupee(w.Special1.Mul(factor)),
		Special2:           roundRupee(w.Special2.Mul(factor)),
		Special3:           roundRupee(w.Special3.Mul(factor)),
	}
}

// ApplyDeltas adds explicit per-component increases to the wage.
func ApplyDeltas(w employee.WageStructure, d arrear.ComponentDeltas) employee.WageStructure {
	return employee.WageStructure{
		Basic:              w.Basic.Add(d.Basic),
		DA:                 w.DA.Add(d.DA),
		RetainingAllowance: w.RetainingAllowance.Add(d.RetainingAllowance),
		HRA:                w.HRA.Add(d.HRA),
		Conveyance:         w.Conveyance.Add(d.Conveyance),
		Washing:            w.Washing.Add(d.Washing),
		Attire:             w.Attire.Add(d.Attire),
		Special1:           w.Special1.Add(d.Special1),
		Special2:           w.Special2.Add(d.Special2),
		Special3:           w.Special3.Add(d.Special3),
	}
}

// BuildRecord computes one employee's arrear from old and new wages over
// the elapsed months. The monthly delta must be strictly positive; the
// caller excludes non-positive deltas before getting here.
func BuildRecord(employeeID string, old, revised employee.WageStructure, elapsedMonths int) arrear.Record {
	delta := revised.Gross().Sub(old.Gross())
	return arrear.Record{
		EmployeeID:    employeeID,
		OldWage:       old,
		NewWage:       revised,
		MonthlyDelta:  delta,
		ElapsedMonths: elapsedMonths,
		TotalArrear:   roundRupee(delta.Mul(decimal.NewFromInt(int64(elapsedMonths)))),
	}
}
