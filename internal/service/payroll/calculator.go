package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/domain/payroll"
	"github.com/vetanpay/payroll-backend-go/internal/domain/statutory"
)

// Calculator computes one employee's payroll for one period. It is pure:
// inputs are read-only and no ledger is mutated here.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// CalculationInput bundles everything one employee's month needs.
// Attendance, AdvanceLedger and Fine may be nil: a missing attendance
// record means a no-pay month, missing ledgers mean nothing to recover
// or deduct.
type CalculationInput struct {
	Employee    employee.Employee
	Attendance  *ledger.Attendance
	Advance     *ledger.AdvanceLedger
	Fine        *ledger.FineRecord
	Config      statutory.Config
	Month       int
	Year        int
	DaysInMonth int
}

// fifteenTwentySixths is the statutory gratuity fraction: 15 days' wages
// per completed year of service, on a 26-working-day month.
var fifteenTwentySixths = decimal.NewFromInt(15).Div(decimal.NewFromInt(26))

func roundRupee(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Calculate runs the full monthly computation for one employee.
func (c *Calculator) Calculate(in CalculationInput) (payroll.Result, error) {
	if in.DaysInMonth <= 0 {
		return payroll.Result{}, fmt.Errorf("%w: got %d", payroll.ErrInvalidDaysInMonth, in.DaysInMonth)
	}

	att := in.Attendance
	if att == nil {
		att = &ledger.Attendance{EmployeeID: in.Employee.ID, Month: in.Month, Year: in.Year}
	} else if att.Month != in.Month || att.Year != in.Year {
		return payroll.Result{}, fmt.Errorf("%w: attendance is for %d/%d, requested %d/%d",
			payroll.ErrPeriodMismatch, att.Month, att.Year, in.Month, in.Year)
	}

	days := decimal.NewFromInt(int64(in.DaysInMonth))
	payableDays := att.PayableDays()
	var warnings []string

	if att.TotalDays().GreaterThan(days) {
		warnings = append(warnings, fmt.Sprintf(
			"attendance total %s exceeds %d days in month", att.TotalDays().String(), in.DaysInMonth))
	}

	wage := in.Employee.Wage
	prorate := func(component decimal.Decimal) decimal.Decimal {
		return roundRupee(component.Div(days).Mul(payableDays))
	}

	earnings := payroll.Earnings{
		Basic:              prorate(wage.Basic),
		DA:                 prorate(wage.DA),
		RetainingAllowance: prorate(wage.RetainingAllowance),
		HRA:                prorate(wage.HRA),
		Conveyance:         prorate(wage.Conveyance),
		Washing:            prorate(wage.Washing),
		Attire:             prorate(wage.Attire),
		Special1:           prorate(wage.Special1),
		Special2:           prorate(wage.Special2),
		Special3:           prorate(wage.Special3),
	}

	// Encashed EL is paid as a lump sum on basic+DA+retaining, separate
	// from the prorated component lines.
	earnings.LeaveEncashment = roundRupee(wage.PFWage().Div(days).Mul(att.EncashedDays))

	proratedPFWage := earnings.Basic.Add(earnings.DA).Add(earnings.RetainingAllowance)

	if in.Config.BonusRate.IsPositive() {
		bonusBase := proratedPFWage
		if in.Config.BonusWageCeiling.IsPositive() {
			bonusBase = minDecimal(bonusBase, in.Config.BonusWageCeiling)
		}
		earnings.Bonus = roundRupee(bonusBase.Mul(in.Config.BonusRate))
	} else {
		earnings.Bonus = decimal.Zero
	}

	earnings.Total = earnings.Basic.
		Add(earnings.DA).
		Add(earnings.RetainingAllowance).
		Add(earnings.HRA).
		Add(earnings.Conveyance).
		Add(earnings.Washing).
		Add(earnings.Attire).
		Add(earnings.Special1).
		Add(earnings.Special2).
		Add(earnings.Special3).
		Add(earnings.Bonus).
		Add(earnings.LeaveEncashment)

	bases, deductions, contributions := c.statutoryFigures(in, earnings.Total, proratedPFWage)

	deductions.IT = decimal.Zero
	if in.Fine != nil {
		if in.Fine.Tax != nil {
			deductions.IT = *in.Fine.Tax
		}
		deductions.Fine = in.Fine.Amount
	} else {
		deductions.Fine = decimal.Zero
	}

	deductions.AdvanceRecovery = decimal.Zero
	if in.Advance != nil {
		deductions.AdvanceRecovery = in.Advance.RecoveryDue()
	}

	deductions.Total = deductions.EPF.
		Add(deductions.VPF).
		Add(deductions.ESI).
		Add(deductions.PT).
		Add(deductions.IT).
		Add(deductions.LWF).
		Add(deductions.AdvanceRecovery).
		Add(deductions.Fine)

	netPay := earnings.Total.Sub(deductions.Total)
	if netPay.IsNegative() {
		warnings = append(warnings, "deductions exceed earnings, net pay is negative")
	}

	periodEnd := time.Date(in.Year, time.Month(in.Month), in.DaysInMonth, 0, 0, 0, 0, time.UTC)
	gratuity := roundRupee(
		wage.Basic.Add(wage.DA).
			Mul(fifteenTwentySixths).
			Mul(decimal.NewFromInt(int64(in.Employee.YearsOfService(periodEnd)))))

	result := payroll.Result{
		EmployeeID:            in.Employee.ID,
		Month:                 in.Month,
		Year:                  in.Year,
		Status:                payroll.StatusDraft,
		Earnings:              earnings,
		Deductions:            deductions,
		EmployerContributions: contributions,
		WageBases:             bases,
		GratuityAccrual:       gratuity,
		NetPay:                netPay,
		PayableDays:           payableDays,
		DaysInMonth:           in.DaysInMonth,
		ESIRemark:             c.esiRemark(in, earnings.Total),
		Warnings:              warnings,
	}

	return result, nil
}

// statutoryFigures derives the EPF/EPS/EDLI wage bases and the statutory
// deduction and employer-contribution lines from the prorated wages.
func (c *Calculator) statutoryFigures(in CalculationInput, gross, proratedPFWage decimal.Decimal) (payroll.WageBases, payroll.Deductions, payroll.EmployerContributions) {
	cfg := in.Config
	emp := in.Employee

	var bases payroll.WageBases
	var deductions payroll.Deductions
	var contributions payroll.EmployerContributions

	// EPF: opted out means no PF at all; higher-wages opt-in removes the
	// ceiling; everyone else is capped.
	switch {
	case emp.PFExempt:
		bases.EPF = decimal.Zero
	case emp.PFHigherWages:
		bases.EPF = proratedPFWage
	default:
		bases.EPF = minDecimal(proratedPFWage, cfg.EPFCeiling)
	}
	deductions.EPF = roundRupee(bases.EPF.Mul(cfg.EPFEmployeeRate))
	deductions.VPF = roundRupee(bases.EPF.Mul(emp.VPFRate))

	// EPS: employer-only pension share. The higher-pension opt-in lifts
	// the cap; the employer EPF booked to A/c 1 is the difference so the
	// 12% is never double counted across accounts 1 and 10.
	switch {
	case emp.PFExempt:
		bases.EPS = decimal.Zero
	case emp.HigherPensionOpted:
		bases.EPS = proratedPFWage
	default:
		bases.EPS = minDecimal(proratedPFWage, cfg.EPFCeiling)
	}
	contributions.EPS = roundRupee(bases.EPS.Mul(cfg.EPSRate))
	employerEPF := roundRupee(bases.EPF.Mul(cfg.EPFEmployerRate)).Sub(contributions.EPS)
	if employerEPF.IsNegative() {
		employerEPF = decimal.Zero
	}
	contributions.EPF = employerEPF

	// EDLI is always ceiling-capped, higher-wages opt-in notwithstanding.
	if emp.PFExempt {
		bases.EDLI = decimal.Zero
	} else {
		bases.EDLI = minDecimal(proratedPFWage, cfg.EPFCeiling)
	}
	contributions.EDLI = roundRupee(bases.EDLI.Mul(cfg.EDLIRate))

	// ESI applies on full gross, at or under the ceiling only.
	if !emp.ESIExempt && gross.LessThanOrEqual(cfg.ESICeiling) {
		deductions.ESI = roundRupee(gross.Mul(cfg.ESIEmployeeRate))
		contributions.ESI = roundRupee(gross.Mul(cfg.ESIEmployerRate))
	} else {
		deductions.ESI = decimal.Zero
		contributions.ESI = decimal.Zero
	}

	deductions.PT = cfg.PTAmount(gross)

	if cfg.LWFDueInMonth(in.Month) {
		deductions.LWF = cfg.LWFEmployeeAmount
		contributions.LWF = cfg.LWFEmployerAmount
	} else {
		deductions.LWF = decimal.Zero
		contributions.LWF = decimal.Zero
	}

	return bases, deductions, contributions
}

func (c *Calculator) esiRemark(in CalculationInput, gross decimal.Decimal) string {
	if in.Employee.ESIExempt {
		return payroll.ESIRemarkExempt
	}
	if gross.GreaterThan(in.Config.ESICeiling) {
		return payroll.ESIRemarkCeilingExceeded
	}
	return ""
}
