package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/domain/payroll"
	"github.com/vetanpay/payroll-backend-go/internal/domain/statutory"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(money(want)), "want %s, got %s", want, got.String())
}

// testConfig mirrors the FY 2025-26 statutory figures: EPF ceiling 15000
// at 12%/12% with 8.33% EPS and 0.5% EDLI, ESI ceiling 21000 at
// 0.75%/3.25%, a three-rung PT ladder and half-yearly LWF.
func testConfig() statutory.Config {
	return statutory.Config{
		EPFCeiling:      decimal.NewFromInt(15000),
		EPFEmployeeRate: money("0.12"),
		EPFEmployerRate: money("0.12"),
		EPSRate:         money("0.0833"),
		EDLIRate:        money("0.005"),
		ESICeiling:      decimal.NewFromInt(21000),
		ESIEmployeeRate: money("0.0075"),
		ESIEmployerRate: money("0.0325"),
		PTSlabs: []statutory.PTSlab{
			{Min: decimal.Zero, Max: money("9999"), Amount: decimal.Zero},
			{Min: money("10000"), Max: money("14999"), Amount: money("150")},
			{Min: money("15000"), Max: money("100000000"), Amount: money("200")},
		},
		PTCycle:           statutory.CycleMonthly,
		LWFEmployeeAmount: money("25"),
		LWFEmployerAmount: money("75"),
		LWFCycle:          statutory.CycleHalfYearly,
		LWFMonths:         []int{6, 12},
	}
}

func testEmployee(basic string) employee.Employee {
	return employee.Employee{
		ID:   "EMP001",
		Name: "Asha Kulkarni",
		Wage: employee.WageStructure{Basic: money(basic)},
		DOJ:  time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func fullMonthAttendance(employeeID string, month, year, days int) *ledger.Attendance {
	return &ledger.Attendance{
		EmployeeID:  employeeID,
		Month:       month,
		Year:        year,
		PresentDays: decimal.NewFromInt(int64(days)),
	}
}

func calcInput(emp employee.Employee, month, year, days int) CalculationInput {
	return CalculationInput{
		Employee:    emp,
		Attendance:  fullMonthAttendance(emp.ID, month, year, days),
		Config:      testConfig(),
		Month:       month,
		Year:        year,
		DaysInMonth: days,
	}
}

func TestCalculate_EPFBelowCeiling(t *testing.T) {
	calc := NewCalculator()

	cases := []struct {
		basic       string
		wantEPF     string
		wantEPS     string
		wantEmplEPF string
		wantEDLI    string
	}{
		// 12000 * 12% = 1440; EPS 12000 * 8.33% = 999.6 -> 1000;
		// employer EPF is the 12% share less EPS.
		{"12000", "1440", "1000", "440", "60"},
		{"10000", "1200", "833", "367", "50"},
	}

	for _, c := range cases {
		result, err := calc.Calculate(calcInput(testEmployee(c.basic), 4, 2025, 30))
		require.NoError(t, err)

		assertAmount(t, c.basic, result.WageBases.EPF)
		assertAmount(t, c.wantEPF, result.Deductions.EPF)
		assertAmount(t, c.wantEPS, result.EmployerContributions.EPS)
		assertAmount(t, c.wantEmplEPF, result.EmployerContributions.EPF)
		assertAmount(t, c.wantEDLI, result.EmployerContributions.EDLI)
	}
}

func TestCalculate_EPFCeilingCapsBase(t *testing.T) {
	calc := NewCalculator()

	result, err := calc.Calculate(calcInput(testEmployee("20000"), 4, 2025, 30))
	require.NoError(t, err)

	assertAmount(t, "15000", result.WageBases.EPF)
	assertAmount(t, "15000", result.WageBases.EPS)
	assertAmount(t, "15000", result.WageBases.EDLI)
	assertAmount(t, "1800", result.Deductions.EPF)
	assertAmount(t, "1250", result.EmployerContributions.EPS) // 15000 * 8.33% = 1249.5
	assertAmount(t, "550", result.EmployerContributions.EPF)
	assertAmount(t, "75", result.EmployerContributions.EDLI)
}

func TestCalculate_PFExempt(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee("20000")
	emp.PFExempt = true

	result, err := calc.Calculate(calcInput(emp, 4, 2025, 30))
	require.NoError(t, err)

	assert.True(t, result.WageBases.EPF.IsZero())
	assert.True(t, result.WageBases.EPS.IsZero())
	assert.True(t, result.WageBases.EDLI.IsZero())
	assert.True(t, result.Deductions.EPF.IsZero())
	assert.True(t, result.Deductions.VPF.IsZero())
	assert.True(t, result.EmployerContributions.EPF.IsZero())
	assert.True(t, result.EmployerContributions.EPS.IsZero())
	assert.True(t, result.EmployerContributions.EDLI.IsZero())
}

func TestCalculate_PFHigherWagesLiftsEPFNotEDLI(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee("20000")
	emp.PFHigherWages = true

	result, err := calc.Calculate(calcInput(emp, 4, 2025, 30))
	require.NoError(t, err)

	// EPF base uncapped, EPS and EDLI still capped.
	assertAmount(t, "20000", result.WageBases.EPF)
	assertAmount(t, "15000", result.WageBases.EPS)
	assertAmount(t, "15000", result.WageBases.EDLI)
	assertAmount(t, "2400", result.Deductions.EPF)
	assertAmount(t, "1250", result.EmployerContributions.EPS)
	assertAmount(t, "1150", result.EmployerContributions.EPF)
	assertAmount(t, "75", result.EmployerContributions.EDLI)
}

func TestCalculate_HigherPensionLiftsEPSOnly(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee("20000")
	emp.HigherPensionOpted = true

	result, err := calc.Calculate(calcInput(emp, 4, 2025, 30))
	require.NoError(t, err)

	assertAmount(t, "15000", result.WageBases.EPF)
	assertAmount(t, "20000", result.WageBases.EPS)
	assertAmount(t, "1666", result.EmployerContributions.EPS) // 20000 * 8.33%
	// 12% of the capped EPF base is 1800; the uncapped EPS eats most of it.
	assertAmount(t, "134", result.EmployerContributions.EPF)
}

func TestCalculate_VPF(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee("12000")
	emp.VPFRate = money("0.05")

	result, err := calc.Calculate(calcInput(emp, 4, 2025, 30))
	require.NoError(t, err)

	assertAmount(t, "600", result.Deductions.VPF)
	// VPF is employee-side only; the employer lines are unchanged.
	assertAmount(t, "440", result.EmployerContributions.EPF)
}

func TestCalculate_ESIAtCeilingStillDeducted(t *testing.T) {
	calc := NewCalculator()

	result, err := calc.Calculate(calcInput(testEmployee("21000"), 4, 2025, 30))
	require.NoError(t, err)

	assertAmount(t, "158", result.Deductions.ESI) // 21000 * 0.75% = 157.5
	assertAmount(t, "683", result.EmployerContributions.ESI)
	assert.Empty(t, result.ESIRemark)
}

func TestCalculate_ESIAboveCeilingSkipped(t *testing.T) {
	calc := NewCalculator()

	result, err := calc.Calculate(calcInput(testEmployee("21001"), 4, 2025, 30))
	require.NoError(t, err)

	assert.True(t, result.Deductions.ESI.IsZero())
	assert.True(t, result.EmployerContributions.ESI.IsZero())
	assert.Equal(t, payroll.ESIRemarkCeilingExceeded, result.ESIRemark)
}

func TestCalculate_ESIExempt(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee("12000")
	emp.ESIExempt = true

	result, err := calc.Calculate(calcInput(emp, 4, 2025, 30))
	require.NoError(t, err)

	assert.True(t, result.Deductions.ESI.IsZero())
	assert.Equal(t, payroll.ESIRemarkExempt, result.ESIRemark)
}

func TestCalculate_ProrationRoundsPerLine(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee("10000")
	emp.Wage.HRA = money("3000")

	in := calcInput(emp, 4, 2025, 30)
	in.Attendance = &ledger.Attendance{
		EmployeeID:  emp.ID,
		Month:       4,
		Year:        2025,
		PresentDays: money("10"),
		EarnedLeave: money("2"),
		SickLeave:   money("2"),
		CasualLeave: money("1"),
		LOPDays:     money("15"),
	}

	result, err := calc.Calculate(in)
	require.NoError(t, err)

	assertAmount(t, "15", result.PayableDays)
	assertAmount(t, "5000", result.Earnings.Basic)
	assertAmount(t, "1500", result.Earnings.HRA)
	assertAmount(t, "6500", result.Earnings.Total)
}

func TestCalculate_ProrationOddDivision(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee("10000")

	in := calcInput(emp, 5, 2025, 31)
	in.Attendance = &ledger.Attendance{
		EmployeeID:  emp.ID,
		Month:       5,
		Year:        2025,
		PresentDays: money("20"),
		LOPDays:     money("11"),
	}

	result, err := calc.Calculate(in)
	require.NoError(t, err)

	// 10000 / 31 * 20 = 6451.61..., rounded to the rupee.
	assertAmount(t, "6452", result.Earnings.Basic)
}

func TestCalculate_LeaveEncashmentLumpSum(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee("12000")

	in := calcInput(emp, 4, 2025, 30)
	in.Attendance.EncashedDays = money("2")

	result, err := calc.Calculate(in)
	require.NoError(t, err)

	// 12000 / 30 * 2; encashed days do not inflate payable days.
	assertAmount(t, "800", result.Earnings.LeaveEncashment)
	assertAmount(t, "30", result.PayableDays)
	assertAmount(t, "12800", result.Earnings.Total)
}

func TestCalculate_BonusCappedAtCeiling(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee("12000")

	in := calcInput(emp, 4, 2025, 30)
	in.Config.BonusRate = money("0.0833")
	in.Config.BonusWageCeiling = money("7000")

	result, err := calc.Calculate(in)
	require.NoError(t, err)

	assertAmount(t, "583", result.Earnings.Bonus) // 7000 * 8.33%
}

func TestCalculate_BonusZeroWhenRateUnset(t *testing.T) {
	calc := NewCalculator()

	result, err := calc.Calculate(calcInput(testEmployee("12000"), 4, 2025, 30))
	require.NoError(t, err)

	assert.True(t, result.Earnings.Bonus.IsZero())
}

func TestCalculate_PTSlabLookup(t *testing.T) {
	calc := NewCalculator()

	cases := []struct {
		basic  string
		wantPT string
	}{
		{"8000", "0"},
		{"12000", "150"},
		{"18000", "200"},
	}
	for _, c := range cases {
		result, err := calc.Calculate(calcInput(testEmployee(c.basic), 4, 2025, 30))
		require.NoError(t, err)
		assertAmount(t, c.wantPT, result.Deductions.PT)
	}
}

func TestCalculate_LWFOnlyInConfiguredMonths(t *testing.T) {
	calc := NewCalculator()

	june, err := calc.Calculate(calcInput(testEmployee("12000"), 6, 2025, 30))
	require.NoError(t, err)
	assertAmount(t, "25", june.Deductions.LWF)
	assertAmount(t, "75", june.EmployerContributions.LWF)

	may, err := calc.Calculate(calcInput(testEmployee("12000"), 5, 2025, 31))
	require.NoError(t, err)
	assert.True(t, may.Deductions.LWF.IsZero())
	assert.True(t, may.EmployerContributions.LWF.IsZero())
}

func TestCalculate_ITOnlyFromManualOverride(t *testing.T) {
	calc := NewCalculator()

	in := calcInput(testEmployee("30000"), 4, 2025, 30)
	result, err := calc.Calculate(in)
	require.NoError(t, err)
	assert.True(t, result.Deductions.IT.IsZero())

	tax := money("1500")
	in.Fine = &ledger.FineRecord{
		EmployeeID: "EMP001",
		Month:      4,
		Year:       2025,
		Amount:     money("200"),
		Tax:        &tax,
	}
	result, err = calc.Calculate(in)
	require.NoError(t, err)
	assertAmount(t, "1500", result.Deductions.IT)
	assertAmount(t, "200", result.Deductions.Fine)
}

func TestCalculate_FineWithoutTaxLeavesITZero(t *testing.T) {
	calc := NewCalculator()

	in := calcInput(testEmployee("12000"), 4, 2025, 30)
	in.Fine = &ledger.FineRecord{
		EmployeeID: "EMP001",
		Month:      4,
		Year:       2025,
		Amount:     money("350"),
	}

	result, err := calc.Calculate(in)
	require.NoError(t, err)

	assert.True(t, result.Deductions.IT.IsZero())
	assertAmount(t, "350", result.Deductions.Fine)
}

func TestCalculate_AdvanceRecoveryCappedAtBalance(t *testing.T) {
	calc := NewCalculator()

	in := calcInput(testEmployee("12000"), 4, 2025, 30)
	in.Advance = &ledger.AdvanceLedger{
		EmployeeID:         "EMP001",
		TotalAdvance:       money("5000"),
		MonthlyInstallment: money("1500"),
		PaidAmount:         money("4600"),
		Balance:            money("400"),
	}

	result, err := calc.Calculate(in)
	require.NoError(t, err)

	assertAmount(t, "400", result.Deductions.AdvanceRecovery)
}

func TestCalculate_ConservationIdentity(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee("14500")
	emp.Wage.DA = money("1200")
	emp.Wage.HRA = money("4000")
	emp.Wage.Conveyance = money("800")
	emp.VPFRate = money("0.03")

	in := calcInput(emp, 6, 2025, 30)
	in.Config.BonusRate = money("0.0833")
	in.Config.BonusWageCeiling = money("7000")
	tax := money("500")
	in.Fine = &ledger.FineRecord{EmployeeID: emp.ID, Month: 6, Year: 2025, Amount: money("150"), Tax: &tax}
	in.Advance = &ledger.AdvanceLedger{
		EmployeeID:         emp.ID,
		TotalAdvance:       money("6000"),
		MonthlyInstallment: money("1000"),
		Balance:            money("6000"),
	}

	result, err := calc.Calculate(in)
	require.NoError(t, err)

	d := result.Deductions
	lineSum := d.EPF.Add(d.VPF).Add(d.ESI).Add(d.PT).Add(d.IT).Add(d.LWF).Add(d.AdvanceRecovery).Add(d.Fine)
	assert.True(t, d.Total.Equal(lineSum), "deduction total %s != line sum %s", d.Total, lineSum)

	e := result.Earnings
	earnSum := e.Basic.Add(e.DA).Add(e.RetainingAllowance).Add(e.HRA).
		Add(e.Conveyance).Add(e.Washing).Add(e.Attire).
		Add(e.Special1).Add(e.Special2).Add(e.Special3).
		Add(e.Bonus).Add(e.LeaveEncashment)
	assert.True(t, e.Total.Equal(earnSum), "earnings total %s != line sum %s", e.Total, earnSum)

	assert.True(t, result.NetPay.Equal(e.Total.Sub(d.Total)))
}

func TestCalculate_NegativeNetWarns(t *testing.T) {
	calc := NewCalculator()

	in := calcInput(testEmployee("2000"), 4, 2025, 30)
	in.Fine = &ledger.FineRecord{EmployeeID: "EMP001", Month: 4, Year: 2025, Amount: money("5000")}

	result, err := calc.Calculate(in)
	require.NoError(t, err)

	assert.True(t, result.NetPay.IsNegative())
	assert.Contains(t, result.Warnings, "deductions exceed earnings, net pay is negative")
}

func TestCalculate_GratuityOnMasterWage(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee("13000")
	emp.Wage.DA = money("2000")
	emp.DOJ = time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)

	// Gratuity accrues on the full monthly wage even in a short month.
	in := calcInput(emp, 4, 2025, 30)
	in.Attendance.PresentDays = money("10")
	in.Attendance.LOPDays = money("20")

	result, err := calc.Calculate(in)
	require.NoError(t, err)

	// 4 completed years as of 30 Apr 2025: 15000 * 15/26 * 4 = 34615.38.
	assertAmount(t, "34615", result.GratuityAccrual)
}

func TestCalculate_MissingAttendanceIsNoPayMonth(t *testing.T) {
	calc := NewCalculator()

	in := calcInput(testEmployee("12000"), 4, 2025, 30)
	in.Attendance = nil

	result, err := calc.Calculate(in)
	require.NoError(t, err)

	assert.True(t, result.PayableDays.IsZero())
	assert.True(t, result.Earnings.Total.IsZero())
	assert.True(t, result.NetPay.IsZero())
}

func TestCalculate_AttendancePeriodMismatch(t *testing.T) {
	calc := NewCalculator()

	in := calcInput(testEmployee("12000"), 4, 2025, 30)
	in.Attendance.Month = 3

	_, err := calc.Calculate(in)
	assert.ErrorIs(t, err, payroll.ErrPeriodMismatch)
}

func TestCalculate_InvalidDaysInMonth(t *testing.T) {
	calc := NewCalculator()

	in := calcInput(testEmployee("12000"), 4, 2025, 30)
	in.DaysInMonth = 0

	_, err := calc.Calculate(in)
	assert.ErrorIs(t, err, payroll.ErrInvalidDaysInMonth)
}

func TestCalculate_OverfilledAttendanceWarns(t *testing.T) {
	calc := NewCalculator()

	in := calcInput(testEmployee("12000"), 4, 2025, 30)
	in.Attendance.PresentDays = money("28")
	in.Attendance.EarnedLeave = money("4")

	result, err := calc.Calculate(in)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "exceeds 30 days")
}

func TestCalculate_Deterministic(t *testing.T) {
	calc := NewCalculator()
	in := calcInput(testEmployee("15750"), 6, 2025, 30)

	first, err := calc.Calculate(in)
	require.NoError(t, err)
	second, err := calc.Calculate(in)
	require.NoError(t, err)

	assert.True(t, first.NetPay.Equal(second.NetPay))
	assert.True(t, first.Earnings.Total.Equal(second.Earnings.Total))
	assert.True(t, first.Deductions.Total.Equal(second.Deductions.Total))
}
