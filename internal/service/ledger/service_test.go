package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/domain/payroll"
	"github.com/vetanpay/payroll-backend-go/internal/domain/statutory"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

type stubPeriods struct {
	finalized bool
}

func (s stubPeriods) IsFinalized(_ context.Context, _, _ int) (bool, error) {
	return s.finalized, nil
}

type stubEmployeeRepo struct {
	ids map[string]struct{}
}

func (s *stubEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	s.ids[e.ID] = struct{}{}
	return e, nil
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if _, ok := s.ids[id]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id}, nil
}

func (s *stubEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) { return nil, nil }

func (s *stubEmployeeRepo) ListActive(_ context.Context, _ time.Time) ([]employee.Employee, error) {
	return nil, nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (s *stubEmployeeRepo) UpdateWage(_ context.Context, _ string, _ employee.WageStructure) error {
	return nil
}

func (s *stubEmployeeRepo) Delete(_ context.Context, _ string) error { return nil }

type memLeaveRepo struct {
	ledgers map[string]ledger.LeaveLedger
}

func (m *memLeaveRepo) GetByEmployee(_ context.Context, employeeID string) (ledger.LeaveLedger, error) {
	l, ok := m.ledgers[employeeID]
	if !ok {
		return ledger.LeaveLedger{}, ledger.ErrLeaveLedgerNotFound
	}
	return l, nil
}

func (m *memLeaveRepo) Save(_ context.Context, l ledger.LeaveLedger) (ledger.LeaveLedger, error) {
	stored, ok := m.ledgers[l.EmployeeID]
	if !ok || stored.Version != l.Version {
		return ledger.LeaveLedger{}, ledger.ErrLedgerVersionConflict
	}
	l.Version++
	m.ledgers[l.EmployeeID] = l
	return l, nil
}

func (m *memLeaveRepo) Upsert(_ context.Context, l ledger.LeaveLedger) (ledger.LeaveLedger, error) {
	if stored, ok := m.ledgers[l.EmployeeID]; ok {
		l.Version = stored.Version + 1
	} else {
		l.Version = 1
	}
	m.ledgers[l.EmployeeID] = l
	return l, nil
}

type memAdvanceRepo struct {
	ledgers map[string]ledger.AdvanceLedger
}

func (m *memAdvanceRepo) GetByEmployee(_ context.Context, employeeID string) (ledger.AdvanceLedger, error) {
	a, ok := m.ledgers[employeeID]
	if !ok {
		return ledger.AdvanceLedger{}, ledger.ErrAdvanceLedgerNotFound
	}
	return a, nil
}

func (m *memAdvanceRepo) Upsert(_ context.Context, a ledger.AdvanceLedger) (ledger.AdvanceLedger, error) {
	m.ledgers[a.EmployeeID] = a
	return a, nil
}

func (m *memAdvanceRepo) ListAll(_ context.Context) ([]ledger.AdvanceLedger, error) {
	var out []ledger.AdvanceLedger
	for _, a := range m.ledgers {
		out = append(out, a)
	}
	return out, nil
}

type memFineRepo struct {
	records map[string]ledger.FineRecord
}

func (m *memFineRepo) Upsert(_ context.Context, f ledger.FineRecord) (ledger.FineRecord, error) {
	m.records[f.EmployeeID] = f
	return f, nil
}

func (m *memFineRepo) GetByEmployeePeriod(_ context.Context, employeeID string, _, _ int) (ledger.FineRecord, error) {
	f, ok := m.records[employeeID]
	if !ok {
		return ledger.FineRecord{}, ledger.ErrFineNotFound
	}
	return f, nil
}

func (m *memFineRepo) ListByPeriod(_ context.Context, month, year int) ([]ledger.FineRecord, error) {
	var out []ledger.FineRecord
	for _, f := range m.records {
		if f.Month == month && f.Year == year {
			out = append(out, f)
		}
	}
	return out, nil
}

type stubPolicies struct {
	policy *statutory.LeavePolicy
}

func (s stubPolicies) GetLeavePolicy(_ context.Context) (statutory.LeavePolicy, error) {
	if s.policy == nil {
		return statutory.LeavePolicy{}, statutory.ErrLeavePolicyNotFound
	}
	return *s.policy, nil
}

type ledgerFixture struct {
	svc      *Service
	leaves   *memLeaveRepo
	advances *memAdvanceRepo
	fines    *memFineRepo
	policies *stubPolicies
}

func newLedgerFixture(finalized bool) *ledgerFixture {
	f := &ledgerFixture{
		leaves:   &memLeaveRepo{ledgers: map[string]ledger.LeaveLedger{}},
		advances: &memAdvanceRepo{ledgers: map[string]ledger.AdvanceLedger{}},
		fines:    &memFineRepo{records: map[string]ledger.FineRecord{}},
		policies: &stubPolicies{},
	}
	f.svc = NewService(
		&stubEmployeeRepo{ids: map[string]struct{}{"EMP001": {}}},
		f.leaves,
		f.advances,
		f.fines,
		stubPeriods{finalized: finalized},
		f.policies,
	)
	return f
}

func TestUpdateLeaveLedger_PatchesAndRecalculates(t *testing.T) {
	f := newLedgerFixture(false)
	l := ledger.LeaveLedger{
		EmployeeID: "EMP001",
		EL:         ledger.EarnedLeaveLedger{Opening: d("10"), Eligible: d("5"), Availed: d("2")},
		Version:    1,
	}
	l.Recalculate()
	f.leaves.ledgers["EMP001"] = l

	saved, err := f.svc.UpdateLeaveLedger(context.Background(), ledger.UpdateLeaveLedgerRequest{
		EmployeeID: "EMP001",
		Month:      4,
		Year:       2025,
		ELOpening:  dp("12"),
		Version:    1,
	})
	require.NoError(t, err)

	// Only the opening changed; availed stays and the balance re-derives.
	assert.True(t, saved.EL.Opening.Equal(d("12")))
	assert.True(t, saved.EL.Availed.Equal(d("2")))
	assert.True(t, saved.EL.Balance.Equal(d("15")))
	assert.Equal(t, 2, saved.Version)
}

func TestUpdateLeaveLedger_StaleVersionRejected(t *testing.T) {
	f := newLedgerFixture(false)
	l := ledger.LeaveLedger{EmployeeID: "EMP001", Version: 3}
	f.leaves.ledgers["EMP001"] = l

	_, err := f.svc.UpdateLeaveLedger(context.Background(), ledger.UpdateLeaveLedgerRequest{
		EmployeeID: "EMP001",
		Month:      4,
		Year:       2025,
		ELOpening:  dp("12"),
		Version:    2,
	})
	assert.ErrorIs(t, err, ledger.ErrLedgerVersionConflict)
}

func TestUpdateLeaveLedger_CreatesOnFirstEdit(t *testing.T) {
	f := newLedgerFixture(false)

	saved, err := f.svc.UpdateLeaveLedger(context.Background(), ledger.UpdateLeaveLedgerRequest{
		EmployeeID: "EMP001",
		Month:      4,
		Year:       2025,
		ELOpening:  dp("8"),
		ELEligible: dp("5"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, saved.Version)
	assert.True(t, saved.EL.Balance.Equal(d("13")))
}

func TestUpdateLeaveLedger_FinalizedPeriodRejected(t *testing.T) {
	f := newLedgerFixture(true)

	_, err := f.svc.UpdateLeaveLedger(context.Background(), ledger.UpdateLeaveLedgerRequest{
		EmployeeID: "EMP001",
		Month:      4,
		Year:       2025,
		ELOpening:  dp("8"),
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodFinalized)
}

func TestUpdateLeaveLedger_PolicyCapsCredits(t *testing.T) {
	f := newLedgerFixture(false)
	f.policies.policy = &statutory.LeavePolicy{
		ELPerYear:         d("15"),
		ELMaxCarryForward: d("30"),
		SLPerYear:         d("7"),
		CLPerYear:         d("7"),
	}

	_, err := f.svc.UpdateLeaveLedger(context.Background(), ledger.UpdateLeaveLedgerRequest{
		EmployeeID: "EMP001",
		Month:      4,
		Year:       2025,
		ELEligible: dp("16"),
		SLEligible: dp("9"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "el_eligible")
	assert.Contains(t, fields, "sl_eligible")
	assert.NotContains(t, fields, "el_opening")
}

func TestUpdateLeaveLedger_WithinPolicySaves(t *testing.T) {
	f := newLedgerFixture(false)
	f.policies.policy = &statutory.LeavePolicy{
		ELPerYear:         d("15"),
		ELMaxCarryForward: d("30"),
		SLPerYear:         d("7"),
		CLPerYear:         d("7"),
	}

	saved, err := f.svc.UpdateLeaveLedger(context.Background(), ledger.UpdateLeaveLedgerRequest{
		EmployeeID: "EMP001",
		Month:      4,
		Year:       2025,
		ELOpening:  dp("30"),
		ELEligible: dp("15"),
	})
	require.NoError(t, err)
	assert.True(t, saved.EL.Balance.Equal(d("45")))
}

func TestUpdateAdvanceLedger_RecalculatesBalance(t *testing.T) {
	f := newLedgerFixture(false)

	saved, err := f.svc.UpdateAdvanceLedger(context.Background(), ledger.UpdateAdvanceLedgerRequest{
		EmployeeID:         "EMP001",
		Month:              4,
		Year:               2025,
		TotalAdvance:       dp("5000"),
		MonthlyInstallment: dp("1000"),
	})
	require.NoError(t, err)

	assert.True(t, saved.Balance.Equal(d("5000")))

	saved, err = f.svc.UpdateAdvanceLedger(context.Background(), ledger.UpdateAdvanceLedgerRequest{
		EmployeeID: "EMP001",
		Month:      4,
		Year:       2025,
		PaidAmount: dp("1500"),
	})
	require.NoError(t, err)

	assert.True(t, saved.TotalAdvance.Equal(d("5000")))
	assert.True(t, saved.Balance.Equal(d("3500")))
}

func TestSaveFine_UnknownEmployeeRejected(t *testing.T) {
	f := newLedgerFixture(false)

	_, err := f.svc.SaveFine(context.Background(), ledger.SaveFineRequest{
		EmployeeID: "GHOST",
		Month:      4,
		Year:       2025,
		Amount:     d("100"),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSaveFine_KeepsManualTaxDistinctFromZero(t *testing.T) {
	f := newLedgerFixture(false)

	saved, err := f.svc.SaveFine(context.Background(), ledger.SaveFineRequest{
		EmployeeID: "EMP001",
		Month:      4,
		Year:       2025,
		Amount:     d("250"),
		Reason:     "late attendance",
	})
	require.NoError(t, err)
	assert.Nil(t, saved.Tax)

	saved, err = f.svc.SaveFine(context.Background(), ledger.SaveFineRequest{
		EmployeeID: "EMP001",
		Month:      4,
		Year:       2025,
		Amount:     d("250"),
		Tax:        dp("0"),
	})
	require.NoError(t, err)
	require.NotNil(t, saved.Tax)
	assert.True(t, saved.Tax.IsZero())
}
