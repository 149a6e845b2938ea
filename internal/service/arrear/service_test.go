package arrear

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetanpay/payroll-backend-go/internal/domain/arrear"
	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/domain/ledger"
	"github.com/vetanpay/payroll-backend-go/internal/domain/payroll"
	"github.com/vetanpay/payroll-backend-go/internal/domain/user"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

type immediateTx struct{}

func (immediateTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeArrearRepo struct {
	batches map[string]arrear.Batch
	nextID  int
}

func newFakeArrearRepo() *fakeArrearRepo {
	return &fakeArrearRepo{batches: map[string]arrear.Batch{}}
}

func (f *fakeArrearRepo) CreateBatch(_ context.Context, b arrear.Batch) (arrear.Batch, error) {
	f.nextID++
	b.ID = fmt.Sprintf("batch-%d", f.nextID)
	f.batches[b.ID] = b
	return b, nil
}

func (f *fakeArrearRepo) GetBatchByID(_ context.Context, id string) (arrear.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return arrear.Batch{}, arrear.ErrBatchNotFound
	}
	return b, nil
}

func (f *fakeArrearRepo) ListBatches(_ context.Context) ([]arrear.Batch, error) {
	var out []arrear.Batch
	for _, b := range f.batches {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeArrearRepo) ReplaceRecords(_ context.Context, batchID string, records []arrear.Record, excluded []arrear.Exclusion) error {
	b, ok := f.batches[batchID]
	if !ok {
		return arrear.ErrBatchNotFound
	}
	b.Records = records
	b.Excluded = excluded
	f.batches[batchID] = b
	return nil
}

func (f *fakeArrearRepo) SetStatus(_ context.Context, batchID string, status arrear.Status) error {
	b, ok := f.batches[batchID]
	if !ok {
		return arrear.ErrBatchNotFound
	}
	b.Status = status
	f.batches[batchID] = b
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context, periodStart time.Time) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.Active(periodStart) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := f.employees[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) UpdateWage(_ context.Context, id string, wage employee.WageStructure) error {
	e, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Wage = wage
	f.employees[id] = e
	return nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(f.employees, id)
	return nil
}

// fakeEligibilityRepo answers only the finalized-result check; the rest of
// the payroll repository surface is unused by this service.
type fakeEligibilityRepo struct {
	finalized map[string]bool
}

func (f *fakeEligibilityRepo) Upsert(_ context.Context, r payroll.Result) (payroll.Result, error) {
	return r, nil
}

func (f *fakeEligibilityRepo) GetByEmployeePeriod(_ context.Context, _ string, _, _ int) (payroll.Result, error) {
	return payroll.Result{}, payroll.ErrResultNotFound
}

func (f *fakeEligibilityRepo) ListByPeriod(_ context.Context, _, _ int) ([]payroll.Result, error) {
	return nil, nil
}

func (f *fakeEligibilityRepo) PeriodStatuses(_ context.Context, _, _ int) ([]payroll.Status, error) {
	return nil, nil
}

func (f *fakeEligibilityRepo) SetPeriodStatus(_ context.Context, _, _ int, _ payroll.Status) error {
	return nil
}

func (f *fakeEligibilityRepo) SetLeaveSnapshot(_ context.Context, _ string, _, _ int, _ ledger.LeaveLedger) error {
	return nil
}

func (f *fakeEligibilityRepo) HasFinalizedResult(_ context.Context, employeeID string, _, _ int) (bool, error) {
	return f.finalized[employeeID], nil
}

func (f *fakeEligibilityRepo) CountByPeriodStatus(_ context.Context, _, _ int, _ payroll.Status) (int, error) {
	return 0, nil
}

type arrearFixture struct {
	svc       *Service
	batches   *fakeArrearRepo
	employees *fakeEmployeeRepo
	payrolls  *fakeEligibilityRepo
}

func newArrearFixture() *arrearFixture {
	f := &arrearFixture{
		batches:   newFakeArrearRepo(),
		employees: newFakeEmployeeRepo(),
		payrolls:  &fakeEligibilityRepo{finalized: map[string]bool{}},
	}
	f.svc = NewService(immediateTx{}, f.batches, f.employees, f.payrolls)
	return f
}

func (f *arrearFixture) addEmployee(id, basic string, finalized bool) {
	f.employees.employees[id] = employee.Employee{
		ID:   id,
		Name: "Employee " + id,
		Wage: employee.WageStructure{Basic: d(basic)},
		DOJ:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.payrolls.finalized[id] = finalized
}

func flatPercentRequest(pct string) arrear.CreateBatchRequest {
	p := d(pct)
	return arrear.CreateBatchRequest{
		Month:          4,
		Year:           2025,
		EffectiveMonth: 1,
		EffectiveYear:  2025,
		RevisionType:   arrear.RevisionPercentage,
		FlatPercent:    &p,
	}
}

func TestCreateDraft_FlatTenPercent(t *testing.T) {
	ctx := context.Background()
	f := newArrearFixture()
	f.addEmployee("EMP001", "10000", true)

	b, err := f.svc.CreateDraft(ctx, flatPercentRequest("10"))
	require.NoError(t, err)

	assert.Equal(t, arrear.StatusDraft, b.Status)
	require.Len(t, b.Records, 1)
	rec := b.Records[0]
	assert.True(t, rec.MonthlyDelta.Equal(d("1000")))
	assert.Equal(t, 3, rec.ElapsedMonths)
	assert.True(t, rec.TotalArrear.Equal(d("3000")))
	assert.True(t, TotalArrear(b).Equal(d("3000")))
}

func TestCreateDraft_ExcludesWithoutFinalizedPayroll(t *testing.T) {
	ctx := context.Background()
	f := newArrearFixture()
	f.addEmployee("EMP001", "10000", true)
	f.addEmployee("EMP002", "12000", false)

	b, err := f.svc.CreateDraft(ctx, flatPercentRequest("10"))
	require.NoError(t, err)

	require.Len(t, b.Records, 1)
	assert.Equal(t, "EMP001", b.Records[0].EmployeeID)
	require.Len(t, b.Excluded, 1)
	assert.Equal(t, "EMP002", b.Excluded[0].EmployeeID)
	assert.Contains(t, b.Excluded[0].Reason, "no finalized payroll")
}

func TestCreateDraft_EffectiveMustBePast(t *testing.T) {
	ctx := context.Background()
	f := newArrearFixture()
	f.addEmployee("EMP001", "10000", true)

	req := flatPercentRequest("10")
	req.EffectiveMonth = req.Month
	req.EffectiveYear = req.Year

	_, err := f.svc.CreateDraft(ctx, req)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "effective_month", verrs[0].Field)
}

func TestCreateDraft_ZeroRaiseLeavesNoRecords(t *testing.T) {
	ctx := context.Background()
	f := newArrearFixture()
	f.addEmployee("EMP001", "10000", true)

	_, err := f.svc.CreateDraft(ctx, flatPercentRequest("0"))
	assert.ErrorIs(t, err, arrear.ErrNoEligibleEmployees)
}

func TestCreateDraft_AdHocDeltas(t *testing.T) {
	ctx := context.Background()
	f := newArrearFixture()
	f.addEmployee("EMP001", "10000", true)

	b, err := f.svc.CreateDraft(ctx, arrear.CreateBatchRequest{
		Month:          4,
		Year:           2025,
		EffectiveMonth: 2,
		EffectiveYear:  2025,
		RevisionType:   arrear.RevisionAdHoc,
		EmployeeDeltas: map[string]arrear.ComponentDeltas{
			"EMP001": {Basic: d("500"), HRA: d("250")},
		},
	})
	require.NoError(t, err)

	require.Len(t, b.Records, 1)
	rec := b.Records[0]
	assert.True(t, rec.MonthlyDelta.Equal(d("750")))
	assert.True(t, rec.TotalArrear.Equal(d("1500")))
}

func TestRecompute_RefreshesAgainstCurrentMaster(t *testing.T) {
	ctx := context.Background()
	f := newArrearFixture()
	f.addEmployee("EMP001", "10000", true)
	f.addEmployee("EMP002", "10000", true)

	b, err := f.svc.CreateDraft(ctx, flatPercentRequest("10"))
	require.NoError(t, err)
	require.Len(t, b.Records, 2)

	// EMP002's master wage was raised past the proposed revision in the
	// meantime; the recompute drops it from the batch.
	require.NoError(t, f.employees.UpdateWage(ctx, "EMP002", employee.WageStructure{Basic: d("12000")}))

	got, err := f.svc.Recompute(ctx, b.ID)
	require.NoError(t, err)

	require.Len(t, got.Records, 1)
	assert.Equal(t, "EMP001", got.Records[0].EmployeeID)
	require.Len(t, got.Excluded, 1)
	assert.Equal(t, "EMP002", got.Excluded[0].EmployeeID)
}

func TestRecompute_FinalizedBatchRejected(t *testing.T) {
	ctx := context.Background()
	f := newArrearFixture()
	f.addEmployee("EMP001", "10000", true)

	b, err := f.svc.CreateDraft(ctx, flatPercentRequest("10"))
	require.NoError(t, err)
	require.NoError(t, f.batches.SetStatus(ctx, b.ID, arrear.StatusFinalized))

	_, err = f.svc.Recompute(ctx, b.ID)
	assert.ErrorIs(t, err, arrear.ErrBatchFinalized)
}

func TestFinalize_OverwritesMasterWages(t *testing.T) {
	ctx := context.Background()
	f := newArrearFixture()
	f.addEmployee("EMP001", "10000", true)

	b, err := f.svc.CreateDraft(ctx, flatPercentRequest("10"))
	require.NoError(t, err)

	finalized, err := f.svc.Finalize(ctx, user.RoleAdministrator, b.ID)
	require.NoError(t, err)
	assert.Equal(t, arrear.StatusFinalized, finalized.Status)

	stored, err := f.batches.GetBatchByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, arrear.StatusFinalized, stored.Status)

	// The revised structure is now the master wage.
	emp, err := f.employees.GetByID(ctx, "EMP001")
	require.NoError(t, err)
	assert.True(t, emp.Wage.Basic.Equal(d("11000")))
}

func TestFinalize_RequiresFinalizeAuthority(t *testing.T) {
	ctx := context.Background()
	f := newArrearFixture()

	_, err := f.svc.Finalize(ctx, user.RoleUser, "batch-1")
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
}

func TestFinalize_FinalizedBatchRejected(t *testing.T) {
	ctx := context.Background()
	f := newArrearFixture()
	f.addEmployee("EMP001", "10000", true)

	b, err := f.svc.CreateDraft(ctx, flatPercentRequest("10"))
	require.NoError(t, err)
	require.NoError(t, f.batches.SetStatus(ctx, b.ID, arrear.StatusFinalized))

	_, err = f.svc.Finalize(ctx, user.RoleAdministrator, b.ID)
	assert.ErrorIs(t, err, arrear.ErrBatchFinalized)
}
