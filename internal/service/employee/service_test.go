package employee

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

type immediateTx struct{}

func (immediateTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	employees map[string]employee.Employee
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{employees: map[string]employee.Employee{}}
}

func (f *fakeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := f.employees[e.ID]; ok {
		return employee.Employee{}, employee.ErrEmployeeIDExists
	}
	e.CreatedAt = time.Now()
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeRepo) List(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeRepo) ListActive(_ context.Context, periodStart time.Time) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.Active(periodStart) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := f.employees[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeRepo) UpdateWage(_ context.Context, id string, wage employee.WageStructure) error {
	e, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Wage = wage
	f.employees[id] = e
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(f.employees, id)
	return nil
}

func validRequest(id string) employee.UpsertEmployeeRequest {
	return employee.UpsertEmployeeRequest{
		ID:   id,
		Name: "Ravi Menon",
		PAN:  "ABCDE1234F",
		UAN:  "100123456789",
		Wage: employee.WageStructureRequest{Basic: decimal.NewFromInt(12000)},
		DOJ:  "2021-04-01",
	}
}

func TestUpsert_CreatesNewEmployee(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(immediateTx{}, repo)

	e, err := svc.Upsert(ctx, validRequest("EMP001"))
	require.NoError(t, err)

	assert.Equal(t, "EMP001", e.ID)
	assert.True(t, e.Wage.Basic.Equal(decimal.NewFromInt(12000)))
}

func TestUpsert_ReimportMergesPreservedFields(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(immediateTx{}, repo)

	_, err := svc.Upsert(ctx, validRequest("EMP001"))
	require.NoError(t, err)

	// A photo set through the UI survives a sheet re-import that cannot
	// carry one.
	photo := "https://cdn.example.com/emp001.jpg"
	stored := repo.employees["EMP001"]
	stored.PhotoURL = &photo
	stored.ServiceRecords = []employee.ServiceRecord{
		{Date: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), Type: "promotion", Remarks: "to supervisor"},
	}
	repo.employees["EMP001"] = stored

	req := validRequest("EMP001")
	req.Designation = "Supervisor"
	e, err := svc.Upsert(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "Supervisor", e.Designation)
	require.NotNil(t, e.PhotoURL)
	assert.Equal(t, photo, *e.PhotoURL)
	assert.Len(t, e.ServiceRecords, 1)
}

func TestUpsert_AppendsNewServiceRecords(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(immediateTx{}, repo)

	_, err := svc.Upsert(ctx, validRequest("EMP001"))
	require.NoError(t, err)

	stored := repo.employees["EMP001"]
	stored.ServiceRecords = []employee.ServiceRecord{
		{Date: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), Type: "transfer", Remarks: "to pune site"},
	}
	repo.employees["EMP001"] = stored

	req := validRequest("EMP001")
	req.ServiceRecords = []employee.ServiceRecord{
		{Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Type: "promotion", Remarks: "to supervisor"},
	}
	e, err := svc.Upsert(ctx, req)
	require.NoError(t, err)

	require.Len(t, e.ServiceRecords, 2)
	assert.Equal(t, "transfer", e.ServiceRecords[0].Type)
	assert.Equal(t, "promotion", e.ServiceRecords[1].Type)
}

func TestUpsert_RejectsBadIdentifiers(t *testing.T) {
	ctx := context.Background()
	svc := NewService(immediateTx{}, newFakeRepo())

	req := validRequest("EMP001")
	req.PAN = "NOTAPAN"
	req.UAN = "123"

	_, err := svc.Upsert(ctx, req)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "pan")
	assert.Contains(t, m, "uan")
}

func TestUpsert_RejectsLeavingBeforeJoining(t *testing.T) {
	ctx := context.Background()
	svc := NewService(immediateTx{}, newFakeRepo())

	req := validRequest("EMP001")
	dol := "2020-12-31"
	req.DOL = &dol

	_, err := svc.Upsert(ctx, req)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "dol")
}

func TestBulkImport_CreatesAndMergesInOnePass(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(immediateTx{}, repo)

	_, err := svc.Upsert(ctx, validRequest("EMP001"))
	require.NoError(t, err)
	photo := "https://cdn.example.com/emp001.jpg"
	stored := repo.employees["EMP001"]
	stored.PhotoURL = &photo
	repo.employees["EMP001"] = stored

	resp, err := svc.BulkImport(ctx, employee.BulkImportRequest{
		Employees: []employee.UpsertEmployeeRequest{
			validRequest("EMP001"),
			validRequest("EMP002"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 1, resp.Merged)
	assert.Equal(t, []string{"EMP001", "EMP002"}, resp.IDs)

	// The merge rule applies inside the import as well.
	require.NotNil(t, repo.employees["EMP001"].PhotoURL)
	assert.Equal(t, photo, *repo.employees["EMP001"].PhotoURL)
	assert.Equal(t, "EMP002", repo.employees["EMP002"].ID)
}
