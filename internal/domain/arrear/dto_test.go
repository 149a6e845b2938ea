package arrear

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetanpay/payroll-backend-go/internal/domain/employee"
)

func TestToBatchResponse_BreaksDeltaDownPerComponent(t *testing.T) {
	b := Batch{
		ID:     "batch-1",
		Status: StatusDraft,
		Records: []Record{{
			EmployeeID:    "EMP001",
			OldWage:       employee.WageStructure{Basic: decimal.NewFromInt(10000), DA: decimal.NewFromInt(2000)},
			NewWage:       employee.WageStructure{Basic: decimal.NewFromInt(11000), DA: decimal.NewFromInt(2200)},
			MonthlyDelta:  decimal.NewFromInt(1200),
			ElapsedMonths: 3,
			TotalArrear:   decimal.NewFromInt(3600),
		}},
	}

	resp := ToBatchResponse(b)
	require.Len(t, resp.Records, 1)

	rec := resp.Records[0]
	assert.True(t, rec.Deltas.Basic.Equal(decimal.NewFromInt(1000)))
	assert.True(t, rec.Deltas.DA.Equal(decimal.NewFromInt(200)))
	assert.True(t, rec.Deltas.HRA.IsZero())
	assert.True(t, rec.MonthlyDelta.Equal(decimal.NewFromInt(1200)))
	assert.True(t, resp.TotalArrear.Equal(decimal.NewFromInt(3600)))
}
