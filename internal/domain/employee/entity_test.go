package employee

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWageStructureGrossAndPFWage(t *testing.T) {
	w := WageStructure{
		Basic:              decimal.NewFromInt(12000),
		DA:                 decimal.NewFromInt(2000),
		RetainingAllowance: decimal.NewFromInt(1000),
		HRA:                decimal.NewFromInt(4000),
		Special1:           decimal.NewFromInt(500),
	}

	assert.True(t, w.Gross().Equal(decimal.NewFromInt(19500)))
	assert.True(t, w.PFWage().Equal(decimal.NewFromInt(15000)))
}

func TestEmployeeActive(t *testing.T) {
	periodStart := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	e := Employee{DOJ: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	assert.True(t, e.Active(periodStart), "no date of leaving")

	leftEarlier := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	e.DOL = &leftEarlier
	assert.False(t, e.Active(periodStart))

	// Leaving during the period still counts as on the rolls.
	leavesMidMonth := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	e.DOL = &leavesMidMonth
	assert.True(t, e.Active(periodStart))
}

func TestYearsOfService(t *testing.T) {
	e := Employee{DOJ: time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)}

	cases := []struct {
		asOf time.Time
		want int
	}{
		{time.Date(2020, 6, 14, 0, 0, 0, 0, time.UTC), 0}, // before joining
		{time.Date(2021, 6, 14, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC), 1}, // anniversary
		{time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), 4},
		{time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 5},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, e.YearsOfService(c.asOf), "as of %s", c.asOf.Format("2006-01-02"))
	}
}
