package payroll_test

import (
	"testing"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/payroll"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func sampleContributionTable() payroll.ContributionTable {
	return payroll.ContributionTable{
		{RangeLow: dec("0"), RangeHigh: decPtr("999.99"), EmployeeShare: dec("45"), EmployerShare: dec("95"), Total: dec("140")},
		{RangeLow: dec("1000"), RangeHigh: decPtr("1999.99"), EmployeeShare: dec("90"), EmployerShare: dec("190"), Total: dec("280")},
		{RangeLow: dec("2000"), RangeHigh: nil, EmployeeShare: dec("135"), EmployerShare: dec("285"), Total: dec("420")},
	}
}

func TestContributionTable_Resolve(t *testing.T) {
	table := sampleContributionTable()

	t.Run("amount inside a bracket", func(t *testing.T) {
		b := table.Resolve(dec("1500"))
		assert.NotNil(t, b)
		assert.Equal(t, "90", b.EmployeeShare.String())
	})

	t.Run("both boundaries are inclusive", func(t *testing.T) {
		low := table.Resolve(dec("1000"))
		assert.NotNil(t, low)
		assert.Equal(t, "90", low.EmployeeShare.String())

		high := table.Resolve(dec("1999.99"))
		assert.NotNil(t, high)
		assert.Equal(t, "90", high.EmployeeShare.String())
	})

	t.Run("final bracket is unbounded", func(t *testing.T) {
		b := table.Resolve(dec("9999999"))
		assert.NotNil(t, b)
		assert.Equal(t, "135", b.EmployeeShare.String())
	})

	t.Run("negative amount resolves to none", func(t *testing.T) {
		assert.Nil(t, table.Resolve(dec("-0.01")))
	})

	t.Run("empty table resolves to none", func(t *testing.T) {
		assert.Nil(t, payroll.ContributionTable{}.Resolve(dec("100")))
	})
}

func TestTaxTable_Resolve(t *testing.T) {
	table := payroll.TaxTable{
		{RangeLow: dec("0"), RangeHigh: decPtr("20832.99"), BaseTax: dec("0"), Rate: dec("0")},
		{RangeLow: dec("20833"), RangeHigh: nil, BaseTax: dec("0"), Rate: dec("0.15")},
	}

	b := table.Resolve(dec("20833"))
	assert.NotNil(t, b)
	assert.Equal(t, "0.15", b.Rate.String())

	b = table.Resolve(dec("20832.99"))
	assert.NotNil(t, b)
	assert.True(t, b.Rate.IsZero())

	assert.Nil(t, table.Resolve(dec("-1")))
}

func TestContributionTable_Validate(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		assert.NoError(t, sampleContributionTable().Validate())
	})

	t.Run("overlapping brackets", func(t *testing.T) {
		table := payroll.ContributionTable{
			{RangeLow: dec("0"), RangeHigh: decPtr("1000"), EmployeeShare: dec("45")},
			{RangeLow: dec("999"), RangeHigh: nil, EmployeeShare: dec("90")},
		}
		assert.Error(t, table.Validate())
	})

	t.Run("gap between brackets", func(t *testing.T) {
		table := payroll.ContributionTable{
			{RangeLow: dec("0"), RangeHigh: decPtr("999.99"), EmployeeShare: dec("45")},
			{RangeLow: dec("1500"), RangeHigh: nil, EmployeeShare: dec("90")},
		}
		assert.Error(t, table.Validate())
	})

	t.Run("unbounded bracket not last", func(t *testing.T) {
		table := payroll.ContributionTable{
			{RangeLow: dec("0"), RangeHigh: nil, EmployeeShare: dec("45")},
			{RangeLow: dec("1000"), RangeHigh: decPtr("1999.99"), EmployeeShare: dec("90")},
		}
		assert.Error(t, table.Validate())
	})

	t.Run("negative share", func(t *testing.T) {
		table := payroll.ContributionTable{
			{RangeLow: dec("0"), RangeHigh: nil, EmployeeShare: dec("-1")},
		}
		assert.Error(t, table.Validate())
	})
}

func TestTaxTable_Validate(t *testing.T) {
	t.Run("rate above one", func(t *testing.T) {
		table := payroll.TaxTable{
			{RangeLow: dec("0"), RangeHigh: nil, BaseTax: dec("0"), Rate: dec("1.5")},
		}
		assert.Error(t, table.Validate())
	})

	t.Run("negative base tax", func(t *testing.T) {
		table := payroll.TaxTable{
			{RangeLow: dec("0"), RangeHigh: nil, BaseTax: dec("-10"), Rate: dec("0.1")},
		}
		assert.Error(t, table.Validate())
	})

	t.Run("range high below range low", func(t *testing.T) {
		table := payroll.TaxTable{
			{RangeLow: dec("100"), RangeHigh: decPtr("50"), BaseTax: dec("0"), Rate: dec("0")},
		}
		assert.Error(t, table.Validate())
	})
}
