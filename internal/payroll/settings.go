package payroll

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Settings is the process-wide statutory configuration. It is loaded
// once at startup and never mutated afterwards, so concurrent payroll
// executions may share it without locking. The shipped tables are
// sample data; the real schedules come from PAYROLL_SETTINGS_FILE.
type Settings struct {
	SSSTable ContributionTable `json:"sss_table"`
	TaxTable TaxTable          `json:"tax_table"`

	PhilHealthRate  decimal.Decimal `json:"philhealth_rate"`
	PhilHealthFloor decimal.Decimal `json:"philhealth_floor"`
	PhilHealthCap   decimal.Decimal `json:"philhealth_cap"`

	PagibigRate decimal.Decimal `json:"pagibig_rate"`
	PagibigCap  decimal.Decimal `json:"pagibig_cap"`

	// Overtime policy. Kept configurable rather than hard constants so
	// a different jurisdiction or employment type can override them.
	OvertimeDivisorDays decimal.Decimal `json:"overtime_divisor_days"`
	OvertimeHoursPerDay decimal.Decimal `json:"overtime_hours_per_day"`
	OvertimeMultiplier  decimal.Decimal `json:"overtime_multiplier"`
}

// Validate rejects a structurally broken configuration eagerly, once, so
// a bad bracket table cannot silently corrupt every payslip computed
// against it.
func (s Settings) Validate() error {
	if err := s.SSSTable.Validate(); err != nil {
		return fmt.Errorf("sss table: %w", err)
	}
	if err := s.TaxTable.Validate(); err != nil {
		return fmt.Errorf("tax table: %w", err)
	}
	if s.PhilHealthRate.IsNegative() || s.PagibigRate.IsNegative() {
		return fmt.Errorf("contribution rates cannot be negative")
	}
	if s.PhilHealthFloor.GreaterThan(s.PhilHealthCap) {
		return fmt.Errorf("philhealth floor exceeds cap")
	}
	if !s.OvertimeDivisorDays.IsPositive() || !s.OvertimeHoursPerDay.IsPositive() {
		return fmt.Errorf("overtime divisor days and hours per day must be positive")
	}
	if s.OvertimeMultiplier.IsNegative() {
		return fmt.Errorf("overtime multiplier cannot be negative")
	}
	return nil
}

// LoadSettings reads the statutory configuration from path, or returns
// the compiled-in defaults when path is empty. Either way the result is
// validated before anything is allowed to compute against it.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("read payroll settings: %w", err)
		}
		if err := json.Unmarshal(raw, &settings); err != nil {
			return Settings{}, fmt.Errorf("parse payroll settings: %w", err)
		}
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid payroll settings: %w", err)
	}
	return settings, nil
}

// DefaultSettings carries a simplified SSS schedule (4.5% employee /
// 9.5% employer on a salary credit stepped by 500 up to 20,000) and the
// TRAIN monthly withholding table.
func DefaultSettings() Settings {
	return Settings{
		SSSTable:            defaultSSSTable(),
		TaxTable:            defaultTaxTable(),
		PhilHealthRate:      decimal.NewFromFloat(0.05),
		PhilHealthFloor:     decimal.NewFromInt(250),
		PhilHealthCap:       decimal.NewFromInt(2500),
		PagibigRate:         decimal.NewFromFloat(0.02),
		PagibigCap:          decimal.NewFromInt(100),
		OvertimeDivisorDays: decimal.NewFromInt(22),
		OvertimeHoursPerDay: decimal.NewFromInt(8),
		OvertimeMultiplier:  decimal.NewFromFloat(1.25),
	}
}

func defaultSSSTable() ContributionTable {
	var (
		employeeRate = decimal.NewFromFloat(0.045)
		employerRate = decimal.NewFromFloat(0.095)
		step         = decimal.NewFromInt(500)
		halfStep     = decimal.NewFromInt(250)
		centBelow    = decimal.New(1, -2) // 0.01
		minCredit    = decimal.NewFromInt(4000)
		maxCredit    = decimal.NewFromInt(20000)
	)

	table := ContributionTable{}
	for credit := minCredit; !credit.GreaterThan(maxCredit); credit = credit.Add(step) {
		low := credit.Sub(halfStep)
		if credit.Equal(minCredit) {
			low = decimal.Zero
		}

		bracket := ContributionBracket{
			RangeLow:      low,
			EmployeeShare: credit.Mul(employeeRate).Round(2),
			EmployerShare: credit.Mul(employerRate).Round(2),
		}
		bracket.Total = bracket.EmployeeShare.Add(bracket.EmployerShare)

		if credit.Equal(maxCredit) {
			bracket.RangeHigh = nil // top bracket absorbs everything above
		} else {
			high := credit.Add(halfStep).Sub(centBelow)
			bracket.RangeHigh = &high
		}

		table = append(table, bracket)
	}
	return table
}

func defaultTaxTable() TaxTable {
	row := func(low, high, base float64, rate float64, unbounded bool) TaxBracket {
		b := TaxBracket{
			RangeLow: decimal.NewFromFloat(low),
			BaseTax:  decimal.NewFromFloat(base),
			Rate:     decimal.NewFromFloat(rate),
		}
		if !unbounded {
			h := decimal.NewFromFloat(high)
			b.RangeHigh = &h
		}
		return b
	}

	return TaxTable{
		row(0, 20832.99, 0, 0, false),
		row(20833, 33332.99, 0, 0.15, false),
		row(33333, 66666.99, 1875, 0.20, false),
		row(66667, 166666.99, 8541.80, 0.25, false),
		row(166667, 666666.99, 33541.80, 0.30, false),
		row(666667, 0, 183541.80, 0.35, true),
	}
}
