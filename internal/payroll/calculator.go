package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeInput is the compensation snapshot one payslip is computed
// from. Amounts are pesos.
type EmployeeInput struct {
	ID                 uuid.UUID
	Name               string
	MonthlyBasicSalary decimal.Decimal
	Allowances         []AllowanceLine
}

type AllowanceLine struct {
	Name    string
	Amount  decimal.Decimal
	Enabled bool
}

// Payslip is the fully itemized result of one computation. It is a pure
// value: identifiers are stamped later, by the run that owns it.
type Payslip struct {
	EmployeeID   uuid.UUID
	EmployeeName string
	CutoffStart  time.Time
	CutoffEnd    time.Time

	BasicPay    decimal.Decimal
	Allowances  decimal.Decimal
	OvertimePay decimal.Decimal
	HolidayPay  decimal.Decimal
	GrossPay    decimal.Decimal

	SSSContribution        decimal.Decimal
	PhilHealthContribution decimal.Decimal
	PagibigContribution    decimal.Decimal
	WithholdingTax         decimal.Decimal
	OtherDeductions        decimal.Decimal
	TotalDeductions        decimal.Decimal

	NetPay decimal.Decimal
}

// Compute produces one payslip from a compensation snapshot, the cutoff
// window and the already-aggregated approved overtime. Every component
// is rounded to centavos before the totals are formed, so
//
//	gross = basic + allowances + overtime + holiday
//	totalDeductions = sss + philhealth + pagibig + tax + other
//	net = gross - totalDeductions
//
// hold exactly. Pure and idempotent: identical inputs yield an identical
// payslip.
func Compute(
	emp EmployeeInput,
	cutoffStart, cutoffEnd time.Time,
	approvedOvertimeMinutes int,
	settings Settings,
) Payslip {
	// One payslip covers one full monthly cutoff; no pro-ration by days
	// worked.
	basicPay := emp.MonthlyBasicSalary.Round(2)

	totalAllowances := decimal.Zero
	for _, a := range emp.Allowances {
		if a.Enabled {
			totalAllowances = totalAllowances.Add(a.Amount)
		}
	}
	totalAllowances = totalAllowances.Round(2)

	overtimePay := decimal.Zero
	if approvedOvertimeMinutes > 0 && emp.MonthlyBasicSalary.IsPositive() {
		hourlyRate := emp.MonthlyBasicSalary.
			Div(settings.OvertimeDivisorDays).
			Div(settings.OvertimeHoursPerDay)
		overtimeHours := decimal.NewFromInt(int64(approvedOvertimeMinutes)).Div(decimal.NewFromInt(60))
		overtimePay = overtimeHours.Mul(hourlyRate).Mul(settings.OvertimeMultiplier).Round(2)
	}

	holidayPay := decimal.Zero // reserved for a future holiday rule

	grossPay := basicPay.Add(totalAllowances).Add(overtimePay).Add(holidayPay)

	sss := decimal.Zero
	if bracket := settings.SSSTable.Resolve(grossPay); bracket != nil {
		sss = bracket.EmployeeShare.Round(2)
	}

	philhealth := clamp(
		grossPay.Mul(settings.PhilHealthRate).Div(decimal.NewFromInt(2)),
		settings.PhilHealthFloor,
		settings.PhilHealthCap,
	).Round(2)

	pagibig := decimal.Min(
		emp.MonthlyBasicSalary.Mul(settings.PagibigRate),
		settings.PagibigCap,
	).Round(2)

	taxableIncome := grossPay.Sub(sss).Sub(philhealth).Sub(pagibig)

	tax := decimal.Zero
	if bracket := settings.TaxTable.Resolve(taxableIncome); bracket != nil {
		tax = bracket.BaseTax.Add(taxableIncome.Sub(bracket.RangeLow).Mul(bracket.Rate)).Round(2)
	}
	withholdingTax := decimal.Max(decimal.Zero, tax)

	otherDeductions := decimal.Zero
	totalDeductions := sss.Add(philhealth).Add(pagibig).Add(withholdingTax).Add(otherDeductions)
	netPay := grossPay.Sub(totalDeductions)

	return Payslip{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		CutoffStart:  cutoffStart,
		CutoffEnd:    cutoffEnd,

		BasicPay:    basicPay,
		Allowances:  totalAllowances,
		OvertimePay: overtimePay,
		HolidayPay:  holidayPay,
		GrossPay:    grossPay,

		SSSContribution:        sss,
		PhilHealthContribution: philhealth,
		PagibigContribution:    pagibig,
		WithholdingTax:         withholdingTax,
		OtherDeductions:        otherDeductions,
		TotalDeductions:        totalDeductions,

		NetPay: netPay,
	}
}

func clamp(v, floor, cap decimal.Decimal) decimal.Decimal {
	if v.LessThan(floor) {
		return floor
	}
	if v.GreaterThan(cap) {
		return cap
	}
	return v
}
