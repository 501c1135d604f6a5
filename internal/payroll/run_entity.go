package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollRun is one executed batch. Runs are append-only: once written
// they are never mutated or deleted, so everything a reporting view
// reads is immutable history.
type PayrollRun struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CutoffStart time.Time `gorm:"type:date;not null;index"`
	CutoffEnd   time.Time `gorm:"type:date;not null;index"`
	DateRun     time.Time `gorm:"type:timestamptz;not null;index"`
	RunBy       uuid.UUID `gorm:"type:uuid;not null"`

	Payslips []PayslipRecord `gorm:"foreignKey:RunID"`

	CreatedAt time.Time
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

// PayslipRecord is the persisted form of a computed payslip. Monetary
// values are stored in centavos to avoid floating point error; Position
// preserves roster order inside the run.
type PayslipRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID        uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeName string    `gorm:"not null"`
	Position     int       `gorm:"not null;default:0"`

	CutoffStart time.Time `gorm:"type:date;not null"`
	CutoffEnd   time.Time `gorm:"type:date;not null"`

	BasicPay    int64 `gorm:"type:bigint;not null;default:0"`
	Allowances  int64 `gorm:"type:bigint;not null;default:0"`
	OvertimePay int64 `gorm:"type:bigint;not null;default:0"`
	HolidayPay  int64 `gorm:"type:bigint;not null;default:0"`
	GrossPay    int64 `gorm:"type:bigint;not null;default:0"`

	SSSContribution        int64 `gorm:"column:sss_contribution;type:bigint;not null;default:0"`
	PhilHealthContribution int64 `gorm:"column:philhealth_contribution;type:bigint;not null;default:0"`
	PagibigContribution    int64 `gorm:"type:bigint;not null;default:0"`
	WithholdingTax         int64 `gorm:"type:bigint;not null;default:0"`
	OtherDeductions        int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductions        int64 `gorm:"type:bigint;not null;default:0"`

	NetPay int64 `gorm:"type:bigint;not null;default:0"`

	CreatedAt time.Time
}

func (PayslipRecord) TableName() string {
	return "payslips"
}

func toCentavos(v decimal.Decimal) int64 {
	return v.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func fromCentavos(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

func newPayslipRecord(runID uuid.UUID, slipID uuid.UUID, position int, slip Payslip) PayslipRecord {
	return PayslipRecord{
		ID:           slipID,
		RunID:        runID,
		EmployeeID:   slip.EmployeeID,
		EmployeeName: slip.EmployeeName,
		Position:     position,
		CutoffStart:  slip.CutoffStart,
		CutoffEnd:    slip.CutoffEnd,

		BasicPay:    toCentavos(slip.BasicPay),
		Allowances:  toCentavos(slip.Allowances),
		OvertimePay: toCentavos(slip.OvertimePay),
		HolidayPay:  toCentavos(slip.HolidayPay),
		GrossPay:    toCentavos(slip.GrossPay),

		SSSContribution:        toCentavos(slip.SSSContribution),
		PhilHealthContribution: toCentavos(slip.PhilHealthContribution),
		PagibigContribution:    toCentavos(slip.PagibigContribution),
		WithholdingTax:         toCentavos(slip.WithholdingTax),
		OtherDeductions:        toCentavos(slip.OtherDeductions),
		TotalDeductions:        toCentavos(slip.TotalDeductions),

		NetPay: toCentavos(slip.NetPay),
	}
}
