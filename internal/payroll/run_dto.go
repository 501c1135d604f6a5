package payroll

type ExecuteRunRequest struct {
	CutoffStart string `json:"cutoff_start" binding:"required"`
	CutoffEnd   string `json:"cutoff_end" binding:"required"`
}

type PayslipResponse struct {
	ID           string `json:"id"`
	RunID        string `json:"run_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	CutoffStart  string `json:"cutoff_start"`
	CutoffEnd    string `json:"cutoff_end"`

	BasicPay    int64 `json:"basic_pay"`
	Allowances  int64 `json:"allowances"`
	OvertimePay int64 `json:"overtime_pay"`
	HolidayPay  int64 `json:"holiday_pay"`
	GrossPay    int64 `json:"gross_pay"`

	SSSContribution        int64 `json:"sss_contribution"`
	PhilHealthContribution int64 `json:"philhealth_contribution"`
	PagibigContribution    int64 `json:"pagibig_contribution"`
	WithholdingTax         int64 `json:"withholding_tax"`
	OtherDeductions        int64 `json:"other_deductions"`
	TotalDeductions        int64 `json:"total_deductions"`

	NetPay int64 `json:"net_pay"`
}

type RunResponse struct {
	ID          string            `json:"id"`
	CutoffStart string            `json:"cutoff_start"`
	CutoffEnd   string            `json:"cutoff_end"`
	DateRun     string            `json:"date_run"`
	RunBy       string            `json:"run_by"`
	Payslips    []PayslipResponse `json:"payslips"`
}

type RunSummaryResponse struct {
	ID           string `json:"id"`
	CutoffStart  string `json:"cutoff_start"`
	CutoffEnd    string `json:"cutoff_end"`
	DateRun      string `json:"date_run"`
	RunBy        string `json:"run_by"`
	PayslipCount int    `json:"payslip_count"`
	TotalNetPay  int64  `json:"total_net_pay"`
}

type SettingsResponse struct {
	SSSTable ContributionTable `json:"sss_table"`
	TaxTable TaxTable          `json:"tax_table"`

	PhilHealthRate  string `json:"philhealth_rate"`
	PhilHealthFloor string `json:"philhealth_floor"`
	PhilHealthCap   string `json:"philhealth_cap"`
	PagibigRate     string `json:"pagibig_rate"`
	PagibigCap      string `json:"pagibig_cap"`

	OvertimeDivisorDays string `json:"overtime_divisor_days"`
	OvertimeHoursPerDay string `json:"overtime_hours_per_day"`
	OvertimeMultiplier  string `json:"overtime_multiplier"`
}
