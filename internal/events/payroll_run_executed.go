package events

import "time"

const PayrollRunExecutedTopic = "backoffice.payroll.run.executed.v1"

type PayrollRunExecutedEvent struct {
	EventType    string    `json:"event_type"`
	RunID        string    `json:"run_id"`
	CutoffStart  string    `json:"cutoff_start"`
	CutoffEnd    string    `json:"cutoff_end"`
	PayslipCount int       `json:"payslip_count"`
	RunBy        string    `json:"run_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
