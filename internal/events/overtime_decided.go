package events

import "time"

const OvertimeDecidedTopic = "backoffice.overtime.decided.v1"

type OvertimeDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	DecidedBy  string    `json:"decided_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
