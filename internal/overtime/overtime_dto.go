package overtime

type CreateRequestRequest struct {
	EmployeeID       string  `json:"employee_id" binding:"required,uuid"`
	Date             string  `json:"date" binding:"required"`
	RequestedMinutes int     `json:"requested_minutes" binding:"required"`
	Reason           *string `json:"reason"`
}

type ListRequestsFilter struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
}

type RequestResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Date             string  `json:"date"`
	RequestedMinutes int     `json:"requested_minutes"`
	Reason           *string `json:"reason,omitempty"`
	Status           string  `json:"status"`
	DecidedBy        *string `json:"decided_by,omitempty"`
	DecidedAt        *string `json:"decided_at,omitempty"`
}
