package expense

type CreateExpenseRequest struct {
	Concept     string `json:"concept" binding:"required"`
	BillerName  string `json:"biller_name"`
	Category    string `json:"category" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	ExpenseDate string `json:"expense_date" binding:"required"`
	Notes       string `json:"notes"`
}

type UpdateExpenseRequest struct {
	Concept     string `json:"concept" binding:"required"`
	BillerName  string `json:"biller_name"`
	Category    string `json:"category" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	ExpenseDate string `json:"expense_date" binding:"required"`
	Notes       string `json:"notes"`
}

type ListExpensesFilter struct {
	Category string `form:"category"`
	Month    string `form:"month"` // YYYY-MM
}

type ExpenseResponse struct {
	ID          string `json:"id"`
	Concept     string `json:"concept"`
	BillerName  string `json:"biller_name"`
	Category    string `json:"category"`
	Amount      int64  `json:"amount"`
	ExpenseDate string `json:"expense_date"`
	Notes       string `json:"notes"`
	RecordedBy  string `json:"recorded_by"`
	CreatedAt   string `json:"created_at"`
}

type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
	Count    int    `json:"count"`
}

type MonthlySummaryResponse struct {
	Month      string          `json:"month"`
	Total      int64           `json:"total"`
	Categories []CategoryTotal `json:"categories"`
}
