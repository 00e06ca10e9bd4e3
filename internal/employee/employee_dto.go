package employee

type CreateEmployeeRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Role            string `json:"role" binding:"required"`
	ContactNumber   string `json:"contact_number" binding:"omitempty,numeric"`
	AvailableLeaves int    `json:"available_leaves" binding:"gte=0"`
}

type UpdateEmployeeRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Role          string `json:"role" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"omitempty,numeric"`
}

type EmployeeResponse struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	ContactNumber   string `json:"contact_number,omitempty"`
	AvailableLeaves int    `json:"available_leaves"`
}

type BalanceResponse struct {
	EmployeeID      string `json:"employee_id"`
	AvailableLeaves int    `json:"available_leaves"`
}
