package dto

// CreateAssignmentRequest body para POST /api/assignments.
type CreateAssignmentRequest struct {
	SerialID           string `json:"serial_id" validate:"required"`
	AssigneeUserID     string `json:"assignee_user_id" validate:"required"`
	StartDate          *Date  `json:"start_date,omitempty"`
	ExpectedReturnDate *Date  `json:"expected_return_date,omitempty"`
	Notes              string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// AssignmentResponse salida de una asignación.
type AssignmentResponse struct {
	ID                 string `json:"id"`
	SerialID           string `json:"serial_id"`
	AssigneeUserID     string `json:"assignee_user_id"`
	StartDate          Date   `json:"start_date"`
	ExpectedReturnDate *Date  `json:"expected_return_date"`
	EndDate            *Date  `json:"end_date"`
	Notes              string `json:"notes,omitempty"`
	DocumentFileID     string `json:"document_file_id,omitempty"`
}
