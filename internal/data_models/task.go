package dto

type CreateTaskRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Status        string   `json:"status"`
	EstimateHours *float64 `json:"estimate_hours,omitempty"`
	Position      int      `json:"position"`
}

type UpdateTaskRequest struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Status        *string  `json:"status,omitempty"`
	EstimateHours *float64 `json:"estimate_hours,omitempty"`
	Position      *int     `json:"position,omitempty"`
}
