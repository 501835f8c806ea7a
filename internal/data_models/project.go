package dto

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ClientName  string  `json:"client_name"`
	ClientEmail string  `json:"client_email"`
	HourlyRate  float64 `json:"hourly_rate"`
}

type UpdateProjectRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	ClientName  *string  `json:"client_name,omitempty"`
	ClientEmail *string  `json:"client_email,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty"`
	Status      *string  `json:"status,omitempty"`
}
