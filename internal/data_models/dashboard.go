package dto

type ProjectDashboard struct {
	ProjectID        string  `json:"project_id"`
	Name             string  `json:"name"`
	Status           string  `json:"status"`
	TotalSeconds     int64   `json:"total_seconds"`
	TotalHours       float64 `json:"total_hours"`
	UnbilledTasks    int     `json:"unbilled_tasks"`
	UnbilledEstimate float64 `json:"unbilled_estimate"`
}

type DashboardResponse struct {
	Projects []ProjectDashboard `json:"projects"`
}
