package dto

// PortalView is the read-only client view. It intentionally carries no
// rates or amounts.
type PortalView struct {
	ProjectName string       `json:"project_name"`
	Status      string       `json:"status"`
	TotalHours  float64      `json:"total_hours"`
	Tasks       []PortalTask `json:"tasks"`
}

type PortalTask struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}
