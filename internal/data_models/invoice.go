package dto

import (
	"time"

	model "flowlancer.com/flowlancer/internal/models"
)

type CreateInvoiceRequest struct {
	ClientName      string     `json:"client_name"`
	ClientEmail     string     `json:"client_email"`
	ClientAddress   string     `json:"client_address"`
	BusinessName    string     `json:"business_name"`
	BusinessEmail   string     `json:"business_email"`
	BusinessAddress string     `json:"business_address"`
	HourlyRate      float64    `json:"hourly_rate"`
	DueDate         *time.Time `json:"due_date,omitempty"`
}

type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

type InvoiceSummary struct {
	ProjectName string  `json:"project_name"`
	TasksBilled int     `json:"tasks_billed"`
	TotalHours  float64 `json:"total_hours"`
	HourlyRate  float64 `json:"hourly_rate"`
	TotalAmount float64 `json:"total_amount"`
}

type InvoiceResponse struct {
	Invoice *model.Invoice `json:"invoice"`
	Summary InvoiceSummary `json:"summary"`
	// Reconstructed marks a breakdown rebuilt from live task and time
	// data because the invoice predates snapshotting. Best effort only.
	Reconstructed bool `json:"reconstructed,omitempty"`
}
