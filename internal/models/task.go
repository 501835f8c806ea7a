package model

import (
	"time"

	"flowlancer.com/flowlancer/internal/constants"
)

type Task struct {
	ID          string               `gorm:"primaryKey;size:36" json:"id"`
	ProjectID   string               `gorm:"size:36;not null;index" json:"project_id"`
	OwnerID     string               `gorm:"size:64;not null;index" json:"owner_id"`
	Title       string               `gorm:"not null" json:"title"`
	Description string               `json:"description"`
	Status      constants.TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	// EstimateHours is advisory only; billing works from tracked time.
	EstimateHours *float64 `json:"estimate_hours,omitempty"`
	// BilledInInvoiceID is set exactly once, by invoice creation. A task
	// with this field set can never appear on a second invoice.
	BilledInInvoiceID *string   `gorm:"size:36;index" json:"billed_in_invoice_id,omitempty"`
	Position          int       `gorm:"not null;default:0" json:"position"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
