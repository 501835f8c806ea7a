package model

import (
	"time"

	"flowlancer.com/flowlancer/internal/constants"
)

type Invoice struct {
	ID              string                  `gorm:"primaryKey;size:36" json:"id"`
	ProjectID       string                  `gorm:"size:36;not null;index" json:"project_id"`
	OwnerID         string                  `gorm:"size:64;not null;index" json:"owner_id"`
	InvoiceNumber   string                  `gorm:"not null;uniqueIndex" json:"invoice_number"`
	ClientName      string                  `gorm:"not null" json:"client_name"`
	ClientEmail     string                  `gorm:"not null" json:"client_email"`
	ClientAddress   string                  `json:"client_address"`
	BusinessName    string                  `json:"business_name"`
	BusinessEmail   string                  `gorm:"not null" json:"business_email"`
	BusinessAddress string                  `json:"business_address"`
	TotalHours      float64                 `gorm:"not null" json:"total_hours"`
	TotalAmount     float64                 `gorm:"not null" json:"total_amount"`
	HourlyRate      float64                 `gorm:"not null" json:"hourly_rate"`
	DueDate         *time.Time              `json:"due_date,omitempty"`
	Status          constants.InvoiceStatus `gorm:"type:varchar(20);not null" json:"status"`
	GeneratedAt     time.Time               `json:"generated_at"`
	// TaskDetails is the billing snapshot frozen at creation time. It is
	// authoritative over later time-entry edits; totals are never
	// recomputed from live data.
	TaskDetails []InvoiceTaskDetail `gorm:"foreignKey:InvoiceID" json:"task_details"`
}

type InvoiceTaskDetail struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	InvoiceID   string  `gorm:"size:36;not null;index" json:"-"`
	TaskID      string  `gorm:"size:36;not null" json:"task_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	HoursWorked float64 `json:"hours_worked"`
	HourlyRate  float64 `json:"hourly_rate"`
	Earnings    float64 `json:"earnings"`
	Position    int     `gorm:"not null;default:0" json:"-"`
}
