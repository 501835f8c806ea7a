package model

import (
	"time"

	"flowlancer.com/flowlancer/internal/constants"
)

type Project struct {
	ID          string                  `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string                  `gorm:"size:64;not null;index" json:"owner_id"`
	Name        string                  `gorm:"not null" json:"name"`
	Description string                  `json:"description"`
	ClientName  string                  `json:"client_name"`
	ClientEmail string                  `json:"client_email"`
	HourlyRate  float64                 `gorm:"not null;default:0" json:"hourly_rate"`
	Status      constants.ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`
	PortalToken *string                 `gorm:"size:36;uniqueIndex" json:"portal_token,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}
