package dto

import model "flowlancer.com/flowlancer/internal/models"

type TimeSummaryResponse struct {
	TotalSeconds int64   `json:"total_seconds"`
	TotalHours   float64 `json:"total_hours"`
}

type TimerResponse struct {
	Entry *model.TimeEntry `json:"entry"`
}
