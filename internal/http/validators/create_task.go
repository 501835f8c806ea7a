package validators

import (
	dto "flowlancer.com/flowlancer/internal/data_models"
	apperrors "flowlancer.com/flowlancer/internal/errors"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Title == "" {
		return apperrors.Validation("title is required")
	}
	if r.EstimateHours != nil && *r.EstimateHours < 0 {
		return apperrors.Validation("estimate_hours must not be negative")
	}
	return nil
}
