package validators

import (
	dto "flowlancer.com/flowlancer/internal/data_models"
	apperrors "flowlancer.com/flowlancer/internal/errors"
)

func ValidateCreateProjectRequest(r *dto.CreateProjectRequest) error {
	if r.Name == "" {
		return apperrors.Validation("name is required")
	}
	if r.HourlyRate < 0 {
		return apperrors.Validation("hourly_rate must not be negative")
	}
	if r.ClientEmail != "" && !validEmail(r.ClientEmail) {
		return apperrors.Validation("client_email is not a valid email address")
	}
	return nil
}
