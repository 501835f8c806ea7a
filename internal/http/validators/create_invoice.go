package validators

import (
	dto "flowlancer.com/flowlancer/internal/data_models"
	apperrors "flowlancer.com/flowlancer/internal/errors"
)

func ValidateCreateInvoiceRequest(r *dto.CreateInvoiceRequest) error {
	if r.ClientName == "" {
		return apperrors.Validation("client_name is required")
	}
	if r.ClientEmail == "" || !validEmail(r.ClientEmail) {
		return apperrors.Validation("client_email must be a valid email address")
	}
	if r.BusinessEmail == "" || !validEmail(r.BusinessEmail) {
		return apperrors.Validation("business_email must be a valid email address")
	}
	if r.HourlyRate < 0 {
		return apperrors.Validation("hourly_rate must not be negative")
	}
	return nil
}
