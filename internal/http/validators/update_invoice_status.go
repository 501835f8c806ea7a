package validators

import (
	dto "flowlancer.com/flowlancer/internal/data_models"
	apperrors "flowlancer.com/flowlancer/internal/errors"
)

func ValidateUpdateInvoiceStatusRequest(r *dto.UpdateInvoiceStatusRequest) error {
	if r.Status == "" {
		return apperrors.Validation("status is required")
	}
	return nil
}
