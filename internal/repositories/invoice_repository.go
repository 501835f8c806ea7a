package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"flowlancer.com/flowlancer/internal/constants"
	apperrors "flowlancer.com/flowlancer/internal/errors"
	model "flowlancer.com/flowlancer/internal/models"
)

type InvoiceRepository struct {
	db *gorm.DB
}

// ErrDuplicateInvoiceNumber reports a collision on the invoice number
// unique index. Callers regenerate the number and retry.
var ErrDuplicateInvoiceNumber = errors.New("duplicate invoice number")

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// CreateWithTasks inserts the invoice (snapshot rows included) and claims
// the source tasks in one transaction. The claim only touches tasks whose
// billed_in_invoice_id is still NULL; when a racing call got there first
// the affected-row count comes up short, the transaction rolls back, and
// the conflict is surfaced for the caller to retry against a fresh read of
// the unbilled set.
func (r *InvoiceRepository) CreateWithTasks(ctx context.Context, invoice *model.Invoice, taskIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateInvoiceNumber
			}
			return err
		}

		res := tx.Model(&model.Task{}).
			Where("id IN ? AND owner_id = ? AND billed_in_invoice_id IS NULL", taskIDs, invoice.OwnerID).
			Updates(map[string]interface{}{
				"billed_in_invoice_id": invoice.ID,
				"updated_at":           time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(taskIDs)) {
			return apperrors.ErrConcurrentBillingConflict
		}
		return nil
	})
}

func (r *InvoiceRepository) FindByID(ctx context.Context, ownerID, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.WithContext(ctx).
		Preload("TaskDetails", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&invoice, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("generated_at desc").
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) ListByProject(ctx context.Context, ownerID, projectID string) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND owner_id = ?", projectID, ownerID).
		Order("generated_at desc").
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) CountByProject(ctx context.Context, ownerID, projectID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("project_id = ? AND owner_id = ?", projectID, ownerID).
		Count(&count).Error
	return count, err
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, ownerID, id string, status constants.InvoiceStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrInvoiceNotFound
	}
	return nil
}
