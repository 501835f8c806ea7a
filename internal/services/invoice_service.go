package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"flowlancer.com/flowlancer/internal/constants"
	dto "flowlancer.com/flowlancer/internal/data_models"
	apperrors "flowlancer.com/flowlancer/internal/errors"
	"flowlancer.com/flowlancer/internal/locks"
	model "flowlancer.com/flowlancer/internal/models"
	repository "flowlancer.com/flowlancer/internal/repositories"
)

type InvoiceService struct {
	projects *repository.ProjectRepository
	tasks    *repository.TaskRepository
	invoices *repository.InvoiceRepository
	times    *TimeService
	locker   locks.ProjectLocker
}

func NewInvoiceService(
	projects *repository.ProjectRepository,
	tasks *repository.TaskRepository,
	invoices *repository.InvoiceRepository,
	times *TimeService,
	locker locks.ProjectLocker,
) *InvoiceService {
	return &InvoiceService{
		projects: projects,
		tasks:    tasks,
		invoices: invoices,
		times:    times,
		locker:   locker,
	}
}

// CreateInvoiceFromProject bills every done, unbilled task of the project:
// per task, tracked seconds become hours (4dp) and hours times the rate
// become earnings (2dp); the invoice is inserted and the tasks claimed in
// one transaction so no invoice can exist without its tasks marked billed,
// and no task can be marked billed twice.
func (s *InvoiceService) CreateInvoiceFromProject(
	ctx context.Context,
	ownerID, projectID string,
	req dto.CreateInvoiceRequest,
) (*dto.InvoiceResponse, error) {
	project, err := s.projects.FindByID(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	lockKey := fmt.Sprintf("billing:%s:%s", ownerID, projectID)
	acquired, err := s.locker.Acquire(ctx, lockKey)
	if err != nil {
		// The lock is advisory; the transactional claim below still
		// guarantees correctness without it.
		log.Printf("billing lock unavailable for project %s: %v", projectID, err)
	} else if !acquired {
		return nil, apperrors.ErrConcurrentBillingConflict
	} else {
		defer func() {
			if err := s.locker.Release(ctx, lockKey); err != nil {
				log.Printf("failed to release billing lock for project %s: %v", projectID, err)
			}
		}()
	}

	billable, err := s.unbilledDoneTasks(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if len(billable) == 0 {
		return nil, apperrors.ErrNoBillableWork
	}

	details, totalHours, totalAmount, err := s.buildSnapshot(ctx, ownerID, billable, req.HourlyRate)
	if err != nil {
		return nil, err
	}
	if totalHours == 0 {
		return nil, apperrors.ErrNoTrackedTime
	}

	invoice := &model.Invoice{
		ID:              uuid.NewString(),
		ProjectID:       projectID,
		OwnerID:         ownerID,
		InvoiceNumber:   newInvoiceNumber(),
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientAddress:   req.ClientAddress,
		BusinessName:    req.BusinessName,
		BusinessEmail:   req.BusinessEmail,
		BusinessAddress: req.BusinessAddress,
		TotalHours:      totalHours,
		TotalAmount:     totalAmount,
		HourlyRate:      req.HourlyRate,
		DueDate:         req.DueDate,
		Status:          constants.InvoicePending,
		GeneratedAt:     time.Now().UTC(),
		TaskDetails:     details,
	}

	if err := s.insertWithClaim(ctx, invoice, billable); err != nil {
		return nil, err
	}

	return &dto.InvoiceResponse{
		Invoice: invoice,
		Summary: dto.InvoiceSummary{
			ProjectName: project.Name,
			TasksBilled: len(details),
			TotalHours:  totalHours,
			HourlyRate:  req.HourlyRate,
			TotalAmount: totalAmount,
		},
	}, nil
}

func (s *InvoiceService) unbilledDoneTasks(ctx context.Context, ownerID, projectID string) ([]model.Task, error) {
	tasks, err := s.tasks.ListByProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	billable := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == constants.TaskDone && t.BilledInInvoiceID == nil {
			billable = append(billable, t)
		}
	}
	return billable, nil
}

func (s *InvoiceService) buildSnapshot(
	ctx context.Context,
	ownerID string,
	tasks []model.Task,
	hourlyRate float64,
) ([]model.InvoiceTaskDetail, float64, float64, error) {
	details := make([]model.InvoiceTaskDetail, 0, len(tasks))
	var totalHours, totalAmount float64

	for i, task := range tasks {
		seconds, err := s.times.BillableTaskSeconds(ctx, ownerID, task.ID)
		if err != nil {
			return nil, 0, 0, err
		}

		hours := roundHours(float64(seconds) / 3600)
		earnings := roundMoney(hours * hourlyRate)

		details = append(details, model.InvoiceTaskDetail{
			TaskID:      task.ID,
			Title:       task.Title,
			Description: task.Description,
			HoursWorked: hours,
			HourlyRate:  hourlyRate,
			Earnings:    earnings,
			Position:    i,
		})

		totalHours += hours
		totalAmount += earnings
	}

	return details, totalHours, roundMoney(totalAmount), nil
}

func (s *InvoiceService) insertWithClaim(ctx context.Context, invoice *model.Invoice, tasks []model.Task) error {
	taskIDs := make([]string, len(tasks))
	for i, t := range tasks {
		taskIDs[i] = t.ID
	}

	err := s.invoices.CreateWithTasks(ctx, invoice, taskIDs)
	if errors.Is(err, repository.ErrDuplicateInvoiceNumber) {
		// Numbers are timestamp+random; one regeneration is enough.
		invoice.InvoiceNumber = newInvoiceNumber()
		err = s.invoices.CreateWithTasks(ctx, invoice, taskIDs)
	}
	return err
}

// GetInvoice returns the invoice with its snapshot breakdown. Invoices
// predating snapshotting get a breakdown rebuilt from the tasks that
// reference them, priced at the rate implied by the stored totals.
func (s *InvoiceService) GetInvoice(ctx context.Context, ownerID, invoiceID string) (*dto.InvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	resp := &dto.InvoiceResponse{
		Invoice: invoice,
		Summary: dto.InvoiceSummary{
			TasksBilled: len(invoice.TaskDetails),
			TotalHours:  invoice.TotalHours,
			HourlyRate:  invoice.HourlyRate,
			TotalAmount: invoice.TotalAmount,
		},
	}

	if project, err := s.projects.FindByID(ctx, ownerID, invoice.ProjectID); err == nil {
		resp.Summary.ProjectName = project.Name
	}

	if len(invoice.TaskDetails) == 0 {
		if err := s.reconstructDetails(ctx, ownerID, invoice); err != nil {
			return nil, err
		}
		resp.Reconstructed = true
		resp.Summary.TasksBilled = len(invoice.TaskDetails)
	}

	return resp, nil
}

func (s *InvoiceService) reconstructDetails(ctx context.Context, ownerID string, invoice *model.Invoice) error {
	tasks, err := s.tasks.ListByInvoice(ctx, ownerID, invoice.ID)
	if err != nil {
		return err
	}

	impliedRate := invoice.HourlyRate
	if impliedRate == 0 && invoice.TotalHours > 0 {
		impliedRate = invoice.TotalAmount / invoice.TotalHours
	}

	for i, task := range tasks {
		seconds, err := s.times.BillableTaskSeconds(ctx, ownerID, task.ID)
		if err != nil {
			return err
		}

		hours := roundHours(float64(seconds) / 3600)
		invoice.TaskDetails = append(invoice.TaskDetails, model.InvoiceTaskDetail{
			InvoiceID:   invoice.ID,
			TaskID:      task.ID,
			Title:       task.Title,
			Description: task.Description,
			HoursWorked: hours,
			HourlyRate:  impliedRate,
			Earnings:    roundMoney(hours * impliedRate),
			Position:    i,
		})
	}
	return nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context, ownerID string) ([]model.Invoice, error) {
	return s.invoices.ListByOwner(ctx, ownerID)
}

func (s *InvoiceService) ListProjectInvoices(ctx context.Context, ownerID, projectID string) ([]model.Invoice, error) {
	if _, err := s.projects.FindByID(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	return s.invoices.ListByProject(ctx, ownerID, projectID)
}

func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, ownerID, invoiceID, status string) (*model.Invoice, error) {
	next := constants.InvoiceStatus(status)
	if !constants.ValidInvoiceStatus(next) {
		return nil, apperrors.Validation("invalid invoice status")
	}

	invoice, err := s.invoices.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	if !canTransition(invoice.Status, next) {
		return nil, apperrors.Validation(
			fmt.Sprintf("cannot move invoice from %s to %s", invoice.Status, next),
		)
	}

	if err := s.invoices.UpdateStatus(ctx, ownerID, invoiceID, next); err != nil {
		return nil, err
	}

	invoice.Status = next
	return invoice, nil
}

// canTransition is the single place a transition graph would live. Every
// move between the four statuses is allowed today; restricting, say,
// cancelled to paid means editing this function only.
func canTransition(from, to constants.InvoiceStatus) bool {
	return true
}

func newInvoiceNumber() string {
	return fmt.Sprintf("FL-%d-%04X", time.Now().UnixNano(), rand.Intn(0x10000))
}
