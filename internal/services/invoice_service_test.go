package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"flowlancer.com/flowlancer/internal/constants"
	apperrors "flowlancer.com/flowlancer/internal/errors"
	model "flowlancer.com/flowlancer/internal/models"
)

func TestCreateInvoice_EndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 70)
	t1 := env.seedTask(t, project, "Build landing page", constants.TaskDone)
	t2 := env.seedTask(t, project, "Set up analytics", constants.TaskDone)

	env.seedClosedEntry(t, t1, baseTime, 1800*time.Second)
	env.seedClosedEntry(t, t1, baseTime.Add(time.Hour), 5400*time.Second)

	resp, err := env.invoiceSvc.CreateInvoiceFromProject(ctx, env.ownerID, project.ID, billingRequest(70))
	if err != nil {
		t.Fatalf("failed to create invoice: %v", err)
	}

	if resp.Invoice.TotalHours != 2.0 {
		t.Errorf("expected total hours 2.0, got %v", resp.Invoice.TotalHours)
	}
	if resp.Invoice.TotalAmount != 140.00 {
		t.Errorf("expected total amount 140.00, got %v", resp.Invoice.TotalAmount)
	}
	if resp.Invoice.Status != constants.InvoicePending {
		t.Errorf("expected status pending, got %s", resp.Invoice.Status)
	}
	if resp.Summary.ProjectName != project.Name {
		t.Errorf("expected project name %q in summary, got %q", project.Name, resp.Summary.ProjectName)
	}
	if resp.Summary.TasksBilled != 2 {
		t.Errorf("expected 2 tasks billed, got %d", resp.Summary.TasksBilled)
	}

	details := resp.Invoice.TaskDetails
	if len(details) != 2 {
		t.Fatalf("expected 2 snapshot rows, got %d", len(details))
	}
	if details[0].TaskID != t1.ID || details[0].HoursWorked != 2.0 || details[0].Earnings != 140.00 {
		t.Errorf("unexpected first snapshot row: %+v", details[0])
	}
	if details[1].TaskID != t2.ID || details[1].HoursWorked != 0 || details[1].Earnings != 0 {
		t.Errorf("unexpected second snapshot row: %+v", details[1])
	}

	for _, id := range []string{t1.ID, t2.ID} {
		task, err := env.tasks.FindByID(ctx, env.ownerID, id)
		if err != nil {
			t.Fatalf("failed to reload task: %v", err)
		}
		if task.BilledInInvoiceID == nil || *task.BilledInInvoiceID != resp.Invoice.ID {
			t.Errorf("task %s not marked billed by invoice %s", id, resp.Invoice.ID)
		}
	}

	_, err = env.invoiceSvc.CreateInvoiceFromProject(ctx, env.ownerID, project.ID, billingRequest(70))
	if !errors.Is(err, apperrors.ErrNoBillableWork) {
		t.Errorf("expected ErrNoBillableWork on second call, got %v", err)
	}
}

func TestCreateInvoice_NoBillableWork(t *testing.T) {
	env := newTestEnv(t)
	project := env.seedProject(t, 50)
	env.seedTask(t, project, "Still in progress", constants.TaskInProgress)

	_, err := env.invoiceSvc.CreateInvoiceFromProject(context.Background(), env.ownerID, project.ID, billingRequest(50))
	if !errors.Is(err, apperrors.ErrNoBillableWork) {
		t.Errorf("expected ErrNoBillableWork, got %v", err)
	}
}

func TestCreateInvoice_NoTrackedTime(t *testing.T) {
	env := newTestEnv(t)
	project := env.seedProject(t, 50)
	task := env.seedTask(t, project, "Done but untracked", constants.TaskDone)

	_, err := env.invoiceSvc.CreateInvoiceFromProject(context.Background(), env.ownerID, project.ID, billingRequest(50))
	if !errors.Is(err, apperrors.ErrNoTrackedTime) {
		t.Errorf("expected ErrNoTrackedTime, got %v", err)
	}

	reloaded, err := env.tasks.FindByID(context.Background(), env.ownerID, task.ID)
	if err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if reloaded.BilledInInvoiceID != nil {
		t.Error("task must stay unbilled when invoice creation fails")
	}
}

func TestCreateInvoice_ProjectNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.invoiceSvc.CreateInvoiceFromProject(context.Background(), env.ownerID, uuid.NewString(), billingRequest(50))
	if !errors.Is(err, apperrors.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestCreateInvoice_NoDoubleBilling(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 80)
	t1 := env.seedTask(t, project, "Phase one", constants.TaskDone)
	env.seedClosedEntry(t, t1, baseTime, time.Hour)

	first, err := env.invoiceSvc.CreateInvoiceFromProject(ctx, env.ownerID, project.ID, billingRequest(80))
	if err != nil {
		t.Fatalf("failed to create first invoice: %v", err)
	}

	t2 := env.seedTask(t, project, "Phase two", constants.TaskDone)
	env.seedClosedEntry(t, t2, baseTime.Add(24*time.Hour), 2*time.Hour)

	second, err := env.invoiceSvc.CreateInvoiceFromProject(ctx, env.ownerID, project.ID, billingRequest(80))
	if err != nil {
		t.Fatalf("failed to create second invoice: %v", err)
	}

	seen := map[string]int{}
	for _, inv := range []*model.Invoice{first.Invoice, second.Invoice} {
		for _, d := range inv.TaskDetails {
			seen[d.TaskID]++
		}
	}
	for taskID, n := range seen {
		if n != 1 {
			t.Errorf("task %s appears on %d invoices", taskID, n)
		}
	}
	if len(second.Invoice.TaskDetails) != 1 || second.Invoice.TaskDetails[0].TaskID != t2.ID {
		t.Errorf("second invoice should bill only the new task, got %+v", second.Invoice.TaskDetails)
	}
}

func TestCreateInvoice_TotalConsistency(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 61.5)
	t1 := env.seedTask(t, project, "Research", constants.TaskDone)
	t2 := env.seedTask(t, project, "Implementation", constants.TaskDone)

	// Awkward durations that exercise both rounding points.
	env.seedClosedEntry(t, t1, baseTime, 1000*time.Second)
	env.seedClosedEntry(t, t2, baseTime.Add(time.Hour), 12345*time.Second)

	resp, err := env.invoiceSvc.CreateInvoiceFromProject(ctx, env.ownerID, project.ID, billingRequest(61.5))
	if err != nil {
		t.Fatalf("failed to create invoice: %v", err)
	}

	var sumHours, sumEarnings float64
	for _, d := range resp.Invoice.TaskDetails {
		if d.HoursWorked != roundHours(d.HoursWorked) {
			t.Errorf("hours %v not rounded to 4 decimals", d.HoursWorked)
		}
		if d.Earnings != roundMoney(d.Earnings) {
			t.Errorf("earnings %v not rounded to 2 decimals", d.Earnings)
		}
		sumHours += d.HoursWorked
		sumEarnings += d.Earnings
	}

	if math.Abs(resp.Invoice.TotalHours-sumHours) > 1e-9 {
		t.Errorf("total hours %v != sum of snapshot hours %v", resp.Invoice.TotalHours, sumHours)
	}
	if math.Abs(resp.Invoice.TotalAmount-roundMoney(sumEarnings)) > 1e-9 {
		t.Errorf("total amount %v != rounded sum of earnings %v", resp.Invoice.TotalAmount, sumEarnings)
	}
}

func TestCreateInvoice_RunningTimerExcluded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 100)
	task := env.seedTask(t, project, "Half done", constants.TaskDone)
	env.seedClosedEntry(t, task, baseTime, time.Hour)
	env.seedRunningEntry(t, task, baseTime.Add(2*time.Hour))

	resp, err := env.invoiceSvc.CreateInvoiceFromProject(ctx, env.ownerID, project.ID, billingRequest(100))
	if err != nil {
		t.Fatalf("failed to create invoice: %v", err)
	}

	if resp.Invoice.TotalHours != 1.0 {
		t.Errorf("running timer must not be billed, expected 1.0 hours, got %v", resp.Invoice.TotalHours)
	}
	if resp.Invoice.TotalAmount != 100.00 {
		t.Errorf("expected total amount 100.00, got %v", resp.Invoice.TotalAmount)
	}
}

func TestCreateWithTasks_ClaimConflictRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 70)
	task := env.seedTask(t, project, "Contested", constants.TaskDone)

	// Another invoice claims the task between the unbilled read and the
	// insert, the way a racing request would.
	otherID := uuid.NewString()
	if err := env.db.Model(&model.Task{}).
		Where("id = ?", task.ID).
		Update("billed_in_invoice_id", otherID).Error; err != nil {
		t.Fatalf("failed to pre-claim task: %v", err)
	}

	invoice := &model.Invoice{
		ID:            uuid.NewString(),
		ProjectID:     project.ID,
		OwnerID:       env.ownerID,
		InvoiceNumber: "FL-TEST-0001",
		ClientName:    "Acme Corp",
		ClientEmail:   "billing@acme.test",
		BusinessEmail: "jo@freelance.test",
		TotalHours:    1,
		TotalAmount:   70,
		HourlyRate:    70,
		Status:        constants.InvoicePending,
		GeneratedAt:   time.Now().UTC(),
		TaskDetails: []model.InvoiceTaskDetail{
			{TaskID: task.ID, Title: task.Title, HoursWorked: 1, HourlyRate: 70, Earnings: 70},
		},
	}

	err := env.invoices.CreateWithTasks(ctx, invoice, []string{task.ID})
	if !errors.Is(err, apperrors.ErrConcurrentBillingConflict) {
		t.Fatalf("expected ErrConcurrentBillingConflict, got %v", err)
	}

	if _, err := env.invoices.FindByID(ctx, env.ownerID, invoice.ID); !errors.Is(err, apperrors.ErrInvoiceNotFound) {
		t.Errorf("conflicting invoice must be rolled back, got %v", err)
	}

	reloaded, err := env.tasks.FindByID(ctx, env.ownerID, task.ID)
	if err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if reloaded.BilledInInvoiceID == nil || *reloaded.BilledInInvoiceID != otherID {
		t.Error("original claim must survive the conflicting attempt")
	}
}

func TestUpdateInvoiceStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 70)
	task := env.seedTask(t, project, "Work", constants.TaskDone)
	env.seedClosedEntry(t, task, baseTime, time.Hour)

	created, err := env.invoiceSvc.CreateInvoiceFromProject(ctx, env.ownerID, project.ID, billingRequest(70))
	if err != nil {
		t.Fatalf("failed to create invoice: %v", err)
	}

	updated, err := env.invoiceSvc.UpdateInvoiceStatus(ctx, env.ownerID, created.Invoice.ID, "paid")
	if err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	if updated.Status != constants.InvoicePaid {
		t.Errorf("expected status paid, got %s", updated.Status)
	}

	fetched, err := env.invoiceSvc.GetInvoice(ctx, env.ownerID, created.Invoice.ID)
	if err != nil {
		t.Fatalf("failed to fetch invoice: %v", err)
	}
	if fetched.Invoice.Status != constants.InvoicePaid {
		t.Errorf("status change not persisted, got %s", fetched.Invoice.Status)
	}

	if _, err := env.invoiceSvc.UpdateInvoiceStatus(ctx, env.ownerID, created.Invoice.ID, "refunded"); err == nil {
		t.Error("expected validation error for unknown status")
	} else if apperrors.From(err).Kind != apperrors.KindValidation {
		t.Errorf("expected validation kind, got %s", apperrors.From(err).Kind)
	}
}

func TestGetInvoice_SnapshotIsAuthoritative(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 70)
	task := env.seedTask(t, project, "Work", constants.TaskDone)
	env.seedClosedEntry(t, task, baseTime, 2*time.Hour)

	created, err := env.invoiceSvc.CreateInvoiceFromProject(ctx, env.ownerID, project.ID, billingRequest(70))
	if err != nil {
		t.Fatalf("failed to create invoice: %v", err)
	}

	// More time logged after invoicing must not change the snapshot.
	env.seedClosedEntry(t, task, baseTime.Add(48*time.Hour), 3*time.Hour)

	fetched, err := env.invoiceSvc.GetInvoice(ctx, env.ownerID, created.Invoice.ID)
	if err != nil {
		t.Fatalf("failed to fetch invoice: %v", err)
	}
	if fetched.Reconstructed {
		t.Error("snapshot invoice must not be reconstructed")
	}
	if fetched.Invoice.TotalHours != 2.0 {
		t.Errorf("expected snapshot hours 2.0, got %v", fetched.Invoice.TotalHours)
	}
	if len(fetched.Invoice.TaskDetails) != 1 || fetched.Invoice.TaskDetails[0].HoursWorked != 2.0 {
		t.Errorf("snapshot breakdown changed: %+v", fetched.Invoice.TaskDetails)
	}
}

func TestGetInvoice_ReconstructsLegacyBreakdown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 70)
	task := env.seedTask(t, project, "Legacy work", constants.TaskDone)
	env.seedClosedEntry(t, task, baseTime, 2*time.Hour)

	created, err := env.invoiceSvc.CreateInvoiceFromProject(ctx, env.ownerID, project.ID, billingRequest(70))
	if err != nil {
		t.Fatalf("failed to create invoice: %v", err)
	}

	// Simulate an invoice from before snapshotting existed.
	if err := env.db.Where("invoice_id = ?", created.Invoice.ID).
		Delete(&model.InvoiceTaskDetail{}).Error; err != nil {
		t.Fatalf("failed to drop snapshot rows: %v", err)
	}

	fetched, err := env.invoiceSvc.GetInvoice(ctx, env.ownerID, created.Invoice.ID)
	if err != nil {
		t.Fatalf("failed to fetch invoice: %v", err)
	}
	if !fetched.Reconstructed {
		t.Fatal("expected a reconstructed breakdown")
	}
	if len(fetched.Invoice.TaskDetails) != 1 {
		t.Fatalf("expected 1 reconstructed row, got %d", len(fetched.Invoice.TaskDetails))
	}
	row := fetched.Invoice.TaskDetails[0]
	if row.TaskID != task.ID || row.HoursWorked != 2.0 || row.Earnings != 140.00 {
		t.Errorf("unexpected reconstructed row: %+v", row)
	}
}
