package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"flowlancer.com/flowlancer/internal/constants"
	dto "flowlancer.com/flowlancer/internal/data_models"
	apperrors "flowlancer.com/flowlancer/internal/errors"
)

func TestDeleteTask_RefusesBilledTasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 70)
	task := env.seedTask(t, project, "Billed work", constants.TaskDone)
	env.seedClosedEntry(t, task, baseTime, time.Hour)

	if _, err := env.invoiceSvc.CreateInvoiceFromProject(ctx, env.ownerID, project.ID, billingRequest(70)); err != nil {
		t.Fatalf("failed to create invoice: %v", err)
	}

	if err := env.taskSvc.DeleteTask(ctx, env.ownerID, task.ID); !errors.Is(err, apperrors.ErrTaskAlreadyBilled) {
		t.Errorf("expected ErrTaskAlreadyBilled, got %v", err)
	}

	if _, err := env.taskSvc.GetTask(ctx, env.ownerID, task.ID); err != nil {
		t.Errorf("billed task must survive the delete attempt: %v", err)
	}
}

func TestDeleteTask_RemovesTimeEntries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 70)
	task := env.seedTask(t, project, "Scrapped", constants.TaskBacklog)
	env.seedClosedEntry(t, task, baseTime, time.Hour)

	if err := env.taskSvc.DeleteTask(ctx, env.ownerID, task.ID); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}

	entries, err := env.entries.ListForTask(ctx, env.ownerID, task.ID)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected orphaned entries removed, found %d", len(entries))
	}
}

func TestUpdateTask_StatusValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 70)
	task := env.seedTask(t, project, "Work", constants.TaskBacklog)

	bad := "shipped"
	if _, err := env.taskSvc.UpdateTask(ctx, env.ownerID, task.ID, dto.UpdateTaskRequest{Status: &bad}); err == nil {
		t.Error("expected validation error for unknown status")
	}

	done := string(constants.TaskDone)
	updated, err := env.taskSvc.UpdateTask(ctx, env.ownerID, task.ID, dto.UpdateTaskRequest{Status: &done})
	if err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	if updated.Status != constants.TaskDone {
		t.Errorf("expected status done, got %s", updated.Status)
	}
}

func TestDeleteProject_RefusesInvoicedProjects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 70)
	task := env.seedTask(t, project, "Work", constants.TaskDone)
	env.seedClosedEntry(t, task, baseTime, time.Hour)

	if _, err := env.invoiceSvc.CreateInvoiceFromProject(ctx, env.ownerID, project.ID, billingRequest(70)); err != nil {
		t.Fatalf("failed to create invoice: %v", err)
	}

	if err := env.projectSvc.DeleteProject(ctx, env.ownerID, project.ID); !errors.Is(err, apperrors.ErrProjectHasInvoices) {
		t.Errorf("expected ErrProjectHasInvoices, got %v", err)
	}
}

func TestPortalView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 70)
	task := env.seedTask(t, project, "Client-visible work", constants.TaskInProgress)
	env.seedClosedEntry(t, task, baseTime, 90*time.Minute)

	token, err := env.projectSvc.EnablePortal(ctx, env.ownerID, project.ID)
	if err != nil {
		t.Fatalf("failed to enable portal: %v", err)
	}

	view, err := env.projectSvc.PortalView(ctx, token)
	if err != nil {
		t.Fatalf("failed to load portal view: %v", err)
	}
	if view.ProjectName != project.Name {
		t.Errorf("expected project name %q, got %q", project.Name, view.ProjectName)
	}
	if view.TotalHours != 1.5 {
		t.Errorf("expected 1.5 hours, got %v", view.TotalHours)
	}
	if len(view.Tasks) != 1 || view.Tasks[0].Title != task.Title {
		t.Errorf("unexpected portal task list: %+v", view.Tasks)
	}

	if _, err := env.projectSvc.PortalView(ctx, "no-such-token"); !errors.Is(err, apperrors.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound for bad token, got %v", err)
	}
}

func TestDashboardSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.seedProject(t, 100)
	done := env.seedTask(t, project, "Done unbilled", constants.TaskDone)
	env.seedClosedEntry(t, done, baseTime, 2*time.Hour)
	inProgress := env.seedTask(t, project, "In flight", constants.TaskInProgress)
	env.seedClosedEntry(t, inProgress, baseTime.Add(3*time.Hour), time.Hour)

	resp, err := env.dashboard.Summary(ctx, env.ownerID)
	if err != nil {
		t.Fatalf("failed to build dashboard: %v", err)
	}
	if len(resp.Projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(resp.Projects))
	}

	entry := resp.Projects[0]
	if entry.TotalSeconds != 10800 {
		t.Errorf("expected 10800 tracked seconds, got %d", entry.TotalSeconds)
	}
	if entry.UnbilledTasks != 1 {
		t.Errorf("expected 1 unbilled done task, got %d", entry.UnbilledTasks)
	}
	if entry.UnbilledEstimate != 200.00 {
		t.Errorf("expected unbilled estimate 200.00, got %v", entry.UnbilledEstimate)
	}
}
