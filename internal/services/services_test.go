package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"flowlancer.com/flowlancer/internal/constants"
	dto "flowlancer.com/flowlancer/internal/data_models"
	"flowlancer.com/flowlancer/internal/locks"
	model "flowlancer.com/flowlancer/internal/models"
	repository "flowlancer.com/flowlancer/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Project{},
		&model.Task{},
		&model.TimeEntry{},
		&model.Invoice{},
		&model.InvoiceTaskDetail{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

type testEnv struct {
	db       *gorm.DB
	projects *repository.ProjectRepository
	tasks    *repository.TaskRepository
	entries  *repository.TimeEntryRepository
	invoices *repository.InvoiceRepository

	times      *TimeService
	projectSvc *ProjectService
	taskSvc    *TaskService
	invoiceSvc *InvoiceService
	dashboard  *DashboardService

	ownerID string
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)

	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)
	entries := repository.NewTimeEntryRepository(db)
	invoices := repository.NewInvoiceRepository(db)

	times := NewTimeService(entries, tasks, false)

	return &testEnv{
		db:         db,
		projects:   projects,
		tasks:      tasks,
		entries:    entries,
		invoices:   invoices,
		times:      times,
		projectSvc: NewProjectService(projects, tasks, invoices, times),
		taskSvc:    NewTaskService(projects, tasks),
		invoiceSvc: NewInvoiceService(projects, tasks, invoices, times, locks.NoopLocker{}),
		dashboard:  NewDashboardService(projects, tasks, times),
		ownerID:    uuid.NewString(),
	}
}

func (env *testEnv) seedProject(t *testing.T, rate float64) *model.Project {
	t.Helper()
	project := &model.Project{
		OwnerID:     env.ownerID,
		Name:        "Website Redesign",
		ClientName:  "Acme Corp",
		ClientEmail: "billing@acme.test",
		HourlyRate:  rate,
	}
	if err := env.projects.Create(context.Background(), project); err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func (env *testEnv) seedTask(t *testing.T, project *model.Project, title string, status constants.TaskStatus) *model.Task {
	t.Helper()
	task := &model.Task{
		ProjectID: project.ID,
		OwnerID:   env.ownerID,
		Title:     title,
		Status:    status,
	}
	if err := env.tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return task
}

func (env *testEnv) seedClosedEntry(t *testing.T, task *model.Task, start time.Time, d time.Duration) {
	t.Helper()
	ended := start.Add(d)
	entry := &model.TimeEntry{
		TaskID:          task.ID,
		OwnerID:         env.ownerID,
		StartedAt:       start,
		EndedAt:         &ended,
		DurationSeconds: int64(d / time.Second),
	}
	if err := env.entries.Create(context.Background(), entry); err != nil {
		t.Fatalf("failed to seed time entry: %v", err)
	}
}

func (env *testEnv) seedRunningEntry(t *testing.T, task *model.Task, start time.Time) {
	t.Helper()
	entry := &model.TimeEntry{
		TaskID:    task.ID,
		OwnerID:   env.ownerID,
		StartedAt: start,
	}
	if err := env.entries.Create(context.Background(), entry); err != nil {
		t.Fatalf("failed to seed running entry: %v", err)
	}
}

func billingRequest(rate float64) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ClientName:    "Acme Corp",
		ClientEmail:   "billing@acme.test",
		BusinessName:  "Jo Freelance",
		BusinessEmail: "jo@freelance.test",
		HourlyRate:    rate,
	}
}

var baseTime = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
