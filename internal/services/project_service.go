package services

import (
	"context"

	"github.com/google/uuid"

	"flowlancer.com/flowlancer/internal/constants"
	dto "flowlancer.com/flowlancer/internal/data_models"
	apperrors "flowlancer.com/flowlancer/internal/errors"
	model "flowlancer.com/flowlancer/internal/models"
	repository "flowlancer.com/flowlancer/internal/repositories"
)

type ProjectService struct {
	projects *repository.ProjectRepository
	tasks    *repository.TaskRepository
	invoices *repository.InvoiceRepository
	times    *TimeService
}

func NewProjectService(
	projects *repository.ProjectRepository,
	tasks *repository.TaskRepository,
	invoices *repository.InvoiceRepository,
	times *TimeService,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		invoices: invoices,
		times:    times,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, ownerID string, req dto.CreateProjectRequest) (*model.Project, error) {
	project := &model.Project{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		HourlyRate:  req.HourlyRate,
		Status:      constants.ProjectActive,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, ownerID, projectID string) (*model.Project, error) {
	return s.projects.FindByID(ctx, ownerID, projectID)
}

func (s *ProjectService) ListProjects(ctx context.Context, ownerID string) ([]model.Project, error) {
	return s.projects.List(ctx, ownerID)
}

func (s *ProjectService) UpdateProject(ctx context.Context, ownerID, projectID string, req dto.UpdateProjectRequest) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.ClientName != nil {
		project.ClientName = *req.ClientName
	}
	if req.ClientEmail != nil {
		project.ClientEmail = *req.ClientEmail
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, apperrors.Validation("hourly_rate must not be negative")
		}
		project.HourlyRate = *req.HourlyRate
	}
	if req.Status != nil {
		status := constants.ProjectStatus(*req.Status)
		if !constants.ValidProjectStatus(status) {
			return nil, apperrors.Validation("invalid project status")
		}
		project.Status = status
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject refuses projects that have been invoiced: deleting them
// would leave invoices pointing at nothing.
func (s *ProjectService) DeleteProject(ctx context.Context, ownerID, projectID string) error {
	if _, err := s.projects.FindByID(ctx, ownerID, projectID); err != nil {
		return err
	}

	count, err := s.invoices.CountByProject(ctx, ownerID, projectID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrProjectHasInvoices
	}

	return s.projects.Delete(ctx, ownerID, projectID)
}

// EnablePortal mints a fresh share token, rotating any previous one.
func (s *ProjectService) EnablePortal(ctx context.Context, ownerID, projectID string) (string, error) {
	token := uuid.NewString()
	if err := s.projects.SetPortalToken(ctx, ownerID, projectID, token); err != nil {
		return "", err
	}
	return token, nil
}

func (s *ProjectService) PortalView(ctx context.Context, token string) (*dto.PortalView, error) {
	project, err := s.projects.FindByPortalToken(ctx, token)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByProject(ctx, project.OwnerID, project.ID)
	if err != nil {
		return nil, err
	}

	seconds, err := s.times.SummarizeProjectTime(ctx, project.OwnerID, project.ID)
	if err != nil {
		return nil, err
	}

	view := &dto.PortalView{
		ProjectName: project.Name,
		Status:      string(project.Status),
		TotalHours:  roundMoney(float64(seconds) / 3600),
		Tasks:       make([]dto.PortalTask, 0, len(tasks)),
	}
	for _, t := range tasks {
		view.Tasks = append(view.Tasks, dto.PortalTask{
			Title:  t.Title,
			Status: string(t.Status),
		})
	}
	return view, nil
}
