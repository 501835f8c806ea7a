package services

import (
	"context"

	"flowlancer.com/flowlancer/internal/constants"
	dto "flowlancer.com/flowlancer/internal/data_models"
	apperrors "flowlancer.com/flowlancer/internal/errors"
	model "flowlancer.com/flowlancer/internal/models"
	repository "flowlancer.com/flowlancer/internal/repositories"
)

type TaskService struct {
	projects *repository.ProjectRepository
	tasks    *repository.TaskRepository
}

func NewTaskService(projects *repository.ProjectRepository, tasks *repository.TaskRepository) *TaskService {
	return &TaskService{
		projects: projects,
		tasks:    tasks,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID, projectID string, req dto.CreateTaskRequest) (*model.Task, error) {
	if _, err := s.projects.FindByID(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	status := constants.TaskBacklog
	if req.Status != "" {
		status = constants.TaskStatus(req.Status)
		if !constants.ValidTaskStatus(status) {
			return nil, apperrors.Validation("invalid task status")
		}
	}

	task := &model.Task{
		ProjectID:     projectID,
		OwnerID:       ownerID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        status,
		EstimateHours: req.EstimateHours,
		Position:      req.Position,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (*model.Task, error) {
	return s.tasks.FindByID(ctx, ownerID, taskID)
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID, projectID string) ([]model.Task, error) {
	if _, err := s.projects.FindByID(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, ownerID, projectID)
}

// UpdateTask applies field updates. Status changes on billed tasks are
// allowed; the invoice snapshot is authoritative, so they cannot change
// what was billed.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, req dto.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		status := constants.TaskStatus(*req.Status)
		if !constants.ValidTaskStatus(status) {
			return nil, apperrors.Validation("invalid task status")
		}
		task.Status = status
	}
	if req.EstimateHours != nil {
		task.EstimateHours = req.EstimateHours
	}
	if req.Position != nil {
		task.Position = *req.Position
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask refuses billed tasks so invoice snapshots never end up
// referencing a task that no longer exists.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	task, err := s.tasks.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return err
	}
	if task.BilledInInvoiceID != nil {
		return apperrors.ErrTaskAlreadyBilled
	}
	return s.tasks.Delete(ctx, ownerID, taskID)
}
