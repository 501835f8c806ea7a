package services

import (
	"context"

	"flowlancer.com/flowlancer/internal/constants"
	dto "flowlancer.com/flowlancer/internal/data_models"
	repository "flowlancer.com/flowlancer/internal/repositories"
)

// DashboardService is the read-side aggregator behind the owner's
// dashboard: tracked time per project plus an estimate of what invoicing
// the done, unbilled tasks at the project rate would earn.
type DashboardService struct {
	projects *repository.ProjectRepository
	tasks    *repository.TaskRepository
	times    *TimeService
}

func NewDashboardService(
	projects *repository.ProjectRepository,
	tasks *repository.TaskRepository,
	times *TimeService,
) *DashboardService {
	return &DashboardService{
		projects: projects,
		tasks:    tasks,
		times:    times,
	}
}

func (s *DashboardService) Summary(ctx context.Context, ownerID string) (*dto.DashboardResponse, error) {
	projects, err := s.projects.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Projects: make([]dto.ProjectDashboard, 0, len(projects)),
	}

	for _, project := range projects {
		seconds, err := s.times.SummarizeProjectTime(ctx, ownerID, project.ID)
		if err != nil {
			return nil, err
		}

		entry := dto.ProjectDashboard{
			ProjectID:    project.ID,
			Name:         project.Name,
			Status:       string(project.Status),
			TotalSeconds: seconds,
			TotalHours:   roundMoney(float64(seconds) / 3600),
		}

		tasks, err := s.tasks.ListByProject(ctx, ownerID, project.ID)
		if err != nil {
			return nil, err
		}
		for _, task := range tasks {
			if task.Status != constants.TaskDone || task.BilledInInvoiceID != nil {
				continue
			}
			taskSeconds, err := s.times.BillableTaskSeconds(ctx, ownerID, task.ID)
			if err != nil {
				return nil, err
			}
			entry.UnbilledTasks++
			entry.UnbilledEstimate += roundMoney(roundHours(float64(taskSeconds)/3600) * project.HourlyRate)
		}
		entry.UnbilledEstimate = roundMoney(entry.UnbilledEstimate)

		resp.Projects = append(resp.Projects, entry)
	}

	return resp, nil
}
