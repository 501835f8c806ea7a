package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowlancer.com/flowlancer/internal/constants"
	apperrors "flowlancer.com/flowlancer/internal/errors"
	model "flowlancer.com/flowlancer/internal/models"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if project.Status == "" {
		project.Status = constants.ProjectActive
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) FindByID(ctx context.Context, ownerID, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		First(&project, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) FindByPortalToken(ctx context.Context, token string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		First(&project, "portal_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) List(ctx context.Context, ownerID string) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	project.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND owner_id = ?", project.ID, project.OwnerID).
		Updates(map[string]interface{}{
			"name":         project.Name,
			"description":  project.Description,
			"client_name":  project.ClientName,
			"client_email": project.ClientEmail,
			"hourly_rate":  project.HourlyRate,
			"status":       project.Status,
			"updated_at":   project.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) SetPortalToken(ctx context.Context, ownerID, id, token string) error {
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"portal_token": token,
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// Delete removes the project together with its tasks and their time
// entries. Invoices are checked by the service before calling this.
func (r *ProjectRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrProjectNotFound
		}

		if err := tx.Where(
			"task_id IN (?)",
			tx.Model(&model.Task{}).Select("id").Where("project_id = ?", id),
		).Delete(&model.TimeEntry{}).Error; err != nil {
			return err
		}

		return tx.Where("project_id = ?", id).Delete(&model.Task{}).Error
	})
}
