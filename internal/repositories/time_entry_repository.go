package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "flowlancer.com/flowlancer/internal/models"
)

type TimeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) Create(ctx context.Context, entry *model.TimeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = entry.StartedAt
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindRunning returns the open entry for the (owner, task) pair, or nil
// when no timer is running. The start workflow keeps this at most one.
func (r *TimeEntryRepository) FindRunning(ctx context.Context, ownerID, taskID string) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := r.db.WithContext(ctx).
		First(&entry, "task_id = ? AND owner_id = ? AND ended_at IS NULL", taskID, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *TimeEntryRepository) Close(ctx context.Context, entry *model.TimeEntry) error {
	return r.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"ended_at":         entry.EndedAt,
			"duration_seconds": entry.DurationSeconds,
		}).Error
}

func (r *TimeEntryRepository) ListForTask(ctx context.Context, ownerID, taskID string) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND owner_id = ?", taskID, ownerID).
		Order("started_at asc").
		Find(&entries).Error
	return entries, err
}

func (r *TimeEntryRepository) ListForProject(ctx context.Context, ownerID, projectID string) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Select("time_entries.*").
		Joins("JOIN tasks ON tasks.id = time_entries.task_id").
		Where("tasks.project_id = ? AND time_entries.owner_id = ?", projectID, ownerID).
		Order("time_entries.started_at asc").
		Find(&entries).Error
	return entries, err
}
