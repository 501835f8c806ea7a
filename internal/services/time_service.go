package services

import (
	"context"
	"time"

	apperrors "flowlancer.com/flowlancer/internal/errors"
	model "flowlancer.com/flowlancer/internal/models"
	repository "flowlancer.com/flowlancer/internal/repositories"
)

// TimeService owns the timer workflow and read-side time aggregation.
// Summaries sum closed intervals as durations and floor to whole seconds
// once, at the summary boundary, so rounding error never compounds per
// interval.
type TimeService struct {
	entries *repository.TimeEntryRepository
	tasks   *repository.TaskRepository

	// includeRunning adds the elapsed portion of an open timer to
	// summaries. Off by default; the product has not settled whether
	// partial sessions belong on dashboards. Billing always ignores
	// running timers regardless of this flag.
	includeRunning bool

	now func() time.Time
}

func NewTimeService(
	entries *repository.TimeEntryRepository,
	tasks *repository.TaskRepository,
	includeRunning bool,
) *TimeService {
	return &TimeService{
		entries:        entries,
		tasks:          tasks,
		includeRunning: includeRunning,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *TimeService) StartTimer(ctx context.Context, ownerID, taskID string) (*model.TimeEntry, error) {
	if _, err := s.tasks.FindByID(ctx, ownerID, taskID); err != nil {
		return nil, err
	}

	running, err := s.entries.FindRunning(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	if running != nil {
		return nil, apperrors.ErrTimerAlreadyRunning
	}

	entry := &model.TimeEntry{
		TaskID:    taskID,
		OwnerID:   ownerID,
		StartedAt: s.now(),
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *TimeService) StopTimer(ctx context.Context, ownerID, taskID string) (*model.TimeEntry, error) {
	running, err := s.entries.FindRunning(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	if running == nil {
		return nil, apperrors.ErrTimerNotRunning
	}

	ended := s.now()
	running.EndedAt = &ended
	running.DurationSeconds = int64(ended.Sub(running.StartedAt) / time.Second)

	if err := s.entries.Close(ctx, running); err != nil {
		return nil, err
	}
	return running, nil
}

// SummarizeTaskTime returns total elapsed seconds for the task. A task
// with no entries, or no task at all, yields zero: "no time" is a valid
// summary, callers needing existence checks do them separately.
func (s *TimeService) SummarizeTaskTime(ctx context.Context, ownerID, taskID string) (int64, error) {
	entries, err := s.entries.ListForTask(ctx, ownerID, taskID)
	if err != nil {
		return 0, err
	}
	return s.sumSeconds(entries, s.includeRunning), nil
}

func (s *TimeService) SummarizeProjectTime(ctx context.Context, ownerID, projectID string) (int64, error) {
	entries, err := s.entries.ListForProject(ctx, ownerID, projectID)
	if err != nil {
		return 0, err
	}
	return s.sumSeconds(entries, s.includeRunning), nil
}

// BillableTaskSeconds is the billing-side summary: closed intervals only,
// whatever includeRunning says. An open timer has no settled duration to
// put on an invoice.
func (s *TimeService) BillableTaskSeconds(ctx context.Context, ownerID, taskID string) (int64, error) {
	entries, err := s.entries.ListForTask(ctx, ownerID, taskID)
	if err != nil {
		return 0, err
	}
	return s.sumSeconds(entries, false), nil
}

func (s *TimeService) sumSeconds(entries []model.TimeEntry, includeRunning bool) int64 {
	var total time.Duration
	for _, e := range entries {
		switch {
		case e.Running():
			if includeRunning {
				if d := s.now().Sub(e.StartedAt); d > 0 {
					total += d
				}
			}
		default:
			if d := e.EndedAt.Sub(e.StartedAt); d > 0 {
				total += d
			}
		}
	}
	return int64(total / time.Second)
}
