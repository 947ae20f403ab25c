package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shared-calendar/internal/model"
)

// EventRepository handles CRUD for calendar events.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, userID, eventID uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) ListByUser(ctx context.Context, userID uint) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListForUsersWithin returns every event of the given users that can occupy
// time inside [from, to): one-off events overlapping the window plus all
// recurring events, whose concrete occurrences the caller expands. Entries
// attached to excludeSharedEvent are skipped so re-arranging a shared event
// does not collide with its own previous arrangement.
func (r *EventRepository) ListForUsersWithin(ctx context.Context, userIDs []uint, from, to time.Time, excludeSharedEvent string) ([]model.Event, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	q := r.db.WithContext(ctx).
		Where("user_id IN ? AND (recurrence_rule <> '' OR (start_time < ? AND end_time > ?))", userIDs, to, from)
	if excludeSharedEvent != "" {
		q = q.Where("shared_event_id IS NULL OR shared_event_id <> ?", excludeSharedEvent)
	}
	var events []model.Event
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list busy events: %w", err)
	}
	return events, nil
}

// ListStartingBetween returns events starting inside [from, to) across all
// users, used by the reminder sweep.
func (r *EventRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, userID, eventID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, eventID).Delete(&model.Event{})
	if res.Error != nil {
		return fmt.Errorf("delete event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
