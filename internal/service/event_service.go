package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shared-calendar/internal/model"
	"shared-calendar/internal/recurrence"
	"shared-calendar/internal/repository"
	"shared-calendar/internal/schedule"
)

// EventInput represents data required to create or update a calendar event.
type EventInput struct {
	Title           string
	Description     string
	StartTime       time.Time
	EndTime         time.Time
	RecurrenceRule  string
	ReminderOffsets []int
}

// EventService wraps calendar-event business logic.
type EventService struct {
	eventRepo *repository.EventRepository
}

func NewEventService(eventRepo *repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

func (s *EventService) Create(ctx context.Context, user *model.User, input EventInput) (*model.Event, error) {
	if err := validateEventInput(&input); err != nil {
		return nil, err
	}
	event := model.Event{
		UserID:          user.ID,
		Title:           input.Title,
		Description:     input.Description,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		RecurrenceRule:  input.RecurrenceRule,
		ReminderOffsets: input.ReminderOffsets,
	}
	if err := s.eventRepo.Create(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) Get(ctx context.Context, user *model.User, eventID uint) (*model.Event, error) {
	return s.eventRepo.FindByID(ctx, user.ID, eventID)
}

func (s *EventService) List(ctx context.Context, user *model.User) ([]model.Event, error) {
	return s.eventRepo.ListByUser(ctx, user.ID)
}

func (s *EventService) Update(ctx context.Context, user *model.User, eventID uint, input EventInput) (*model.Event, error) {
	if err := validateEventInput(&input); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, user.ID, eventID)
	if err != nil {
		return nil, err
	}
	if event.SharedEventID != nil {
		return nil, fmt.Errorf("%w: entries attached to a shared event are managed by its owner", model.ErrValidation)
	}
	event.Title = input.Title
	event.Description = input.Description
	event.StartTime = input.StartTime
	event.EndTime = input.EndTime
	event.RecurrenceRule = input.RecurrenceRule
	event.ReminderOffsets = input.ReminderOffsets
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, user *model.User, eventID uint) error {
	return s.eventRepo.Delete(ctx, user.ID, eventID)
}

// ListBusy projects the users' calendars into busy intervals inside
// [from, to), expanding recurring events into their concrete occurrences.
// Entries attached to excludeSharedEvent are left out.
func (s *EventService) ListBusy(ctx context.Context, userIDs []uint, from, to time.Time, excludeSharedEvent string) ([]schedule.BusyInterval, error) {
	events, err := s.eventRepo.ListForUsersWithin(ctx, userIDs, from, to, excludeSharedEvent)
	if err != nil {
		return nil, err
	}
	busy := make([]schedule.BusyInterval, 0, len(events))
	for _, ev := range events {
		intervals, err := recurrence.Expand(ev.RecurrenceRule, ev.StartTime, ev.EndTime, from, to)
		if err != nil {
			return nil, fmt.Errorf("expand event %d: %w", ev.ID, err)
		}
		busy = append(busy, intervals...)
	}
	return busy, nil
}

func validateEventInput(input *EventInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if !input.EndTime.After(input.StartTime) {
		return fmt.Errorf("%w: event must end after it starts", model.ErrValidation)
	}
	if err := recurrence.ValidateRule(input.RecurrenceRule); err != nil {
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	for _, off := range input.ReminderOffsets {
		if off < 0 {
			return fmt.Errorf("%w: negative reminder offset", model.ErrValidation)
		}
		if off > maxReminderOffsetMinutes {
			return fmt.Errorf("%w: reminder offset exceeds %d minutes", model.ErrValidation, maxReminderOffsetMinutes)
		}
	}
	return nil
}
