package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"shared-calendar/internal/model"
	"shared-calendar/internal/notify"
	"shared-calendar/internal/repository"
)

const (
	// reminderLookahead bounds how far before its start an event enters the
	// sweep. Offsets are capped at this horizon on input, so every trigger
	// time is still in the future when its event is first fetched.
	reminderLookahead = 14 * 24 * time.Hour

	maxReminderOffsetMinutes = int(reminderLookahead / time.Minute)
)

// ReminderService notifies users shortly before their events start.
type ReminderService struct {
	eventRepo *repository.EventRepository
	userRepo  *repository.UserRepository
	notifier  notify.Notifier
	log       zerolog.Logger
}

func NewReminderService(eventRepo *repository.EventRepository, userRepo *repository.UserRepository, notifier notify.Notifier, log zerolog.Logger) *ReminderService {
	return &ReminderService{eventRepo: eventRepo, userRepo: userRepo, notifier: notifier, log: log}
}

// SendDueReminders fires every reminder whose trigger time falls inside
// [now, now+interval). A reminder triggers offset minutes before its event's
// start.
func (s *ReminderService) SendDueReminders(ctx context.Context, now time.Time, interval time.Duration) error {
	events, err := s.eventRepo.ListStartingBetween(ctx, now, now.Add(reminderLookahead))
	if err != nil {
		return err
	}

	type due struct {
		event  model.Event
		offset int
	}
	byUser := make(map[uint][]due)
	for _, ev := range events {
		for _, offset := range ev.ReminderOffsets {
			fireAt := ev.StartTime.Add(-time.Duration(offset) * time.Minute)
			if !fireAt.Before(now) && fireAt.Before(now.Add(interval)) {
				byUser[ev.UserID] = append(byUser[ev.UserID], due{event: ev, offset: offset})
			}
		}
	}
	if len(byUser) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(byUser))
	for id := range byUser {
		ids = append(ids, id)
	}
	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, user := range users {
		for _, d := range byUser[user.ID] {
			start := d.event.StartTime
			s.notifier.Notify(ctx, []notify.Recipient{{UserID: user.ID, Email: user.Email, ChatID: user.TelegramChatID}},
				notify.KindReminder, notify.Payload{
					Title:   d.event.Title,
					Body:    fmt.Sprintf("starts in %d minutes", d.offset),
					StartAt: &start,
				})
		}
	}

	s.log.Debug().Int("users", len(users)).Msg("reminder sweep complete")
	return nil
}
