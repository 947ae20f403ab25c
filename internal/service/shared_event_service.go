package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shared-calendar/internal/model"
	"shared-calendar/internal/notify"
	"shared-calendar/internal/repository"
	"shared-calendar/internal/schedule"
)

const maxRepeatCount = 8

// SharedEventInput carries everything needed to create a shared event.
type SharedEventInput struct {
	Title           string
	InviteEmails    []string
	IdealDays       []int
	StartDate       time.Time
	EndDate         time.Time
	DailyStartMin   int
	DailyEndMin     int
	DurationMinutes int
	RepeatType      string
	RepeatCount     int
	ReminderOffsets []int
}

// SharedEventService drives a shared event through its lifecycle:
// pending -> arranged -> saved, with deletion allowed from pending and
// arranged. Every transition is transactional; notifications go out after
// the transaction commits and never roll it back.
type SharedEventService struct {
	sharedRepo *repository.SharedEventRepository
	eventRepo  *repository.EventRepository
	userRepo   *repository.UserRepository
	eventSvc   *EventService
	notifier   notify.Notifier
	log        zerolog.Logger
}

func NewSharedEventService(
	sharedRepo *repository.SharedEventRepository,
	eventRepo *repository.EventRepository,
	userRepo *repository.UserRepository,
	eventSvc *EventService,
	notifier notify.Notifier,
	log zerolog.Logger,
) *SharedEventService {
	return &SharedEventService{
		sharedRepo: sharedRepo,
		eventRepo:  eventRepo,
		userRepo:   userRepo,
		eventSvc:   eventSvc,
		notifier:   notifier,
		log:        log,
	}
}

// Create validates the input, persists the event in pending status with the
// owner as sole member plus one pending invite per address, and notifies the
// invitees. Nothing is persisted when validation fails.
func (s *SharedEventService) Create(ctx context.Context, owner *model.User, input SharedEventInput) (*model.SharedEvent, error) {
	emails, err := s.validateInput(owner, &input)
	if err != nil {
		return nil, err
	}

	event := &model.SharedEvent{
		ID:              uuid.NewString(),
		OwnerID:         owner.ID,
		Title:           input.Title,
		DurationMinutes: input.DurationMinutes,
		IdealDays:       input.IdealDays,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		DailyStartMin:   input.DailyStartMin,
		DailyEndMin:     input.DailyEndMin,
		RepeatType:      input.RepeatType,
		RepeatCount:     input.RepeatCount,
		ReminderOffsets: input.ReminderOffsets,
		Status:          model.SharedEventPending,
		Version:         1,
		Members:         []model.User{*owner},
	}
	for _, email := range emails {
		event.Invites = append(event.Invites, model.Invite{Email: email, Status: model.InvitePending})
	}

	if err := s.sharedRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, s.inviteRecipients(ctx, emails), notify.KindInviteCreated, notify.Payload{
		EventID: event.ID,
		Title:   event.Title,
		Body:    fmt.Sprintf("%s %s invited you", owner.FirstName, owner.LastName),
	})
	return event, nil
}

// Get returns the shared event when the requester is its owner or a member.
func (s *SharedEventService) Get(ctx context.Context, id string, requester *model.User) (*model.SharedEvent, error) {
	event, err := s.sharedRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OwnerID != requester.ID && !isMember(event, requester.ID) && event.FindInvite(requester.Email) == nil {
		return nil, model.ErrNotFound
	}
	return event, nil
}

// AcceptInvite resolves the requester's pending invite and adds them to the
// member list. Resolved invites are immutable.
func (s *SharedEventService) AcceptInvite(ctx context.Context, id string, requester *model.User) (*model.SharedEvent, error) {
	return s.resolveInvite(ctx, id, requester, model.InviteAccepted)
}

// RejectInvite resolves the requester's pending invite without adding them.
func (s *SharedEventService) RejectInvite(ctx context.Context, id string, requester *model.User) (*model.SharedEvent, error) {
	return s.resolveInvite(ctx, id, requester, model.InviteRejected)
}

func (s *SharedEventService) resolveInvite(ctx context.Context, id string, requester *model.User, status model.InviteStatus) (*model.SharedEvent, error) {
	event, err := s.sharedRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != model.SharedEventPending {
		return nil, fmt.Errorf("%w: cannot resolve invites on a %s event", model.ErrInvalidTransition, event.Status)
	}
	invite := event.FindInvite(requester.Email)
	if invite == nil {
		return nil, fmt.Errorf("%w: no invite for %s", model.ErrNotFound, requester.Email)
	}
	if invite.Resolved() {
		return nil, fmt.Errorf("%w: invite already %s", model.ErrInvalidTransition, invite.Status)
	}

	var member *model.User
	if status == model.InviteAccepted {
		member = requester
	}
	if err := s.sharedRepo.ResolveInvite(ctx, event, invite, status, member); err != nil {
		return nil, err
	}
	if member != nil {
		event.Members = append(event.Members, *member)
	}

	kind := notify.KindInviteAccepted
	if status == model.InviteRejected {
		kind = notify.KindInviteRejected
	}
	s.notifier.Notify(ctx, s.ownerRecipient(ctx, event), kind, notify.Payload{
		EventID: event.ID,
		Title:   event.Title,
		Body:    requester.Email,
	})
	return event, nil
}

// Arrange runs the slot search over the union of all confirmed members' busy
// events and, on success, attaches one calendar entry per member per slot
// and moves the event to arranged. Members whose invite is not accepted are
// dropped; the owner is always kept. On a failed search the event is left
// untouched and the error carries schedule.ErrNoSlot so the boundary can
// report a conflict rather than a bad request.
func (s *SharedEventService) Arrange(ctx context.Context, id string, requester *model.User) (*model.SharedEvent, error) {
	event, err := s.sharedRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OwnerID != requester.ID {
		return nil, fmt.Errorf("%w: only the owner can arrange", model.ErrUnauthorized)
	}
	if event.Status != model.SharedEventPending && event.Status != model.SharedEventArranged {
		return nil, fmt.Errorf("%w: cannot arrange a %s event", model.ErrInvalidTransition, event.Status)
	}

	members := confirmedMembers(event)
	memberIDs := make([]uint, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}

	req := schedule.Request{
		StartDate:       event.StartDate,
		EndDate:         event.EndDate,
		DailyStartMin:   event.DailyStartMin,
		DailyEndMin:     event.DailyEndMin,
		DurationMinutes: event.DurationMinutes,
		IdealDays:       toWeekdays(event.IdealDays),
	}
	if event.RepeatType != model.RepeatNone {
		req.Repeat = &schedule.Repeat{Unit: schedule.RepeatUnit(event.RepeatType), Count: event.RepeatCount}
	}

	// The scan can reach past EndDate when repeats push the range end, so
	// busy events are loaded up to the scan's own horizon.
	busy, err := s.eventSvc.ListBusy(ctx, memberIDs, event.StartDate, schedule.Horizon(req), event.ID)
	if err != nil {
		return nil, err
	}

	slots, err := schedule.FindSlots(req, busy)
	if err != nil {
		if errors.Is(err, schedule.ErrNoSlot) {
			return nil, fmt.Errorf("no suitable time slots found for all members: %w", err)
		}
		return nil, err
	}

	entries := make([]model.Event, 0, len(members)*len(slots))
	for _, m := range members {
		for _, slot := range slots {
			entries = append(entries, model.Event{
				UserID:          m.ID,
				SharedEventID:   &event.ID,
				Title:           event.Title,
				StartTime:       slot.Start,
				EndTime:         slot.End,
				ReminderOffsets: event.ReminderOffsets,
			})
		}
	}

	if err := s.sharedRepo.SaveArrangement(ctx, event, members, entries); err != nil {
		return nil, err
	}

	first := slots[0].Start
	s.notifier.Notify(ctx, s.memberRecipients(members), notify.KindEventArranged, notify.Payload{
		EventID: event.ID,
		Title:   event.Title,
		StartAt: &first,
	})
	return event, nil
}

// Save marks an arranged event as a durable commitment. No geometry is
// recomputed.
func (s *SharedEventService) Save(ctx context.Context, id string, requester *model.User) (*model.SharedEvent, error) {
	event, err := s.sharedRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OwnerID != requester.ID {
		return nil, fmt.Errorf("%w: only the owner can save", model.ErrUnauthorized)
	}
	if event.Status != model.SharedEventArranged {
		return nil, fmt.Errorf("%w: cannot save a %s event", model.ErrInvalidTransition, event.Status)
	}
	if err := s.sharedRepo.UpdateStatus(ctx, event, model.SharedEventSaved); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete soft-deletes the event and notifies every current member. The row
// stays behind so invites and members keep their audit trail.
func (s *SharedEventService) Delete(ctx context.Context, id string, requester *model.User) error {
	event, err := s.sharedRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if event.OwnerID != requester.ID {
		return fmt.Errorf("%w: only the owner can delete", model.ErrUnauthorized)
	}
	if event.Status != model.SharedEventPending && event.Status != model.SharedEventArranged {
		return fmt.Errorf("%w: cannot delete a %s event", model.ErrInvalidTransition, event.Status)
	}
	if err := s.sharedRepo.UpdateStatus(ctx, event, model.SharedEventDeleted); err != nil {
		return err
	}
	s.notifier.Notify(ctx, s.memberRecipients(event.Members), notify.KindEventDeleted, notify.Payload{
		EventID: event.ID,
		Title:   event.Title,
	})
	return nil
}

func (s *SharedEventService) validateInput(owner *model.User, input *SharedEventInput) ([]string, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if input.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", model.ErrValidation)
	}
	if input.DailyStartMin < 0 || input.DailyEndMin > 24*60 || input.DailyStartMin >= input.DailyEndMin {
		return nil, fmt.Errorf("%w: malformed daily window", model.ErrValidation)
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", model.ErrValidation)
	}
	for _, d := range input.IdealDays {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: ideal day %d out of range", model.ErrValidation, d)
		}
	}
	switch input.RepeatType {
	case model.RepeatNone:
		if input.RepeatCount != 0 {
			return nil, fmt.Errorf("%w: repeat count without repeat type", model.ErrValidation)
		}
	case model.RepeatWeekly, model.RepeatMonthly:
		if input.RepeatCount < 0 || input.RepeatCount > maxRepeatCount {
			return nil, fmt.Errorf("%w: repeat count must be 0..%d", model.ErrValidation, maxRepeatCount)
		}
	default:
		return nil, fmt.Errorf("%w: unknown repeat type %q", model.ErrValidation, input.RepeatType)
	}
	for _, off := range input.ReminderOffsets {
		if off < 0 {
			return nil, fmt.Errorf("%w: negative reminder offset", model.ErrValidation)
		}
		if off > maxReminderOffsetMinutes {
			return nil, fmt.Errorf("%w: reminder offset exceeds %d minutes", model.ErrValidation, maxReminderOffsetMinutes)
		}
	}

	seen := make(map[string]struct{}, len(input.InviteEmails))
	emails := make([]string, 0, len(input.InviteEmails))
	for _, raw := range input.InviteEmails {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" {
			return nil, fmt.Errorf("%w: empty invite address", model.ErrValidation)
		}
		if email == strings.ToLower(owner.Email) {
			return nil, fmt.Errorf("%w: owner cannot invite themselves", model.ErrValidation)
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}
	return emails, nil
}

// confirmedMembers keeps the owner unconditionally plus every member whose
// invite was accepted. The owner never holds an invite, so filtering by
// invite state alone would drop them.
func confirmedMembers(event *model.SharedEvent) []model.User {
	accepted := make(map[string]bool, len(event.Invites))
	for _, inv := range event.Invites {
		accepted[inv.Email] = inv.Status == model.InviteAccepted
	}
	kept := make([]model.User, 0, len(event.Members))
	for _, m := range event.Members {
		if m.ID == event.OwnerID || accepted[m.Email] {
			kept = append(kept, m)
		}
	}
	return kept
}

func isMember(event *model.SharedEvent, userID uint) bool {
	for _, m := range event.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

func toWeekdays(days []int) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, time.Weekday(d))
	}
	return out
}

func (s *SharedEventService) memberRecipients(members []model.User) []notify.Recipient {
	out := make([]notify.Recipient, 0, len(members))
	for _, m := range members {
		out = append(out, notify.Recipient{UserID: m.ID, Email: m.Email, ChatID: m.TelegramChatID})
	}
	return out
}

func (s *SharedEventService) ownerRecipient(ctx context.Context, event *model.SharedEvent) []notify.Recipient {
	owner, err := s.userRepo.FindByID(ctx, event.OwnerID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", event.ID).Msg("owner lookup for notification failed")
		return nil
	}
	return []notify.Recipient{{UserID: owner.ID, Email: owner.Email, ChatID: owner.TelegramChatID}}
}

// inviteRecipients resolves invited addresses to accounts where possible so
// registered invitees get push delivery, not just a logged notification.
func (s *SharedEventService) inviteRecipients(ctx context.Context, emails []string) []notify.Recipient {
	out := make([]notify.Recipient, 0, len(emails))
	for _, email := range emails {
		rcpt := notify.Recipient{Email: email}
		if user, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			rcpt.UserID = user.ID
			rcpt.ChatID = user.TelegramChatID
		}
		out = append(out, rcpt)
	}
	return out
}
