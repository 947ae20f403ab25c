package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shared-calendar/internal/model"
)

// SharedEventRepository persists shared events and their invites. Every
// lifecycle mutation runs in a transaction guarded by the aggregate's
// version column, so two concurrent transitions on the same event cannot
// both succeed.
type SharedEventRepository struct {
	db *gorm.DB
}

func NewSharedEventRepository(db *gorm.DB) *SharedEventRepository {
	return &SharedEventRepository{db: db}
}

// Create persists the event together with its invites and initial members.
func (r *SharedEventRepository) Create(ctx context.Context, event *model.SharedEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create shared event: %w", err)
	}
	return nil
}

// FindByID loads the event with members, invites and attached calendar
// entries. Soft-deleted events are reported as missing.
func (r *SharedEventRepository) FindByID(ctx context.Context, id string) (*model.SharedEvent, error) {
	var event model.SharedEvent
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Invites").
		Preload("Events").
		Where("id = ? AND status <> ?", id, model.SharedEventDeleted).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("find shared event: %w", err)
	}
	return &event, nil
}

// ResolveInvite marks the invite accepted or rejected and, when a member is
// given, adds them to the event atomically.
func (r *SharedEventRepository) ResolveInvite(ctx context.Context, event *model.SharedEvent, invite *model.Invite, status model.InviteStatus, member *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpVersion(tx, event); err != nil {
			return err
		}
		if err := tx.Model(invite).Update("status", status).Error; err != nil {
			return fmt.Errorf("update invite: %w", err)
		}
		if member != nil {
			if err := tx.Model(event).Association("Members").Append(member); err != nil {
				return fmt.Errorf("add member: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	event.Version++
	invite.Status = status
	return nil
}

// SaveArrangement commits a successful scheduling run: the member list is
// replaced by the kept members, previously attached calendar entries are
// dropped, the new ones are created and the event moves to arranged.
func (r *SharedEventRepository) SaveArrangement(ctx context.Context, event *model.SharedEvent, members []model.User, entries []model.Event) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpVersion(tx, event); err != nil {
			return err
		}
		if err := tx.Model(event).Update("status", model.SharedEventArranged).Error; err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if err := tx.Model(event).Association("Members").Replace(members); err != nil {
			return fmt.Errorf("replace members: %w", err)
		}
		if err := tx.Where("shared_event_id = ?", event.ID).Delete(&model.Event{}).Error; err != nil {
			return fmt.Errorf("drop stale entries: %w", err)
		}
		for i := range entries {
			if err := tx.Create(&entries[i]).Error; err != nil {
				return fmt.Errorf("attach entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	event.Version++
	event.Status = model.SharedEventArranged
	event.Members = members
	event.Events = entries
	return nil
}

// UpdateStatus transitions the event's status under the version guard.
func (r *SharedEventRepository) UpdateStatus(ctx context.Context, event *model.SharedEvent, status model.SharedEventStatus) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpVersion(tx, event); err != nil {
			return err
		}
		if err := tx.Model(event).Update("status", status).Error; err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	event.Version++
	event.Status = status
	return nil
}

// bumpVersion increments the aggregate version if and only if the row still
// carries the version the caller read. Zero rows affected means another
// writer got there first.
func bumpVersion(tx *gorm.DB, event *model.SharedEvent) error {
	res := tx.Model(&model.SharedEvent{}).
		Where("id = ? AND version = ?", event.ID, event.Version).
		Update("version", event.Version+1)
	if res.Error != nil {
		return fmt.Errorf("bump version: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrStaleVersion
	}
	return nil
}
