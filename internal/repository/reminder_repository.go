package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reminder-organizer/internal/model"
)

// ReminderRepository handles CRUD for reminders. Every query is scoped to an
// owner id; there is no cross-user access path.
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

// Save persists the reminder's own columns. The preloaded Category is
// read-only here; associations are never written back.
func (r *ReminderRepository) Save(ctx context.Context, reminder *model.Reminder) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(reminder).Error; err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}
	return nil
}

// ListByUser returns all of a user's reminders with categories preloaded,
// incomplete first, then by due date.
func (r *ReminderRepository) ListByUser(ctx context.Context, userID string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("completed ASC, due_date ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// FindByID returns the reminder only when it belongs to userID; a foreign
// row looks the same as a missing one.
func (r *ReminderRepository) FindByID(ctx context.Context, userID, id string) (*model.Reminder, error) {
	var reminder model.Reminder
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND id = ?", userID, id).
		First(&reminder).Error
	switch {
	case err == nil:
		return &reminder, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find reminder: %w", err)
	}
}

// FindCanonicalRecurring returns the parentless recurring reminder with the
// given title, the one representing the series, or nil when none exists.
func (r *ReminderRepository) FindCanonicalRecurring(ctx context.Context, userID, title string) (*model.Reminder, error) {
	var reminder model.Reminder
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND title = ? AND recurring = ? AND parent_reminder_id IS NULL", userID, title, true).
		First(&reminder).Error
	switch {
	case err == nil:
		return &reminder, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find canonical recurring reminder: %w", err)
	}
}

// ResetExpired clears the transient completed flag on the user's reminders
// whose due date has passed. History and TimesCompleted are untouched. One
// conditional bulk update, so concurrent list calls cannot double-apply it.
func (r *ReminderRepository) ResetExpired(ctx context.Context, userID string, today time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Reminder{}).
		Where("user_id = ? AND completed = ? AND due_date < ?", userID, true, today).
		Updates(map[string]interface{}{
			"completed":    false,
			"completed_at": nil,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("reset expired reminders: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes a reminder for the given user. Returns the number of rows
// deleted so callers can distinguish a miss from a hit.
func (r *ReminderRepository) Delete(ctx context.Context, userID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Reminder{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete reminder: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ListDueNotifications returns reminders across all users whose notification
// is due: either the scheduled next notification has passed, or the reminder
// is overdue and was last notified more than a day ago (or never).
func (r *ReminderRepository) ListDueNotifications(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	dayAgo := now.Add(-24 * time.Hour)
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Where("notifications_enabled = ? AND completed = ?", true, false).
		Where("next_notification <= ? OR (due_date <= ? AND (last_notification IS NULL OR last_notification < ?))",
			now, now, dayAgo).
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// StampNotification records that a notification fired and schedules the next
// one. Each row is updated independently; the sweep is not batched.
func (r *ReminderRepository) StampNotification(ctx context.Context, reminder *model.Reminder, at time.Time, next *time.Time) error {
	if err := r.db.WithContext(ctx).
		Model(reminder).
		Updates(map[string]interface{}{
			"last_notification": at,
			"next_notification": next,
		}).Error; err != nil {
		return fmt.Errorf("stamp notification: %w", err)
	}
	return nil
}
