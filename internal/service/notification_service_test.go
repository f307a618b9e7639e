package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminder-organizer/internal/model"
	"reminder-organizer/internal/repository"
)

func TestProcessDue(t *testing.T) {
	f := newFixture(t)
	svc := NewNotificationService(repository.NewReminderRepository(f.db))
	svc.clock = func() time.Time { return f.now }
	ctx := context.Background()

	past := f.now.Add(-time.Hour)
	scheduled := f.insert(t, &model.Reminder{
		Title:                "due by schedule",
		DueDate:              f.now.AddDate(0, 0, 5),
		NotificationsEnabled: true,
		ReminderFrequency:    model.FrequencyDaily,
		NextNotification:     &past,
	})

	// Overdue and never notified.
	overdue := f.insert(t, &model.Reminder{
		Title:                "overdue",
		DueDate:              f.now.AddDate(0, 0, -2),
		NotificationsEnabled: true,
		ReminderFrequency:    model.FrequencyWeekly,
	})

	// Disabled notifications are never picked up.
	f.insert(t, &model.Reminder{
		Title:             "muted",
		DueDate:           f.now.AddDate(0, 0, -2),
		ReminderFrequency: model.FrequencyDaily,
	})

	// Overdue but notified within the last day.
	recent := f.now.Add(-2 * time.Hour)
	f.insert(t, &model.Reminder{
		Title:                "recently notified",
		DueDate:              f.now.AddDate(0, 0, -2),
		NotificationsEnabled: true,
		ReminderFrequency:    model.FrequencyDaily,
		LastNotification:     &recent,
	})

	processed, err := svc.ProcessDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	var got model.Reminder
	require.NoError(t, f.db.First(&got, "id = ?", scheduled.ID).Error)
	require.NotNil(t, got.LastNotification)
	assert.True(t, got.LastNotification.Equal(f.now))
	require.NotNil(t, got.NextNotification)
	assert.True(t, got.NextNotification.Equal(f.now.AddDate(0, 0, 1)))

	require.NoError(t, f.db.First(&got, "id = ?", overdue.ID).Error)
	require.NotNil(t, got.NextNotification)
	assert.True(t, got.NextNotification.Equal(f.now.AddDate(0, 0, 7)), "cadence follows reminderFrequency")
}

func TestProcessDue_Idempotentish(t *testing.T) {
	f := newFixture(t)
	svc := NewNotificationService(repository.NewReminderRepository(f.db))
	svc.clock = func() time.Time { return f.now }
	ctx := context.Background()

	past := f.now.Add(-time.Hour)
	f.insert(t, &model.Reminder{
		Title:                "due",
		DueDate:              f.now.AddDate(0, 0, 5),
		NotificationsEnabled: true,
		ReminderFrequency:    model.FrequencyDaily,
		NextNotification:     &past,
	})

	first, err := svc.ProcessDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	// The next notification is now in the future; a second sweep is a no-op.
	second, err := svc.ProcessDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second)
}
