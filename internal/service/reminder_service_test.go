package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reminder-organizer/internal/model"
	"reminder-organizer/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repository.NewDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	db        *gorm.DB
	reminders *ReminderService
	userID    string
	otherID   string
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	owner := &model.User{Email: "owner@example.com", Name: "Owner", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, owner))
	other := &model.User{Email: "other@example.com", Name: "Other", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, other))

	svc := NewReminderService(repository.NewReminderRepository(db), repository.NewCategoryRepository(db))
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	svc.clock = func() time.Time { return now }

	return &fixture{db: db, reminders: svc, userID: owner.ID, otherID: other.ID, now: now}
}

func (f *fixture) insert(t *testing.T, r *model.Reminder) *model.Reminder {
	t.Helper()
	if r.UserID == "" {
		r.UserID = f.userID
	}
	require.NoError(t, f.db.Create(r).Error)
	return r
}

func TestCreate_NonRecurringNeedsDueDate(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.reminders.Create(context.Background(), f.userID, ReminderInput{
		Title:             "dentist",
		ReminderFrequency: model.FrequencyDaily,
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "dueDate", ve.Field)
}

func TestCreate_RecurringNeedsFrequency(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.reminders.Create(context.Background(), f.userID, ReminderInput{
		Title:             "gym",
		ReminderFrequency: model.FrequencyDaily,
		Recurring:         true,
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "recurrenceFrequency", ve.Field)
}

func TestCreate_RecurringComputesDueDate(t *testing.T) {
	f := newFixture(t)
	freq := model.FrequencyDaily

	r, created, err := f.reminders.Create(context.Background(), f.userID, ReminderInput{
		Title:                "gym",
		NotificationsEnabled: true,
		ReminderFrequency:    model.FrequencyDaily,
		Recurring:            true,
		RecurrenceFrequency:  &freq,
	})
	require.NoError(t, err)
	assert.True(t, created)

	// Server-computed: tomorrow at midnight, whatever the caller sent.
	assert.Equal(t, time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC), r.DueDate.UTC())
	require.NotNil(t, r.NextNotification)
	assert.Equal(t, f.now.AddDate(0, 0, 1), r.NextNotification.UTC())
}

func TestCreate_CanonicalRecurringUpsertsInPlace(t *testing.T) {
	f := newFixture(t)
	freq := model.FrequencyWeekly
	ctx := context.Background()

	first, created, err := f.reminders.Create(ctx, f.userID, ReminderInput{
		Title:                "gym",
		NotificationsEnabled: true,
		ReminderFrequency:    model.FrequencyDaily,
		Recurring:            true,
		RecurrenceFrequency:  &freq,
	})
	require.NoError(t, err)
	require.True(t, created)

	desc := "three sets"
	second, created, err := f.reminders.Create(ctx, f.userID, ReminderInput{
		Title:                "gym",
		Description:          &desc,
		NotificationsEnabled: true,
		ReminderFrequency:    model.FrequencyDaily,
		Recurring:            true,
		RecurrenceFrequency:  &freq,
	})
	require.NoError(t, err)
	assert.False(t, created, "same series updates in place")
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Description)
	assert.Equal(t, "three sets", *second.Description)

	var count int64
	f.db.Model(&model.Reminder{}).Where("user_id = ?", f.userID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestList_SweepsExpiredCompletions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	yesterday := f.now.AddDate(0, 0, -1)
	at := f.now.AddDate(0, 0, -1)
	expired := f.insert(t, &model.Reminder{
		Title:             "water plants",
		DueDate:           yesterday,
		Completed:         true,
		CompletedAt:       &at,
		TimesCompleted:    2,
		CompletionHistory: model.History{"2024-03-10T08:00:00Z", "2024-03-14T08:00:00Z"},
		ReminderFrequency: model.FrequencyDaily,
	})

	// Same shape but due in the future; the sweep must not touch it.
	future := f.insert(t, &model.Reminder{
		Title:             "taxes",
		DueDate:           f.now.AddDate(0, 0, 5),
		Completed:         true,
		ReminderFrequency: model.FrequencyDaily,
	})

	// Another user's expired row stays theirs.
	foreign := f.insert(t, &model.Reminder{
		UserID:            f.otherID,
		Title:             "water plants",
		DueDate:           yesterday,
		Completed:         true,
		ReminderFrequency: model.FrequencyDaily,
	})

	_, err := f.reminders.List(ctx, f.userID)
	require.NoError(t, err)

	var got model.Reminder
	require.NoError(t, f.db.First(&got, "id = ?", expired.ID).Error)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, 2, got.TimesCompleted, "history untouched by the sweep")
	assert.Len(t, got.CompletionHistory, 2)

	require.NoError(t, f.db.First(&got, "id = ?", future.ID).Error)
	assert.True(t, got.Completed)

	require.NoError(t, f.db.First(&got, "id = ?", foreign.ID).Error)
	assert.True(t, got.Completed, "the sweep never crosses users")
}

func TestList_DeduplicatesAndSorts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	canonical := f.insert(t, &model.Reminder{
		Title:             "gym",
		DueDate:           f.now.AddDate(0, 0, 3),
		Recurring:         true,
		ReminderFrequency: model.FrequencyDaily,
	})
	f.insert(t, &model.Reminder{
		Title:             "gym",
		DueDate:           f.now.AddDate(0, 0, 3),
		Recurring:         true,
		ParentReminderID:  &canonical.ID,
		TimesCompleted:    5,
		CompletionHistory: model.History{"a", "b", "c", "d", "e"},
		ReminderFrequency: model.FrequencyDaily,
	})
	f.insert(t, &model.Reminder{
		Title:             "dentist",
		DueDate:           f.now.AddDate(0, 0, 1),
		ReminderFrequency: model.FrequencyDaily,
	})
	f.insert(t, &model.Reminder{
		Title:             "logged once",
		DueDate:           f.now.AddDate(0, 0, -2),
		TimesCompleted:    1,
		CompletionHistory: model.History{"2024-03-10T08:00:00Z"},
		ReminderFrequency: model.FrequencyDaily,
	})

	list, err := f.reminders.List(ctx, f.userID)
	require.NoError(t, err)

	require.Len(t, list, 3)
	assert.Equal(t, "dentist", list[0].Title)
	assert.Equal(t, "gym", list[1].Title)
	assert.Equal(t, canonical.ID, list[1].ID, "parentless instance represents the series")
	assert.Equal(t, "logged once", list[2].Title, "any history sorts after untouched reminders")
}

func TestUpdate_ToggleCompletionPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.insert(t, &model.Reminder{
		Title:             "stretch",
		DueDate:           f.now.AddDate(0, 0, 1),
		ReminderFrequency: model.FrequencyDaily,
	})

	done := true
	updated, err := f.reminders.Update(ctx, f.userID, r.ID, ReminderPatch{Completed: &done})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.Equal(t, 1, updated.TimesCompleted)

	updated, err = f.reminders.Update(ctx, f.userID, r.ID, ReminderPatch{Completed: &done})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.Equal(t, 2, updated.TimesCompleted)

	var got model.Reminder
	require.NoError(t, f.db.First(&got, "id = ?", r.ID).Error)
	assert.Equal(t, 2, got.TimesCompleted)
	require.Len(t, got.CompletionHistory, 2)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, got.CompletionHistory[1], got.CompletedAt.UTC().Format(time.RFC3339))
}

func TestUpdate_DirectHistoryEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.insert(t, &model.Reminder{
		Title:             "stretch",
		DueDate:           f.now.AddDate(0, 0, 1),
		TimesCompleted:    3,
		CompletionHistory: model.History{"2024-03-01T08:00:00Z", "2024-03-02T08:00:00Z", "2024-03-03T08:00:00Z"},
		ReminderFrequency: model.FrequencyDaily,
	})

	history := []string{"2024-03-01T08:00:00Z"}
	updated, err := f.reminders.Update(ctx, f.userID, r.ID, ReminderPatch{CompletionHistory: &history})
	require.NoError(t, err)

	assert.Equal(t, 1, updated.TimesCompleted)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, "2024-03-01T08:00:00Z", updated.CompletedAt.UTC().Format(time.RFC3339))

	// Clearing the history clears completedAt with it.
	history = []string{}
	updated, err = f.reminders.Update(ctx, f.userID, r.ID, ReminderPatch{CompletionHistory: &history})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.TimesCompleted)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdate_NotificationRecalculation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.insert(t, &model.Reminder{
		Title:                "stretch",
		DueDate:              f.now.AddDate(0, 0, 1),
		NotificationsEnabled: true,
		ReminderFrequency:    model.FrequencyDaily,
	})

	weekly := model.FrequencyWeekly
	updated, err := f.reminders.Update(ctx, f.userID, r.ID, ReminderPatch{ReminderFrequency: &weekly})
	require.NoError(t, err)
	require.NotNil(t, updated.NextNotification)
	assert.Equal(t, f.now.AddDate(0, 0, 7), updated.NextNotification.UTC())

	off := false
	updated, err = f.reminders.Update(ctx, f.userID, r.ID, ReminderPatch{NotificationsEnabled: &off})
	require.NoError(t, err)
	assert.Nil(t, updated.NextNotification)
}

func TestUpdate_ForeignReminderIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.insert(t, &model.Reminder{
		UserID:            f.otherID,
		Title:             "secret",
		DueDate:           f.now,
		ReminderFrequency: model.FrequencyDaily,
	})

	done := true
	_, err := f.reminders.Update(ctx, f.userID, r.ID, ReminderPatch{Completed: &done})
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.reminders.Delete(ctx, f.userID, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The row is untouched.
	var got model.Reminder
	require.NoError(t, f.db.First(&got, "id = ?", r.ID).Error)
	assert.Equal(t, f.otherID, got.UserID)
	assert.Equal(t, 0, got.TimesCompleted)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.insert(t, &model.Reminder{
		Title:             "once",
		DueDate:           f.now,
		ReminderFrequency: model.FrequencyDaily,
	})

	require.NoError(t, f.reminders.Delete(ctx, f.userID, r.ID))
	assert.ErrorIs(t, f.reminders.Delete(ctx, f.userID, r.ID), ErrNotFound)
}

func TestWeekly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.insert(t, &model.Reminder{
		Title:             "stretch",
		DueDate:           f.now,
		TimesCompleted:    2,
		CompletionHistory: model.History{"2024-03-11T07:00:00Z", "2024-03-20T07:00:00Z"},
		ReminderFrequency: model.FrequencyDaily,
	})

	view, err := f.reminders.Weekly(ctx, f.userID, time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-11", view.WeekStart)
	require.Len(t, view.Days, 7)
	assert.Len(t, view.Days[0].Events, 1)
	assert.Empty(t, view.Days[6].Events)
}
