package service

import (
	"context"
	"time"

	"reminder-organizer/internal/lifecycle"
	"reminder-organizer/internal/model"
	"reminder-organizer/internal/repository"
)

// ReminderInput carries the fields for creating a reminder. DueDate is
// required for one-off reminders and ignored for recurring ones, whose due
// date is always computed server-side.
type ReminderInput struct {
	Title                string
	Description          *string
	DueDate              *time.Time
	CategoryID           *string
	NotificationsEnabled bool
	ReminderFrequency    string
	Recurring            bool
	RecurrenceFrequency  *string
}

// ReminderPatch is a partial reminder update; nil fields stay unchanged.
// CompletionHistory, when present, wins over Completed: the request is a
// direct history edit, not a toggle.
type ReminderPatch struct {
	Title                *string
	Description          *string
	DueDate              *time.Time
	CategoryID           *string
	Completed            *bool
	NotificationsEnabled *bool
	ReminderFrequency    *string
	CompletionHistory    *[]string
	CompletedAt          *time.Time
}

// WeeklyView is one week of completion events, Monday first.
type WeeklyView struct {
	WeekStart string                `json:"weekStart"`
	Days      []lifecycle.DayBucket `json:"days"`
}

// ReminderService wraps reminder business logic: validation, recurring
// due-date computation, the completion lifecycle, and list shaping.
type ReminderService struct {
	reminders  *repository.ReminderRepository
	categories *repository.CategoryRepository
	clock      func() time.Time
}

func NewReminderService(reminders *repository.ReminderRepository, categories *repository.CategoryRepository) *ReminderService {
	return &ReminderService{
		reminders:  reminders,
		categories: categories,
		clock:      time.Now,
	}
}

// Create validates input and inserts a reminder. For a recurring reminder
// whose canonical row (same title, no parent) already exists, the row is
// updated in place instead, so a series never duplicates; the second return
// value reports whether a new row was created.
func (s *ReminderService) Create(ctx context.Context, userID string, input ReminderInput) (*model.Reminder, bool, error) {
	if err := s.validateInput(ctx, userID, &input); err != nil {
		return nil, false, err
	}

	now := s.clock()

	var dueDate time.Time
	if input.Recurring {
		dueDate = lifecycle.NextDueDate(*input.RecurrenceFrequency, now)
	} else {
		dueDate = *input.DueDate
	}

	var nextNotification *time.Time
	if input.NotificationsEnabled {
		next := lifecycle.NextNotification(input.ReminderFrequency, now)
		nextNotification = &next
	}

	if input.Recurring {
		existing, err := s.reminders.FindCanonicalRecurring(ctx, userID, input.Title)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			existing.Description = input.Description
			existing.DueDate = dueDate
			existing.CategoryID = input.CategoryID
			existing.NotificationsEnabled = input.NotificationsEnabled
			existing.ReminderFrequency = input.ReminderFrequency
			existing.RecurrenceFrequency = input.RecurrenceFrequency
			existing.NextNotification = nextNotification
			if err := s.reminders.Save(ctx, existing); err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
	}

	reminder := &model.Reminder{
		UserID:               userID,
		Title:                input.Title,
		Description:          input.Description,
		DueDate:              dueDate,
		CategoryID:           input.CategoryID,
		CompletionHistory:    model.History{},
		NotificationsEnabled: input.NotificationsEnabled,
		ReminderFrequency:    input.ReminderFrequency,
		Recurring:            input.Recurring,
		NextNotification:     nextNotification,
	}
	if input.Recurring {
		reminder.RecurrenceFrequency = input.RecurrenceFrequency
	}

	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, false, err
	}
	return reminder, true, nil
}

// List returns the caller's reminders, after running the expiry sweep for
// their rows and collapsing recurring series to their canonical entry.
func (s *ReminderService) List(ctx context.Context, userID string) ([]model.Reminder, error) {
	today := lifecycle.Today(s.clock())
	if _, err := s.reminders.ResetExpired(ctx, userID, today); err != nil {
		return nil, err
	}

	reminders, err := s.reminders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	reminders = lifecycle.Deduplicate(reminders)
	lifecycle.Sort(reminders)
	return reminders, nil
}

// Weekly buckets the caller's completion events into the week containing
// the given date.
func (s *ReminderService) Weekly(ctx context.Context, userID string, date time.Time) (*WeeklyView, error) {
	reminders, err := s.reminders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	weekStart := lifecycle.WeekStart(date)
	return &WeeklyView{
		WeekStart: weekStart.Format("2006-01-02"),
		Days:      lifecycle.WeeklyCompletions(reminders, weekStart),
	}, nil
}

func (s *ReminderService) Get(ctx context.Context, userID, id string) (*model.Reminder, error) {
	reminder, err := s.reminders.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if reminder == nil {
		return nil, ErrNotFound
	}
	return reminder, nil
}

// Update applies a partial update. Completed routes through the completion
// lifecycle, CompletionHistory through the direct-edit rules, and changes to
// the notification fields reschedule the next notification.
func (s *ReminderService) Update(ctx context.Context, userID, id string, patch ReminderPatch) (*model.Reminder, error) {
	reminder, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
		reminder.Title = *patch.Title
	}
	if patch.Description != nil {
		if err := validateDescription(patch.Description); err != nil {
			return nil, err
		}
		reminder.Description = patch.Description
	}
	if patch.DueDate != nil {
		reminder.DueDate = *patch.DueDate
	}
	if patch.CategoryID != nil {
		if err := s.checkCategory(ctx, userID, patch.CategoryID); err != nil {
			return nil, err
		}
		reminder.CategoryID = patch.CategoryID
	}
	if patch.ReminderFrequency != nil && !model.ValidFrequency(*patch.ReminderFrequency) {
		return nil, invalid("reminderFrequency", "must be DAILY, WEEKLY or MONTHLY")
	}

	if patch.CompletionHistory != nil {
		lifecycle.ReplaceHistory(reminder, *patch.CompletionHistory, patch.CompletedAt)
	} else if patch.Completed != nil {
		lifecycle.ToggleCompletion(reminder, *patch.Completed, s.clock())
	}

	if patch.NotificationsEnabled != nil || patch.ReminderFrequency != nil {
		if patch.NotificationsEnabled != nil {
			reminder.NotificationsEnabled = *patch.NotificationsEnabled
		}
		if patch.ReminderFrequency != nil {
			reminder.ReminderFrequency = *patch.ReminderFrequency
		}
		if reminder.NotificationsEnabled {
			next := lifecycle.NextNotification(reminder.ReminderFrequency, s.clock())
			reminder.NextNotification = &next
		} else {
			reminder.NextNotification = nil
		}
	}

	if err := s.reminders.Save(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, id string) error {
	deleted, err := s.reminders.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ReminderService) validateInput(ctx context.Context, userID string, input *ReminderInput) error {
	if err := validateTitle(input.Title); err != nil {
		return err
	}
	if err := validateDescription(input.Description); err != nil {
		return err
	}
	if !model.ValidFrequency(input.ReminderFrequency) {
		return invalid("reminderFrequency", "must be DAILY, WEEKLY or MONTHLY")
	}
	if input.Recurring {
		if input.RecurrenceFrequency == nil || !model.ValidFrequency(*input.RecurrenceFrequency) {
			return invalid("recurrenceFrequency", "recurring reminders need a recurrence frequency")
		}
	} else if input.DueDate == nil {
		return invalid("dueDate", "non-recurring reminders need a due date")
	}
	return s.checkCategory(ctx, userID, input.CategoryID)
}

func (s *ReminderService) checkCategory(ctx context.Context, userID string, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categories.FindByID(ctx, userID, *categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return invalid("categoryId", "category does not exist")
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" || len(title) > 200 {
		return invalid("title", "title must be between 1 and 200 characters")
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && len(*description) > 1000 {
		return invalid("description", "description must be at most 1000 characters")
	}
	return nil
}
