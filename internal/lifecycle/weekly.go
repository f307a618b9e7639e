package lifecycle

import (
	"time"

	"reminder-organizer/internal/model"
)

// CompletionEvent is one logged completion, flattened for the weekly view.
type CompletionEvent struct {
	ReminderID  string  `json:"reminderId"`
	Title       string  `json:"title"`
	CategoryID  *string `json:"categoryId,omitempty"`
	CompletedAt string  `json:"completedAt"`
}

// DayBucket holds the completion events that fall on one calendar day.
type DayBucket struct {
	Date   string            `json:"date"`
	Events []CompletionEvent `json:"events"`
}

// WeekStart returns midnight of the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	d := Today(t)
	offset := int(d.Weekday()) - 1
	if d.Weekday() == time.Sunday {
		offset = 6
	}
	return d.AddDate(0, 0, -offset)
}

// WeeklyCompletions buckets every completion event of the given reminders
// into the seven days starting at weekStart. Entries outside the week or
// unparseable are skipped.
func WeeklyCompletions(reminders []model.Reminder, weekStart time.Time) []DayBucket {
	days := make([]DayBucket, 7)
	for i := range days {
		days[i] = DayBucket{
			Date:   weekStart.AddDate(0, 0, i).Format("2006-01-02"),
			Events: []CompletionEvent{},
		}
	}

	for _, r := range reminders {
		if len(r.CompletionHistory) == 0 {
			continue
		}
		for _, entry := range r.CompletionHistory {
			ts, err := time.Parse(time.RFC3339, entry)
			if err != nil {
				continue
			}
			day := Today(ts.In(weekStart.Location()))
			idx := int(day.Sub(weekStart).Hours() / 24)
			if idx < 0 || idx > 6 {
				continue
			}
			days[idx].Events = append(days[idx].Events, CompletionEvent{
				ReminderID:  r.ID,
				Title:       r.Title,
				CategoryID:  r.CategoryID,
				CompletedAt: entry,
			})
		}
	}

	return days
}
