// Package lifecycle holds the rules governing how a reminder's due date,
// completion history and recurrence interact. Everything here is pure date
// arithmetic and slice manipulation; persistence stays in repository.
package lifecycle

import (
	"sort"
	"time"

	"reminder-organizer/internal/model"
)

// Today truncates t to midnight in its own location.
func Today(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextDueDate computes the server-side due date for a recurring reminder.
//
//   - DAILY: tomorrow.
//   - WEEKLY: the next Sunday; when today is Sunday the result is a full week
//     out, never today.
//   - MONTHLY: the last day of the current month. When today is on or after
//     that day, the result jumps to the last day of the month after next,
//     skipping next month entirely. That skip mirrors the historical behavior
//     of the app and is kept on purpose.
func NextDueDate(frequency string, now time.Time) time.Time {
	today := Today(now)

	switch frequency {
	case model.FrequencyDaily:
		return today.AddDate(0, 0, 1)

	case model.FrequencyWeekly:
		until := (7 - int(today.Weekday())) % 7
		if until == 0 {
			until = 7
		}
		return today.AddDate(0, 0, until)

	case model.FrequencyMonthly:
		last := lastDayOfMonth(today, 0)
		if !last.After(today) {
			last = lastDayOfMonth(today, 2)
		}
		return last
	}

	return today
}

// lastDayOfMonth returns midnight of the last day of t's month shifted
// forward by monthOffset months.
func lastDayOfMonth(t time.Time, monthOffset int) time.Time {
	// Day zero of the following month.
	return time.Date(t.Year(), t.Month()+time.Month(monthOffset)+1, 0, 0, 0, 0, 0, t.Location())
}

// NextNotification computes when the next notification should fire. Unlike
// NextDueDate this is a fixed offset from now with no end-of-period snapping.
func NextNotification(frequency string, now time.Time) time.Time {
	switch frequency {
	case model.FrequencyWeekly:
		return now.AddDate(0, 0, 7)
	case model.FrequencyMonthly:
		return now.AddDate(0, 1, 0)
	default:
		return now.AddDate(0, 0, 1)
	}
}

// ToggleCompletion applies a completion action to r in place.
//
// done=false un-marks the reminder: the transient flag and CompletedAt are
// cleared, history and TimesCompleted stay as they are.
//
// done=true logs a completion event: now is appended to the history,
// TimesCompleted tracks the history length, CompletedAt is stamped — and
// Completed stays false, so the same reminder can be marked done again
// without un-marking it first. Callers must not assume the flag flips.
func ToggleCompletion(r *model.Reminder, done bool, now time.Time) {
	if !done {
		r.Completed = false
		r.CompletedAt = nil
		return
	}

	history := append(model.History{}, r.CompletionHistory...)
	history = append(history, now.Format(time.RFC3339))

	r.CompletionHistory = history
	r.TimesCompleted = len(history)
	at := now
	r.CompletedAt = &at
}

// ReplaceHistory overwrites r's completion history with a caller-supplied
// sequence, used to edit or delete individual past entries. CompletedAt is
// the explicit value when given, otherwise the last entry of the new history,
// otherwise nil. No chronological validation happens here; callers sort
// before submitting if order matters.
func ReplaceHistory(r *model.Reminder, history []string, completedAt *time.Time) {
	r.CompletionHistory = append(model.History{}, history...)
	r.TimesCompleted = len(history)

	switch {
	case completedAt != nil:
		r.CompletedAt = completedAt
	case len(history) == 0:
		r.CompletedAt = nil
	default:
		if ts, err := time.Parse(time.RFC3339, history[len(history)-1]); err == nil {
			r.CompletedAt = &ts
		} else {
			r.CompletedAt = nil
		}
	}
}

// Deduplicate collapses recurring reminders sharing a title down to one
// representative: the canonical (parentless) one, or on a tie the one with
// more logged completions. Non-recurring reminders pass through untouched.
func Deduplicate(reminders []model.Reminder) []model.Reminder {
	out := make([]model.Reminder, 0, len(reminders))
	seen := make(map[string]int) // title -> index in out, recurring only

	for _, r := range reminders {
		if !r.Recurring {
			out = append(out, r)
			continue
		}

		i, ok := seen[r.Title]
		if !ok {
			seen[r.Title] = len(out)
			out = append(out, r)
			continue
		}

		if betterRepresentative(&r, &out[i]) {
			out[i] = r
		}
	}

	return out
}

func betterRepresentative(a, b *model.Reminder) bool {
	aCanonical := a.ParentReminderID == nil
	bCanonical := b.ParentReminderID == nil
	if aCanonical != bCanonical {
		return aCanonical
	}
	return a.TimesCompleted > b.TimesCompleted
}

// Sort orders reminders for list views: not-yet-completed first, then within
// each band ascending by due date. A reminder counts as completed here when
// the flag is set OR it has any history — broader than the literal flag, so
// habits that were ever done sink below untouched items.
func Sort(reminders []model.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		a, b := completedForSort(&reminders[i]), completedForSort(&reminders[j])
		if a != b {
			return !a
		}
		return reminders[i].DueDate.Before(reminders[j].DueDate)
	})
}

func completedForSort(r *model.Reminder) bool {
	return r.Completed || r.TimesCompleted > 0
}
