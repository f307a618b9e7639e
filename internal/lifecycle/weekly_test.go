package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminder-organizer/internal/model"
)

func TestWeekStart(t *testing.T) {
	wednesday := date(2024, time.March, 13)
	assert.Equal(t, date(2024, time.March, 11), WeekStart(wednesday))

	monday := date(2024, time.March, 11)
	assert.Equal(t, monday, WeekStart(monday))

	// Sunday belongs to the week that began the previous Monday.
	sunday := date(2024, time.March, 17)
	assert.Equal(t, date(2024, time.March, 11), WeekStart(sunday))
}

func TestWeeklyCompletions(t *testing.T) {
	weekStart := date(2024, time.March, 11)
	reminders := []model.Reminder{
		{
			ID:    "r1",
			Title: "stretch",
			CompletionHistory: model.History{
				"2024-03-11T07:00:00Z", // Monday
				"2024-03-13T07:30:00Z", // Wednesday
				"2024-03-20T07:00:00Z", // next week, excluded
				"not-a-timestamp",      // skipped
			},
		},
		{
			ID:                "r2",
			Title:             "water plants",
			CompletionHistory: model.History{"2024-03-17T19:00:00Z"}, // Sunday
		},
		{
			ID:    "empty",
			Title: "nothing yet",
		},
	}

	days := WeeklyCompletions(reminders, weekStart)

	require.Len(t, days, 7)
	assert.Equal(t, "2024-03-11", days[0].Date)
	assert.Equal(t, "2024-03-17", days[6].Date)

	require.Len(t, days[0].Events, 1)
	assert.Equal(t, "r1", days[0].Events[0].ReminderID)

	require.Len(t, days[2].Events, 1)
	assert.Equal(t, "2024-03-13T07:30:00Z", days[2].Events[0].CompletedAt)

	require.Len(t, days[6].Events, 1)
	assert.Equal(t, "water plants", days[6].Events[0].Title)

	assert.Empty(t, days[1].Events)
}
