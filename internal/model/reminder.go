package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cadence values shared by recurrence and notification frequency.
const (
	FrequencyDaily   = "DAILY"
	FrequencyWeekly  = "WEEKLY"
	FrequencyMonthly = "MONTHLY"
)

// ValidFrequency reports whether s is one of the known cadence values.
func ValidFrequency(s string) bool {
	switch s {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Reminder is a single item in the organizer.
//
// Completed is a transient flag, not a durable "done forever" state: marking
// a reminder done appends to CompletionHistory and leaves Completed false, so
// habits can be completed repeatedly. The flag is cleared by the expiry sweep
// once DueDate passes.
type Reminder struct {
	ID                   string     `gorm:"primaryKey" json:"id"`
	UserID               string     `gorm:"index" json:"userId"`
	Title                string     `json:"title"`
	Description          *string    `json:"description,omitempty"`
	DueDate              time.Time  `json:"dueDate"`
	CategoryID           *string    `gorm:"index" json:"categoryId,omitempty"`
	Completed            bool       `gorm:"default:false" json:"completed"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
	TimesCompleted       int        `gorm:"default:0" json:"timesCompleted"`
	CompletionHistory    History    `gorm:"type:text" json:"completionHistory"`
	NotificationsEnabled bool       `gorm:"default:true" json:"notificationsEnabled"`
	ReminderFrequency    string     `gorm:"default:DAILY" json:"reminderFrequency"`
	Recurring            bool       `gorm:"default:false" json:"recurring"`
	RecurrenceFrequency  *string    `json:"recurrenceFrequency,omitempty"`
	ParentReminderID     *string    `json:"parentReminderId,omitempty"`
	NextNotification     *time.Time `json:"nextNotification,omitempty"`
	LastNotification     *time.Time `json:"lastNotification,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (r *Reminder) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
