package service

import (
	"context"
	"log"
	"time"

	"reminder-organizer/internal/lifecycle"
	"reminder-organizer/internal/repository"
)

// NotificationService advances notification bookkeeping for reminders whose
// notification is due. Delivery itself is an external collaborator (web
// push, mail, whatever the deployment wires up); this only stamps the last
// notification and schedules the next one.
type NotificationService struct {
	reminders *repository.ReminderRepository
	clock     func() time.Time
}

func NewNotificationService(reminders *repository.ReminderRepository) *NotificationService {
	return &NotificationService{reminders: reminders, clock: time.Now}
}

// ProcessDue handles every reminder with a due notification and returns how
// many were processed. Rows are updated independently, not in one
// transaction; a failed row is logged and skipped so the rest still advance.
func (s *NotificationService) ProcessDue(ctx context.Context) (int, error) {
	now := s.clock()

	due, err := s.reminders.ListDueNotifications(ctx, now)
	if err != nil {
		return 0, err
	}

	processed := 0
	for i := range due {
		reminder := &due[i]
		next := lifecycle.NextNotification(reminder.ReminderFrequency, now)
		if err := s.reminders.StampNotification(ctx, reminder, now, &next); err != nil {
			log.Printf("notification stamp %s: %v", reminder.ID, err)
			continue
		}
		processed++
	}

	return processed, nil
}
