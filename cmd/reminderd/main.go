package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reminder-organizer/internal/api"
	"reminder-organizer/internal/auth"
	"reminder-organizer/internal/config"
	"reminder-organizer/internal/repository"
	"reminder-organizer/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	authSvc := service.NewAuthService(userRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	reminderSvc := service.NewReminderService(reminderRepo, categoryRepo)
	notificationSvc := service.NewNotificationService(reminderRepo)

	sessions := auth.New(cfg.SessionSecret, cfg.SessionTTL)
	handlers := api.New(sessions, authSvc, categorySvc, reminderSvc, notificationSvc, cfg.NotifySecret)

	scheduler := service.NewSchedulerService(time.Local)
	sweep := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		processed, err := notificationSvc.ProcessDue(jobCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("notification sweep: %v", err)
			return
		}
		if processed > 0 {
			log.Printf("notification sweep: processed %d", processed)
		}
	}
	scheduled := false
	if cfg.NotifyInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.NotifyInterval, sweep); err != nil {
			log.Fatalf("schedule notification sweep: %v", err)
		}
		scheduled = true
	}
	if cfg.NotifyDailyAt != "" {
		if _, err := scheduler.ScheduleDaily(cfg.NotifyDailyAt, sweep); err != nil {
			log.Fatalf("schedule daily notification sweep: %v", err)
		}
		scheduled = true
	}
	if scheduled {
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handlers.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Reminder organizer listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
