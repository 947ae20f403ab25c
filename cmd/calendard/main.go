package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shared-calendar/internal/api"
	"shared-calendar/internal/config"
	"shared-calendar/internal/logger"
	"shared-calendar/internal/notify"
	"shared-calendar/internal/repository"
	"shared-calendar/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New("calendard")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("timezone")
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	sharedRepo := repository.NewSharedEventRepository(db)

	channels := []notify.Channel{notify.NewLogChannel(log)}
	if cfg.TelegramToken != "" {
		telegram, err := notify.NewTelegramChannel(cfg.TelegramToken)
		if err != nil {
			log.Fatal().Err(err).Msg("telegram channel")
		}
		channels = append(channels, telegram)
	}
	dispatcher := notify.NewDispatcher(log, channels...)
	dispatcher.Start()
	defer dispatcher.Stop()

	eventSvc := service.NewEventService(eventRepo)
	sharedSvc := service.NewSharedEventService(sharedRepo, eventRepo, userRepo, eventSvc, dispatcher, log)
	reminderSvc := service.NewReminderService(eventRepo, userRepo, dispatcher, log)

	scheduler := service.NewSchedulerService(loc)
	if _, err := scheduler.ScheduleInterval(cfg.ReminderInterval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := reminderSvc.SendDueReminders(jobCtx, time.Now().In(loc), cfg.ReminderInterval); err != nil {
			log.Error().Err(err).Msg("reminder sweep")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("schedule reminders")
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: api.NewRouter(db, userRepo, eventSvc, sharedSvc),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Int("port", cfg.HTTPPort).Msg("calendar service started")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("shutdown complete")
}
