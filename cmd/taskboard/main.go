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

	"taskboard/internal/config"
	"taskboard/internal/notify"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/web"
	"taskboard/internal/web/handlers"
	"taskboard/internal/web/render"
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

	taskRepo := repository.NewTaskRepository(db)
	taskSvc := service.NewTaskService(taskRepo)
	digestSvc := service.NewDigestService(taskRepo)

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	handler := handlers.New(taskSvc, renderer)
	router := web.New(handler)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	if cfg.TelegramToken != "" {
		notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("notifier: %v", err)
		}

		digestJob := func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			text, err := digestSvc.Summary(jobCtx, time.Now())
			if err != nil {
				log.Printf("digest: %v", err)
				return
			}
			if err := notifier.Send(text); err != nil {
				log.Printf("digest: %v", err)
			}
		}

		scheduler := service.NewSchedulerService(time.Local)
		if cfg.DigestInterval > 0 {
			if _, err := scheduler.ScheduleInterval(cfg.DigestInterval, digestJob); err != nil {
				log.Fatalf("schedule digest: %v", err)
			}
		} else if _, err := scheduler.ScheduleDaily(cfg.DigestTime, digestJob); err != nil {
			log.Fatalf("schedule digest: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shut down signal received...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	log.Println("shutdown complete")
}
