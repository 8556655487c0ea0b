package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/taskforge/task-tracker/config"
	"github.com/taskforge/task-tracker/database"
	"github.com/taskforge/task-tracker/handlers"
	"github.com/taskforge/task-tracker/services"
)

func main() {
	log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	userStore := database.NewUserStore(db)
	projectStore := database.NewProjectStore(db)
	taskStore := database.NewTaskStore(db)

	authService := services.NewAuthService(userStore, cfg.JWTSecret)
	mailer := services.NewSMTPMailer(cfg.SMTP, cfg.Reminder.Recipient)
	loc := services.ResolveLocation(cfg.Reminder.Timezone)
	reminderService := services.NewReminderService(taskStore, mailer, loc)

	hub := services.NewHub()
	go hub.Run()

	scheduler, err := services.StartScheduler(cfg.Reminder.Schedule, loc, reminderService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start reminder scheduler")
	}
	defer scheduler.Stop()

	router := handlers.NewRouter(
		handlers.NewUserHandler(userStore, authService, hub),
		handlers.NewAuthHandler(authService),
		handlers.NewProjectHandler(projectStore, hub),
		handlers.NewTaskHandler(taskStore, hub),
		handlers.NewReminderHandler(reminderService),
		handlers.NewWSHandler(hub),
	)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // In production, change to your domain
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      c.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := server.ListenAndServe(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
