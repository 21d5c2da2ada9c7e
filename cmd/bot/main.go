package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/horario_bot/internal/app"
	"github.com/Freeeeeet/horario_bot/internal/backend"
	"github.com/Freeeeeet/horario_bot/internal/config"
	"github.com/Freeeeeet/horario_bot/internal/controller"
	"github.com/Freeeeeet/horario_bot/internal/repository"
	"github.com/Freeeeeet/horario_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogFile)

	defer logger.Sync()

	logger.Sugar().Infow("Starting horario bot",
		"environment", cfg.Environment,
		"generator_url", cfg.GeneratorURL,
		"token_length", len(cfg.TelegramToken))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	generatedRepo := repository.NewGeneratedScheduleRepository(pool, logger)
	savedRepo := repository.NewSavedScheduleRepository(pool)

	// Сервисы
	generator := backend.NewClient(cfg.GeneratorURL, cfg.GeneratorTimeout, logger)
	userService := service.NewUserService(userRepo, logger)
	profileService := service.NewProfileService(profileRepo, logger)
	scheduleService := service.NewScheduleService(generator, profileRepo, generatedRepo, savedRepo, cfg.TeacherProfileURL, logger)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, userService, profileService, scheduleService, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Failed to register bot commands menu", zap.Error(err))
	}

	// Очистка устаревших сгенерированных вариантов
	purger := app.NewScheduler(scheduleService, cfg.GeneratedTTL, logger)
	purger.Start(ctx)
	defer purger.Stop()

	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
