package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school-assistant/config"
	"school-assistant/internal/assistant"
	"school-assistant/internal/backend"
	chatHTTP "school-assistant/internal/chat/delivery/http"
	chatUC "school-assistant/internal/chat/usecase"
	"school-assistant/internal/httpserver"
	"school-assistant/internal/session"
	"school-assistant/pkg/gcalendar"
	"school-assistant/pkg/llmprovider"
	"school-assistant/pkg/log"
	"school-assistant/pkg/telegram"
)

// @title       School Assistant API
// @description Conversational assistant for school management: exam results, attendance, events, clubs and announcements.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting School Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM provider chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	retryDelay, _ := time.ParseDuration(cfg.LLM.RetryDelay)
	maxTotalTimeout, _ := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
	llm := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotalTimeout,
	}, logger)
	logger.Infof(ctx, "LLM providers initialized: %d in chain", len(providers))

	// 4. School backend client
	tokenTTL, _ := time.ParseDuration(cfg.Backend.TokenCacheTTL)
	backendClient := backend.New(logger, backend.Config{
		BaseURL:       cfg.Backend.BaseURL,
		TokenURL:      cfg.Backend.TokenURL,
		ClientID:      cfg.Backend.ClientID,
		ClientSecret:  cfg.Backend.ClientSecret,
		RatePerSecond: cfg.Backend.RatePerSecond,
		RateBurst:     cfg.Backend.RateBurst,
		TokenCacheTTL: tokenTTL,
	})

	// 5. Optional collaborators
	var calendarClient *gcalendar.Client
	if cfg.Calendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.Calendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			calendarClient = nil
		} else {
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	var telegramBot *telegram.Bot
	if cfg.Telegram.BotToken != "" && cfg.Telegram.AnnouncementChatID != 0 {
		telegramBot = telegram.NewBot(cfg.Telegram.BotToken)
		logger.Info(ctx, "Telegram announcements initialized")
	}

	timezone, tzErr := time.LoadLocation(cfg.Assistant.Timezone)
	if tzErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Assistant.Timezone, tzErr)
		timezone = time.UTC
	}

	// 6. Assistant hierarchy
	root := assistant.New(logger, llm, assistant.Options{
		Backend:      backendClient,
		Calendar:     calendarClient,
		CalendarID:   cfg.Calendar.CalendarID,
		Telegram:     telegramBot,
		TelegramChat: cfg.Telegram.AnnouncementChatID,
		Timezone:     timezone,
		MaxPlanSteps: cfg.Assistant.MaxPlanSteps,
	})

	// 7. Chat domain
	sessions := session.NewMemoryStore()
	uc := chatUC.New(logger, root, sessions, "")
	chatHandler := chatHTTP.New(logger, uc)

	// 8. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatHandler: chatHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
