package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/focusboard/internal/auth"
	"github.com/focusboard/internal/config"
	"github.com/focusboard/internal/db"
	"github.com/focusboard/internal/handler"
	"github.com/focusboard/internal/logger"
	"github.com/focusboard/internal/push"
	"github.com/focusboard/internal/router"
	"github.com/focusboard/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "focusboard",
	Short: "Productivity API server with habit streaks and realtime notifications",
	// 不带子命令时直接启动服务
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and websocket server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("command failed", "err", err)
	}
}

func bootstrap() (config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.AppConfig{}, err
	}
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		return config.AppConfig{}, err
	}
	return cfg, nil
}

func databaseOptions(cfg config.AppConfig) db.Options {
	return db.Options{Driver: cfg.DatabaseDriver, Path: cfg.DatabasePath, URL: cfg.DatabaseURL}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	if err := db.Init(databaseOptions(cfg)); err != nil {
		return err
	}
	defer db.Close()

	logger.Info("database migrated", "driver", cfg.DatabaseDriver)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}

	// 初始化数据库
	if err := db.Init(databaseOptions(cfg)); err != nil {
		return err
	}
	defer db.Close()

	gin.SetMode(cfg.GinMode)

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	hub := push.NewHub()
	api := handler.NewAPI(db.DB, tokens, handler.Options{
		Publisher: hub,
		Location:  cfg.Location(),
		AI: service.AIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		},
	})
	if !api.Assistant().Enabled() {
		logger.Warn("OPENAI_API_KEY not set, AI analysis will use fallback responses")
	}

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: router.SetupRouter(api, tokens, hub, router.Options{
			CORSOrigin:     cfg.CORSOrigin,
			MetricsEnabled: cfg.MetricsEnabled,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr, "timezone", cfg.Timezone, "metrics", cfg.MetricsEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "err", err)
		return err
	}
	return nil
}
