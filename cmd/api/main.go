package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campus-dev/job-board/backend/internal/auth"
	"github.com/campus-dev/job-board/backend/internal/config"
	"github.com/campus-dev/job-board/backend/internal/handler"
	"github.com/campus-dev/job-board/backend/internal/notify"
	"github.com/campus-dev/job-board/backend/internal/repository"
	"github.com/campus-dev/job-board/backend/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * config
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	/**********************************************
	 * database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect; ping to fail fast on a bad DSN
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", "error", err)
		return
	}
	defer ch.Close()

	if _, err := notify.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
		logger.Error("failed to declare queue", "error", err)
		return
	}
	publisher := notify.NewPublisher(ch, cfg.RabbitMQ.Queue, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)

	/**********************************************
	 * redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer rdb.Close()

	limiter := handler.NewSignInLimiter(
		rdb,
		cfg.SignInLimit.Attempts,
		time.Duration(cfg.SignInLimit.Window)*time.Second,
		time.Duration(cfg.Redis.OperationTimeout)*time.Millisecond,
	)

	/**********************************************
	 * services
	 **********************************************/
	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		logger.Error("invalid bcrypt cost", "error", err)
		return
	}
	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.Expiration)*time.Second)
	if err != nil {
		logger.Error("invalid jwt config", "error", err)
		return
	}

	authService := service.NewAuthService(repo, hasher, tokens, publisher)
	postingService := service.NewPostingService(repo, repo, publisher)
	applicationService := service.NewApplicationService(repo, repo, repo, publisher)

	if err := authService.EnsureAdmin(ctx, cfg.InitialAdmin.Username, cfg.InitialAdmin.Password, cfg.InitialAdmin.Email); err != nil {
		logger.Error("failed to create initial admin", "error", err)
		return
	}

	/**********************************************
	 * handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, authService, postingService, applicationService, tokens, limiter)
	if err != nil {
		logger.Error("failed to create handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * http server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("shutting down server")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down server", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
