package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/campus-dev/job-board/backend/internal/auth"
	"github.com/campus-dev/job-board/backend/internal/config"
	"github.com/campus-dev/job-board/backend/internal/repository"
	"github.com/campus-dev/job-board/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation (1: random users, 2: random job postings, 3: random applications)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

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

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	ctx = context.Background()

	if n <= 0 {
		slog.Error("n must be positive")
		return
	}

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		seedUsers(ctx, cfg, repo, n)
	case 2:
		seedJobPostings(ctx, repo, n)
	case 3:
		seedApplications(ctx, repo, n)
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}

func seedUsers(ctx context.Context, cfg *config.Config, repo *repository.Repository, n int) {
	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		slog.Error("invalid bcrypt cost", slog.String("error", err.Error()))
		return
	}

	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(hasher, cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("failed to generate user", slog.String("error", err.Error()))
			continue
		}

		if err := repo.CreateUser(ctx, user); err != nil {
			slog.Error("failed to insert user", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	slog.Info("users inserted", slog.Int("count", cnt))
}

func seedJobPostings(ctx context.Context, repo *repository.Repository, n int) {
	users, err := repo.GetAllUsers(ctx)
	if err != nil {
		slog.Error("failed to list users", slog.String("error", err.Error()))
		return
	}
	if len(users) == 0 {
		slog.Error("seed users first")
		return
	}

	cnt := 0
	for i := 0; i < n; i++ {
		owner := users[rand.Intn(len(users))]
		p := utils.GenerateRandomJobPosting(owner.ID)
		if err := repo.CreateJobPosting(ctx, p); err != nil {
			slog.Error("failed to insert job posting", slog.String("error", err.Error()))
			continue
		}

		// roughly half go live so applications can be seeded against them
		if rand.Intn(2) == 0 {
			if _, err := repo.SetJobPostingApproval(ctx, p.ID, true); err != nil {
				slog.Error("failed to approve job posting", slog.String("error", err.Error()))
			}
		}

		cnt++
	}

	slog.Info("job postings inserted", slog.Int("count", cnt))
}

func seedApplications(ctx context.Context, repo *repository.Repository, n int) {
	users, err := repo.GetAllUsers(ctx)
	if err != nil {
		slog.Error("failed to list users", slog.String("error", err.Error()))
		return
	}
	postings, err := repo.GetJobPostingsByApproval(ctx, true)
	if err != nil {
		slog.Error("failed to list approved job postings", slog.String("error", err.Error()))
		return
	}
	if len(users) == 0 || len(postings) == 0 {
		slog.Error("seed users and approved job postings first")
		return
	}

	cnt := 0
	for i := 0; i < n; i++ {
		p := postings[rand.Intn(len(postings))]
		applicant := users[rand.Intn(len(users))]
		if applicant.ID == p.OwnerID {
			continue
		}

		if err := repo.CreateApplication(ctx, utils.GenerateRandomApplication(p.ID, applicant.ID)); err != nil {
			slog.Error("failed to insert application", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	slog.Info("applications inserted", slog.Int("count", cnt))
}
