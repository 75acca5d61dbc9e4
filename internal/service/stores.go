package service

import (
	"context"
	"log/slog"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/campus-dev/job-board/backend/internal/notify"
)

// CredentialStore is the part of the persistence layer that owns identities.
type CredentialStore interface {
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUserPassword(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) error
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type PostingStore interface {
	CreateJobPosting(ctx context.Context, p *domain.JobPosting) error
	GetJobPostingByID(ctx context.Context, id int64) (*domain.JobPosting, error)
	GetAllJobPostings(ctx context.Context) ([]*domain.JobPosting, error)
	GetJobPostingsByApproval(ctx context.Context, approved bool) ([]*domain.JobPosting, error)
	UpdateJobPosting(ctx context.Context, p *domain.JobPosting) error
	SetJobPostingApproval(ctx context.Context, id int64, approved bool) (bool, error)
	DeleteJobPosting(ctx context.Context, id int64) error
	CountJobPostingsByOwner(ctx context.Context, ownerID int64) (int64, error)
}

type ApplicationStore interface {
	CreateApplication(ctx context.Context, a *domain.JobApplication) error
	GetApplicationByID(ctx context.Context, id int64) (*domain.JobApplication, error)
	GetApplicationsByJob(ctx context.Context, jobID int64) ([]*domain.JobApplication, error)
	GetApplicationsByUser(ctx context.Context, userID int64) ([]*domain.JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, id int64, from domain.ApplicationStatus, update domain.StatusUpdate) error
	DeleteApplication(ctx context.Context, id int64) error
}

type Notifier interface {
	Publish(ctx context.Context, msg notify.Message) error
}

// publish sends msg after the store write it describes has committed. Failures are
// logged only; the write stands either way.
func publish(ctx context.Context, n Notifier, msg notify.Message) {
	if n == nil || msg.To == "" {
		return
	}
	if err := n.Publish(context.WithoutCancel(ctx), msg); err != nil {
		slog.Warn("failed to publish notification", "type", msg.Type, "error", err)
	}
}

func canManagePosting(actor *domain.User, p *domain.JobPosting) bool {
	return actor.IsAdmin || actor.ID == p.OwnerID
}
