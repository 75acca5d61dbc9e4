package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/campus-dev/job-board/backend/internal/config"
	"github.com/campus-dev/job-board/backend/internal/domain"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Temporary tables shadow any real ones and are dropped with the connection.
const integrationSchema = `
CREATE TEMP TABLE users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	real_name     TEXT NOT NULL DEFAULT '',
	is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
	is_teacher    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	version       INTEGER NOT NULL DEFAULT 1
);
CREATE TEMP TABLE job_postings (
	id              BIGSERIAL PRIMARY KEY,
	user_id         BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	job_title       TEXT NOT NULL,
	job_description TEXT NOT NULL DEFAULT '',
	job_signup_form TEXT NOT NULL DEFAULT '',
	job_type_tag    TEXT NOT NULL DEFAULT '',
	industry_tag    TEXT NOT NULL DEFAULT '',
	is_approved     BOOLEAN NOT NULL DEFAULT FALSE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TEMP TABLE job_applications (
	id                 BIGSERIAL PRIMARY KEY,
	job_id             BIGINT NOT NULL REFERENCES job_postings (id) ON DELETE CASCADE,
	user_id            BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	why_interested     TEXT NOT NULL DEFAULT '',
	relevant_skills    TEXT NOT NULL DEFAULT '',
	hope_to_gain       TEXT NOT NULL DEFAULT '',
	application_status TEXT NOT NULL DEFAULT 'Submitted',
	review_feedback    TEXT,
	is_complete        BOOLEAN NOT NULL DEFAULT FALSE,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// newIntegrationRepository connects to JOB_BOARD_TEST_DSN and skips the test when
// it is unset.
func newIntegrationRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("JOB_BOARD_TEST_DSN")
	if dsn == "" {
		t.Skip("JOB_BOARD_TEST_DSN not set")
	}

	dbpool, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	// temp tables live on one connection
	dbpool.SetMaxOpenConns(1)
	dbpool.SetMaxIdleConns(1)
	dbpool.SetConnMaxIdleTime(0)
	t.Cleanup(func() { dbpool.Close() })

	_, err = dbpool.ExecContext(context.Background(), integrationSchema)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	return NewRepository(cfg, dbpool)
}

type integrationFixture struct {
	repo    *Repository
	owner   *domain.User
	student *domain.User
	posting *domain.JobPosting
}

func newIntegrationFixture(t *testing.T) *integrationFixture {
	t.Helper()
	ctx := context.Background()
	f := &integrationFixture{repo: newIntegrationRepository(t)}

	f.owner = &domain.User{Username: "teacher", PasswordHash: "x", Email: "teacher@example.com", IsTeacher: true}
	require.NoError(t, f.repo.CreateUser(ctx, f.owner))
	f.student = &domain.User{Username: "student", PasswordHash: "x", Email: "student@example.com"}
	require.NoError(t, f.repo.CreateUser(ctx, f.student))

	// IsApproved is ignored on insert
	f.posting = &domain.JobPosting{OwnerID: f.owner.ID, Title: "Lab assistant", IsApproved: true}
	require.NoError(t, f.repo.CreateJobPosting(ctx, f.posting))
	return f
}

func TestIntegrationSetJobPostingApprovalReadsBack(t *testing.T) {
	f := newIntegrationFixture(t)
	ctx := context.Background()
	assert.False(t, f.posting.IsApproved)

	stored, err := f.repo.SetJobPostingApproval(ctx, f.posting.ID, true)
	require.NoError(t, err)
	assert.True(t, stored)

	approved, err := f.repo.GetJobPostingsByApproval(ctx, true)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, f.posting.ID, approved[0].ID)

	stored, err = f.repo.SetJobPostingApproval(ctx, f.posting.ID, false)
	require.NoError(t, err)
	assert.False(t, stored)

	pending, err := f.repo.GetJobPostingsByApproval(ctx, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = f.repo.SetJobPostingApproval(ctx, 999, true)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestIntegrationUpdateApplicationStatus(t *testing.T) {
	f := newIntegrationFixture(t)
	ctx := context.Background()

	a := &domain.JobApplication{JobID: f.posting.ID, ApplicantID: f.student.ID, WhyInterested: "I like labs"}
	require.NoError(t, f.repo.CreateApplication(ctx, a))
	assert.Equal(t, domain.StatusSubmitted, a.ApplicationStatus)

	feedback := "Great fit"
	accept := domain.StatusUpdate{ApplicationStatus: domain.StatusAccepted, ReviewFeedback: &feedback, IsComplete: true}

	err := f.repo.UpdateApplicationStatus(ctx, 999, domain.StatusSubmitted, accept)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	stored, err := f.repo.GetApplicationByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, stored.ApplicationStatus)
	assert.Nil(t, stored.ReviewFeedback)
	assert.False(t, stored.IsComplete)

	require.NoError(t, f.repo.UpdateApplicationStatus(ctx, a.ID, domain.StatusSubmitted, accept))

	// a second reviewer who also read Submitted loses
	reject := domain.StatusUpdate{ApplicationStatus: domain.StatusRejected}
	err = f.repo.UpdateApplicationStatus(ctx, a.ID, domain.StatusSubmitted, reject)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	stored, err = f.repo.GetApplicationByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, stored.ApplicationStatus)
	require.NotNil(t, stored.ReviewFeedback)
	assert.Equal(t, "Great fit", *stored.ReviewFeedback)
	assert.True(t, stored.IsComplete)
	assert.Equal(t, f.posting.ID, stored.JobID)
	assert.Equal(t, f.student.ID, stored.ApplicantID)
}

func TestIntegrationUserConstraintsAndVersions(t *testing.T) {
	f := newIntegrationFixture(t)
	ctx := context.Background()

	err := f.repo.CreateUser(ctx, &domain.User{Username: "student", PasswordHash: "y"})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	err = f.repo.CreateJobPosting(ctx, &domain.JobPosting{OwnerID: 999, Title: "Ghost"})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	u, err := f.repo.GetUserByID(ctx, f.student.ID)
	require.NoError(t, err)
	stale := *u

	u.Email = "student@school.edu"
	u.IsTeacher = true
	u.IsAdmin = true
	require.NoError(t, f.repo.UpdateUser(ctx, u))
	assert.Equal(t, stale.Version+1, u.Version)
	assert.False(t, u.IsAdmin)

	stale.Email = "stale@school.edu"
	err = f.repo.UpdateUser(ctx, &stale)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	stored, err := f.repo.GetUserByID(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, "student@school.edu", stored.Email)
	assert.True(t, stored.IsTeacher)
	assert.False(t, stored.IsAdmin)
}
