package repository

import (
	"context"

	"github.com/campus-dev/job-board/backend/internal/domain"
)

const applicationNotFound = "application not found"

const applicationColumns = `id, job_id, user_id, why_interested, relevant_skills, hope_to_gain, application_status, review_feedback, is_complete, created_at`

func scanApplication(row interface{ Scan(...any) error }) (*domain.JobApplication, error) {
	a := &domain.JobApplication{}
	dst := []any{&a.ID, &a.JobID, &a.ApplicantID, &a.WhyInterested, &a.RelevantSkills, &a.HopeToGain, &a.ApplicationStatus, &a.ReviewFeedback, &a.IsComplete, &a.CreatedAt}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *Repository) queryApplications(ctx context.Context, query string, args ...any) ([]*domain.JobApplication, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, applicationNotFound)
	}
	defer rows.Close()

	applications := make([]*domain.JobApplication, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, translate(err, applicationNotFound)
		}
		applications = append(applications, a)
	}

	if err := rows.Err(); err != nil {
		return nil, translate(err, applicationNotFound)
	}

	return applications, nil
}

func (r *Repository) CreateApplication(ctx context.Context, a *domain.JobApplication) error {
	query := `
		INSERT INTO job_applications (job_id, user_id, why_interested, relevant_skills, hope_to_gain)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, application_status, review_feedback, is_complete, created_at
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	args := []any{a.JobID, a.ApplicantID, a.WhyInterested, a.RelevantSkills, a.HopeToGain}
	dst := []any{&a.ID, &a.ApplicationStatus, &a.ReviewFeedback, &a.IsComplete, &a.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return translate(err, applicationNotFound)
	}

	return nil
}

func (r *Repository) GetApplicationByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	a, err := scanApplication(r.dbpool.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, applicationNotFound)
	}

	return a, nil
}

func (r *Repository) GetApplicationsByJob(ctx context.Context, jobID int64) ([]*domain.JobApplication, error) {
	return r.queryApplications(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE job_id = $1 ORDER BY id`, jobID)
}

func (r *Repository) GetApplicationsByUser(ctx context.Context, userID int64) ([]*domain.JobApplication, error) {
	return r.queryApplications(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE user_id = $1 ORDER BY id`, userID)
}

// UpdateApplicationStatus writes all three status fields in one statement, only
// while the stored status still equals from. A row whose status moved on, or that
// does not exist, surfaces as not found.
func (r *Repository) UpdateApplicationStatus(ctx context.Context, id int64, from domain.ApplicationStatus, update domain.StatusUpdate) error {
	query := `
		UPDATE job_applications
		SET
			application_status = $1,
			review_feedback = $2,
			is_complete = $3
		WHERE id = $4 AND application_status = $5
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, update.ApplicationStatus, update.ReviewFeedback, update.IsComplete, id, from)
	if err != nil {
		return translate(err, applicationNotFound)
	}

	return expectAffected(res, applicationNotFound)
}

func (r *Repository) DeleteApplication(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
	if err != nil {
		return translate(err, applicationNotFound)
	}

	return expectAffected(res, applicationNotFound)
}
