package repository

import (
	"context"
	"database/sql"

	"github.com/campus-dev/job-board/backend/internal/domain"
)

const postingNotFound = "job posting not found"

const postingColumns = `id, user_id, job_title, job_description, job_signup_form, job_type_tag, industry_tag, is_approved, created_at`

func scanPosting(row interface{ Scan(...any) error }) (*domain.JobPosting, error) {
	p := &domain.JobPosting{}
	dst := []any{&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.SignupForm, &p.JobTypeTag, &p.IndustryTag, &p.IsApproved, &p.CreatedAt}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) queryPostings(ctx context.Context, query string, args ...any) ([]*domain.JobPosting, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, postingNotFound)
	}
	defer rows.Close()

	postings := make([]*domain.JobPosting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, translate(err, postingNotFound)
		}
		postings = append(postings, p)
	}

	if err := rows.Err(); err != nil {
		return nil, translate(err, postingNotFound)
	}

	return postings, nil
}

// CreateJobPosting always stores the posting as pending, whatever p.IsApproved says.
func (r *Repository) CreateJobPosting(ctx context.Context, p *domain.JobPosting) error {
	query := `
		INSERT INTO job_postings (user_id, job_title, job_description, job_signup_form, job_type_tag, industry_tag)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_approved, created_at
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	args := []any{p.OwnerID, p.Title, p.Description, p.SignupForm, p.JobTypeTag, p.IndustryTag}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.IsApproved, &p.CreatedAt); err != nil {
		return translate(err, postingNotFound)
	}

	return nil
}

func (r *Repository) GetJobPostingByID(ctx context.Context, id int64) (*domain.JobPosting, error) {
	query := `SELECT ` + postingColumns + ` FROM job_postings WHERE id = $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	p, err := scanPosting(r.dbpool.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err, postingNotFound)
	}

	return p, nil
}

func (r *Repository) GetAllJobPostings(ctx context.Context) ([]*domain.JobPosting, error) {
	return r.queryPostings(ctx, `SELECT `+postingColumns+` FROM job_postings ORDER BY id`)
}

func (r *Repository) GetJobPostingsByApproval(ctx context.Context, approved bool) ([]*domain.JobPosting, error) {
	return r.queryPostings(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE is_approved = $1 ORDER BY id`, approved)
}

func (r *Repository) UpdateJobPosting(ctx context.Context, p *domain.JobPosting) error {
	query := `
		UPDATE job_postings
		SET
			job_title = $1,
			job_description = $2,
			job_signup_form = $3,
			job_type_tag = $4,
			industry_tag = $5
		WHERE id = $6
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	args := []any{p.Title, p.Description, p.SignupForm, p.JobTypeTag, p.IndustryTag, p.ID}
	res, err := r.dbpool.ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err, postingNotFound)
	}

	return expectAffected(res, postingNotFound)
}

// SetJobPostingApproval writes the flag and returns the value now stored.
func (r *Repository) SetJobPostingApproval(ctx context.Context, id int64, approved bool) (bool, error) {
	query := `
		UPDATE job_postings SET is_approved = $1 WHERE id = $2
		RETURNING is_approved
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var stored bool
	if err := r.dbpool.QueryRowContext(ctx, query, approved, id).Scan(&stored); err != nil {
		return false, translate(err, postingNotFound)
	}

	return stored, nil
}

func (r *Repository) DeleteJobPosting(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return translate(err, postingNotFound)
	}

	return expectAffected(res, postingNotFound)
}

func (r *Repository) CountJobPostingsByOwner(ctx context.Context, ownerID int64) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count sql.NullInt64
	if err := r.dbpool.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_postings WHERE user_id = $1`, ownerID).Scan(&count); err != nil {
		return 0, translate(err, postingNotFound)
	}

	return count.Int64, nil
}
