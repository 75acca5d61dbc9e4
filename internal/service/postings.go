package service

import (
	"context"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/campus-dev/job-board/backend/internal/notify"
)

type PostingService struct {
	postings PostingStore
	users    CredentialStore
	notifier Notifier
}

func NewPostingService(postings PostingStore, users CredentialStore, notifier Notifier) *PostingService {
	return &PostingService{postings: postings, users: users, notifier: notifier}
}

type PostingInput struct {
	Title       string
	Description string
	SignupForm  string
	JobTypeTag  string
	IndustryTag string
}

// Create stores a new posting owned by actor. Postings always start pending.
func (s *PostingService) Create(ctx context.Context, actor *domain.User, in PostingInput) (*domain.JobPosting, error) {
	p := &domain.JobPosting{
		OwnerID:     actor.ID,
		Title:       in.Title,
		Description: in.Description,
		SignupForm:  in.SignupForm,
		JobTypeTag:  in.JobTypeTag,
		IndustryTag: in.IndustryTag,
	}
	if err := s.postings.CreateJobPosting(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostingService) Get(ctx context.Context, id int64) (*domain.JobPosting, error) {
	return s.postings.GetJobPostingByID(ctx, id)
}

func (s *PostingService) List(ctx context.Context) ([]*domain.JobPosting, error) {
	return s.postings.GetAllJobPostings(ctx)
}

// ListByApproval is a view filter; it never changes a posting's state.
func (s *PostingService) ListByApproval(ctx context.Context, approved bool) ([]*domain.JobPosting, error) {
	return s.postings.GetJobPostingsByApproval(ctx, approved)
}

func (s *PostingService) Update(ctx context.Context, actor *domain.User, id int64, in PostingInput) (*domain.JobPosting, error) {
	p, err := s.postings.GetJobPostingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManagePosting(actor, p) {
		return nil, domain.ForbiddenError("only the owner can edit this job posting")
	}

	p.Title = in.Title
	p.Description = in.Description
	p.SignupForm = in.SignupForm
	p.JobTypeTag = in.JobTypeTag
	p.IndustryTag = in.IndustryTag
	if err := s.postings.UpdateJobPosting(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostingService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	p, err := s.postings.GetJobPostingByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManagePosting(actor, p) {
		return domain.ForbiddenError("only the owner can delete this job posting")
	}
	return s.postings.DeleteJobPosting(ctx, id)
}

func (s *PostingService) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	return s.postings.CountJobPostingsByOwner(ctx, ownerID)
}

type ApprovalResult struct {
	JobID     int64 `json:"job_id"`
	NewStatus bool  `json:"new_status"`
}

// ToggleApproval sets the approval flag to approved. Both directions are accepted;
// the returned status is the value read back from the store.
func (s *PostingService) ToggleApproval(ctx context.Context, id int64, approved bool) (*ApprovalResult, error) {
	p, err := s.postings.GetJobPostingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored, err := s.postings.SetJobPostingApproval(ctx, id, approved)
	if err != nil {
		return nil, err
	}

	if stored != p.IsApproved {
		s.notifyOwner(ctx, p, stored)
	}

	return &ApprovalResult{JobID: id, NewStatus: stored}, nil
}

func (s *PostingService) notifyOwner(ctx context.Context, p *domain.JobPosting, approved bool) {
	if s.notifier == nil {
		return
	}
	owner, err := s.users.GetUserByID(ctx, p.OwnerID)
	if err != nil {
		return
	}
	publish(ctx, s.notifier, notify.Message{
		Type: notify.TypePostingApprovalChanged,
		To:   owner.Email,
		Data: notify.PostingApprovalData{Username: owner.Username, JobTitle: p.Title, Approved: approved},
	})
}
