package service

import (
	"context"
	"fmt"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/campus-dev/job-board/backend/internal/notify"
)

type ApplicationService struct {
	applications ApplicationStore
	postings     PostingStore
	users        CredentialStore
	notifier     Notifier
}

func NewApplicationService(applications ApplicationStore, postings PostingStore, users CredentialStore, notifier Notifier) *ApplicationService {
	return &ApplicationService{applications: applications, postings: postings, users: users, notifier: notifier}
}

type ApplyInput struct {
	JobID          int64
	WhyInterested  string
	RelevantSkills string
	HopeToGain     string
}

// Apply files an application by actor. Only approved postings accept applications.
func (s *ApplicationService) Apply(ctx context.Context, actor *domain.User, in ApplyInput) (*domain.JobApplication, error) {
	p, err := s.postings.GetJobPostingByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if !p.IsApproved {
		return nil, domain.ValidationError("job posting is not open for applications")
	}

	a := &domain.JobApplication{
		JobID:          in.JobID,
		ApplicantID:    actor.ID,
		WhyInterested:  in.WhyInterested,
		RelevantSkills: in.RelevantSkills,
		HopeToGain:     in.HopeToGain,
	}
	if err := s.applications.CreateApplication(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// load returns the application with its posting and whether actor is the posting's
// reviewer (owner or admin).
func (s *ApplicationService) load(ctx context.Context, actor *domain.User, id int64) (*domain.JobApplication, *domain.JobPosting, bool, error) {
	a, err := s.applications.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, nil, false, err
	}
	p, err := s.postings.GetJobPostingByID(ctx, a.JobID)
	if err != nil {
		return nil, nil, false, err
	}
	return a, p, canManagePosting(actor, p), nil
}

func (s *ApplicationService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.JobApplication, error) {
	a, _, reviewer, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !reviewer && a.ApplicantID != actor.ID {
		return nil, domain.ForbiddenError("no access to this application")
	}
	return a, nil
}

func (s *ApplicationService) ListByJob(ctx context.Context, actor *domain.User, jobID int64) ([]*domain.JobApplication, error) {
	p, err := s.postings.GetJobPostingByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !canManagePosting(actor, p) {
		return nil, domain.ForbiddenError("only the owner can list applications for this job posting")
	}
	return s.applications.GetApplicationsByJob(ctx, jobID)
}

func (s *ApplicationService) ListByUser(ctx context.Context, actor *domain.User, userID int64) ([]*domain.JobApplication, error) {
	if !actor.IsAdmin && actor.ID != userID {
		return nil, domain.ForbiddenError("no access to these applications")
	}
	return s.applications.GetApplicationsByUser(ctx, userID)
}

// Delete may be called by either party or an admin.
func (s *ApplicationService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	a, _, reviewer, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if !reviewer && a.ApplicantID != actor.ID {
		return domain.ForbiddenError("no access to this application")
	}
	return s.applications.DeleteApplication(ctx, id)
}

// UpdateStatus writes status, feedback and completion together. Omitted fields are
// not special-cased: to change only the feedback, resend the current status.
// The write is conditional on the status that was checked, so of two reviewers
// starting from the same status only the first one lands.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *domain.User, id int64, update domain.StatusUpdate) (*domain.StatusUpdate, error) {
	a, p, reviewer, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !update.ApplicationStatus.IsValid() {
		return nil, domain.ValidationError(fmt.Sprintf("unknown application status %q", update.ApplicationStatus))
	}
	if !reviewer {
		return nil, domain.ForbiddenError("only the job poster can review this application")
	}
	if !domain.CanTransition(a.ApplicationStatus, update.ApplicationStatus) {
		return nil, domain.ValidationError(fmt.Sprintf("cannot change application status from %s to %s", a.ApplicationStatus, update.ApplicationStatus))
	}

	if err := s.applications.UpdateApplicationStatus(ctx, id, a.ApplicationStatus, update); err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			// still there, so another reviewer changed the status first
			if _, getErr := s.applications.GetApplicationByID(ctx, id); getErr == nil {
				return nil, domain.ValidationError("application status was changed concurrently, please retry")
			}
		}
		return nil, err
	}

	if update.ApplicationStatus != a.ApplicationStatus || (update.IsComplete && !a.IsComplete) {
		s.notifyApplicant(ctx, a.ApplicantID, p, update)
	}

	return &update, nil
}

func (s *ApplicationService) notifyApplicant(ctx context.Context, applicantID int64, p *domain.JobPosting, update domain.StatusUpdate) {
	if s.notifier == nil {
		return
	}
	applicant, err := s.users.GetUserByID(ctx, applicantID)
	if err != nil {
		return
	}
	feedback := ""
	if update.ReviewFeedback != nil {
		feedback = *update.ReviewFeedback
	}
	publish(ctx, s.notifier, notify.Message{
		Type: notify.TypeApplicationStatusChanged,
		To:   applicant.Email,
		Data: notify.ApplicationStatusData{
			Username:   applicant.Username,
			JobTitle:   p.Title,
			Status:     update.ApplicationStatus,
			Feedback:   feedback,
			IsComplete: update.IsComplete,
		},
	})
}
