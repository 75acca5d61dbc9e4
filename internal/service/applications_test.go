package service

import (
	"context"
	"sync"
	"testing"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/campus-dev/job-board/backend/internal/notify"
	"github.com/campus-dev/job-board/backend/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func (f *workflowFixture) application(t *testing.T, id, jobID int64) *domain.JobApplication {
	t.Helper()
	a := &domain.JobApplication{ID: id, JobID: jobID, ApplicantID: f.student.ID, WhyInterested: "I like math"}
	require.NoError(t, f.store.CreateApplication(context.Background(), a))
	return a
}

func TestApplyRequiresApprovedPosting(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 20, false)
	f.posting(t, 21, true)
	ctx := context.Background()

	_, err := f.apps.Apply(ctx, f.student, ApplyInput{JobID: 20})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = f.apps.Apply(ctx, f.student, ApplyInput{JobID: 999})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	a, err := f.apps.Apply(ctx, f.student, ApplyInput{JobID: 21, WhyInterested: "teaching"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, a.ApplicationStatus)
	assert.False(t, a.IsComplete)
	assert.Nil(t, a.ReviewFeedback)
	assert.Equal(t, f.student.ID, a.ApplicantID)
}

func TestUpdateStatusWritesExactlyTheThreeFields(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 30, true)
	f.application(t, 3, 30)
	ctx := context.Background()

	update := domain.StatusUpdate{ApplicationStatus: domain.StatusAccepted, ReviewFeedback: strPtr("Great fit"), IsComplete: false}
	echo, err := f.apps.UpdateStatus(ctx, f.owner, 3, update)
	require.NoError(t, err)
	assert.Equal(t, update, *echo)

	stored, err := f.store.GetApplicationByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, stored.ApplicationStatus)
	assert.Equal(t, "Great fit", *stored.ReviewFeedback)
	assert.False(t, stored.IsComplete)
	assert.Equal(t, int64(30), stored.JobID)
	assert.Equal(t, f.student.ID, stored.ApplicantID)
	assert.Equal(t, "I like math", stored.WhyInterested)

	msgs := f.notifier.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.TypeApplicationStatusChanged, msgs[0].Type)
	assert.Equal(t, f.student.Email, msgs[0].To)
}

func TestUpdateStatusUnknownApplication(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 31, true)
	f.application(t, 4, 31)
	ctx := context.Background()

	_, err := f.apps.UpdateStatus(ctx, f.admin, 999, domain.StatusUpdate{ApplicationStatus: domain.StatusAccepted})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	stored, err := f.store.GetApplicationByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, stored.ApplicationStatus)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 32, true)
	f.application(t, 5, 32)

	_, err := f.apps.UpdateStatus(context.Background(), f.owner, 5, domain.StatusUpdate{ApplicationStatus: "Hired"})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestUpdateStatusOnlyByReviewer(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 33, true)
	f.application(t, 6, 33)

	_, err := f.apps.UpdateStatus(context.Background(), f.student, 6, domain.StatusUpdate{ApplicationStatus: domain.StatusAccepted})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	_, err = f.apps.UpdateStatus(context.Background(), f.admin, 6, domain.StatusUpdate{ApplicationStatus: domain.StatusUnderReview})
	assert.NoError(t, err)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 34, true)
	f.application(t, 7, 34)
	ctx := context.Background()

	_, err := f.apps.UpdateStatus(ctx, f.owner, 7, domain.StatusUpdate{ApplicationStatus: domain.StatusUnderReview})
	require.NoError(t, err)

	_, err = f.apps.UpdateStatus(ctx, f.owner, 7, domain.StatusUpdate{ApplicationStatus: domain.StatusSubmitted})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = f.apps.UpdateStatus(ctx, f.owner, 7, domain.StatusUpdate{ApplicationStatus: domain.StatusRejected})
	require.NoError(t, err)

	_, err = f.apps.UpdateStatus(ctx, f.owner, 7, domain.StatusUpdate{ApplicationStatus: domain.StatusAccepted})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	// resending the current status changes feedback and completion only
	_, err = f.apps.UpdateStatus(ctx, f.owner, 7, domain.StatusUpdate{ApplicationStatus: domain.StatusRejected, ReviewFeedback: strPtr("Position filled"), IsComplete: true})
	require.NoError(t, err)

	stored, err := f.store.GetApplicationByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, stored.ApplicationStatus)
	assert.Equal(t, "Position filled", *stored.ReviewFeedback)
	assert.True(t, stored.IsComplete)
}

func TestApplicationAccessRules(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 40, true)
	f.application(t, 8, 40)
	stranger := &domain.User{ID: 50, Username: "stranger"}
	ctx := context.Background()

	_, err := f.apps.Get(ctx, stranger, 8)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	_, err = f.apps.Get(ctx, f.student, 8)
	assert.NoError(t, err)
	_, err = f.apps.Get(ctx, f.owner, 8)
	assert.NoError(t, err)

	_, err = f.apps.ListByJob(ctx, f.student, 40)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	list, err := f.apps.ListByJob(ctx, f.owner, 40)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.apps.ListByUser(ctx, f.owner, f.student.ID)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	list, err = f.apps.ListByUser(ctx, f.student, f.student.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteApplicationByEitherParty(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 41, true)
	f.application(t, 9, 41)
	f.application(t, 10, 41)
	ctx := context.Background()

	assert.True(t, domain.IsKind(f.apps.Delete(ctx, &domain.User{ID: 77}, 9), domain.KindForbidden))
	assert.NoError(t, f.apps.Delete(ctx, f.student, 9))
	assert.NoError(t, f.apps.Delete(ctx, f.owner, 10))
	assert.True(t, domain.IsKind(f.apps.Delete(ctx, f.owner, 10), domain.KindNotFound))
}

// lockstepStore holds the first n application reads until all of them have
// arrived, so concurrent updates all see the same starting status.
type lockstepStore struct {
	*servicetest.MemStore
	mu      sync.Mutex
	pending int
	release chan struct{}
}

func newLockstepStore(store *servicetest.MemStore, n int) *lockstepStore {
	return &lockstepStore{MemStore: store, pending: n, release: make(chan struct{})}
}

func (s *lockstepStore) GetApplicationByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	a, err := s.MemStore.GetApplicationByID(ctx, id)

	s.mu.Lock()
	gated := s.pending > 0
	if gated {
		s.pending--
		if s.pending == 0 {
			close(s.release)
		}
	}
	s.mu.Unlock()

	if gated {
		<-s.release
	}
	return a, err
}

func TestConcurrentReviewsCannotReopenFinalStatus(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 50, true)
	f.application(t, 11, 50)

	store := newLockstepStore(f.store, 2)
	apps := NewApplicationService(store, f.store, f.store, f.notifier)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, status := range []domain.ApplicationStatus{domain.StatusAccepted, domain.StatusRejected} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = apps.UpdateStatus(context.Background(), f.owner, 11, domain.StatusUpdate{ApplicationStatus: status})
		}()
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, domain.IsKind(err, domain.KindValidation), "%v", err)
	}
	assert.Equal(t, 1, succeeded)

	stored, err := f.store.GetApplicationByID(context.Background(), 11)
	require.NoError(t, err)
	winner := domain.StatusAccepted
	if errs[0] != nil {
		winner = domain.StatusRejected
	}
	assert.Equal(t, winner, stored.ApplicationStatus)
}

func TestUpdateStatusOnStaleReadIsRejected(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 51, true)
	f.application(t, 12, 51)
	ctx := context.Background()

	// another reviewer accepts between our read and our write
	require.NoError(t, f.store.UpdateApplicationStatus(ctx, 12, domain.StatusSubmitted, domain.StatusUpdate{ApplicationStatus: domain.StatusAccepted}))
	err := f.store.UpdateApplicationStatus(ctx, 12, domain.StatusSubmitted, domain.StatusUpdate{ApplicationStatus: domain.StatusRejected})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	stored, err := f.store.GetApplicationByID(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, stored.ApplicationStatus)
}
