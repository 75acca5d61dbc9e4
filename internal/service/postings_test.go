package service

import (
	"context"
	"testing"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/campus-dev/job-board/backend/internal/notify"
	"github.com/campus-dev/job-board/backend/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workflowFixture struct {
	store    *servicetest.MemStore
	notifier *servicetest.Notifier
	postings *PostingService
	apps     *ApplicationService
	admin    *domain.User
	owner    *domain.User
	student  *domain.User
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	f := &workflowFixture{store: servicetest.NewMemStore(), notifier: &servicetest.Notifier{}}
	f.postings = NewPostingService(f.store, f.store, f.notifier)
	f.apps = NewApplicationService(f.store, f.store, f.store, f.notifier)

	f.admin = &domain.User{ID: 1, Username: "admin", Email: "admin@example.com", IsAdmin: true}
	f.owner = &domain.User{ID: 2, Username: "teacher", Email: "teacher@example.com", IsTeacher: true}
	f.student = &domain.User{ID: 3, Username: "student", Email: "student@example.com"}
	for _, u := range []*domain.User{f.admin, f.owner, f.student} {
		require.NoError(t, f.store.CreateUser(context.Background(), u))
	}
	return f
}

func (f *workflowFixture) posting(t *testing.T, id int64, approved bool) *domain.JobPosting {
	t.Helper()
	p := &domain.JobPosting{ID: id, OwnerID: f.owner.ID, Title: "Math tutor"}
	require.NoError(t, f.store.CreateJobPosting(context.Background(), p))
	if approved {
		_, err := f.store.SetJobPostingApproval(context.Background(), id, true)
		require.NoError(t, err)
		p.IsApproved = true
	}
	return p
}

func ids(postings []*domain.JobPosting) []int64 {
	out := make([]int64, 0, len(postings))
	for _, p := range postings {
		out = append(out, p.ID)
	}
	return out
}

func TestCreatePostingStartsPending(t *testing.T) {
	f := newWorkflowFixture(t)

	p, err := f.postings.Create(context.Background(), f.owner, PostingInput{Title: "Lab assistant"})
	require.NoError(t, err)
	assert.False(t, p.IsApproved)
	assert.Equal(t, f.owner.ID, p.OwnerID)
}

func TestToggleApprovalMovesPostingBetweenViews(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 7, false)
	ctx := context.Background()

	pending, err := f.postings.ListByApproval(ctx, false)
	require.NoError(t, err)
	assert.Contains(t, ids(pending), int64(7))

	res, err := f.postings.ToggleApproval(ctx, 7, true)
	require.NoError(t, err)
	assert.Equal(t, &ApprovalResult{JobID: 7, NewStatus: true}, res)

	pending, err = f.postings.ListByApproval(ctx, false)
	require.NoError(t, err)
	assert.NotContains(t, ids(pending), int64(7))

	approved, err := f.postings.ListByApproval(ctx, true)
	require.NoError(t, err)
	assert.Contains(t, ids(approved), int64(7))

	msgs := f.notifier.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.TypePostingApprovalChanged, msgs[0].Type)
	assert.Equal(t, f.owner.Email, msgs[0].To)
}

func TestToggleApprovalCanResetToPending(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 8, true)

	res, err := f.postings.ToggleApproval(context.Background(), 8, false)
	require.NoError(t, err)
	assert.False(t, res.NewStatus)
}

func TestToggleApprovalSameValueDoesNotNotify(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 9, true)

	_, err := f.postings.ToggleApproval(context.Background(), 9, true)
	require.NoError(t, err)
	assert.Empty(t, f.notifier.Messages())
}

func TestToggleApprovalUnknownPosting(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.postings.ToggleApproval(context.Background(), 404, true)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestUpdatePostingOwnership(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 10, false)
	ctx := context.Background()

	_, err := f.postings.Update(ctx, f.student, 10, PostingInput{Title: "hijacked"})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	p, err := f.postings.Update(ctx, f.owner, 10, PostingInput{Title: "Physics tutor"})
	require.NoError(t, err)
	assert.Equal(t, "Physics tutor", p.Title)

	_, err = f.postings.Update(ctx, f.admin, 10, PostingInput{Title: "Chemistry tutor"})
	assert.NoError(t, err)
}

func TestDeletePosting(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 11, false)
	ctx := context.Background()

	assert.True(t, domain.IsKind(f.postings.Delete(ctx, f.student, 11), domain.KindForbidden))
	require.NoError(t, f.postings.Delete(ctx, f.owner, 11))
	assert.True(t, domain.IsKind(f.postings.Delete(ctx, f.owner, 11), domain.KindNotFound))
}

func TestCountByOwner(t *testing.T) {
	f := newWorkflowFixture(t)
	f.posting(t, 12, false)
	f.posting(t, 13, true)

	n, err := f.postings.CountByOwner(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
