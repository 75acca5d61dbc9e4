// Package servicetest provides in-memory stores for exercising services and handlers.
package servicetest

import (
	"context"
	"sync"
	"time"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/campus-dev/job-board/backend/internal/notify"
)

// MemStore implements the credential, posting and application stores on maps.
type MemStore struct {
	mu           sync.Mutex
	users        map[int64]*domain.User
	postings     map[int64]*domain.JobPosting
	applications map[int64]*domain.JobApplication
	nextID       int64
	// when set, every call fails with this error
	FailWith error
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:        make(map[int64]*domain.User),
		postings:     make(map[int64]*domain.JobPosting),
		applications: make(map[int64]*domain.JobApplication),
		nextID:       100,
	}
}

func (m *MemStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *MemStore) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.NotFoundError("user not found")
	}
	cp := *u
	return &cp, nil
}

func (m *MemStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.NotFoundError("user not found")
}

func (m *MemStore) CreateUser(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return domain.ValidationError("username already exists")
		}
	}
	if user.ID == 0 {
		user.ID = m.id()
	}
	user.CreatedAt = time.Now()
	user.Version = 1
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MemStore) UpdateUserPassword(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[user.ID]
	if !ok || u.Version != user.Version {
		return domain.NotFoundError("user not found")
	}
	u.PasswordHash = user.PasswordHash
	u.Version++
	user.Version = u.Version
	return nil
}

func (m *MemStore) UpdateUser(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	u, ok := m.users[user.ID]
	if !ok || u.Version != user.Version {
		return domain.NotFoundError("user not found")
	}
	u.Email = user.Email
	u.RealName = user.RealName
	u.IsTeacher = user.IsTeacher
	u.Version++
	user.Username = u.Username
	user.IsAdmin = u.IsAdmin
	user.CreatedAt = u.CreatedAt
	user.Version = u.Version
	return nil
}

func (m *MemStore) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemStore) DeleteUser(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.NotFoundError("user not found")
	}
	delete(m.users, id)
	return nil
}

func (m *MemStore) CreateJobPosting(ctx context.Context, p *domain.JobPosting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[p.OwnerID]; !ok {
		return domain.NotFoundError("user not found")
	}
	if p.ID == 0 {
		p.ID = m.id()
	}
	p.IsApproved = false
	cp := *p
	m.postings[p.ID] = &cp
	return nil
}

func (m *MemStore) GetJobPostingByID(ctx context.Context, id int64) (*domain.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.postings[id]
	if !ok {
		return nil, domain.NotFoundError("job posting not found")
	}
	cp := *p
	return &cp, nil
}

func (m *MemStore) GetAllJobPostings(ctx context.Context) ([]*domain.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.JobPosting, 0, len(m.postings))
	for _, p := range m.postings {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemStore) GetJobPostingsByApproval(ctx context.Context, approved bool) ([]*domain.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.JobPosting, 0)
	for _, p := range m.postings {
		if p.IsApproved == approved {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemStore) UpdateJobPosting(ctx context.Context, p *domain.JobPosting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.postings[p.ID]
	if !ok {
		return domain.NotFoundError("job posting not found")
	}
	stored.Title = p.Title
	stored.Description = p.Description
	stored.SignupForm = p.SignupForm
	stored.JobTypeTag = p.JobTypeTag
	stored.IndustryTag = p.IndustryTag
	return nil
}

func (m *MemStore) SetJobPostingApproval(ctx context.Context, id int64, approved bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.postings[id]
	if !ok {
		return false, domain.NotFoundError("job posting not found")
	}
	p.IsApproved = approved
	return p.IsApproved, nil
}

func (m *MemStore) DeleteJobPosting(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.postings[id]; !ok {
		return domain.NotFoundError("job posting not found")
	}
	delete(m.postings, id)
	return nil
}

func (m *MemStore) CountJobPostingsByOwner(ctx context.Context, ownerID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, p := range m.postings {
		if p.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (m *MemStore) CreateApplication(ctx context.Context, a *domain.JobApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.postings[a.JobID]; !ok {
		return domain.NotFoundError("job posting not found")
	}
	if a.ID == 0 {
		a.ID = m.id()
	}
	a.ApplicationStatus = domain.StatusSubmitted
	a.ReviewFeedback = nil
	a.IsComplete = false
	cp := *a
	m.applications[a.ID] = &cp
	return nil
}

func (m *MemStore) GetApplicationByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applications[id]
	if !ok {
		return nil, domain.NotFoundError("application not found")
	}
	cp := *a
	return &cp, nil
}

func (m *MemStore) GetApplicationsByJob(ctx context.Context, jobID int64) ([]*domain.JobApplication, error) {
	return m.filterApplications(func(a *domain.JobApplication) bool { return a.JobID == jobID }), nil
}

func (m *MemStore) GetApplicationsByUser(ctx context.Context, userID int64) ([]*domain.JobApplication, error) {
	return m.filterApplications(func(a *domain.JobApplication) bool { return a.ApplicantID == userID }), nil
}

func (m *MemStore) filterApplications(keep func(*domain.JobApplication) bool) []*domain.JobApplication {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.JobApplication, 0)
	for _, a := range m.applications {
		if keep(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out
}

func (m *MemStore) UpdateApplicationStatus(ctx context.Context, id int64, from domain.ApplicationStatus, update domain.StatusUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applications[id]
	if !ok || a.ApplicationStatus != from {
		return domain.NotFoundError("application not found")
	}
	a.ApplicationStatus = update.ApplicationStatus
	a.ReviewFeedback = update.ReviewFeedback
	a.IsComplete = update.IsComplete
	return nil
}

func (m *MemStore) DeleteApplication(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.applications[id]; !ok {
		return domain.NotFoundError("application not found")
	}
	delete(m.applications, id)
	return nil
}

// Notifier records published messages.
type Notifier struct {
	mu   sync.Mutex
	sent []notify.Message
	Err  error
}

func (f *Notifier) Publish(ctx context.Context, msg notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *Notifier) Messages() []notify.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Message(nil), f.sent...)
}
