package service

import (
	"context"
	"sync"
	"time"

	"github.com/campus-dev/job-board/backend/internal/auth"
	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/campus-dev/job-board/backend/internal/notify"
)

type AuthService struct {
	users    CredentialStore
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	notifier Notifier

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users CredentialStore, hasher *auth.PasswordHasher, tokens *auth.TokenManager, notifier Notifier) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
	}
}

type SignInResult struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expiresAt"`
	User      domain.PublicProfile `json:"user"`
}

// SignIn answers unknown usernames and wrong passwords with the same error, and
// spends a bcrypt comparison in both cases so timing does not tell them apart.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*SignInResult, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			s.hasher.Verify(password, s.fallbackHash())
			return nil, domain.AuthError(domain.AuthInvalidCredentials, nil)
		}
		if domain.IsKind(err, domain.KindUnavailable) {
			return nil, err
		}
		return nil, domain.UnavailableError(err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.AuthError(domain.AuthInvalidCredentials, nil)
	}

	token, expiresAt, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, err
	}

	return &SignInResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      domain.PublicProfile{Username: user.Username},
	}, nil
}

func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("job-board-timing-equalizer")
	})
	return s.dummyHash
}

type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	RealName  string
	IsTeacher bool
}

// Register creates a regular (non-admin) identity.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		RealName:     in.RealName,
		IsTeacher:    in.IsTeacher,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.notifier, notify.Message{
		Type: notify.TypeWelcome,
		To:   user.Email,
		Data: notify.WelcomeData{Username: user.Username},
	})

	return user, nil
}

// EnsureAdmin creates the bootstrap administrator unless the username is taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		RealName:     "Administrator",
		IsAdmin:      true,
	}
	if err := s.users.CreateUser(ctx, admin); err != nil {
		if domain.IsKind(err, domain.KindValidation) {
			return nil
		}
		return err
	}

	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error {
	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return domain.ValidationError("old password is incorrect")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	updated := *user
	updated.PasswordHash = hash
	if err := s.users.UpdateUserPassword(ctx, &updated); err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return domain.ValidationError("password was changed concurrently, please retry")
		}
		return err
	}

	return nil
}

type ProfileInput struct {
	Email     string
	RealName  string
	IsTeacher bool
}

// UpdateProfile lets a user edit their own profile and an admin edit anyone's.
// The admin flag is not part of the profile and never changes here.
func (s *AuthService) UpdateProfile(ctx context.Context, actor, target *domain.User, in ProfileInput) (*domain.User, error) {
	if !actor.IsAdmin && actor.ID != target.ID {
		return nil, domain.ForbiddenError("cannot update another user's profile")
	}

	updated := *target
	updated.Email = in.Email
	updated.RealName = in.RealName
	updated.IsTeacher = in.IsTeacher
	if err := s.users.UpdateUser(ctx, &updated); err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			if _, getErr := s.users.GetUserByID(ctx, target.ID); getErr == nil {
				return nil, domain.ValidationError("profile was changed concurrently, please retry")
			}
		}
		return nil, err
	}

	return &updated, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.GetAllUsers(ctx)
}

func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.DeleteUser(ctx, id)
}
