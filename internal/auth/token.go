package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a session token proves about its bearer.
type Identity struct {
	UserID   int64
	Username string
}

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates stateless HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager refuses an empty secret.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must not be empty")
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) Issue(id Identity) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	})

	ss, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, domain.InternalError(err)
	}

	return ss, expiresAt, nil
}

func (m *TokenManager) Validate(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, domain.AuthError(domain.AuthMissing, nil)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.AuthError(domain.AuthExpired, err)
		}
		return nil, domain.AuthError(domain.AuthMalformed, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.AuthError(domain.AuthMalformed, err)
	}

	return &Identity{UserID: userID, Username: claims.Username}, nil
}
