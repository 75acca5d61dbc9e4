package auth

import (
	"strings"
	"testing"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *PasswordHasher {
	t.Helper()
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestHashThenVerify(t *testing.T) {
	h := newTestHasher(t)

	for _, password := range []string{"hunter2", "correct horse battery staple", "пароль", ""} {
		hash, err := h.Hash(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, hash)
		assert.True(t, h.Verify(password, hash), "password %q", password)
	}
}

func TestVerifyRejectsOtherPassword(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("p1-secret")
	require.NoError(t, err)

	assert.False(t, h.Verify("p2-secret", hash))
	assert.False(t, h.Verify("P1-secret", hash))
}

func TestHashIsSalted(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerifyMalformedHashFailsClosed(t *testing.T) {
	h := newTestHasher(t)

	for _, hash := range []string{"", "not-a-hash", "$2a$10$short", "$2a$99$" + strings.Repeat("a", 53)} {
		assert.False(t, h.Verify("anything", hash), "hash %q", hash)
	}
}

func TestVerifyIgnoresConfiguredCost(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy"), bcrypt.MinCost+1)
	require.NoError(t, err)

	h := newTestHasher(t)
	assert.True(t, h.Verify("legacy", string(legacy)))
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash(strings.Repeat("x", 73))
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestNewPasswordHasherCostBounds(t *testing.T) {
	_, err := NewPasswordHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)
	_, err = NewPasswordHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}
