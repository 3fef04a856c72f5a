package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newTestService(t)

	user, err := s.Register("a@x.com", "pw1")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "pw1", user.Password)

	token, err := s.Login("a@x.com", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	s, _ := newTestService(t)

	var ve *ValidationError

	_, err := s.Register("not-an-email", "pw1")
	require.ErrorAs(t, err, &ve)

	_, err = s.Register("a@x.com", "")
	require.ErrorAs(t, err, &ve)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, _ := newTestService(t)

	registerUser(t, s, "a@x.com")

	_, err := s.Register("a@x.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginFailures(t *testing.T) {
	s, _ := newTestService(t)
	registerUser(t, s, "a@x.com")

	_, err := s.Login("a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login("nobody@x.com", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	s, _ := newTestService(t)
	user := registerUser(t, s, "a@x.com")

	err := s.ChangePassword(user, "wrong", "pw2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, s.ChangePassword(user, "pw1", "pw2"))

	_, err = s.Login("a@x.com", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login("a@x.com", "pw2")
	assert.NoError(t, err)
}
