package utils

import (
	"testing"
	"time"

	"github.com/hintermeier-t/projet-11-amelioration/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(now time.Time) *ActivationTokenGenerator {
	g := NewActivationTokenGenerator("test-secret", 72*time.Hour)
	g.now = func() time.Time { return now }
	return g
}

func TestActivationTokenValidForInactiveUser(t *testing.T) {
	g := newTestGenerator(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	user := &models.User{ID: 7, Password: "hash", IsActive: false}

	token, err := g.MakeToken(user)
	require.NoError(t, err)

	assert.True(t, g.CheckToken(user, token))
}

func TestActivationTokenInvalidAfterActivation(t *testing.T) {
	g := newTestGenerator(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	user := &models.User{ID: 7, Password: "hash"}

	token, err := g.MakeToken(user)
	require.NoError(t, err)
	require.True(t, g.CheckToken(user, token))

	user.IsActive = true
	assert.False(t, g.CheckToken(user, token))
}

func TestActivationTokenInvalidAfterLogin(t *testing.T) {
	g := newTestGenerator(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	user := &models.User{ID: 7, Password: "hash"}

	token, err := g.MakeToken(user)
	require.NoError(t, err)

	login := time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)
	user.LastLogin = &login
	assert.False(t, g.CheckToken(user, token))
}

func TestActivationTokenExpires(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g := newTestGenerator(issued)
	user := &models.User{ID: 7, Password: "hash"}

	token, err := g.MakeToken(user)
	require.NoError(t, err)

	g.now = func() time.Time { return issued.Add(71 * time.Hour) }
	assert.True(t, g.CheckToken(user, token))

	g.now = func() time.Time { return issued.Add(73 * time.Hour) }
	assert.False(t, g.CheckToken(user, token))
}

func TestActivationTokenRejectsOtherUserAndSecret(t *testing.T) {
	g := newTestGenerator(time.Now())
	user := &models.User{ID: 7, Password: "hash"}
	token, err := g.MakeToken(user)
	require.NoError(t, err)

	assert.False(t, g.CheckToken(&models.User{ID: 8, Password: "hash"}, token))

	other := NewActivationTokenGenerator("another-secret", time.Hour)
	assert.False(t, other.CheckToken(user, token))

	assert.False(t, g.CheckToken(user, ""))
	assert.False(t, g.CheckToken(nil, token))
	assert.False(t, g.CheckToken(user, "not-a-token"))
}

func TestActivationTokenIsNotASession(t *testing.T) {
	user := &models.User{ID: 7, Password: "hash"}
	token, err := NewActivationTokenGenerator("s", time.Hour).MakeToken(user)
	require.NoError(t, err)

	_, err = NewSessionManager("s", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestUIDRoundTrip(t *testing.T) {
	encoded := EncodeUID(42)
	assert.Equal(t, "NDI", encoded)

	id, err := DecodeUID(encoded)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	id, err = DecodeUID("NDI=")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestDecodeUIDErrors(t *testing.T) {
	for _, in := range []string{"", "!!!", EncodeUID(0), "YWJj"} {
		_, err := DecodeUID(in)
		assert.Error(t, err, "input %q", in)
	}
}
