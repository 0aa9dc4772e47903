package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_IssueAndValidate(t *testing.T) {
	svc := NewSessionService("test-secret")

	token, err := svc.Issue("alice01")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice01", claims.Username)
}

func TestSessionService_Validate_WrongSecret(t *testing.T) {
	token, err := NewSessionService("secret-a").Issue("alice01")
	require.NoError(t, err)

	claims, err := NewSessionService("secret-b").Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestSessionService_Validate_Garbage(t *testing.T) {
	svc := NewSessionService("test-secret")

	claims, err := svc.Validate("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestSessionCookies(t *testing.T) {
	c := NewCookie("token-value")
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "token-value", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)

	cleared := ExpiredCookie()
	assert.Equal(t, CookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
