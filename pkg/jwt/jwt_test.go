package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prayastok/stok-api/pkg/jwt"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	token, err := jwt.Generate("secret", "session-1", "Praya", "stok-api", 60)
	require.NoError(t, err)

	sessionID, username, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", sessionID)
	assert.Equal(t, "Praya", username)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := jwt.Generate("secret", "session-1", "Praya", "stok-api", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("other-secret", token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := jwt.Generate("secret", "session-1", "Praya", "stok-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "session-1", "Praya", "stok-api", 60)
	assert.Error(t, err)

	_, _, err = jwt.Parse("", "whatever")
	assert.Error(t, err)
}
