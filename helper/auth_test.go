package helper

import (
	"event_ticketing/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	claim := model.TokenClaim{AccountId: "acc-1", Email: "org@example.com", Role: "Organizer"}

	token, err := issuer.GenerateAccessToken(claim)
	require.NoError(t, err)

	parsed, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, claim, parsed)
}

func TestTokenIssuer_RejectsForeignSecret(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).GenerateAccessToken(model.TokenClaim{AccountId: "acc-1"})
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)
	token, err := issuer.GenerateAccessToken(model.TokenClaim{AccountId: "acc-1"})
	require.NoError(t, err)

	_, err = issuer.ParseToken(token)
	assert.Error(t, err)
}
