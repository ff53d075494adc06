package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleychat/parley-server/internal/model"
)

var testSubject = model.Subject{UserID: 42, Username: "ada", Email: "ada@example.com"}

func TestJWT_IssueVerify_Roundtrip(t *testing.T) {
	j, err := NewJWT("secret", "HS256")
	require.NoError(t, err)

	ttl := 2 * time.Minute
	issuedAt := time.Now()
	tokenString, err := j.Issue(testSubject, model.IssueParams{TTL: ttl})
	require.NoError(t, err)

	claims, err := j.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, testSubject, claims.Subject)
	assert.NotEmpty(t, claims.JTI)
	assert.NotEmpty(t, claims.SessionID)
	assert.False(t, claims.Refresh)
	assert.WithinDuration(t, issuedAt.Add(ttl), claims.ExpiresAt, 5*time.Second)
}

func TestJWT_Issue_PairSharesIdentifiers(t *testing.T) {
	j, err := NewJWT("secret", "HS256")
	require.NoError(t, err)

	access, err := j.Issue(testSubject, model.IssueParams{
		SessionID: "sess-1", JTI: "jti-1", TTL: time.Minute,
	})
	require.NoError(t, err)
	refresh, err := j.Issue(testSubject, model.IssueParams{
		SessionID: "sess-1", JTI: "jti-1", TTL: time.Hour, Refresh: true,
	})
	require.NoError(t, err)

	accessClaims, err := j.Verify(access)
	require.NoError(t, err)
	refreshClaims, err := j.Verify(refresh)
	require.NoError(t, err)

	assert.Equal(t, accessClaims.SessionID, refreshClaims.SessionID)
	assert.Equal(t, accessClaims.JTI, refreshClaims.JTI)
	assert.False(t, accessClaims.Refresh)
	assert.True(t, refreshClaims.Refresh)
}

func TestJWT_Verify_Expired(t *testing.T) {
	j, err := NewJWT("secret", "HS256")
	require.NoError(t, err)

	tokenString, err := j.Issue(testSubject, model.IssueParams{TTL: -time.Second})
	require.NoError(t, err)

	_, err = j.Verify(tokenString)
	require.ErrorIs(t, err, model.ErrTokenExpired)
	require.NotErrorIs(t, err, model.ErrTokenMalformed)
}

func TestJWT_Verify_Malformed(t *testing.T) {
	j, err := NewJWT("secret", "HS256")
	require.NoError(t, err)

	_, err = j.Verify("not-a-token")
	require.ErrorIs(t, err, model.ErrTokenMalformed)
}

func TestJWT_Verify_WrongKey(t *testing.T) {
	issuer, err := NewJWT("secret-a", "HS256")
	require.NoError(t, err)
	verifier, err := NewJWT("secret-b", "HS256")
	require.NoError(t, err)

	tokenString, err := issuer.Issue(testSubject, model.IssueParams{TTL: time.Minute})
	require.NoError(t, err)

	_, err = verifier.Verify(tokenString)
	require.ErrorIs(t, err, model.ErrTokenMalformed)
}

func TestJWT_Verify_MissingJTI(t *testing.T) {
	j, err := NewJWT("secret", "HS256")
	require.NoError(t, err)

	// Craft a token without a jti claim using the same key.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Subject:   testSubject,
		SessionID: "sess-1",
	})
	tokenString, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.Verify(tokenString)
	require.ErrorIs(t, err, model.ErrTokenMissingClaim)
}

func TestNewJWT_UnsupportedAlgorithm(t *testing.T) {
	_, err := NewJWT("secret", "RS256")
	require.Error(t, err)
}
