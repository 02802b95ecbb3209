package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T, now *time.Time) JWTService {
	t.Helper()
	key, err := DeriveSessionKey(testSecret)
	require.NoError(t, err)
	return NewJWTService(key, func() time.Time { return *now })
}

func TestDeriveSessionKey(t *testing.T) {
	first, err := DeriveSessionKey(testSecret)
	require.NoError(t, err)
	require.Len(t, first, 32)

	second, err := DeriveSessionKey(testSecret)
	require.NoError(t, err)
	require.Equal(t, first, second)

	other, err := DeriveSessionKey("rotated-secret")
	require.NoError(t, err)
	require.NotEqual(t, first, other)
	require.NotEqual(t, []byte(testSecret), first)
}

func TestJWTSignAndVerify(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tokens := newTestJWT(t, &now)

	signed, expiresAt, err := tokens.Sign("c1", TokenKindSession, SessionTTL)
	require.NoError(t, err)
	require.Equal(t, now.Add(7*time.Hour), expiresAt)

	claims, err := tokens.Verify(signed, TokenKindSession)
	require.NoError(t, err)
	require.Equal(t, "c1", claims.CompanyID)
	require.Equal(t, TokenKindSession, claims.Type)
	require.NotEmpty(t, claims.ID)
	require.Equal(t, now.Unix(), claims.IssuedAt.Unix())
}

func TestJWTKindIsolation(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tokens := newTestJWT(t, &now)

	sessionToken, _, err := tokens.Sign("c1", TokenKindSession, SessionTTL)
	require.NoError(t, err)
	refreshToken, _, err := tokens.Sign("c1", TokenKindRefresh, RefreshTTL)
	require.NoError(t, err)

	_, err = tokens.Verify(refreshToken, TokenKindSession)
	require.ErrorIs(t, err, ErrWrongTokenKind)

	_, err = tokens.Verify(sessionToken, TokenKindRefresh)
	require.ErrorIs(t, err, ErrWrongTokenKind)
}

func TestJWTExpiryBoundaryIsExclusive(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, 0)
	now := issuedAt
	tokens := newTestJWT(t, &now)

	signed, _, err := tokens.Sign("c1", TokenKindSession, SessionTTL)
	require.NoError(t, err)

	now = issuedAt.Add(SessionTTL - time.Second)
	_, err = tokens.Verify(signed, TokenKindSession)
	require.NoError(t, err)

	now = issuedAt.Add(SessionTTL)
	_, err = tokens.Verify(signed, TokenKindSession)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	now = issuedAt.Add(SessionTTL + time.Minute)
	_, err = tokens.Verify(signed, TokenKindSession)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTRejectsForeignKeyAndGarbage(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tokens := newTestJWT(t, &now)

	otherKey, err := DeriveSessionKey("other-secret")
	require.NoError(t, err)
	foreign := NewJWTService(otherKey, func() time.Time { return now })

	signed, _, err := foreign.Sign("c1", TokenKindSession, SessionTTL)
	require.NoError(t, err)

	_, err = tokens.Verify(signed, TokenKindSession)
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = tokens.Verify("not-a-token", TokenKindSession)
	require.ErrorIs(t, err, jwt.ErrTokenMalformed)
}

func TestJWTRejectsNoneAlgorithm(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tokens := newTestJWT(t, &now)

	claims := SessionClaims{
		CompanyID: "c1",
		Type:      TokenKindSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Verify(unsigned, TokenKindSession)
	require.Error(t, err)
}
