package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/copyforge-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

func newTestService(t *testing.T, now time.Time) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	impl := svc.(*hmacJWTService)
	impl.timeFunc = func() time.Time { return now }
	return impl
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.ErrorIs(t, err, ErrWeakSecret)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)
}

func TestGenerateAndValidate(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, accessTokenType, claims.TokenType)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateTokenRejectsNilUser(t *testing.T) {
	svc := newTestService(t, time.Now())
	_, err := svc.GenerateToken(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenFailures(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	token, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	t.Run("missing", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := newTestService(t, now.Add(2*time.Hour))
		_, err := later.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("within clock skew", func(t *testing.T) {
		slightlyLate := newTestService(t, now.Add(time.Hour+time.Minute))
		_, err := slightlyLate.ValidateToken(context.Background(), token)
		assert.NoError(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "anothersecretkeythatis32charslong!!",
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)
		other.(*hmacJWTService).timeFunc = func() time.Time { return now }

		_, err = other.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong token type", func(t *testing.T) {
		claims := jwtCustomClaims{
			UserID:    uuid.New(),
			TokenType: "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), signed)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"uid": uuid.NewString()}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
