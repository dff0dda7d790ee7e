package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key-12345")

func TestJWTFlow(t *testing.T) {
	subject := uuid.New().String()

	token, err := GenerateToken(testSecret, subject, []string{ScopeGenerate}, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, subject, claims.Subject)
	assert.True(t, claims.HasScope(ScopeGenerate))
	assert.False(t, claims.HasScope("admin"))
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires, 5*time.Second)
}

func TestGenerateTokenRejectsEmptyInput(t *testing.T) {
	_, err := GenerateToken(nil, "svc", nil, time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = GenerateToken(testSecret, "", nil, time.Hour)
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestValidateTokenRejects(t *testing.T) {
	good, err := GenerateToken(testSecret, "svc", nil, time.Hour)
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "svc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString(testSecret)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "svc"}).SignedString(testSecret)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "svc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(testSecret)
	require.NoError(t, err)

	tests := map[string]struct {
		secret []byte
		token  string
	}{
		"garbage":      {testSecret, "invalid_token_xyz"},
		"wrong secret": {[]byte("other"), good},
		"expired":      {testSecret, expired},
		"no expiry":    {testSecret, noExpiry},
		"wrong alg":    {testSecret, hs512},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateToken(tt.secret, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
