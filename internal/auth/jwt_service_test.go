package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentity() *Identity {
	return &Identity{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: "test@example.com",
		Image: "https://example.com/avatar.png",
	}
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	ident := testIdentity()

	token, err := svc.GenerateAccessToken(ident)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, ident.ID.String(), claims.UserID)
	assert.Equal(t, ident.Name, claims.Name)
	assert.Equal(t, ident.Email, claims.Email)
	assert.Equal(t, ident.Image, claims.Image)

	resolved := claims.Identity()
	require.NotNil(t, resolved)
	assert.Equal(t, ident.ID, resolved.ID)
}

func TestJWTService_ResolveSession(t *testing.T) {
	svc := NewJWTService("test-secret")
	ident := testIdentity()

	token, err := svc.GenerateAccessToken(ident)
	require.NoError(t, err)

	t.Run("valid token resolves to identity", func(t *testing.T) {
		resolved := svc.ResolveSession(token)
		require.NotNil(t, resolved)
		assert.Equal(t, ident.ID, resolved.ID)
	})

	t.Run("empty token is anonymous", func(t *testing.T) {
		assert.Nil(t, svc.ResolveSession(""))
	})

	t.Run("garbage token is anonymous", func(t *testing.T) {
		assert.Nil(t, svc.ResolveSession("not-a-jwt"))
	})

	t.Run("token signed with another secret is anonymous", func(t *testing.T) {
		other := NewJWTService("other-secret")
		foreign, err := other.GenerateAccessToken(ident)
		require.NoError(t, err)
		assert.Nil(t, svc.ResolveSession(foreign))
	})

	t.Run("expired token is anonymous", func(t *testing.T) {
		claims := &Claims{
			UserID: ident.ID.String(),
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		assert.Nil(t, svc.ResolveSession(expired))
	})

	t.Run("valid signature with malformed subject is anonymous", func(t *testing.T) {
		claims := &Claims{
			UserID: "not-a-uuid",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}
		odd, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		assert.Nil(t, svc.ResolveSession(odd))
	})
}

func TestJWTService_RefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret")
	ident := testIdentity()

	tokenID, token, err := svc.GenerateRefreshToken(ident)
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)
	require.NotEmpty(t, token)

	extracted, err := svc.ExtractTokenID(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_ExtractTokenID_NoJTI(t *testing.T) {
	svc := NewJWTService("test-secret")

	// Access tokens carry no JTI; extracting one must fail.
	token, err := svc.GenerateAccessToken(testIdentity())
	require.NoError(t, err)

	_, err = svc.ExtractTokenID(token)
	assert.Error(t, err)
}
