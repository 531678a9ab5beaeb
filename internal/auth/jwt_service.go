package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 15 * time.Minute
	// RefreshTokenExpiry is the duration for which refresh tokens are valid.
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// Claims represents the session JWT payload. UserID is the only claim
// authorization may trust; name/email/image ride along for display and are
// not re-validated against the store on each request.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Image  string `json:"image,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts validated claims into an Identity. Returns nil when the
// subject id is absent or malformed, which downstream treats as anonymous.
func (c *Claims) Identity() *Identity {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return nil
	}
	return &Identity{ID: id, Name: c.Name, Email: c.Email, Image: c.Image}
}

// JWTService signs and validates session tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateAccessToken generates a short-lived access token for the identity.
func (s *JWTService) GenerateAccessToken(ident *Identity) (string, error) {
	claims := &Claims{
		UserID: ident.ID.String(),
		Name:   ident.Name,
		Email:  ident.Email,
		Image:  ident.Image,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GenerateRefreshToken generates a refresh token for the identity. The token
// ID (JTI) is returned separately for storage in Redis.
func (s *JWTService) GenerateRefreshToken(ident *Identity) (tokenID string, token string, err error) {
	tokenID = uuid.New().String()
	claims := &Claims{
		UserID: ident.ID.String(),
		Email:  ident.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(RefreshTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(s.secret)
	return tokenID, token, err
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// ResolveSession turns a raw token into an Identity. Absent, expired or
// tampered tokens all resolve to nil (anonymous), never an error: session
// resolution must not fail a request on its own.
func (s *JWTService) ResolveSession(tokenString string) *Identity {
	if tokenString == "" {
		return nil
	}
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil
	}
	return claims.Identity()
}

// ExtractTokenID extracts the token ID (JTI) from a refresh token.
func (s *JWTService) ExtractTokenID(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.RegisteredClaims.ID == "" {
		return "", errors.New("token ID not found")
	}
	return claims.RegisteredClaims.ID, nil
}
