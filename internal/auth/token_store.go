package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshTokenKeyPrefix = "refresh_token:"

// ErrRefreshTokenNotFound is returned when a refresh token is absent from
// the store, either revoked by logout or expired out by Redis.
var ErrRefreshTokenNotFound = fmt.Errorf("refresh token not found")

// TokenStoreInterface defines the interface for refresh token storage.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, ident *Identity, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (*Identity, error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore keeps issued refresh tokens in Redis, keyed by JTI. Access
// tokens are deliberately stateless; only the long-lived refresh credential
// is revocable server-side.
type TokenStore struct {
	client *redis.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a token store on top of an existing Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

type storedToken struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Image  string `json:"image,omitempty"`
}

// StoreRefreshToken stores a refresh token with TTL. Unlike a cache, errors
// here propagate: a login whose refresh token was not persisted would hand
// out a credential that can never be redeemed.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, ident *Identity, ttl time.Duration) error {
	payload, err := json.Marshal(storedToken{
		UserID: ident.ID.String(),
		Name:   ident.Name,
		Email:  ident.Email,
		Image:  ident.Image,
	})
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}
	return s.client.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl).Err()
}

// GetRefreshToken retrieves the identity bound to a stored refresh token.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (*Identity, error) {
	data, err := s.client.Get(ctx, refreshTokenKeyPrefix+tokenID).Bytes()
	if err == redis.Nil {
		return nil, ErrRefreshTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get refresh token: %w", err)
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal token data: %w", err)
	}
	ident := (&Claims{UserID: stored.UserID, Name: stored.Name, Email: stored.Email, Image: stored.Image}).Identity()
	if ident == nil {
		return nil, fmt.Errorf("invalid user id in token data")
	}
	return ident, nil
}

// DeleteRefreshToken removes a refresh token, revoking it.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, refreshTokenKeyPrefix+tokenID).Err()
}
