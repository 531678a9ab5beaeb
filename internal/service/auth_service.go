package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quill/internal/auth"
	errs "quill/internal/errors"
	"quill/internal/model"
	"quill/internal/repository"
)

const bcryptCost = 10

// emailPattern is the registration email shape check: local@domain.tld,
// no whitespace, exactly one @.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles account registration and credential authentication.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*auth.Identity, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, ident *auth.Identity, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register validates and creates a new account. Checks run in a fixed
// order, first violation wins: presence, email shape, password length,
// email uniqueness. The read-then-write uniqueness check is advisory; the
// unique index on users.email is the authoritative guard, and a duplicate
// key raised at insert time maps to the same conflict outcome.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errs.ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return nil, errs.ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, errs.ErrPasswordTooShort
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errs.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies an email/password pair. The returned errors stay
// distinct (not found, no password set, incorrect password) for internal
// use; the HTTP layer collapses all three into one generic message. The
// identity never carries the password hash.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*auth.Identity, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.PasswordHash == "" {
		return nil, errs.ErrNoPasswordSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errs.ErrIncorrectPassword
	}

	return &auth.Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Image: user.Image,
	}, nil
}

// Login authenticates and issues an access/refresh token pair. The refresh
// token's JTI is persisted so logout can revoke it.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, ident *auth.Identity, err error) {
	ident, err = s.Authenticate(ctx, email, password)
	if err != nil {
		return "", "", nil, err
	}

	accessToken, err = s.jwtService.GenerateAccessToken(ident)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(ident)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, ident, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, ident, nil
}

// Refresh validates a refresh token against both its signature and the
// store, then issues a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", errs.ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", errs.ErrInvalidRefreshToken
	}

	stored, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", errs.ErrInvalidRefreshToken
	}

	if stored.ID.String() != claims.UserID {
		return "", errs.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(stored)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token. Already-issued access tokens remain valid
// until their short expiry.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errs.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
