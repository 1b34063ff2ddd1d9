package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rahul-gound/fera-naturehelp/internal/auth"
	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/repository"
)

const bcryptCost = 10

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*model.Profile, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, profile *model.Profile, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	// RevokeAccessToken blacklists an access token until it expires.
	RevokeAccessToken(ctx context.Context, accessToken string) error
	IsAccessTokenRevoked(ctx context.Context, tokenID string) bool
}

// keySetInvalidator drops a tracked group of cache keys. *cache.Client
// satisfies it.
type keySetInvalidator interface {
	DeleteTracked(ctx context.Context, setKey string) error
}

type authService struct {
	store      repository.RecordStore
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	cache      keySetInvalidator
	logger     zerolog.Logger
}

// NewAuthService creates a new authentication service. cache may be nil.
func NewAuthService(store repository.RecordStore, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, cache keySetInvalidator, logger zerolog.Logger) AuthService {
	return &authService{
		store:      store,
		jwtService: jwtService,
		tokenStore: tokenStore,
		cache:      cache,
		logger:     logger,
	}
}

// Register creates the user's profile with every total at zero.
func (s *authService) Register(ctx context.Context, email, password, name string) (*model.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// Check if profile already exists
	existing, err := s.store.FindProfileByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, fmt.Errorf("check profile existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := model.NewProfile(strings.TrimSpace(name), email, string(hashedPassword), time.Now())
	if err := s.store.CreateProfile(ctx, profile); err != nil {
		// A concurrent registration can win between the lookup and the insert.
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	// Cached leaderboards predate the new zero-tree profile.
	if s.cache != nil {
		_ = s.cache.DeleteTracked(ctx, leaderboardKeySet)
	}

	s.logger.Info().Str("user_id", profile.ID.String()).Msg("profile registered")
	return profile, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, profile *model.Profile, err error) {
	profile, err = s.store.FindProfileByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(profile.ID, profile.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(profile.ID, profile.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// Store refresh token in Redis
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, profile.ID, profile.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, profile, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", apperrors.ErrInvalidRefreshToken
	}

	// Verify token exists in Redis
	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	userID, err := claims.UserUUID()
	if err != nil || storedUserID != userID || storedEmail != claims.Email {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(userID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// RevokeAccessToken blacklists the access token's id for the rest of its lifetime.
func (s *authService) RevokeAccessToken(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateToken(accessToken)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return apperrors.ErrInvalidCredentials
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.tokenStore.BlacklistAccessToken(ctx, claims.ID, ttl)
}

// IsAccessTokenRevoked reports whether the token id was blacklisted. Lookup
// failures count as not revoked.
func (s *authService) IsAccessTokenRevoked(ctx context.Context, tokenID string) bool {
	if tokenID == "" {
		return false
	}
	revoked, err := s.tokenStore.IsAccessTokenBlacklisted(ctx, tokenID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("check access token blacklist")
		return false
	}
	return revoked
}
