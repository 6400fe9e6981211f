package identity

import (
	"context"
	"time"

	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles login and logout
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// LoginInput contains login credentials
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult carries the issued token and the authenticated user
type LoginResult struct {
	Token *auth.Token `json:"token"`
	User  *UserDTO    `json:"user"`
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if shared.IsCode(err, "NOT_FOUND") {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Failed login attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:        user.ID,
		CompanyID:     user.CompanyID,
		Email:         user.Email,
		IsGlobalAdmin: user.IsGlobalAdmin,
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue token")
	}

	user.RecordLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Login still succeeds if the timestamp write fails
		s.logger.Warn("Failed to record login time",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &LoginResult{Token: token, User: toUserDTO(user)}, nil
}

// Logout revokes the presented token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token",
			zap.String("user_id", claims.UserID),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}
