package middleware

import (
	"net/http"
	"strings"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/auth"
	"github.com/fleetcore/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTConfig holds configuration for the JWT middleware
type JWTConfig struct {
	JWTService *auth.JWTService
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuth validates the bearer token and resolves the request actor. The
// actor is stored in the request context; downstream authorization reads it
// from there, never from headers.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "UNAUTHORIZED", "Authentication required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			code, message := authErrorCode(err)
			if cfg.Logger != nil {
				cfg.Logger.Warn("JWT authentication failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err))
			}
			abortUnauthorized(c, code, message)
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open: a blacklist outage must not take down the API
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to check token blacklist",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			} else if blacklisted {
				abortUnauthorized(c, "TOKEN_REVOKED", "Token has been revoked")
				return
			}
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid token")
			return
		}

		c.Set(JWTClaimsKey, claims)

		ctx := shared.WithActor(c.Request.Context(), actor)
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithUserID(ctx, log, claims.UserID)
		if claims.CompanyID != "" {
			ctx, _ = logger.WithCompanyID(ctx, log, claims.CompanyID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func actorFromClaims(claims *auth.Claims) (shared.Actor, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return shared.Actor{}, err
	}

	actor := shared.Actor{
		UserID:          userID,
		Email:           claims.Email,
		IsPlatformAdmin: claims.IsGlobalAdmin,
	}
	if claims.CompanyID != "" {
		companyID, err := uuid.Parse(claims.CompanyID)
		if err != nil {
			return shared.Actor{}, err
		}
		actor.CompanyID = &companyID
	}
	return actor, nil
}

func authErrorCode(err error) (string, string) {
	switch err {
	case auth.ErrExpiredToken:
		return "TOKEN_EXPIRED", "Token has expired"
	case auth.ErrTokenNotYetValid:
		return "TOKEN_NOT_VALID", "Token is not yet valid"
	case auth.ErrTokenBlacklisted:
		return "TOKEN_REVOKED", "Token has been revoked"
	default:
		return "INVALID_TOKEN", "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}
