package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/identity"
	"github.com/returnhub/backend/internal/infrastructure/auth"
	"github.com/returnhub/backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	ClaimsKey = "jwt_claims"
	ActorKey  = "jwt_actor"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// AuthConfig holds JWT middleware dependencies
type AuthConfig struct {
	JWTService *auth.JWTService
	// Blacklist is optional; without it revoked tokens stay valid until
	// they expire.
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
}

// RequireAuth validates the bearer token, checks it against the blacklist,
// and stores the admin's identity in the request context.
func RequireAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c)
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing or malformed authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			code := dto.ErrCodeTokenInvalid
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrCodeTokenExpired
			}
			abortUnauthorized(c, code, "Invalid or expired token")
			return
		}

		if cfg.Blacklist != nil && claims.ID != "" {
			revoked, err := cfg.Blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Error("token blacklist check failed", zap.Error(err))
				}
				abortUnauthorized(c, dto.ErrCodeUnauthorized, "Could not verify token")
				return
			}
			if revoked {
				abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token has been revoked")
				return
			}
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid or expired token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ActorKey, identity.Actor{
			ID:    userID,
			Email: claims.Email,
			Name:  claims.Name,
		})
		c.Next()
	}
}

// GetActor returns the authenticated admin stored by RequireAuth
func GetActor(c *gin.Context) (identity.Actor, bool) {
	value, ok := c.Get(ActorKey)
	if !ok {
		return identity.Actor{}, false
	}
	actor, ok := value.(identity.Actor)
	return actor, ok
}

// GetClaims returns the validated token claims stored by RequireAuth
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader(authHeaderKey)
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", auth.ErrInvalidToken
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	if token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, requestID))
}
