package middleware

import (
	"context"
	"net/http"
	"strings"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/jwt"
	"hospital-management-api/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	PrincipalKey contextKey = "principal"
	TokenIDKey   contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	tokenStore service.TokenStore
}

func NewAuthMiddleware(jwtService *jwt.JWTService, tokenStore service.TokenStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}
		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Only token ids still present in Redis are accepted
		valid, err := m.tokenStore.IsValid(r.Context(), claims.UserID, jwt.AccessToken, claims.TokenID)
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if !valid {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		principal := &policy.Principal{
			UserID:      claims.UserID,
			Role:        entity.Role(claims.Role),
			IsSuperUser: claims.IsSuperUser,
		}
		ctx := context.WithValue(r.Context(), PrincipalKey, principal)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPrincipalFromContext returns the caller set by Authenticate.
func GetPrincipalFromContext(ctx context.Context) (*policy.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(*policy.Principal)
	return principal, ok && principal != nil
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	principal, ok := GetPrincipalFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return principal.UserID, true
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// WithPrincipal stores p in ctx the way Authenticate does.
func WithPrincipal(ctx context.Context, p *policy.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}
