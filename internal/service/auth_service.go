package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fynix/internal/config"
	"fynix/internal/domain"
)

// Claims is the bearer token payload: the caller's tenant, identity and role.
type Claims struct {
	jwt.RegisteredClaims
	TenantID uuid.UUID       `json:"tenant_id"`
	UserID   uuid.UUID       `json:"user_id"`
	Email    string          `json:"email"`
	Role     domain.UserRole `json:"role"`
}

// AuthService verifies bearer tokens issued by the identity service.
type AuthService interface {
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	secret []byte
	parser *jwt.Parser
}

// NewAuthService creates a new AuthService implementation. Tokens must be
// HMAC-signed, carry an expiry and match the configured audience and issuer.
func NewAuthService(cfg config.JWTConfig) AuthService {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &authService{secret: []byte(cfg.Secret), parser: jwt.NewParser(opts...)}
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.ValidateToken: %w: %w", domain.ErrUnauthorized, err)
	}
	if claims.TenantID == uuid.Nil || claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("auth.ValidateToken: %w: missing tenant or user", domain.ErrUnauthorized)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("auth.ValidateToken: %w: unknown role %q", domain.ErrUnauthorized, claims.Role)
	}
	return claims, nil
}
