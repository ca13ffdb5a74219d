package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/shopfront/domain"
)

// tokenClaims mirrors the payload the backend puts into its tokens.
type tokenClaims struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Verified bool   `json:"verified"`
	jwt.RegisteredClaims
}

// JWTDecoder implements domain.TokenDecoder. Tokens are parsed without
// signature verification: the backend holds the signing key and validates
// every authenticated call itself; the gateway only needs the claims.
type JWTDecoder struct {
	parser *jwt.Parser
}

// NewJWTDecoder creates a new JWT decoder
func NewJWTDecoder() *JWTDecoder {
	return &JWTDecoder{parser: jwt.NewParser()}
}

// Decode implements domain.TokenDecoder
func (d *JWTDecoder) Decode(token string) (*domain.Claims, error) {
	var claims tokenClaims
	if _, _, err := d.parser.ParseUnverified(token, &claims); err != nil {
		return nil, domain.ErrTokenInvalid
	}

	if claims.ExpiresAt == nil {
		return nil, domain.ErrTokenInvalid
	}

	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return &domain.Claims{
		Email:     claims.Email,
		FullName:  claims.FullName,
		Verified:  claims.Verified,
		IssuedAt:  issuedAt,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

var _ domain.TokenDecoder = (*JWTDecoder)(nil)
