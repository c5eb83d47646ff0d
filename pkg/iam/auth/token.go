package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
)

// TokenClaims is what a validated access token tells us about the caller
type TokenClaims struct {
	UserID    kernel.UserID
	Email     kernel.Email
	Role      Role
	Scopes    []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, email kernel.Email, role Role) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

type accessClaims struct {
	Email  string   `json:"email"`
	Role   string   `json:"role"`
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 access tokens
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	clock  func() time.Time
}

var _ TokenService = (*JWTService)(nil)

func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		clock:  time.Now,
	}
}

func (s *JWTService) GenerateAccessToken(userID kernel.UserID, email kernel.Email, role Role) (string, error) {
	now := s.clock()
	claims := accessClaims{
		Email:  string(email),
		Role:   string(role),
		Scopes: ScopesFor(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}
	return signed, nil
}

func (s *JWTService) ValidateAccessToken(token string) (*TokenClaims, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.clock),
	)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, jwt.ErrTokenExpired) {
			reason = "expired"
		}
		return nil, ErrInvalidToken().WithCause(err).WithDetail("reason", reason)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken()
	}
	out := &TokenClaims{
		UserID: kernel.UserID(claims.Subject),
		Email:  kernel.Email(claims.Email),
		Role:   Role(claims.Role),
		Scopes: claims.Scopes,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
