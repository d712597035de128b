package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// Token verification failures. Handlers collapse all three into a single
// 401 so callers cannot tell which check failed; tests rely on the
// distinction.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenInvalid   = errors.New("token invalid")
)

// tokenClaims is the signed payload of an access token.
type tokenClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited access tokens.
// Tokens are HS256 JWTs embedding the account identifier; there is no
// server-side revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with the given secret.
// Tokens are valid for ttl from issuance.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue produces a signed token for the given account identifier.
func (s *TokenService) Issue(userID int64) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        ulid.Make().String(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks the signature and expiry of a token and returns the
// embedded account identifier. A token issued at T is accepted strictly
// before T+ttl and rejected at or after it.
func (s *TokenService) Verify(token string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&tokenClaims{},
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, ErrTokenMalformed
		default:
			return 0, ErrTokenInvalid
		}
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.UserID == 0 {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}
