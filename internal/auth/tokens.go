package auth

import (
	"fmt"
	"time"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const mockTokenPrefix = "mock-jwt-token-"

// TokenIssuer produces the opaque token held for the lifetime of a session.
// Tokens are placeholders and are never validated.
type TokenIssuer interface {
	Issue(user models.User) (string, error)
}

// RandomIssuer issues mock-jwt-token-<random> strings
type RandomIssuer struct{}

func (RandomIssuer) Issue(models.User) (string, error) {
	return mockTokenPrefix + uuid.NewString(), nil
}

// JWTIssuer signs an HS256 token carrying the user id and role
type JWTIssuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func (j JWTIssuer) Issue(user models.User) (string, error) {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	issuedAt := now().UTC()

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  issuedAt.Unix(),
		"jti":  uuid.NewString(),
	}
	if j.TTL > 0 {
		claims["exp"] = issuedAt.Add(j.TTL).Unix()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
