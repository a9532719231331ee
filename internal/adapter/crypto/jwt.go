package crypto

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/leetle.net/internal/config"
	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/domain"
	"gitlab.com/leetle.net/internal/static/errs"
)

var _ primary.JWTService = (*JWTServiceImpl)(nil)

type claims struct {
	UserID int64            `json:"user_id"`
	Type   domain.TokenType `json:"type"`
	jwt.RegisteredClaims
}

// JWTServiceImpl signs and verifies HS256 tokens with a shared secret
type JWTServiceImpl struct {
	HMACSecretKey string
	now           func() time.Time
}

func NewJWTService(jwtConfig *config.JwtConfig) *JWTServiceImpl {
	return &JWTServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
		now:           time.Now,
	}
}

func (j *JWTServiceImpl) GenerateTokenHMAC(ctx context.Context, payload domain.AuthPayload, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("%w: non-positive ttl %s", errs.GeneratingToken, ttl)
	}
	now := j.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: payload.UserID,
		Type:   payload.Type,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := tok.SignedString([]byte(j.HMACSecretKey))
	if err != nil {
		return "", fmt.Errorf("%w: %w", errs.GeneratingToken, err)
	}
	return signed, nil
}

func (j *JWTServiceImpl) DecodeTokenPayload(ctx context.Context, token string) (domain.AuthPayload, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return []byte(j.HMACSecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.AuthPayload{}, fmt.Errorf("%w: token expired", errs.InvalidToken)
		}
		return domain.AuthPayload{}, fmt.Errorf("%w: %w", errs.InvalidToken, err)
	}

	return domain.AuthPayload{UserID: c.UserID, Type: c.Type}, nil
}
