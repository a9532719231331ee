package primary

import (
	"context"
	"time"

	"gitlab.com/leetle.net/internal/domain"
)

type JWTService interface {
	// GenerateTokenHMAC signs payload with the shared secret, expiring after ttl
	GenerateTokenHMAC(ctx context.Context, payload domain.AuthPayload, ttl time.Duration) (string, error)
	// DecodeTokenPayload verifies signature and expiry and returns the claims
	DecodeTokenPayload(ctx context.Context, token string) (domain.AuthPayload, error)
}
