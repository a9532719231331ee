package config

import "time"

type JwtConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		Secret:          getEnv("JWT_SECRET", "leetle-secret-key-change-in-production"),
		AccessTokenTTL:  time.Duration(getIntEnv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL: time.Duration(getIntEnv("JWT_REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
	}
}
