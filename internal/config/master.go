package config

import "os"

type AppConfig struct {
	DebugMode      bool
	LogLevel       string
	HttpConfig     *HttpConfig
	RunnerConfig   *RunnerConfig
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	JwtConfig      *JwtConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HttpConfig:     NewHttpConfig(),
		RunnerConfig:   NewRunnerConfig(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		JwtConfig:      NewJwtConfig(),
	}
}
