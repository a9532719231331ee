package config

import "time"

type HttpConfig struct {
	Port            int
	ServiceName     string
	ShutdownTimeout time.Duration
}

func NewHttpConfig() *HttpConfig {
	return &HttpConfig{
		Port:            getIntEnv("HTTP_PORT", 8082),
		ServiceName:     "leetle",
		ShutdownTimeout: 5 * time.Second,
	}
}
