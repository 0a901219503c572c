package app

import (
	"time"

	"github.com/ElioenaiFerrari/grace-backend/internal/platform/env"
)

type Config struct {
	ServiceName      string
	Environment      string
	VerificationCode string
	ContextWindow    int
	AgentTimeout     time.Duration
}

func LoadConfig() Config {
	return Config{
		ServiceName:      env.String("SERVICE_NAME", "grace"),
		Environment:      env.String("APP_ENV", "development"),
		VerificationCode: env.String("VERIFICATION_CODE", "1234"),
		ContextWindow:    env.Int("CONTEXT_WINDOW", 10),
		AgentTimeout:     env.Duration("AGENT_TIMEOUT", 30*time.Second),
	}
}
