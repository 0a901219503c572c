package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ElioenaiFerrari/grace-backend/internal/domain"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/env"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/logger"
)

// PhaseStore persists the dialogue phase per conversation as a JSON tagged
// variant, mirroring the account snapshot the state machine carries.
type PhaseStore struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewPhaseStore(log *logger.Logger) (*PhaseStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := env.String("REDIS_ADDR", "")
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &PhaseStore{log: log.With("service", "PhaseStore"), rdb: rdb}, nil
}

func phaseKey(conversationID int64) string {
	return fmt.Sprintf("dialogue:phase:%d", conversationID)
}

// Get returns the stored phase, or the initial authenticating phase for an
// unknown conversation.
func (s *PhaseStore) Get(ctx context.Context, conversationID int64) (domain.Phase, error) {
	raw, err := s.rdb.Get(ctx, phaseKey(conversationID)).Bytes()
	if err == goredis.Nil {
		return domain.Authenticating(), nil
	}
	if err != nil {
		return domain.Phase{}, fmt.Errorf("phase get: %w", err)
	}
	var p domain.Phase
	if err := json.Unmarshal(raw, &p); err != nil {
		s.log.Warn("bad phase payload, resetting to authenticating", "conversation_id", conversationID, "error", err)
		return domain.Authenticating(), nil
	}
	if p.Name == "" {
		return domain.Authenticating(), nil
	}
	return p, nil
}

func (s *PhaseStore) Set(ctx context.Context, conversationID int64, p domain.Phase) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, phaseKey(conversationID), raw, 0).Err(); err != nil {
		return fmt.Errorf("phase set: %w", err)
	}
	return nil
}

func (s *PhaseStore) Close() error {
	return s.rdb.Close()
}
