package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/ElioenaiFerrari/grace-backend/internal/domain"
)

func SeedAccount(tb testing.TB, ctx context.Context, tx *gorm.DB, conversationID int64) *domain.Account {
	tb.Helper()
	a := domain.NewAccount(conversationID, "Ada", "Lovelace")
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed account: %v", err)
	}
	return a
}

func SeedTurn(tb testing.TB, ctx context.Context, tx *gorm.DB, conversationID int64, role domain.Role, content string, at time.Time) *domain.Turn {
	tb.Helper()
	t := domain.NewTurn(conversationID, role, content)
	t.CreatedAt = at
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed turn: %v", err)
	}
	return t
}
