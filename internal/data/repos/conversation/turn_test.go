package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/ElioenaiFerrari/grace-backend/internal/data/repos/testutil"
	"github.com/ElioenaiFerrari/grace-backend/internal/domain"
	"github.com/ElioenaiFerrari/grace-backend/internal/pkg/dbctx"
)

func TestTurnRepo_ListRecentOrderAndLimit(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewTurnRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		testutil.SeedTurn(t, dbc.Ctx, tx, 7001, role, contentAt(i), base.Add(time.Duration(i)*time.Minute))
	}

	out, err := repo.ListRecent(dbc, 7001, 3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("ListRecent: expected 3 turns, got %d", len(out))
	}
	// Most recent first, as stored.
	if out[0].Content != contentAt(4) || out[1].Content != contentAt(3) || out[2].Content != contentAt(2) {
		t.Fatalf("ListRecent: wrong order: %q %q %q", out[0].Content, out[1].Content, out[2].Content)
	}
	for i := 0; i < len(out)-1; i++ {
		if out[i].CreatedAt.Before(out[i+1].CreatedAt) {
			t.Fatalf("ListRecent: not descending at %d", i)
		}
	}
}

func TestTurnRepo_ListRecentScopedToConversation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewTurnRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	now := time.Now().UTC()
	testutil.SeedTurn(t, dbc.Ctx, tx, 7002, domain.RoleUser, "mine", now)
	testutil.SeedTurn(t, dbc.Ctx, tx, 7003, domain.RoleUser, "theirs", now)

	out, err := repo.ListRecent(dbc, 7002, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(out) != 1 || out[0].Content != "mine" {
		t.Fatalf("ListRecent leaked across conversations: %+v", out)
	}
}

func TestTurnRepo_CreateEmptyIsNoop(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewTurnRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	if err := repo.Create(dbc, nil); err != nil {
		t.Fatalf("Create(nil): %v", err)
	}
}

func contentAt(i int) string {
	return []string{"hello", "hi there", "how are you", "fine", "good"}[i]
}
