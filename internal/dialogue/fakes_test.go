package dialogue

import (
	"context"
	"fmt"
	"sync"

	"github.com/ElioenaiFerrari/grace-backend/internal/domain"
	"github.com/ElioenaiFerrari/grace-backend/internal/pkg/dbctx"
	pkgerrors "github.com/ElioenaiFerrari/grace-backend/internal/pkg/errors"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/agent"
)

func dbc(ctx context.Context) dbctx.Context { return dbctx.Context{Ctx: ctx} }

type fakeAccounts struct {
	mu      sync.Mutex
	byConv  map[int64]*domain.Account
	creates int
	updates int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byConv: map[int64]*domain.Account{}}
}

func (f *fakeAccounts) Create(_ dbctx.Context, row *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byConv[row.ConversationID]; ok {
		return fmt.Errorf("conversation %d: %w", row.ConversationID, pkgerrors.ErrDuplicateConversation)
	}
	cp := *row
	f.byConv[row.ConversationID] = &cp
	f.creates++
	return nil
}

func (f *fakeAccounts) Update(_ dbctx.Context, row *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for conv, existing := range f.byConv {
		if existing.ID == row.ID {
			cp := *row
			f.byConv[conv] = &cp
			f.updates++
			return nil
		}
	}
	return fmt.Errorf("account %s: %w", row.ID, pkgerrors.ErrNotFound)
}

func (f *fakeAccounts) GetByConversationID(_ dbctx.Context, conversationID int64) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byConv[conversationID]
	if !ok {
		return nil, nil
	}
	cp := *existing
	return &cp, nil
}

type fakeTurns struct {
	mu   sync.Mutex
	rows []*domain.Turn
}

func newFakeTurns() *fakeTurns { return &fakeTurns{} }

func (f *fakeTurns) Create(_ dbctx.Context, rows []*domain.Turn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeTurns) ListRecent(_ dbctx.Context, conversationID int64, limit int) ([]*domain.Turn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var scoped []*domain.Turn
	for _, r := range f.rows {
		if r.ConversationID == conversationID {
			scoped = append(scoped, r)
		}
	}
	// Most recent first, as stored.
	var out []*domain.Turn
	for i := len(scoped) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, scoped[i])
	}
	return out, nil
}

func (f *fakeTurns) byRole(role domain.Role) []*domain.Turn {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Turn
	for _, r := range f.rows {
		if r.Role == role {
			out = append(out, r)
		}
	}
	return out
}

type fakePhases struct {
	mu     sync.Mutex
	phases map[int64]domain.Phase
}

func newFakePhases() *fakePhases { return &fakePhases{phases: map[int64]domain.Phase{}} }

func (f *fakePhases) Get(_ context.Context, conversationID int64) (domain.Phase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.phases[conversationID]
	if !ok {
		return domain.Authenticating(), nil
	}
	return p, nil
}

func (f *fakePhases) Set(_ context.Context, conversationID int64, p domain.Phase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phases[conversationID] = p
	return nil
}

func (f *fakePhases) current(conversationID int64) domain.Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phases[conversationID]
}

type fakeAgent struct {
	reply string
	err   error
	calls int
}

func (f *fakeAgent) Complete(_ context.Context, _ []agent.Message) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
