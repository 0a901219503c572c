package redis

import (
	"context"
	"os"
	"testing"

	"github.com/ElioenaiFerrari/grace-backend/internal/domain"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/logger"
)

func storeForTest(t *testing.T) *PhaseStore {
	t.Helper()
	if os.Getenv("REDIS_ADDR") == "" {
		t.Skip("set REDIS_ADDR to run phase store integration tests")
	}
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	s, err := NewPhaseStore(log)
	if err != nil {
		t.Fatalf("NewPhaseStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPhaseStore_UnknownConversationIsAuthenticating(t *testing.T) {
	s := storeForTest(t)
	p, err := s.Get(context.Background(), 123456789)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Name != domain.PhaseAuthenticating || p.Account != nil {
		t.Fatalf("expected initial authenticating phase, got %+v", p)
	}
}

func TestPhaseStore_RoundTrip(t *testing.T) {
	s := storeForTest(t)
	ctx := context.Background()

	acct := domain.NewAccount(31337, "Grace", "H")
	acct.Verified = true
	if err := s.Set(ctx, 31337, domain.AwaitingLocation(acct)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	p, err := s.Get(ctx, 31337)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Name != domain.PhaseAwaitingLocation {
		t.Fatalf("expected awaiting_location, got %q", p.Name)
	}
	if p.Account == nil || p.Account.ID != acct.ID || !p.Account.Verified {
		t.Fatalf("account snapshot did not round trip: %+v", p.Account)
	}
}
