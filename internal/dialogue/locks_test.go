package dialogue

import (
	"context"
	"sync"
	"testing"
)

func TestConversationLocks_MutualExclusionPerKey(t *testing.T) {
	locks := newConversationLocks()

	const workers = 16
	const iterations = 100
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				unlock := locks.lock(1)
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	if counter != workers*iterations {
		t.Fatalf("lost updates under contention: %d != %d", counter, workers*iterations)
	}
}

func TestConversationLocks_EntriesAreReleased(t *testing.T) {
	locks := newConversationLocks()

	unlock := locks.lock(7)
	unlock()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.entries) != 0 {
		t.Fatalf("expected empty lock table, got %d entries", len(locks.entries))
	}
}

func TestStaticCodeVerifier(t *testing.T) {
	v := NewStaticCodeVerifier("1234")

	cases := []struct {
		code string
		want bool
	}{
		{"1234", true},
		{" 1234 ", true},
		{"12345", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := v.Verify(context.Background(), 1, tc.code); got != tc.want {
			t.Fatalf("Verify(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}
