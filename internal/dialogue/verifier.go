package dialogue

import (
	"context"
	"crypto/subtle"
	"strings"
)

// CodeVerifier decides whether a submitted verification code is accepted for a
// conversation. Injected so the static placeholder can be swapped for a real
// one-time-code service without touching the state machine.
type CodeVerifier interface {
	Verify(ctx context.Context, conversationID int64, code string) bool
}

type staticCodeVerifier struct {
	code string
}

// NewStaticCodeVerifier accepts a single fixed code for all conversations.
func NewStaticCodeVerifier(code string) CodeVerifier {
	return &staticCodeVerifier{code: code}
}

func (v *staticCodeVerifier) Verify(_ context.Context, _ int64, code string) bool {
	submitted := strings.TrimSpace(code)
	if submitted == "" || v.code == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(v.code)) == 1
}
