package agent

import (
	"context"

	"github.com/ElioenaiFerrari/grace-backend/internal/domain"
)

// Message is one role-tagged entry of the agent's context window.
type Message struct {
	Role    domain.Role
	Content string
}

// Agent is the stateless chat collaborator: ordered turns in, one reply out.
type Agent interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
