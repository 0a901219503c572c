package dialogue

import (
	"github.com/ElioenaiFerrari/grace-backend/internal/domain"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/agent"
)

// BuildContext turns a most-recent-first message log window into the
// chronological role-tagged sequence fed to the chat agent. Persisted system
// turns are excluded; that role is reserved for the injected instruction.
// Pure: no side effects, same input yields same output.
func BuildContext(recent []*domain.Turn) []agent.Message {
	out := make([]agent.Message, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		t := recent[i]
		if t == nil {
			continue
		}
		switch t.Role {
		case domain.RoleUser, domain.RoleAssistant:
			out = append(out, agent.Message{Role: t.Role, Content: t.Content})
		}
	}
	return out
}
