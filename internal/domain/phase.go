package domain

// PhaseName identifies a position in the dialogue state machine.
type PhaseName string

const (
	PhaseAuthenticating   PhaseName = "authenticating"
	PhaseAwaitingCode     PhaseName = "awaiting_code"
	PhaseOnboarding       PhaseName = "onboarding"
	PhaseAwaitingLocation PhaseName = "awaiting_location"
	PhaseChatting         PhaseName = "chatting"
)

// Phase is the serialized tagged variant stored per conversation. The account
// is a snapshot carried to avoid repeated lookups within one handler turn; it
// may be stale and must be re-fetched before any persisted mutation is trusted.
type Phase struct {
	Name    PhaseName `json:"phase"`
	Account *Account  `json:"account,omitempty"`
}

func Authenticating() Phase { return Phase{Name: PhaseAuthenticating} }

func AwaitingCode(a *Account) Phase { return Phase{Name: PhaseAwaitingCode, Account: a} }

func AwaitingLocation(a *Account) Phase { return Phase{Name: PhaseAwaitingLocation, Account: a} }

func Chatting(a *Account) Phase { return Phase{Name: PhaseChatting, Account: a} }
