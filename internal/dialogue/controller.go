package dialogue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ElioenaiFerrari/grace-backend/internal/data/repos"
	"github.com/ElioenaiFerrari/grace-backend/internal/domain"
	"github.com/ElioenaiFerrari/grace-backend/internal/pkg/dbctx"
	pkgerrors "github.com/ElioenaiFerrari/grace-backend/internal/pkg/errors"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/agent"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/logger"
)

// PhaseStore persists the current dialogue phase per conversation.
type PhaseStore interface {
	Get(ctx context.Context, conversationID int64) (domain.Phase, error)
	Set(ctx context.Context, conversationID int64, p domain.Phase) error
}

type Config struct {
	// ContextWindow is the number of recent turns fed to the agent.
	ContextWindow int
	// AgentTimeout bounds each agent call; a timeout counts as a failure.
	AgentTimeout time.Duration
}

// Controller is the per-conversation state machine. Handle runs at most once
// concurrently per conversation id; different conversations proceed in
// parallel.
type Controller struct {
	log      *logger.Logger
	accounts repos.AccountRepo
	turns    repos.TurnRepo
	phases   PhaseStore
	agent    agent.Agent
	verifier CodeVerifier
	locks    *conversationLocks
	cfg      Config
}

func NewController(
	log *logger.Logger,
	accounts repos.AccountRepo,
	turns repos.TurnRepo,
	phases PhaseStore,
	chatAgent agent.Agent,
	verifier CodeVerifier,
	cfg Config,
) *Controller {
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = 10
	}
	if cfg.AgentTimeout <= 0 {
		cfg.AgentTimeout = 30 * time.Second
	}
	return &Controller{
		log:      log.With("service", "DialogueController"),
		accounts: accounts,
		turns:    turns,
		phases:   phases,
		agent:    chatAgent,
		verifier: verifier,
		locks:    newConversationLocks(),
		cfg:      cfg,
	}
}

// Handle advances one conversation by one inbound event and returns the
// outbound messages in emission order. On a store failure the event is
// unprocessed and the stored phase is unchanged.
func (c *Controller) Handle(ctx context.Context, ev Event) ([]Reply, error) {
	if ev.ConversationID == 0 {
		return nil, fmt.Errorf("missing conversation_id: %w", pkgerrors.ErrInvalidArgument)
	}

	unlock := c.locks.lock(ev.ConversationID)
	defer unlock()

	phase, err := c.phases.Get(ctx, ev.ConversationID)
	if err != nil {
		return nil, err
	}

	var next domain.Phase
	var replies []Reply
	switch phase.Name {
	case domain.PhaseAuthenticating:
		next, replies, err = c.authenticate(ctx, ev)
	case domain.PhaseAwaitingCode:
		next, replies, err = c.awaitCode(ctx, ev)
	case domain.PhaseOnboarding, domain.PhaseAwaitingLocation:
		next, replies, err = c.awaitLocation(ctx, ev)
	case domain.PhaseChatting:
		next, replies, err = c.chatTurn(ctx, ev)
	default:
		c.log.Warn("unknown phase, re-authenticating", "conversation_id", ev.ConversationID, "phase", phase.Name)
		next, replies, err = c.authenticate(ctx, ev)
	}
	if err != nil {
		return nil, err
	}

	if err := c.phases.Set(ctx, ev.ConversationID, next); err != nil {
		return nil, err
	}
	return replies, nil
}

// authenticate resolves an inbound event for a conversation with no known
// phase. A fully set up account short-circuits straight to chatting; creation
// only runs when no account exists.
func (c *Controller) authenticate(ctx context.Context, ev Event) (domain.Phase, []Reply, error) {
	dbc := dbctx.Context{Ctx: ctx}

	acct, err := c.accounts.GetByConversationID(dbc, ev.ConversationID)
	if err != nil {
		return domain.Phase{}, nil, err
	}

	if acct != nil {
		switch {
		case acct.Verified && acct.DidOnboarding:
			return domain.Chatting(acct), nil, nil
		case acct.Verified:
			return domain.AwaitingLocation(acct), nil, nil
		default:
			return domain.AwaitingCode(acct), nil, nil
		}
	}

	acct = domain.NewAccount(ev.ConversationID, ev.FirstName, ev.LastName)
	if err := c.accounts.Create(dbc, acct); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateConversation) {
			// Should be impossible under per-conversation serialization.
			c.log.Error("duplicate account creation detected", "conversation_id", ev.ConversationID, "error", err)
		}
		return domain.Phase{}, nil, err
	}

	return domain.AwaitingCode(acct), []Reply{{ConversationID: ev.ConversationID, Text: promptAskCode}}, nil
}

func (c *Controller) awaitCode(ctx context.Context, ev Event) (domain.Phase, []Reply, error) {
	acct, err := c.freshAccount(ctx, ev.ConversationID)
	if err != nil {
		return domain.Phase{}, nil, err
	}
	if acct == nil {
		return c.authenticate(ctx, ev)
	}

	if ev.Kind != KindText {
		return domain.AwaitingCode(acct), []Reply{{ConversationID: ev.ConversationID, Text: promptNeedCodeText}}, nil
	}

	if !c.verifier.Verify(ctx, ev.ConversationID, ev.Text) {
		return domain.AwaitingCode(acct), []Reply{{ConversationID: ev.ConversationID, Text: promptIncorrectCode}}, nil
	}

	acct.Verified = true
	if err := c.accounts.Update(dbctx.Context{Ctx: ctx}, acct); err != nil {
		return domain.Phase{}, nil, err
	}

	return domain.AwaitingLocation(acct), []Reply{{ConversationID: ev.ConversationID, Text: promptAskLocation}}, nil
}

func (c *Controller) awaitLocation(ctx context.Context, ev Event) (domain.Phase, []Reply, error) {
	acct, err := c.freshAccount(ctx, ev.ConversationID)
	if err != nil {
		return domain.Phase{}, nil, err
	}
	if acct == nil {
		return c.authenticate(ctx, ev)
	}

	if ev.Kind != KindLocation || ev.Location == nil {
		return domain.AwaitingLocation(acct), []Reply{{ConversationID: ev.ConversationID, Text: promptNeedLocation}}, nil
	}

	acct.DidOnboarding = true
	if raw, err := json.Marshal(ev.Location); err == nil {
		acct.LastLocation = raw
	}
	if err := c.accounts.Update(dbctx.Context{Ctx: ctx}, acct); err != nil {
		return domain.Phase{}, nil, err
	}

	return domain.Chatting(acct), nil, nil
}

// chatTurn is the steady state: log the user turn, build the bounded context
// window, ask the agent, and log its reply. Agent failures degrade to a fixed
// fallback without persisting an assistant turn.
func (c *Controller) chatTurn(ctx context.Context, ev Event) (domain.Phase, []Reply, error) {
	acct, err := c.freshAccount(ctx, ev.ConversationID)
	if err != nil {
		return domain.Phase{}, nil, err
	}
	if acct == nil {
		return c.authenticate(ctx, ev)
	}

	if ev.Kind != KindText {
		return domain.Chatting(acct), []Reply{{ConversationID: ev.ConversationID, Text: promptNeedText}}, nil
	}

	dbc := dbctx.Context{Ctx: ctx}
	userTurn := domain.NewTurn(ev.ConversationID, domain.RoleUser, ev.Text)
	if err := c.turns.Create(dbc, []*domain.Turn{userTurn}); err != nil {
		return domain.Phase{}, nil, err
	}

	recent, err := c.turns.ListRecent(dbc, ev.ConversationID, c.cfg.ContextWindow)
	if err != nil {
		return domain.Phase{}, nil, err
	}

	agentCtx, cancel := context.WithTimeout(ctx, c.cfg.AgentTimeout)
	defer cancel()
	answer, err := c.agent.Complete(agentCtx, BuildContext(recent))
	if err != nil {
		c.log.Warn("agent call failed, sending fallback", "conversation_id", ev.ConversationID, "error", err)
		return domain.Chatting(acct), []Reply{{ConversationID: ev.ConversationID, Text: promptAgentDown}}, nil
	}

	assistantTurn := domain.NewTurn(ev.ConversationID, domain.RoleAssistant, answer)
	if err := c.turns.Create(dbc, []*domain.Turn{assistantTurn}); err != nil {
		return domain.Phase{}, nil, err
	}

	return domain.Chatting(acct), []Reply{{ConversationID: ev.ConversationID, Text: answer}}, nil
}

// freshAccount re-reads the account so handlers act on current truth instead
// of the snapshot carried in the stored phase.
func (c *Controller) freshAccount(ctx context.Context, conversationID int64) (*domain.Account, error) {
	return c.accounts.GetByConversationID(dbctx.Context{Ctx: ctx}, conversationID)
}
