// Package orchestrator coordinates the specialist agents behind a single
// conversational API: start, submit, end, and direct agent queries.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/ninthbase/shopmate/agent/contract"
	nodex "github.com/ninthbase/shopmate/agent/nodes"
	"github.com/ninthbase/shopmate/agent/session"
)

var (
	ErrConversationNotFound = contractx.ErrConversationNotFound
	ErrConversationEnded    = contractx.ErrConversationEnded
	ErrEmptyUtterance       = contractx.ErrEmptyUtterance
	ErrUnknownAgent         = contractx.ErrUnknownAgent
)

// Config tunes dispatch. Zero values fall back to defaults.
type Config struct {
	// HandoffLimit bounds agent-to-agent hand-offs within one user turn.
	HandoffLimit int `envconfig:"HANDOFF_LIMIT" default:"2"`

	// ConfidenceFloor routes low-confidence turns to the default agent.
	ConfidenceFloor float64 `envconfig:"CONFIDENCE_FLOOR" default:"0.2"`

	// ExplicitIntentThreshold separates explicit intents from keyword
	// matches when logging dispatch decisions.
	ExplicitIntentThreshold float64 `envconfig:"EXPLICIT_INTENT_THRESHOLD" default:"0.9"`
}

func (c Config) withDefaults() Config {
	if c.HandoffLimit <= 0 {
		c.HandoffLimit = 2
	}
	if c.ConfidenceFloor <= 0 {
		c.ConfidenceFloor = 0.2
	}
	if c.ExplicitIntentThreshold <= 0 {
		c.ExplicitIntentThreshold = 0.9
	}
	return c
}

// Service owns the conversation registry and the compiled turn graph.
type Service struct {
	agents    map[contractx.AgentID]contractx.Agent
	priority  []contractx.AgentID
	defaultID contractx.AgentID
	rephraser contractx.Rephraser
	sessions  *session.Manager
	cfg       Config

	turnRunner compose.Runnable[nodex.TurnInput, *nodex.TurnOutput]
}

// New wires the registered agents into a compiled turn graph. The agent
// slice order is the dispatch priority, most specific first; the default
// agent must be among them.
func New(agents []contractx.Agent, defaultAgent contractx.AgentID, rephraser contractx.Rephraser, cfg Config) (*Service, error) {
	if len(agents) == 0 {
		return nil, errors.New("at least one agent is required")
	}

	byID := make(map[contractx.AgentID]contractx.Agent, len(agents))
	priority := make([]contractx.AgentID, 0, len(agents))
	for _, a := range agents {
		if a == nil {
			return nil, errors.New("nil agent registered")
		}
		if _, dup := byID[a.ID()]; dup {
			return nil, fmt.Errorf("duplicate agent id %q", a.ID())
		}
		byID[a.ID()] = a
		priority = append(priority, a.ID())
	}
	if _, ok := byID[defaultAgent]; !ok {
		return nil, fmt.Errorf("default agent %q is not registered", defaultAgent)
	}

	s := &Service{
		agents:    byID,
		priority:  priority,
		defaultID: defaultAgent,
		rephraser: rephraser,
		sessions:  session.NewManager(),
		cfg:       cfg.withDefaults(),
	}

	runner, err := s.compileTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.turnRunner = runner

	return s, nil
}

func (s *Service) classifyConfig() nodex.ClassifyConfig {
	return nodex.ClassifyConfig{
		Priority:                s.priority,
		ConfidenceFloor:         s.cfg.ConfidenceFloor,
		ExplicitIntentThreshold: s.cfg.ExplicitIntentThreshold,
		DefaultAgent:            s.defaultID,
	}
}

// StartConversation registers a new conversation and returns its id.
func (s *Service) StartConversation(ctx context.Context) (string, error) {
	conv := s.sessions.Start()
	log.Info().
		Str("conversation_id", conv.ID()).
		Msg("conversation started")
	return conv.ID(), nil
}

// SubmitUtterance runs one full turn and returns the agent reply. Turns
// within a conversation are strictly sequential; concurrent submits on
// the same conversation queue up.
func (s *Service) SubmitUtterance(ctx context.Context, conversationID, text string) (contractx.AgentResponse, error) {
	conv, err := s.sessions.Get(conversationID)
	if err != nil {
		return contractx.AgentResponse{}, err
	}

	conv.BeginTurn()
	defer conv.EndTurn()

	out, err := s.turnRunner.Invoke(ctx, nodex.TurnInput{Conv: conv, Text: text})
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	return out.Response, nil
}

// EndConversation terminates a conversation. Terminated conversations
// stay registered so later submits report ended rather than unknown.
func (s *Service) EndConversation(ctx context.Context, conversationID string) error {
	if err := s.sessions.End(conversationID); err != nil {
		return err
	}
	log.Info().
		Str("conversation_id", conversationID).
		Str("phase", string(nodex.PhaseTerminated)).
		Msg("conversation ended")
	return nil
}

// Transcript returns the turn log for a conversation.
func (s *Service) Transcript(ctx context.Context, conversationID string) ([]contractx.Turn, error) {
	conv, err := s.sessions.Get(conversationID)
	if err != nil {
		return nil, err
	}
	return conv.Turns(), nil
}

// QueryAgent asks one agent directly, outside any conversation. No
// classification, no hand-offs, no transcript. Agent failures surface as
// a graceful deferral, never as an error.
func (s *Service) QueryAgent(ctx context.Context, agentID contractx.AgentID, text string) (contractx.AgentResponse, error) {
	agent, ok := s.agents[agentID]
	if !ok {
		return contractx.AgentResponse{}, fmt.Errorf("%w: %s", ErrUnknownAgent, agentID)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return contractx.AgentResponse{}, ErrEmptyUtterance
	}

	resp, err := nodex.SafeRespond(ctx, agent, text, contractx.ConversationContext{})
	if err != nil {
		log.Error().
			Err(err).
			Str("agent", string(agentID)).
			Msg("direct query failed")
		return contractx.AgentResponse{
			Content:     "I couldn't process that request right now. Please try again.",
			Disposition: contractx.DispositionDeferred,
			Agent:       agentID,
		}, nil
	}
	if resp.Agent == "" {
		resp.Agent = agentID
	}
	return resp, nil
}
