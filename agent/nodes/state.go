// Package nodex holds the per-turn pipeline steps the orchestrator graph
// is composed of. Each node advances one conversation turn through the
// dispatch state machine.
package nodex

import (
	contractx "github.com/ninthbase/shopmate/agent/contract"
	"github.com/ninthbase/shopmate/agent/session"
)

// Phase names the orchestrator state machine positions, used for
// transition logging.
type Phase string

const (
	PhaseAwaitingInput Phase = "awaiting_input"
	PhaseClassifying   Phase = "classifying"
	PhaseDispatched    Phase = "dispatched"
	PhaseHandoff       Phase = "handoff"
	PhaseIntegrating   Phase = "integrating"
	PhaseTerminated    Phase = "terminated"
)

// TurnInput enters the graph once per user utterance.
type TurnInput struct {
	Conv *session.Conversation
	Text string
}

// TurnOutput leaves the graph with the integrated reply.
type TurnOutput struct {
	Response contractx.AgentResponse
}

// TurnState threads one turn through the pipeline.
type TurnState struct {
	Conv *session.Conversation
	Text string

	Decision contractx.DispatchDecision
	Response contractx.AgentResponse
}
