package contract

// AgentID identifies a registered agent.
type AgentID string

const (
	AgentProduct AgentID = "product"
	AgentSupport AgentID = "support"
	AgentOrder   AgentID = "order"
)

// SpeakerUser is the speaker tag for customer turns in the conversation
// log.
const SpeakerUser = "user"

// Disposition is the categorical confidence of an agent response.
type Disposition string

const (
	DispositionHandled       Disposition = "handled"
	DispositionDeferred      Disposition = "deferred"
	DispositionNeedsMoreInfo Disposition = "needs_more_info"
)

// AgentResponse is produced fresh per turn and consumed immediately by
// the orchestrator; agents never retain it.
type AgentResponse struct {
	Content       string      `json:"content"`
	Disposition   Disposition `json:"disposition"`
	SuggestedNext AgentID     `json:"suggested_next,omitempty"`
	Agent         AgentID     `json:"agent,omitempty"`
}

// Turn is one append-only entry in a conversation log. Seq is a
// monotonic per-conversation counter.
type Turn struct {
	Speaker string `json:"speaker"`
	Content string `json:"content"`
	Seq     int    `json:"seq"`
}

// DispatchReason records why the classifier picked an agent.
type DispatchReason string

const (
	ReasonExplicitIntent  DispatchReason = "explicit_intent"
	ReasonKeywordMatch    DispatchReason = "keyword_match"
	ReasonFallbackDefault DispatchReason = "fallback_default"
	ReasonAgentHandoff    DispatchReason = "agent_handoff"
)

// DispatchDecision is computed once per user turn and not persisted.
type DispatchDecision struct {
	Agent      AgentID
	Reason     DispatchReason
	Confidence float64
}

// ConversationContext is the read-only slice of conversation state handed
// to agents. Agents hold no back-reference to the orchestrator.
type ConversationContext struct {
	ConversationID string
	Turns          []Turn
}
