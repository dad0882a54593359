package contract

import "context"

// Agent is the capability contract every responder variant implements.
// The orchestrator dispatches purely on this interface and the declared
// AgentID, never on the concrete type.
type Agent interface {
	ID() AgentID

	// CanHandle scores how confidently this agent could answer the
	// utterance, in [0,1]. It must be cheap and side-effect free.
	CanHandle(ctx context.Context, utterance string, conv ConversationContext) float64

	// Respond produces the agent's answer or a deferral with an optional
	// hand-off suggestion.
	Respond(ctx context.Context, utterance string, conv ConversationContext) (AgentResponse, error)
}

// Rephraser is the optional language-generation collaborator. The system
// functions with it absent; raw structured content is acceptable output.
type Rephraser interface {
	Rephrase(ctx context.Context, structured string) (string, error)
}
