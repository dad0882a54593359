package nodex

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	contractx "github.com/ninthbase/shopmate/agent/contract"
)

const escalationMessage = "I'm sorry, I wasn't able to resolve that myself. I've raised support ticket %s and a teammate will follow up with you shortly."

// Dispatch invokes the selected agent and follows bounded hand-offs. A
// deferral with a usable suggestion re-dispatches (the partial response
// is discarded; responses are idempotent to recompute) until the
// hand-off limit is hit, after which the turn escalates instead of
// ping-ponging further. Agent errors and panics never escape: they are
// logged as agent failures and treated as implicit deferrals.
func Dispatch(ctx context.Context, in *TurnState, agents map[contractx.AgentID]contractx.Agent, handoffLimit int) (*TurnState, error) {
	if in == nil || in.Conv == nil {
		return nil, contractx.ErrConversationNotFound
	}
	if handoffLimit < 0 {
		handoffLimit = 0
	}

	convCtx := in.Conv.Context()
	decision := in.Decision

	for {
		agent, ok := agents[decision.Agent]
		if !ok {
			return nil, fmt.Errorf("%w: %s", contractx.ErrUnknownAgent, decision.Agent)
		}

		log.Info().
			Str("conversation_id", in.Conv.ID()).
			Str("phase", string(PhaseDispatched)).
			Str("agent", string(decision.Agent)).
			Str("reason", string(decision.Reason)).
			Msg("agent dispatched")

		resp, err := SafeRespond(ctx, agent, in.Text, convCtx)
		if err != nil {
			log.Error().
				Err(err).
				Str("conversation_id", in.Conv.ID()).
				Str("agent", string(agent.ID())).
				Msg("agent failure")
			resp = contractx.AgentResponse{
				Disposition: contractx.DispositionDeferred,
				Agent:       agent.ID(),
			}
		}
		if resp.Agent == "" {
			resp.Agent = agent.ID()
		}

		switch resp.Disposition {
		case contractx.DispositionHandled, contractx.DispositionNeedsMoreInfo:
			in.Response = resp
			return in, nil
		case contractx.DispositionDeferred:
			next := resp.SuggestedNext
			_, nextKnown := agents[next]
			if next != "" && nextKnown && next != agent.ID() && in.Conv.Handoffs() < handoffLimit {
				in.Conv.IncHandoffs()
				log.Info().
					Str("conversation_id", in.Conv.ID()).
					Str("phase", string(PhaseHandoff)).
					Str("from", string(agent.ID())).
					Str("to", string(next)).
					Int("handoffs", in.Conv.Handoffs()).
					Msg("hand-off")
				decision = contractx.DispatchDecision{
					Agent:      next,
					Reason:     contractx.ReasonAgentHandoff,
					Confidence: decision.Confidence,
				}
				continue
			}

			// Bounded-retry policy: an exhausted or unusable deferral is
			// integrated into the transcript like a handled reply and the
			// turn ends here. The disposition stays deferred so callers
			// can see the turn was not resolved. The agent's own
			// clarifying prompt beats a canned escalation when it offered
			// one. See DESIGN.md, "Decisions on open questions".
			if resp.Content == "" {
				resp.Content = fmt.Sprintf(escalationMessage, newTicketID())
			}
			in.Response = resp
			return in, nil
		default:
			return nil, fmt.Errorf("agent %s returned unknown disposition %q", agent.ID(), resp.Disposition)
		}
	}
}

// SafeRespond calls an agent's Respond with panic recovery, so one
// misbehaving agent can never take the conversation loop down.
func SafeRespond(ctx context.Context, agent contractx.Agent, utterance string, conv contractx.ConversationContext) (resp contractx.AgentResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("agent %s panicked: %v", agent.ID(), r)
		}
	}()
	return agent.Respond(ctx, utterance, conv)
}

func newTicketID() string {
	return fmt.Sprintf("TKT-%06d", rand.Intn(900000)+100000)
}
