package nodex

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	contractx "github.com/ninthbase/shopmate/agent/contract"
)

// ClassifyConfig tunes agent selection.
type ClassifyConfig struct {
	// Priority is the tie-break order, most specific first.
	Priority []contractx.AgentID

	// ConfidenceFloor is the minimum winning confidence; below it the
	// default agent takes the turn.
	ConfidenceFloor float64

	// ExplicitIntentThreshold separates explicit-intent picks (an
	// identifier or unambiguous phrasing) from plain keyword matches.
	ExplicitIntentThreshold float64

	// DefaultAgent receives turns nobody is confident about.
	DefaultAgent contractx.AgentID
}

// Classify polls every registered agent's CanHandle and selects the next
// speaker. Ties are broken by the fixed priority order; confidences below
// the floor route to the default agent.
func Classify(ctx context.Context, in *TurnState, agents map[contractx.AgentID]contractx.Agent, cfg ClassifyConfig) (*TurnState, error) {
	if in == nil || in.Conv == nil {
		return nil, contractx.ErrConversationNotFound
	}
	if len(agents) == 0 {
		return nil, errors.New("no agents registered")
	}

	convCtx := in.Conv.Context()

	var (
		bestID   contractx.AgentID
		bestConf = -1.0
	)
	for _, id := range cfg.Priority {
		agent, ok := agents[id]
		if !ok {
			continue
		}
		conf := clamp01(agent.CanHandle(ctx, in.Text, convCtx))
		log.Debug().
			Str("conversation_id", in.Conv.ID()).
			Str("agent", string(id)).
			Float64("confidence", conf).
			Msg("can_handle polled")
		if conf > bestConf {
			bestID = id
			bestConf = conf
		}
	}

	decision := contractx.DispatchDecision{Agent: bestID, Confidence: bestConf}
	switch {
	case bestConf < cfg.ConfidenceFloor:
		decision.Agent = cfg.DefaultAgent
		decision.Reason = contractx.ReasonFallbackDefault
	case bestConf >= cfg.ExplicitIntentThreshold:
		decision.Reason = contractx.ReasonExplicitIntent
	default:
		decision.Reason = contractx.ReasonKeywordMatch
	}

	log.Info().
		Str("conversation_id", in.Conv.ID()).
		Str("phase", string(PhaseClassifying)).
		Str("agent", string(decision.Agent)).
		Str("reason", string(decision.Reason)).
		Float64("confidence", decision.Confidence).
		Msg("dispatch decision")

	in.Decision = decision
	return in, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
