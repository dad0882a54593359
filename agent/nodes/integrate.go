package nodex

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/ninthbase/shopmate/agent/contract"
)

// Integrate records the agent's reply on the conversation log and
// resets the per-turn hand-off budget. When a rephraser is configured,
// handled replies pass through it first; a rephrase failure keeps the
// structured reply rather than failing the turn.
func Integrate(ctx context.Context, in *TurnState, rephraser contractx.Rephraser) (*TurnState, error) {
	if in == nil || in.Conv == nil {
		return nil, contractx.ErrConversationNotFound
	}

	log.Debug().
		Str("conversation_id", in.Conv.ID()).
		Str("phase", string(PhaseIntegrating)).
		Str("agent", string(in.Response.Agent)).
		Str("disposition", string(in.Response.Disposition)).
		Msg("integrating agent response")

	if rephraser != nil && in.Response.Disposition == contractx.DispositionHandled {
		polished, err := rephraser.Rephrase(ctx, in.Response.Content)
		if err != nil {
			log.Warn().
				Err(err).
				Str("conversation_id", in.Conv.ID()).
				Msg("rephrase failed, keeping structured reply")
		} else if polished != "" {
			in.Response.Content = polished
		}
	}

	in.Conv.AppendTurn(string(in.Response.Agent), in.Response.Content)
	in.Conv.ResetHandoffs()
	return in, nil
}
