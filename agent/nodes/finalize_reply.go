package nodex

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/ninthbase/shopmate/agent/contract"
)

const emptyReplyFallback = "I'm not sure how to respond to that. Could you rephrase your question?"

// FinalizeReply produces the turn output. Every turn ends with a
// non-empty reply for the customer, whatever happened upstream.
func FinalizeReply(ctx context.Context, in *TurnState) (*TurnOutput, error) {
	if in == nil || in.Conv == nil {
		return nil, contractx.ErrConversationNotFound
	}
	if in.Response.Agent == "" {
		return nil, fmt.Errorf("finalize: response has no agent attribution")
	}
	if in.Response.Content == "" {
		in.Response.Content = emptyReplyFallback
	}

	log.Debug().
		Str("conversation_id", in.Conv.ID()).
		Str("phase", string(PhaseAwaitingInput)).
		Msg("turn complete")

	return &TurnOutput{Response: in.Response}, nil
}
