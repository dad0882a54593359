package nodex

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/ninthbase/shopmate/agent/contract"
	"github.com/ninthbase/shopmate/agent/session"
)

// ValidateInput gates the turn: the conversation must exist and still be
// active, and the utterance must be non-empty. Caller-input errors are
// the only errors that escape the orchestrator boundary.
func ValidateInput(in TurnInput) (*TurnState, error) {
	if in.Conv == nil {
		return nil, contractx.ErrConversationNotFound
	}
	if in.Conv.Status() == session.StatusTerminated {
		return nil, fmt.Errorf("%w: %s", contractx.ErrConversationEnded, in.Conv.ID())
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, contractx.ErrEmptyUtterance
	}

	log.Debug().
		Str("conversation_id", in.Conv.ID()).
		Str("phase", string(PhaseAwaitingInput)).
		Msg("turn accepted")

	return &TurnState{Conv: in.Conv, Text: text}, nil
}

// AppendUserTurn records the utterance in the conversation log before
// classification.
func AppendUserTurn(in *TurnState) (*TurnState, error) {
	if in == nil || in.Conv == nil {
		return nil, contractx.ErrConversationNotFound
	}
	in.Conv.AppendTurn(contractx.SpeakerUser, in.Text)
	return in, nil
}
