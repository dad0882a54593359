package contract

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConversationEnded    = errors.New("conversation has ended")
	ErrEmptyUtterance       = errors.New("utterance is empty")
	ErrUnknownAgent         = errors.New("unknown agent")
)
