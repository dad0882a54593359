package session

import (
	"sync"

	contractx "github.com/ninthbase/shopmate/agent/contract"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
)

// Conversation owns the append-only turn log for one customer session.
// The orchestrator is its sole mutator; agents only ever see copies.
type Conversation struct {
	id string

	turnMu sync.Mutex // serializes whole turns within one conversation

	mu       sync.Mutex
	turns    []contractx.Turn
	seq      int
	status   Status
	handoffs int
}

func newConversation(id string) *Conversation {
	return &Conversation{id: id, status: StatusActive}
}

func (c *Conversation) ID() string { return c.id }

func (c *Conversation) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Conversation) Terminate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusTerminated
}

// AppendTurn appends a turn and returns it with its sequence number
// assigned. Turns are never mutated after append.
func (c *Conversation) AppendTurn(speaker, content string) contractx.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	turn := contractx.Turn{Speaker: speaker, Content: content, Seq: c.seq}
	c.seq++
	c.turns = append(c.turns, turn)
	return turn
}

// Turns returns a copy of the conversation log.
func (c *Conversation) Turns() []contractx.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]contractx.Turn(nil), c.turns...)
}

// Context builds the read-only view handed to agents.
func (c *Conversation) Context() contractx.ConversationContext {
	return contractx.ConversationContext{
		ConversationID: c.id,
		Turns:          c.Turns(),
	}
}

// Handoffs returns the hand-off count for the user turn in progress.
func (c *Conversation) Handoffs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handoffs
}

func (c *Conversation) IncHandoffs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handoffs++
	return c.handoffs
}

func (c *Conversation) ResetHandoffs() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handoffs = 0
}

// BeginTurn blocks until any in-flight turn on this conversation has
// finished. Turns within a conversation are strictly sequential.
func (c *Conversation) BeginTurn() { c.turnMu.Lock() }

func (c *Conversation) EndTurn() { c.turnMu.Unlock() }
