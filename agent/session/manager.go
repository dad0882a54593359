// Package session tracks active conversations. State is in-memory only:
// abandoning a conversation requires no cleanup beyond dropping it here.
package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	contractx "github.com/ninthbase/shopmate/agent/contract"
)

// Manager is the conversation registry. Distinct conversations are fully
// independent and may run concurrently.
type Manager struct {
	mu    sync.RWMutex
	convs map[string]*Conversation
}

func NewManager() *Manager {
	return &Manager{convs: make(map[string]*Conversation)}
}

// Start creates a new active conversation and returns it.
func (m *Manager) Start() *Conversation {
	conv := newConversation(uuid.NewString())
	m.mu.Lock()
	m.convs[conv.ID()] = conv
	m.mu.Unlock()
	return conv
}

// Get returns the conversation with the given id, or
// contract.ErrConversationNotFound.
func (m *Manager) Get(id string) (*Conversation, error) {
	id = strings.TrimSpace(id)
	m.mu.RLock()
	conv, ok := m.convs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", contractx.ErrConversationNotFound, id)
	}
	return conv, nil
}

// End terminates the conversation. Terminated is absorbing: the entry
// stays registered so later submits fail with ErrConversationEnded
// rather than looking like an unknown id.
func (m *Manager) End(id string) error {
	conv, err := m.Get(id)
	if err != nil {
		return err
	}
	conv.Terminate()
	return nil
}

// Len reports the number of registered conversations.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.convs)
}
