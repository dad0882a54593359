package session

import (
	"errors"
	"testing"

	contractx "github.com/ninthbase/shopmate/agent/contract"
)

func TestManagerStartAndGet(t *testing.T) {
	t.Parallel()

	m := NewManager()
	conv := m.Start()
	if conv.ID() == "" {
		t.Fatal("expected a conversation id")
	}

	got, err := m.Get(conv.ID())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != conv {
		t.Fatal("Get() returned a different conversation")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestManagerGetUnknown(t *testing.T) {
	t.Parallel()

	m := NewManager()
	_, err := m.Get("no-such-id")
	if !errors.Is(err, contractx.ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestManagerEndKeepsConversationRegistered(t *testing.T) {
	t.Parallel()

	m := NewManager()
	conv := m.Start()

	if err := m.End(conv.ID()); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if conv.Status() != StatusTerminated {
		t.Fatalf("status = %q, want terminated", conv.Status())
	}

	// The entry stays registered so a later submit can distinguish
	// "ended" from "never existed".
	got, err := m.Get(conv.ID())
	if err != nil {
		t.Fatalf("Get() after End() error = %v", err)
	}
	if got.Status() != StatusTerminated {
		t.Fatalf("status = %q, want terminated", got.Status())
	}

	// Ending again is a no-op, not an error.
	if err := m.End(conv.ID()); err != nil {
		t.Fatalf("second End() error = %v", err)
	}
}

func TestManagerEndUnknown(t *testing.T) {
	t.Parallel()

	m := NewManager()
	if err := m.End("no-such-id"); !errors.Is(err, contractx.ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestConversationTurnLog(t *testing.T) {
	t.Parallel()

	m := NewManager()
	conv := m.Start()

	conv.AppendTurn(contractx.SpeakerUser, "hello")
	conv.AppendTurn("support", "hi there")

	turns := conv.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Seq != 0 || turns[1].Seq != 1 {
		t.Fatalf("unexpected sequence numbers: %d, %d", turns[0].Seq, turns[1].Seq)
	}
	if turns[0].Speaker != contractx.SpeakerUser || turns[1].Speaker != "support" {
		t.Fatalf("unexpected speakers: %q, %q", turns[0].Speaker, turns[1].Speaker)
	}

	// Turns() hands out a copy.
	turns[0].Content = "mutated"
	if conv.Turns()[0].Content != "hello" {
		t.Fatal("Turns() should return a copy")
	}
}

func TestConversationHandoffCounter(t *testing.T) {
	t.Parallel()

	conv := NewManager().Start()
	if conv.Handoffs() != 0 {
		t.Fatalf("Handoffs() = %d, want 0", conv.Handoffs())
	}
	conv.IncHandoffs()
	conv.IncHandoffs()
	if conv.Handoffs() != 2 {
		t.Fatalf("Handoffs() = %d, want 2", conv.Handoffs())
	}
	conv.ResetHandoffs()
	if conv.Handoffs() != 0 {
		t.Fatalf("Handoffs() = %d after reset, want 0", conv.Handoffs())
	}
}
