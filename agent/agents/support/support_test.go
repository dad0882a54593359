package support

import (
	"context"
	"strings"
	"testing"

	contractx "github.com/ninthbase/shopmate/agent/contract"
)

func TestCanHandleFAQQuestion(t *testing.T) {
	t.Parallel()

	a := New()
	got := a.CanHandle(context.Background(), "What's your return policy?", contractx.ConversationContext{})
	if got != 0.85 {
		t.Fatalf("CanHandle() = %v, want 0.85 for a full keyword match", got)
	}
}

func TestCanHandleOffTopic(t *testing.T) {
	t.Parallel()

	a := New()
	got := a.CanHandle(context.Background(), "xylophone quantum dynamics", contractx.ConversationContext{})
	if got != 0 {
		t.Fatalf("CanHandle() = %v, want 0", got)
	}
}

func TestRespondAnswersFAQ(t *testing.T) {
	t.Parallel()

	a := New()
	resp, err := a.Respond(context.Background(), "What's your return policy?", contractx.ConversationContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resp.Disposition != contractx.DispositionHandled {
		t.Fatalf("unexpected disposition %q", resp.Disposition)
	}
	if !strings.Contains(strings.ToLower(resp.Content), "return") {
		t.Fatalf("answer should mention returns:\n%s", resp.Content)
	}
	if resp.Agent != contractx.AgentSupport {
		t.Fatalf("unexpected agent %q", resp.Agent)
	}
}

func TestRespondDefersWithOrderHint(t *testing.T) {
	t.Parallel()

	a := New()
	resp, err := a.Respond(context.Background(), "track shipment zebra", contractx.ConversationContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resp.Disposition != contractx.DispositionDeferred {
		t.Fatalf("unexpected disposition %q", resp.Disposition)
	}
	if resp.SuggestedNext != contractx.AgentOrder {
		t.Fatalf("SuggestedNext = %q, want order", resp.SuggestedNext)
	}
}

func TestRespondDefersWithProductHint(t *testing.T) {
	t.Parallel()

	a := New()
	resp, err := a.Respond(context.Background(), "recommend something zebra giraffe", contractx.ConversationContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resp.Disposition != contractx.DispositionDeferred {
		t.Fatalf("unexpected disposition %q", resp.Disposition)
	}
	if resp.SuggestedNext != contractx.AgentProduct {
		t.Fatalf("SuggestedNext = %q, want product", resp.SuggestedNext)
	}
}

func TestRespondDefersWithoutHint(t *testing.T) {
	t.Parallel()

	a := New()
	resp, err := a.Respond(context.Background(), "xylophone quantum dynamics", contractx.ConversationContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resp.Disposition != contractx.DispositionDeferred {
		t.Fatalf("unexpected disposition %q", resp.Disposition)
	}
	if resp.SuggestedNext != "" {
		t.Fatalf("SuggestedNext = %q, want empty", resp.SuggestedNext)
	}
}

func TestWithOverlapThreshold(t *testing.T) {
	t.Parallel()

	strict := New(WithOverlapThreshold(0.99))
	resp, err := strict.Respond(context.Background(), "What payment methods do you accept for gifts?", contractx.ConversationContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resp.Disposition != contractx.DispositionDeferred {
		t.Fatalf("expected strict threshold to defer, got %q", resp.Disposition)
	}
}
