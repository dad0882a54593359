package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	contractx "github.com/ninthbase/shopmate/agent/contract"
	"github.com/ninthbase/shopmate/orders"
)

type fakeStore struct {
	orders map[string]orders.Order
	byCust map[string][]orders.Order
	err    error
}

func (f *fakeStore) GetOrder(_ context.Context, orderID string) (orders.Order, error) {
	if f.err != nil {
		return orders.Order{}, f.err
	}
	o, ok := f.orders[orderID]
	if !ok {
		return orders.Order{}, orders.ErrNotFound
	}
	return o, nil
}

func (f *fakeStore) GetOrdersByCustomer(_ context.Context, customerID string) ([]orders.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCust[customerID], nil
}

func newTestAgent(store orders.Store) *Agent {
	return New(store, time.Second)
}

func TestCanHandleIdentifier(t *testing.T) {
	t.Parallel()

	a := newTestAgent(&fakeStore{})
	ctx := context.Background()

	if got := a.CanHandle(ctx, "where is ORD-10001", contractx.ConversationContext{}); got != 0.95 {
		t.Fatalf("CanHandle() = %v, want 0.95", got)
	}
	if got := a.CanHandle(ctx, "orders for CUST-001 please", contractx.ConversationContext{}); got != 0.95 {
		t.Fatalf("CanHandle() = %v, want 0.95", got)
	}
}

func TestCanHandleKeywords(t *testing.T) {
	t.Parallel()

	a := newTestAgent(&fakeStore{})
	ctx := context.Background()

	got := a.CanHandle(ctx, "track my package", contractx.ConversationContext{})
	if got <= 0 || got >= 0.95 {
		t.Fatalf("CanHandle() = %v, want keyword band", got)
	}

	if got := a.CanHandle(ctx, "recommend some headphones", contractx.ConversationContext{}); got != 0 {
		t.Fatalf("CanHandle() = %v, want 0 for off-topic text", got)
	}
}

func TestRespondOrderFound(t *testing.T) {
	t.Parallel()

	store := &fakeStore{orders: map[string]orders.Order{
		"ORD-10001": orders.Fixtures()[0],
	}}
	a := newTestAgent(store)

	resp, err := a.Respond(context.Background(), "what's the status of ORD-10001?", contractx.ConversationContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resp.Disposition != contractx.DispositionHandled {
		t.Fatalf("unexpected disposition %q", resp.Disposition)
	}
	for _, want := range []string{"Order ORD-10001", "Status: Shipped", "Shipped!", "TRK123456789"} {
		if !strings.Contains(resp.Content, want) {
			t.Fatalf("response missing %q:\n%s", want, resp.Content)
		}
	}
}

func TestRespondOrderNotFound(t *testing.T) {
	t.Parallel()

	a := newTestAgent(&fakeStore{})
	resp, err := a.Respond(context.Background(), "where is ORD-99999", contractx.ConversationContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resp.Disposition != contractx.DispositionDeferred {
		t.Fatalf("unexpected disposition %q", resp.Disposition)
	}
	if !strings.Contains(resp.Content, "ORD-99999") {
		t.Fatalf("response should name the missing order:\n%s", resp.Content)
	}
}

func TestRespondCustomerOrders(t *testing.T) {
	t.Parallel()

	fixtures := orders.Fixtures()
	store := &fakeStore{byCust: map[string][]orders.Order{
		"CUST-001": {fixtures[0], fixtures[3]},
	}}
	a := newTestAgent(store)

	resp, err := a.Respond(context.Background(), "show orders for CUST-001", contractx.ConversationContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resp.Disposition != contractx.DispositionHandled {
		t.Fatalf("unexpected disposition %q", resp.Disposition)
	}
	if !strings.Contains(resp.Content, "ORD-10001") || !strings.Contains(resp.Content, "ORD-10004") {
		t.Fatalf("response missing orders:\n%s", resp.Content)
	}
}

func TestRespondNoIdentifier(t *testing.T) {
	t.Parallel()

	a := newTestAgent(&fakeStore{})
	resp, err := a.Respond(context.Background(), "where is my stuff", contractx.ConversationContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resp.Disposition != contractx.DispositionDeferred {
		t.Fatalf("unexpected disposition %q", resp.Disposition)
	}
	if !strings.Contains(resp.Content, "ORD-12345") {
		t.Fatalf("expected clarifying prompt, got:\n%s", resp.Content)
	}
}

func TestRespondStoreFailure(t *testing.T) {
	t.Parallel()

	a := newTestAgent(&fakeStore{err: errors.New("connection refused")})
	_, err := a.Respond(context.Background(), "status of ORD-10001", contractx.ConversationContext{})
	if err == nil {
		t.Fatal("expected store error to surface")
	}
}
