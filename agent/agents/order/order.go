// Package order implements the order-lookup agent. It extracts order and
// customer identifiers from the utterance and reads records from the
// order store.
package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/ninthbase/shopmate/agent/contract"
	"github.com/ninthbase/shopmate/orders"
	"github.com/ninthbase/shopmate/textnorm"
)

var (
	orderIDPattern    = regexp.MustCompile(`\bORD-\d+\b`)
	customerIDPattern = regexp.MustCompile(`\bCUST-\d+\b`)
)

var intentKeywords = textnorm.TokenSet(
	"order orders status track tracking shipment shipped delivery delivered package cancel refund arrive arrived",
)

const (
	identifierConfidence = 0.95
	clarifyPrompt        = "I can look that up, but I need an order number (like ORD-12345) or customer id (like CUST-678). Could you share one?"
)

// Agent answers order-status questions via the read-only order store.
type Agent struct {
	store   orders.Store
	timeout time.Duration
}

func New(store orders.Store, timeout time.Duration) *Agent {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Agent{store: store, timeout: timeout}
}

func (a *Agent) ID() contractx.AgentID {
	return contractx.AgentOrder
}

func (a *Agent) CanHandle(_ context.Context, utterance string, _ contractx.ConversationContext) float64 {
	if orderIDPattern.MatchString(utterance) || customerIDPattern.MatchString(utterance) {
		return identifierConfidence
	}
	return 0.8 * textnorm.Overlap(textnorm.TokenSet(utterance), intentKeywords)
}

func (a *Agent) Respond(ctx context.Context, utterance string, _ contractx.ConversationContext) (contractx.AgentResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if orderID := orderIDPattern.FindString(utterance); orderID != "" {
		return a.respondOrder(ctx, orderID)
	}
	if customerID := customerIDPattern.FindString(utterance); customerID != "" {
		return a.respondCustomer(ctx, customerID)
	}

	return contractx.AgentResponse{
		Content:     clarifyPrompt,
		Disposition: contractx.DispositionDeferred,
		Agent:       a.ID(),
	}, nil
}

func (a *Agent) respondOrder(ctx context.Context, orderID string) (contractx.AgentResponse, error) {
	o, err := a.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			return contractx.AgentResponse{
				Content:     fmt.Sprintf("I couldn't find order %s. Please double-check the order number.", orderID),
				Disposition: contractx.DispositionDeferred,
				Agent:       a.ID(),
			}, nil
		}
		return contractx.AgentResponse{}, fmt.Errorf("order store lookup %s: %w", orderID, err)
	}

	log.Debug().Str("order_id", orderID).Str("status", string(o.Status)).Msg("order lookup")

	var b strings.Builder
	fmt.Fprintf(&b, "Order %s\n", o.ID)
	fmt.Fprintf(&b, "Status: %s\n", titleStatus(o.Status))
	b.WriteString(o.StatusLine())
	b.WriteString("\n\n")
	b.WriteString(o.Summary())
	return contractx.AgentResponse{
		Content:     b.String(),
		Disposition: contractx.DispositionHandled,
		Agent:       a.ID(),
	}, nil
}

func (a *Agent) respondCustomer(ctx context.Context, customerID string) (contractx.AgentResponse, error) {
	list, err := a.store.GetOrdersByCustomer(ctx, customerID)
	if err != nil {
		return contractx.AgentResponse{}, fmt.Errorf("customer orders lookup %s: %w", customerID, err)
	}
	if len(list) == 0 {
		return contractx.AgentResponse{
			Content:     fmt.Sprintf("No orders found for customer %s.", customerID),
			Disposition: contractx.DispositionDeferred,
			Agent:       a.ID(),
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Orders for customer %s:\n", customerID)
	for _, o := range list {
		fmt.Fprintf(&b, "- %s: %s - $%.2f (ordered %s)\n",
			o.ID, titleStatus(o.Status), o.Total(), o.CreatedAt.Format("January 2, 2006"))
	}
	return contractx.AgentResponse{
		Content:     b.String(),
		Disposition: contractx.DispositionHandled,
		Agent:       a.ID(),
	}, nil
}

func titleStatus(s orders.Status) string {
	str := string(s)
	if str == "" {
		return str
	}
	return strings.ToUpper(str[:1]) + str[1:]
}
