// Package support implements the customer-support agent backed by a
// static FAQ/policy table. It is also the designated fallback agent, so
// its deferral messages carry hand-off hints toward the more specific
// agents.
package support

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/ninthbase/shopmate/agent/contract"
	"github.com/ninthbase/shopmate/textnorm"
)

const (
	// DefaultOverlapThreshold is the minimum keyword overlap for an FAQ
	// entry to count as an answer.
	DefaultOverlapThreshold = 0.5

	// maxConfidence keeps FAQ matches below the explicit-intent band so
	// identifier-bearing utterances still win the dispatch.
	maxConfidence = 0.85

	deferralMessage = "I'm not sure I have the right answer for that, let me get someone who can help."
)

var (
	orderHints   = textnorm.TokenSet("order orders track tracking shipment package delivery status refund")
	productHints = textnorm.TokenSet("product products buy find search recommend price looking item items")
)

type Agent struct {
	faq       []scoredEntry
	threshold float64
}

type scoredEntry struct {
	entry  faqEntry
	tokens map[string]struct{}
}

type Option func(*Agent)

func WithOverlapThreshold(threshold float64) Option {
	return func(a *Agent) {
		if threshold > 0 {
			a.threshold = threshold
		}
	}
}

func New(opts ...Option) *Agent {
	faq := defaultFAQ()
	scored := make([]scoredEntry, 0, len(faq))
	for _, e := range faq {
		scored = append(scored, scoredEntry{entry: e, tokens: textnorm.TokenSet(e.Keywords)})
	}

	a := &Agent{faq: scored, threshold: DefaultOverlapThreshold}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Agent) ID() contractx.AgentID {
	return contractx.AgentSupport
}

func (a *Agent) CanHandle(_ context.Context, utterance string, _ contractx.ConversationContext) float64 {
	_, best := a.bestMatch(utterance)
	return maxConfidence * best
}

func (a *Agent) Respond(_ context.Context, utterance string, _ contractx.ConversationContext) (contractx.AgentResponse, error) {
	match, score := a.bestMatch(utterance)
	if score >= a.threshold {
		log.Debug().Str("topic", match.Topic).Float64("overlap", score).Msg("faq match")
		return contractx.AgentResponse{
			Content:     match.Answer,
			Disposition: contractx.DispositionHandled,
			Agent:       a.ID(),
		}, nil
	}

	return contractx.AgentResponse{
		Content:       deferralMessage,
		Disposition:   contractx.DispositionDeferred,
		SuggestedNext: a.suggestNext(utterance),
		Agent:         a.ID(),
	}, nil
}

// bestMatch scores the utterance against every FAQ entry and returns the
// best one. The overlap is measured from the utterance side so short
// questions with a single strong keyword still clear the threshold.
func (a *Agent) bestMatch(utterance string) (faqEntry, float64) {
	queryTokens := textnorm.TokenSet(utterance)
	var (
		best      faqEntry
		bestScore float64
	)
	for _, se := range a.faq {
		score := textnorm.Overlap(queryTokens, se.tokens)
		if score > bestScore {
			best = se.entry
			bestScore = score
		}
	}
	return best, bestScore
}

// suggestNext points the orchestrator at a more specific agent when the
// utterance hints at order- or product-related intent.
func (a *Agent) suggestNext(utterance string) contractx.AgentID {
	queryTokens := textnorm.TokenSet(utterance)
	orderScore := textnorm.Overlap(queryTokens, orderHints)
	productScore := textnorm.Overlap(queryTokens, productHints)

	switch {
	case orderScore == 0 && productScore == 0:
		return ""
	case orderScore >= productScore:
		return contractx.AgentOrder
	default:
		return contractx.AgentProduct
	}
}
