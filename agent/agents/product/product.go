// Package product implements the catalog-search agent. It retrieves
// candidate products by vector similarity and degrades to keyword
// matching when the embedding provider is unreachable.
package product

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/ninthbase/shopmate/agent/contract"
	"github.com/ninthbase/shopmate/catalog"
	"github.com/ninthbase/shopmate/embedding"
	"github.com/ninthbase/shopmate/rag"
	"github.com/ninthbase/shopmate/textnorm"
)

const (
	maxConfidence = 0.85

	noResultsMessage = "I couldn't find products matching that. Could you tell me more about what you're looking for, like a category or price range?"
)

var shoppingKeywords = textnorm.TokenSet(
	"product products buy purchase find search looking show recommend recommendation " +
		"price cheap cheaper affordable cost under item items sell stock available brand",
)

var maxPricePattern = regexp.MustCompile(`(?i)(?:under|below|less than|up to)\s*\$?\s*(\d+(?:\.\d+)?)`)

type Agent struct {
	retriever  *rag.Retriever
	topK       int
	vocab      map[string]struct{}
	categories []string
}

func New(retriever *rag.Retriever, topK int, products []catalog.Product) *Agent {
	if topK <= 0 {
		topK = rag.DefaultTopK
	}

	// Catalog names, brands, and categories extend the intent vocabulary
	// so "headphones" scores as product intent even without a verb like
	// "buy".
	vocab := make(map[string]struct{}, len(shoppingKeywords))
	for tok := range shoppingKeywords {
		vocab[tok] = struct{}{}
	}
	for _, p := range products {
		for tok := range textnorm.TokenSet(p.Name + " " + p.Brand + " " + p.Category) {
			vocab[tok] = struct{}{}
		}
	}

	return &Agent{
		retriever:  retriever,
		topK:       topK,
		vocab:      vocab,
		categories: catalog.Categories(products),
	}
}

func (a *Agent) ID() contractx.AgentID {
	return contractx.AgentProduct
}

func (a *Agent) CanHandle(_ context.Context, utterance string, _ contractx.ConversationContext) float64 {
	return maxConfidence * textnorm.Overlap(textnorm.TokenSet(utterance), a.vocab)
}

func (a *Agent) Respond(ctx context.Context, utterance string, _ contractx.ConversationContext) (contractx.AgentResponse, error) {
	filter := combineFilters(priceFilter(utterance), a.categoryFilter(utterance))

	results, err := a.retriever.Search(ctx, utterance, a.topK, filter)
	if err != nil {
		if !errors.Is(err, embedding.ErrUnavailable) && !errors.Is(err, rag.ErrEmptyIndex) {
			return contractx.AgentResponse{}, err
		}
		log.Warn().Err(err).Msg("vector search unavailable, falling back to keyword match")
		results = a.retriever.KeywordSearch(ctx, utterance, a.topK, filter)
	}

	if len(results) == 0 {
		return contractx.AgentResponse{
			Content:     noResultsMessage,
			Disposition: contractx.DispositionNeedsMoreInfo,
			Agent:       a.ID(),
		}, nil
	}

	return contractx.AgentResponse{
		Content:     formatResults(results),
		Disposition: contractx.DispositionHandled,
		Agent:       a.ID(),
	}, nil
}

// formatResults renders results as structured content ready for an
// optional language-generation pass.
func formatResults(results []rag.Result) string {
	var b strings.Builder
	b.WriteString("Found the following products:\n\n")
	for i, res := range results {
		name, _ := res.Entry.Attributes["name"].(string)
		if name == "" {
			name = res.Entry.ID
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
		fmt.Fprintf(&b, "   - ID: %s\n", res.Entry.ID)
		if category, _ := res.Entry.Attributes["category"].(string); category != "" {
			fmt.Fprintf(&b, "   - Category: %s\n", category)
		}
		if price, ok := res.Entry.Attributes["price"].(float64); ok {
			fmt.Fprintf(&b, "   - Price: $%.2f\n", price)
		}
		if brand, _ := res.Entry.Attributes["brand"].(string); brand != "" {
			fmt.Fprintf(&b, "   - Brand: %s\n", brand)
		}
		fmt.Fprintf(&b, "   - Relevance: %.2f\n\n", res.Score)
	}
	return strings.TrimRight(b.String(), "\n")
}

// categoryFilter matches a catalog category mentioned in the utterance.
// Every token of the category name must appear, so "kitchen" alone does
// not match "Home & Kitchen" but "home kitchen gear" does.
func (a *Agent) categoryFilter(utterance string) rag.Filter {
	queryTokens := textnorm.TokenSet(utterance)
	for _, category := range a.categories {
		tokens := textnorm.TokenSet(category)
		if len(tokens) == 0 || textnorm.Overlap(tokens, queryTokens) < 1 {
			continue
		}
		return catalog.CategoryFilter(category)
	}
	return nil
}

func combineFilters(filters ...rag.Filter) rag.Filter {
	active := make([]rag.Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(e rag.Entry) bool {
		for _, f := range active {
			if !f(e) {
				return false
			}
		}
		return true
	}
}

// priceFilter extracts "under $N" style constraints from the utterance.
func priceFilter(utterance string) rag.Filter {
	m := maxPricePattern.FindStringSubmatch(utterance)
	if m == nil {
		return nil
	}
	limit, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return catalog.MaxPriceFilter(limit)
}
