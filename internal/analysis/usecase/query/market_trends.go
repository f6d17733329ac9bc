package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/shopstock/shopstock/internal/analysis/cache"
	"github.com/shopstock/shopstock/internal/analysis/domain"
	"github.com/shopstock/shopstock/internal/analysis/llm"
)

const marketTrendsFlow = "market-trends"

const marketTrendsPrompt = `You are a market analyst expert for small to medium-sized retail businesses in India.
Your goal is to provide a concise, insightful, and easy-to-understand analysis of market trends based on the user's query.

User Query:
"%s"

Respond with a single JSON object with exactly one string field "analysis" containing the analysis in Markdown format.
Use headings, bold text, and bullet points to structure the information clearly.
Start with a summary, then provide key trends, and finish with actionable advice for a shop owner.`

// marketTrendsOutput is the raw model shape; callers receive the
// markdown already rendered to HTML.
type marketTrendsOutput struct {
	Analysis string `json:"analysis"`
}

// MarketTrendsHandler handles the free-text market trend analysis flow
type MarketTrendsHandler struct {
	model   llm.Client
	results *cache.Cache
}

// NewMarketTrendsHandler creates a new market trends handler
func NewMarketTrendsHandler(model llm.Client, results *cache.Cache) *MarketTrendsHandler {
	return &MarketTrendsHandler{model: model, results: results}
}

// Handle executes the market trend analysis
func (h *MarketTrendsHandler) Handle(ctx context.Context, req domain.MarketTrendsRequest) (*domain.MarketTrendsResult, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	payload, _ := json.Marshal(req)
	key := cache.Key(marketTrendsFlow, string(payload))
	if cached, ok := h.results.Get(ctx, key); ok {
		var result domain.MarketTrendsResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	raw, err := h.model.Complete(ctx, fmt.Sprintf(marketTrendsPrompt, req.Query))
	if err != nil {
		return nil, &domain.Error{Flow: marketTrendsFlow, Err: err}
	}

	var out marketTrendsOutput
	if err := decodeStrict(marketTrendsFlow, raw, &out); err != nil {
		return nil, err
	}
	if err := requireFields(marketTrendsFlow, map[string]string{"analysis": out.Analysis}); err != nil {
		return nil, err
	}

	html, err := renderMarkdown(out.Analysis)
	if err != nil {
		return nil, &domain.Error{Flow: marketTrendsFlow, Err: err}
	}

	result := domain.MarketTrendsResult{AnalysisHTML: html}
	if encoded, err := json.Marshal(result); err == nil {
		h.results.Set(ctx, key, string(encoded))
	}
	return &result, nil
}

// renderMarkdown converts the model's markdown analysis to HTML
func renderMarkdown(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
