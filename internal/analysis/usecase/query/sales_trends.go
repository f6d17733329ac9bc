package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopstock/shopstock/internal/analysis/cache"
	"github.com/shopstock/shopstock/internal/analysis/domain"
	"github.com/shopstock/shopstock/internal/analysis/llm"
)

const salesTrendsFlow = "sales-trends"

const salesTrendsPrompt = `You are an AI assistant helping a shop owner analyze sales trends and make informed decisions.

Analyze the following sales history and current stock levels to identify trends and provide recommendations.

Sales History:
%s

Current Stock Levels:
%s
%s
Based on this information, respond with a single JSON object with exactly these string fields:
- "trendSummary": a summary of the identified sales trends
- "stockLevelRecommendations": recommendations for optimal stock levels for each product
- "pricingRecommendations": recommendations for pricing adjustments based on sales trends
- "orderingPlanModifications": recommendations for modifying ordering plans based on sales trends and stock levels
- "additionalInsights": any additional insights or recommendations`

// SalesTrendsHandler handles the full sales trend analysis flow
type SalesTrendsHandler struct {
	model   llm.Client
	results *cache.Cache
}

// NewSalesTrendsHandler creates a new sales trends handler
func NewSalesTrendsHandler(model llm.Client, results *cache.Cache) *SalesTrendsHandler {
	return &SalesTrendsHandler{model: model, results: results}
}

// Handle executes the sales trend analysis
func (h *SalesTrendsHandler) Handle(ctx context.Context, req domain.SalesTrendsRequest) (*domain.SalesTrendsResult, error) {
	if req.SalesHistory == "" || req.CurrentStockLevels == "" {
		return nil, fmt.Errorf("sales history and stock levels are required")
	}

	payload, _ := json.Marshal(req)
	key := cache.Key(salesTrendsFlow, string(payload))
	if cached, ok := h.results.Get(ctx, key); ok {
		var result domain.SalesTrendsResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	conditions := ""
	if strings.TrimSpace(req.MarketConditions) != "" {
		conditions = fmt.Sprintf("\nMarket Conditions:\n%s\n", req.MarketConditions)
	}

	prompt := fmt.Sprintf(salesTrendsPrompt, req.SalesHistory, req.CurrentStockLevels, conditions)
	raw, err := h.model.Complete(ctx, prompt)
	if err != nil {
		return nil, &domain.Error{Flow: salesTrendsFlow, Err: err}
	}

	var result domain.SalesTrendsResult
	if err := decodeStrict(salesTrendsFlow, raw, &result); err != nil {
		return nil, err
	}
	if err := requireFields(salesTrendsFlow, map[string]string{
		"trendSummary":              result.TrendSummary,
		"stockLevelRecommendations": result.StockLevelRecommendations,
		"pricingRecommendations":    result.PricingRecommendations,
		"orderingPlanModifications": result.OrderingPlanModifications,
		"additionalInsights":        result.AdditionalInsights,
	}); err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(result); err == nil {
		h.results.Set(ctx, key, string(encoded))
	}
	return &result, nil
}
