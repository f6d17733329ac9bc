package query

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopstock/shopstock/internal/analysis/cache"
	"github.com/shopstock/shopstock/internal/analysis/domain"
	"github.com/shopstock/shopstock/internal/analysis/llm"
)

const optimalStockFlow = "optimal-stock"

const optimalStockPrompt = `You are an expert in inventory management and sales analysis. Analyze the provided sales data and current stock levels for a given product to recommend an optimal stock level. Provide clear reasoning for your recommendation and suggest potential actions to improve sales and minimize waste.

Product Name: %s
Sales Data: %s
Current Stock Levels: %s

Respond with a single JSON object with exactly these fields:
- "recommendedStockLevel" (number): the recommended stock level for the product
- "reasoning" (string): the reasoning behind the recommended stock level
- "potentialActions" (string): suggested actions regarding ordering, pricing, or sales parameters

Focus on minimizing waste and maximizing profits.`

// OptimalStockHandler handles the optimal stock level analysis flow
type OptimalStockHandler struct {
	model   llm.Client
	results *cache.Cache
}

// NewOptimalStockHandler creates a new optimal stock handler
func NewOptimalStockHandler(model llm.Client, results *cache.Cache) *OptimalStockHandler {
	return &OptimalStockHandler{model: model, results: results}
}

// Handle executes the optimal stock analysis
func (h *OptimalStockHandler) Handle(ctx context.Context, req domain.OptimalStockRequest) (*domain.OptimalStockResult, error) {
	if req.ProductName == "" {
		return nil, fmt.Errorf("productName is required")
	}
	if req.SalesData == "" || req.CurrentStockLevels == "" {
		return nil, fmt.Errorf("sales data and stock levels are required")
	}

	payload, _ := json.Marshal(req)
	key := cache.Key(optimalStockFlow, string(payload))
	if cached, ok := h.results.Get(ctx, key); ok {
		var result domain.OptimalStockResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	prompt := fmt.Sprintf(optimalStockPrompt, req.ProductName, req.SalesData, req.CurrentStockLevels)
	raw, err := h.model.Complete(ctx, prompt)
	if err != nil {
		return nil, &domain.Error{Flow: optimalStockFlow, Err: err}
	}

	// Decode through a pointer so an absent number is distinguishable
	// from a literal zero.
	var envelope struct {
		RecommendedStockLevel *float64 `json:"recommendedStockLevel"`
		Reasoning             string   `json:"reasoning"`
		PotentialActions      string   `json:"potentialActions"`
	}
	if err := decodeStrict(optimalStockFlow, raw, &envelope); err != nil {
		return nil, err
	}
	if envelope.RecommendedStockLevel == nil {
		return nil, &domain.Error{Flow: optimalStockFlow, Err: fmt.Errorf("response is missing required field %q", "recommendedStockLevel")}
	}
	if err := requireFields(optimalStockFlow, map[string]string{
		"reasoning":        envelope.Reasoning,
		"potentialActions": envelope.PotentialActions,
	}); err != nil {
		return nil, err
	}

	result := domain.OptimalStockResult{
		RecommendedStockLevel: *envelope.RecommendedStockLevel,
		Reasoning:             envelope.Reasoning,
		PotentialActions:      envelope.PotentialActions,
	}

	if encoded, err := json.Marshal(result); err == nil {
		h.results.Set(ctx, key, string(encoded))
	}
	return &result, nil
}
