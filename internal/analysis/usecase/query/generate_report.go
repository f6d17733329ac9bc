package query

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopstock/shopstock/internal/analysis/cache"
	"github.com/shopstock/shopstock/internal/analysis/domain"
	"github.com/shopstock/shopstock/internal/analysis/llm"
)

const reportFlow = "report"

const reportPrompt = `You are a business analyst for a small retail shop. Analyze the provided sales and product data to generate a report.
The data covers the period from %s to %s.

Products:
%s

Sales:
%s

Respond with a single JSON object with exactly these string fields, each in Markdown format:
- "trendSummary": a summary of sales trends
- "stockRecommendations": recommendations for stock levels
- "additionalInsights": any other insights or recommendations`

// GenerateReportHandler handles the date-ranged report flow
type GenerateReportHandler struct {
	model   llm.Client
	results *cache.Cache
}

// NewGenerateReportHandler creates a new generate report handler
func NewGenerateReportHandler(model llm.Client, results *cache.Cache) *GenerateReportHandler {
	return &GenerateReportHandler{model: model, results: results}
}

// Handle executes the report generation
func (h *GenerateReportHandler) Handle(ctx context.Context, req domain.ReportRequest) (*domain.ReportResult, error) {
	if req.DateRange.From == "" || req.DateRange.To == "" {
		return nil, fmt.Errorf("date range is required")
	}
	if req.Products == "" || req.Sales == "" {
		return nil, fmt.Errorf("products and sales data are required")
	}

	payload, _ := json.Marshal(req)
	key := cache.Key(reportFlow, string(payload))
	if cached, ok := h.results.Get(ctx, key); ok {
		var result domain.ReportResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	prompt := fmt.Sprintf(reportPrompt, req.DateRange.From, req.DateRange.To, req.Products, req.Sales)
	raw, err := h.model.Complete(ctx, prompt)
	if err != nil {
		return nil, &domain.Error{Flow: reportFlow, Err: err}
	}

	var result domain.ReportResult
	if err := decodeStrict(reportFlow, raw, &result); err != nil {
		return nil, err
	}
	if err := requireFields(reportFlow, map[string]string{
		"trendSummary":         result.TrendSummary,
		"stockRecommendations": result.StockRecommendations,
		"additionalInsights":   result.AdditionalInsights,
	}); err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(result); err == nil {
		h.results.Set(ctx, key, string(encoded))
	}
	return &result, nil
}
