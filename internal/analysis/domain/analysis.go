// Package domain defines the request and response contracts of the AI
// analysis flows, and the typed error the UI branches on.
package domain

import "fmt"

// Error is an analysis failure: either the model call failed or its
// response did not match the declared output shape. It is surfaced to
// the caller as a failed analysis and never retried automatically.
type Error struct {
	Flow string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("analysis %s failed: %v", e.Flow, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// OptimalStockRequest asks for a stock level recommendation for one product
type OptimalStockRequest struct {
	SalesData          string `json:"salesData"`          // historical sales, JSON-serialized
	CurrentStockLevels string `json:"currentStockLevels"` // current stock, JSON-serialized
	ProductName        string `json:"productName"`
}

// OptimalStockResult is the schema-validated model output
type OptimalStockResult struct {
	RecommendedStockLevel float64 `json:"recommendedStockLevel"`
	Reasoning             string  `json:"reasoning"`
	PotentialActions      string  `json:"potentialActions"`
}

// SalesTrendsRequest asks for a full trend analysis over the shop's history
type SalesTrendsRequest struct {
	SalesHistory       string `json:"salesHistory"`
	CurrentStockLevels string `json:"currentStockLevels"`
	MarketConditions   string `json:"marketConditions,omitempty"` // optional
}

// SalesTrendsResult is the schema-validated model output
type SalesTrendsResult struct {
	TrendSummary              string `json:"trendSummary"`
	StockLevelRecommendations string `json:"stockLevelRecommendations"`
	PricingRecommendations    string `json:"pricingRecommendations"`
	OrderingPlanModifications string `json:"orderingPlanModifications"`
	AdditionalInsights        string `json:"additionalInsights"`
}

// MarketTrendsRequest is a free-text market question
type MarketTrendsRequest struct {
	Query string `json:"query"`
}

// MarketTrendsResult carries the analysis already converted from
// markdown to HTML for display.
type MarketTrendsResult struct {
	AnalysisHTML string `json:"analysisHtml"`
}

// DateRange bounds a report
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReportRequest asks for a business report over a date range
type ReportRequest struct {
	Products  string    `json:"products"` // JSON-serialized catalog
	Sales     string    `json:"sales"`    // JSON-serialized sales in range
	DateRange DateRange `json:"dateRange"`
}

// ReportResult is the schema-validated model output, markdown fields
type ReportResult struct {
	TrendSummary         string `json:"trendSummary"`
	StockRecommendations string `json:"stockRecommendations"`
	AdditionalInsights   string `json:"additionalInsights"`
}
