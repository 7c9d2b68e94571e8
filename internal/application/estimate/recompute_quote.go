package estimate

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/takeoff-go/internal/adapters/metrics"
	"github.com/andrescamacho/takeoff-go/internal/application/logging"
	"github.com/andrescamacho/takeoff-go/internal/application/mediator"
	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
)

// RecomputeQuoteQuery recomputes a quote against stored prices
type RecomputeQuoteQuery struct {
	State  quote.State
	Region string // overrides State.Region when set
}

// RecomputeQuoteResponse carries the recomputed quote
type RecomputeQuoteResponse struct {
	Result quote.Result
}

// RecomputeQuoteHandler handles RecomputeQuoteQuery
type RecomputeQuoteHandler struct {
	prices *PriceSourceBuilder
}

// NewRecomputeQuoteHandler creates a new RecomputeQuoteHandler
func NewRecomputeQuoteHandler(prices *PriceSourceBuilder) *RecomputeQuoteHandler {
	return &RecomputeQuoteHandler{prices: prices}
}

// Handle executes the query
func (h *RecomputeQuoteHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*RecomputeQuoteQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecomputeQuoteQuery")
	}

	region := query.Region
	if region == "" {
		region = query.State.Region
	}

	result, err := recompute(ctx, h.prices, query.State, region)
	if err != nil {
		return nil, err
	}
	return &RecomputeQuoteResponse{Result: result}, nil
}

// recompute validates the state, resolves prices and runs every calculator
func recompute(ctx context.Context, prices *PriceSourceBuilder, state quote.State, region string) (quote.Result, error) {
	logger := logging.LoggerFromContext(ctx)

	if err := validateState(state); err != nil {
		return quote.Result{}, err
	}

	source, err := prices.Build(ctx, region)
	if err != nil {
		return quote.Result{}, err
	}

	start := time.Now()
	result := quote.Recompute(state, source)
	elapsed := time.Since(start).Seconds()

	metrics.RecordRecompute(elapsed, result.Summary.TotalAmount, len(result.BOQ.Items()), result.UnresolvedPrices)

	for _, l := range result.UnresolvedPrices {
		logger.Log(logging.LevelWarn, "No price for item, costed at 0", map[string]interface{}{
			"quote_id": state.ID,
			"category": string(l.Category),
			"item":     l.Name,
			"variant":  l.Variant(),
		})
	}
	logger.Log(logging.LevelInfo, "Quote recomputed", map[string]interface{}{
		"quote_id":     state.ID,
		"region":       region,
		"sections":     len(result.BOQ.Sections),
		"total_amount": result.Summary.TotalAmount,
		"unresolved":   len(result.UnresolvedPrices),
	})

	return result, nil
}
