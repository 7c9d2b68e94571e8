package estimate

import (
	"context"
	"fmt"

	"github.com/andrescamacho/takeoff-go/internal/application/mediator"
	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
)

// GetQuoteQuery loads one saved quote
type GetQuoteQuery struct {
	ID string
}

// ListQuotesQuery lists saved quotes, newest first
type ListQuotesQuery struct{}

// DeleteQuoteCommand removes a saved quote
type DeleteQuoteCommand struct {
	ID string
}

// QuoteResponse carries one record
type QuoteResponse struct {
	Record *quote.Record
}

// QuoteListResponse carries many records
type QuoteListResponse struct {
	Records []*quote.Record
}

// QuoteStoreHandler serves the read and delete requests on saved quotes
type QuoteStoreHandler struct {
	quoteRepo quote.Repository
}

// NewQuoteStoreHandler creates a new QuoteStoreHandler
func NewQuoteStoreHandler(quoteRepo quote.Repository) *QuoteStoreHandler {
	return &QuoteStoreHandler{quoteRepo: quoteRepo}
}

// Handle dispatches on the request type
func (h *QuoteStoreHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch req := request.(type) {
	case *GetQuoteQuery:
		record, err := h.quoteRepo.FindByID(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return &QuoteResponse{Record: record}, nil

	case *ListQuotesQuery:
		records, err := h.quoteRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		return &QuoteListResponse{Records: records}, nil

	case *DeleteQuoteCommand:
		if err := h.quoteRepo.Delete(ctx, req.ID); err != nil {
			return nil, err
		}
		return &QuoteResponse{}, nil

	default:
		return nil, fmt.Errorf("invalid request type: %T", request)
	}
}
