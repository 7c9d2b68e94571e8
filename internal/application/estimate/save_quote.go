package estimate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/andrescamacho/takeoff-go/internal/application/logging"
	"github.com/andrescamacho/takeoff-go/internal/application/mediator"
	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
)

// SaveQuoteCommand recomputes a quote and stores it with its result
type SaveQuoteCommand struct {
	State quote.State
}

// SaveQuoteResponse carries the stored record
type SaveQuoteResponse struct {
	Record *quote.Record
}

// SaveQuoteHandler handles SaveQuoteCommand
type SaveQuoteHandler struct {
	quoteRepo quote.Repository
	prices    *PriceSourceBuilder
}

// NewSaveQuoteHandler creates a new SaveQuoteHandler
func NewSaveQuoteHandler(quoteRepo quote.Repository, prices *PriceSourceBuilder) *SaveQuoteHandler {
	return &SaveQuoteHandler{quoteRepo: quoteRepo, prices: prices}
}

// Handle executes the command. A quote without an ID gets a new one, and so
// does every row without one.
func (h *SaveQuoteHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SaveQuoteCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SaveQuoteCommand")
	}

	state := assignIDs(cmd.State)
	if strings.TrimSpace(state.Title) == "" {
		state.Title = "Untitled quote"
	}

	result, err := recompute(ctx, h.prices, state, state.Region)
	if err != nil {
		return nil, err
	}

	record := &quote.Record{ID: state.ID, Title: state.Title, State: state, Result: result}
	if err := h.quoteRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Quote saved", map[string]interface{}{
		"quote_id":     record.ID,
		"title":        record.Title,
		"total_amount": result.Summary.TotalAmount,
	})

	return &SaveQuoteResponse{Record: record}, nil
}

// assignIDs fills blank quote and row IDs without touching the caller's slices
func assignIDs(state quote.State) quote.State {
	if state.ID == "" {
		state.ID = uuid.New().String()
	}

	state.Concrete = append(state.Concrete[:0:0], state.Concrete...)
	for i := range state.Concrete {
		state.Concrete[i].ID = idOr(state.Concrete[i].ID)
	}
	state.Masonry = append(state.Masonry[:0:0], state.Masonry...)
	for i := range state.Masonry {
		state.Masonry[i].ID = idOr(state.Masonry[i].ID)
	}
	state.Rebar = append(state.Rebar[:0:0], state.Rebar...)
	for i := range state.Rebar {
		state.Rebar[i].ID = idOr(state.Rebar[i].ID)
	}
	state.Electrical = append(state.Electrical[:0:0], state.Electrical...)
	for i := range state.Electrical {
		state.Electrical[i].ID = idOr(state.Electrical[i].ID)
	}
	state.Plumbing = append(state.Plumbing[:0:0], state.Plumbing...)
	for i := range state.Plumbing {
		state.Plumbing[i].ID = idOr(state.Plumbing[i].ID)
	}
	state.Roofing = append(state.Roofing[:0:0], state.Roofing...)
	for i := range state.Roofing {
		state.Roofing[i].ID = idOr(state.Roofing[i].ID)
	}
	state.Finishes = append(state.Finishes[:0:0], state.Finishes...)
	for i := range state.Finishes {
		state.Finishes[i].ID = idOr(state.Finishes[i].ID)
	}
	return state
}

func idOr(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
