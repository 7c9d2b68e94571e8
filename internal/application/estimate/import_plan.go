package estimate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/andrescamacho/takeoff-go/internal/adapters/planextract"
	"github.com/andrescamacho/takeoff-go/internal/application/logging"
	"github.com/andrescamacho/takeoff-go/internal/application/mediator"
	"github.com/andrescamacho/takeoff-go/internal/domain/concrete"
	"github.com/andrescamacho/takeoff-go/internal/domain/masonry"
)

const (
	defaultWallHeight    = 3.0
	defaultSlabThickness = 0.15
	defaultSlabMix       = "1:2:4"
	slabNameSuffix       = " floor slab"
)

// PlanExtractor reads rooms off an uploaded drawing
type PlanExtractor interface {
	Extract(ctx context.Context, fileName string, content []byte) (*planextract.Plan, error)
}

// ImportPlanCommand turns a plan drawing into masonry rooms and floor slabs
type ImportPlanCommand struct {
	FileName      string
	Content       []byte
	DefaultHeight float64 // wall height for rooms the plan gives none
	SlabMix       string
}

// ImportPlanResponse carries the rows ready to merge into a quote
type ImportPlanResponse struct {
	Rooms []masonry.Room
	Slabs []concrete.Row
	Notes string
}

// ImportPlanHandler handles ImportPlanCommand
type ImportPlanHandler struct {
	extractor PlanExtractor
}

// NewImportPlanHandler creates a new ImportPlanHandler
func NewImportPlanHandler(extractor PlanExtractor) *ImportPlanHandler {
	return &ImportPlanHandler{extractor: extractor}
}

// Handle executes the command
func (h *ImportPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportPlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportPlanCommand")
	}

	plan, err := h.extractor.Extract(ctx, cmd.FileName, cmd.Content)
	if err != nil {
		return nil, err
	}

	height := cmd.DefaultHeight
	if height <= 0 {
		height = defaultWallHeight
	}
	mix := cmd.SlabMix
	if mix == "" {
		mix = defaultSlabMix
	}

	resp := ConvertPlan(plan, height, mix)

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Plan imported", map[string]interface{}{
		"file":  cmd.FileName,
		"rooms": len(resp.Rooms),
		"slabs": len(resp.Slabs),
	})

	return resp, nil
}

// ConvertPlan maps extracted rooms to masonry rooms and one floor slab per room.
// Rooms without a positive length and width are skipped.
func ConvertPlan(plan *planextract.Plan, defaultHeight float64, mix string) *ImportPlanResponse {
	resp := &ImportPlanResponse{}
	if plan == nil {
		return resp
	}
	resp.Notes = plan.Notes

	thickness := plan.FloorThickness
	if thickness <= 0 {
		thickness = defaultSlabThickness
	}

	for i, r := range plan.Rooms {
		if r.Length <= 0 || r.Width <= 0 {
			continue
		}
		name := strings.TrimSpace(r.Name)
		if name == "" {
			name = fmt.Sprintf("Room %d", i+1)
		}
		height := r.Height
		if height <= 0 {
			height = defaultHeight
		}

		room := masonry.Room{
			ID:     idOr(""),
			Name:   name,
			Length: num(r.Length),
			Width:  num(r.Width),
			Height: num(height),
		}
		for _, o := range r.Openings {
			room.Openings = append(room.Openings, masonry.Opening{
				Type:   openingType(o.Type),
				Width:  num(o.Width),
				Height: num(o.Height),
				Count:  strconv.Itoa(max(o.Count, 1)),
			})
		}
		resp.Rooms = append(resp.Rooms, room)

		resp.Slabs = append(resp.Slabs, concrete.Row{
			ID:          idOr(""),
			Name:        name + slabNameSuffix,
			ElementType: concrete.TypeSlab,
			Length:      num(r.Length),
			Width:       num(r.Width),
			Height:      num(thickness),
			Number:      "1",
			Mix:         mix,
		})
	}
	return resp
}

func openingType(s string) masonry.OpeningType {
	if strings.EqualFold(strings.TrimSpace(s), string(masonry.OpeningWindow)) {
		return masonry.OpeningWindow
	}
	return masonry.OpeningDoor
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
