package steps

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/takeoff-go/internal/application/estimate"
	"github.com/andrescamacho/takeoff-go/internal/application/mediator"
	"github.com/andrescamacho/takeoff-go/internal/domain/concrete"
	"github.com/andrescamacho/takeoff-go/internal/domain/masonry"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
	"github.com/andrescamacho/takeoff-go/internal/domain/rebar"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
	"github.com/andrescamacho/takeoff-go/test/helpers"
)

const tolerance = 0.001

type quoteContext struct {
	mediator mediator.Mediator
	repos    *helpers.TestRepositories
	state    quote.State
	result   quote.Result
	records  []*quote.Record
	err      error
}

func (qc *quoteContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}

	qc.repos = helpers.NewTestRepositories(helpers.SharedTestDB)
	m := mediator.NewMediator()
	err := estimate.RegisterHandlers(m, estimate.Dependencies{
		CatalogRepo:  qc.repos.CatalogRepo,
		RegionRepo:   qc.repos.RegionRepo,
		OverrideRepo: qc.repos.OverrideRepo,
		QuoteRepo:    qc.repos.QuoteRepo,
		Multiplier:   1,
	})
	if err != nil {
		return err
	}

	qc.mediator = m
	qc.state = quote.State{Settings: quote.DefaultSettings()}
	qc.result = quote.Result{}
	qc.records = nil
	qc.err = nil
	return nil
}

// Given steps

func (qc *quoteContext) theStandardMaterialCatalogIsLoaded() error {
	_, err := qc.mediator.Send(context.Background(), &estimate.ImportMaterialsCommand{Entries: helpers.StandardCatalog()})
	return err
}

func (qc *quoteContext) aRegionWithMultiplier(code string, multiplier float64) error {
	_, err := qc.mediator.Send(context.Background(), &estimate.SaveRegionCommand{
		Region: pricing.Region{Code: code, Name: code, Multiplier: multiplier},
	})
	return err
}

func (qc *quoteContext) aConcreteSlab(name, length, width, height, mix string) error {
	qc.state.Concrete = append(qc.state.Concrete, concrete.Row{
		Name:        name,
		ElementType: concrete.TypeSlab,
		Length:      length,
		Width:       width,
		Height:      height,
		Mix:         mix,
	})
	return nil
}

func (qc *quoteContext) aMasonryRoom(name, length, width, height string) error {
	qc.state.Masonry = append(qc.state.Masonry, masonry.Room{Name: name, Length: length, Width: width, Height: height})
	return nil
}

func (qc *quoteContext) aReinforcedSlab(name, length, width, depth, size, spacing string) error {
	qc.state.Rebar = append(qc.state.Rebar, rebar.Element{
		Name:        name,
		Type:        rebar.TypeSlab,
		Length:      length,
		Width:       width,
		Depth:       depth,
		Quantity:    1,
		MainBarSize: size,
		MainSpacing: spacing,
	})
	return nil
}

func (qc *quoteContext) anAdditionalItem(description string, quantity float64, unit string, rate float64) error {
	qc.state.ExtraItems = append(qc.state.ExtraItems, quote.ExtraItem{
		Description: description,
		Unit:        unit,
		Quantity:    quantity,
		Rate:        rate,
	})
	return nil
}

func (qc *quoteContext) theQuoteIsTitled(title string) error {
	qc.state.Title = title
	return nil
}

func (qc *quoteContext) aLabourOnlyContract() error {
	qc.state.Settings.Financial.ContractType = quote.ContractLabourOnly
	return nil
}

func (qc *quoteContext) aSubcontractorAt(name string, amount float64) error {
	fin := &qc.state.Settings.Financial
	fin.Subcontractors = append(fin.Subcontractors, quote.Subcontractor{Name: name, Amount: amount})
	return nil
}

func (qc *quoteContext) chargeAtPercent(layer string, pct float64) error {
	return qc.setCharge(layer, quote.Percent(pct))
}

func (qc *quoteContext) chargeFixedAt(layer string, amount float64) error {
	return qc.setCharge(layer, quote.Fixed(amount))
}

func (qc *quoteContext) setCharge(layer string, c quote.Charge) error {
	fin := &qc.state.Settings.Financial
	switch layer {
	case "labour":
		fin.Labour = c
	case "overhead":
		fin.Overhead = c
	case "contingency":
		fin.Contingency = c
	case "profit":
		fin.Profit = c
	case "permit":
		fin.Permit = c
	default:
		return fmt.Errorf("unknown financial layer %q", layer)
	}
	return nil
}

// When steps

func (qc *quoteContext) iRecomputeTheQuote() error {
	return qc.recomputeFor("")
}

func (qc *quoteContext) recomputeFor(region string) error {
	resp, err := qc.mediator.Send(context.Background(), &estimate.RecomputeQuoteQuery{State: qc.state, Region: region})
	qc.err = err
	if err == nil {
		qc.result = resp.(*estimate.RecomputeQuoteResponse).Result
	}
	return nil
}

func (qc *quoteContext) iSaveTheQuote() error {
	if _, err := qc.mediator.Send(context.Background(), &estimate.SaveQuoteCommand{State: qc.state}); err != nil {
		return err
	}
	resp, err := qc.mediator.Send(context.Background(), &estimate.ListQuotesQuery{})
	if err != nil {
		return err
	}
	qc.records = resp.(*estimate.QuoteListResponse).Records
	return nil
}

// Then steps

func (qc *quoteContext) theConcreteVolumeShouldBe(expected float64) error {
	if err := qc.requireSuccess(); err != nil {
		return err
	}
	if len(qc.result.Concrete.Rows) == 0 {
		return fmt.Errorf("no concrete rows computed")
	}
	return expectClose("concrete volume", expected, qc.result.Concrete.Rows[0].MainVolume)
}

func (qc *quoteContext) theSectionShouldHaveItems(title string, count int) error {
	sec, ok := qc.result.BOQ.Section(title)
	if !ok {
		return fmt.Errorf("section %q not in bill", title)
	}
	if len(sec.Items) != count {
		return fmt.Errorf("expected %d item(s) in %q, got %d", count, title, len(sec.Items))
	}
	return nil
}

func (qc *quoteContext) room() (masonry.Result, error) {
	if err := qc.requireSuccess(); err != nil {
		return masonry.Result{}, err
	}
	if len(qc.result.Masonry.Rooms) == 0 {
		return masonry.Result{}, fmt.Errorf("no masonry rooms computed")
	}
	return qc.result.Masonry.Rooms[0], nil
}

func (qc *quoteContext) theRoomPerimeterShouldBe(expected float64) error {
	r, err := qc.room()
	if err != nil {
		return err
	}
	return expectClose("perimeter", expected, r.Perimeter)
}

func (qc *quoteContext) theRoomShouldNeedNetBlocks(expected float64) error {
	r, err := qc.room()
	if err != nil {
		return err
	}
	return expectClose("net blocks", expected, r.NetBlocks)
}

func (qc *quoteContext) theRoomShouldNeedGrossBlocks(expected float64) error {
	r, err := qc.room()
	if err != nil {
		return err
	}
	return expectClose("gross blocks", expected, r.GrossBlocks)
}

func (qc *quoteContext) theRoomBlocksShouldCost(expected float64) error {
	r, err := qc.room()
	if err != nil {
		return err
	}
	return expectClose("blocks cost", expected, r.BlocksCost)
}

func (qc *quoteContext) thereShouldBeMainBars(expected float64) error {
	if err := qc.requireSuccess(); err != nil {
		return err
	}
	if len(qc.result.Rebar.Elements) == 0 {
		return fmt.Errorf("no rebar elements computed")
	}
	for _, l := range qc.result.Rebar.Elements[0].Bars {
		if l.Role == rebar.RoleMain {
			return expectClose("main bars", expected, l.Count)
		}
	}
	return fmt.Errorf("no main bar line computed")
}

func (qc *quoteContext) theSubtotalShouldBe(expected float64) error {
	if err := qc.requireSuccess(); err != nil {
		return err
	}
	return expectClose("subtotal", expected, qc.result.Summary.Subtotal)
}

func (qc *quoteContext) theQuoteTotalShouldBe(expected float64) error {
	if err := qc.requireSuccess(); err != nil {
		return err
	}
	return expectClose("total", expected, qc.result.Summary.TotalAmount)
}

func (qc *quoteContext) savedQuotesShouldBeListed(count int) error {
	if len(qc.records) != count {
		return fmt.Errorf("expected %d saved quote(s), got %d", count, len(qc.records))
	}
	return nil
}

func (qc *quoteContext) theSavedQuoteShouldTotal(title string, expected float64) error {
	for _, r := range qc.records {
		if r.Title == title {
			return expectClose("saved total", expected, r.Result.Summary.TotalAmount)
		}
	}
	return fmt.Errorf("saved quote %q not found", title)
}

func (qc *quoteContext) theRequestShouldFailWithAValidationError() error {
	if qc.err == nil {
		return fmt.Errorf("expected a validation error, but the request succeeded")
	}
	var verr *shared.ValidationError
	if !errors.As(qc.err, &verr) {
		return fmt.Errorf("expected a validation error, got %T: %v", qc.err, qc.err)
	}
	return nil
}

func (qc *quoteContext) requireSuccess() error {
	if qc.err != nil {
		return fmt.Errorf("expected recompute to succeed, got error: %v", qc.err)
	}
	return nil
}

func expectClose(what string, expected, actual float64) error {
	if math.Abs(expected-actual) > tolerance {
		return fmt.Errorf("expected %s %.3f, got %.3f", what, expected, actual)
	}
	return nil
}

// InitializeQuoteScenario registers the quantity and financial steps
func InitializeQuoteScenario(ctx *godog.ScenarioContext) {
	qc := &quoteContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, qc.reset()
	})

	// Given steps
	ctx.Step(`^the standard material catalog is loaded$`, qc.theStandardMaterialCatalogIsLoaded)
	ctx.Step(`^a region "([^"]*)" with multiplier ([0-9.]+)$`, qc.aRegionWithMultiplier)
	ctx.Step(`^a concrete slab "([^"]*)" measuring ([0-9.]+) by ([0-9.]+) by ([0-9.]+) m with mix "([^"]*)"$`, qc.aConcreteSlab)
	ctx.Step(`^a masonry room "([^"]*)" measuring ([0-9.]+) by ([0-9.]+) by ([0-9.]+) m$`, qc.aMasonryRoom)
	ctx.Step(`^a reinforced slab "([^"]*)" measuring ([0-9.]+) by ([0-9.]+) by ([0-9.]+) m with (Y\d+) bars at (\d+) mm$`, qc.aReinforcedSlab)
	ctx.Step(`^an additional item "([^"]*)" of ([0-9.]+) (\w+) at ([0-9.]+)$`, qc.anAdditionalItem)
	ctx.Step(`^the quote is titled "([^"]*)"$`, qc.theQuoteIsTitled)
	ctx.Step(`^a labour-only contract$`, qc.aLabourOnlyContract)
	ctx.Step(`^a subcontractor "([^"]*)" at ([0-9.]+)$`, qc.aSubcontractorAt)
	ctx.Step(`^(labour|overhead|contingency|profit|permit) at (-?[0-9.]+) percent$`, qc.chargeAtPercent)
	ctx.Step(`^(labour|overhead|contingency|profit|permit) fixed at (-?[0-9.]+)$`, qc.chargeFixedAt)

	// When steps
	ctx.Step(`^I recompute the quote$`, qc.iRecomputeTheQuote)
	ctx.Step(`^I recompute the quote for region "([^"]*)"$`, qc.recomputeFor)
	ctx.Step(`^I save the quote$`, qc.iSaveTheQuote)

	// Then steps
	ctx.Step(`^the concrete volume should be ([0-9.]+) m³$`, qc.theConcreteVolumeShouldBe)
	ctx.Step(`^the "([^"]*)" section should have (\d+) items?$`, qc.theSectionShouldHaveItems)
	ctx.Step(`^the room perimeter should be ([0-9.]+) m$`, qc.theRoomPerimeterShouldBe)
	ctx.Step(`^the room should need ([0-9.]+) net blocks$`, qc.theRoomShouldNeedNetBlocks)
	ctx.Step(`^the room should need ([0-9.]+) gross blocks$`, qc.theRoomShouldNeedGrossBlocks)
	ctx.Step(`^the room blocks should cost ([0-9.]+)$`, qc.theRoomBlocksShouldCost)
	ctx.Step(`^there should be ([0-9.]+) main bars$`, qc.thereShouldBeMainBars)
	ctx.Step(`^the subtotal should be ([0-9.]+)$`, qc.theSubtotalShouldBe)
	ctx.Step(`^the quote total should be ([0-9.]+)$`, qc.theQuoteTotalShouldBe)
	ctx.Step(`^(\d+) saved quotes? should be listed$`, qc.savedQuotesShouldBeListed)
	ctx.Step(`^the saved quote "([^"]*)" should total ([0-9.]+)$`, qc.theSavedQuoteShouldTotal)
	ctx.Step(`^the request should fail with a validation error$`, qc.theRequestShouldFailWithAValidationError)
}
