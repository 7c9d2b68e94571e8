package quote

import (
	"fmt"

	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Mode selects how a financial layer is computed
type Mode string

const (
	ModePercentage Mode = "percentage"
	ModeFixed      Mode = "fixed"
)

// IsValid checks if the mode is known
func (m Mode) IsValid() bool {
	return m == ModePercentage || m == ModeFixed
}

// ContractType selects which cost streams make up the subtotal
type ContractType string

const (
	ContractFull       ContractType = "full_contract"
	ContractLabourOnly ContractType = "labour_only"
)

// IsValid checks if the contract type is known
func (c ContractType) IsValid() bool {
	return c == ContractFull || c == ContractLabourOnly
}

// Charge is one layer of the financial model: a percentage of a base, or a fixed amount
type Charge struct {
	Mode       Mode    `json:"mode" yaml:"mode" validate:"omitempty,oneof=percentage fixed"`
	Percentage float64 `json:"percentage" yaml:"percentage" validate:"gte=0"`
	Fixed      float64 `json:"fixed" yaml:"fixed" validate:"gte=0"`
}

// Percent builds a percentage charge
func Percent(pct float64) Charge {
	return Charge{Mode: ModePercentage, Percentage: pct}
}

// Fixed builds a fixed-amount charge
func Fixed(amount float64) Charge {
	return Charge{Mode: ModeFixed, Fixed: amount}
}

// Amount evaluates the charge against base. An empty mode is treated as percentage;
// non-finite or negative inputs contribute nothing.
func (c Charge) Amount(base float64) float64 {
	if c.Mode == ModeFixed {
		return shared.NonNegative(c.Fixed)
	}
	return shared.NonNegative(base) * shared.NonNegative(c.Percentage) / 100
}

// Subcontractor is a priced package of work let to another firm
type Subcontractor struct {
	Name   string  `json:"name" yaml:"name"`
	Amount float64 `json:"amount" yaml:"amount" validate:"gte=0"`
}

// Preliminary is a site set-up or general item priced as a lump sum
type Preliminary struct {
	Description string  `json:"description" yaml:"description"`
	Amount      float64 `json:"amount" yaml:"amount" validate:"gte=0"`
}

// FinancialSettings is the layered cost model applied on top of the BOQ
type FinancialSettings struct {
	ContractType   ContractType    `json:"contract_type" yaml:"contract_type" validate:"omitempty,oneof=full_contract labour_only"`
	Labour         Charge          `json:"labour" yaml:"labour"`
	Overhead       Charge          `json:"overhead" yaml:"overhead"`
	Contingency    Charge          `json:"contingency" yaml:"contingency"`
	Profit         Charge          `json:"profit" yaml:"profit"`
	Permit         Charge          `json:"permit" yaml:"permit"`
	Subcontractors []Subcontractor `json:"subcontractors,omitempty" yaml:"subcontractors" validate:"dive"`
	Preliminaries  []Preliminary   `json:"preliminaries,omitempty" yaml:"preliminaries" validate:"dive"`
}

// DefaultFinancialSettings is a full contract with no markups
func DefaultFinancialSettings() FinancialSettings {
	return FinancialSettings{
		ContractType: ContractFull,
		Labour:       Percent(0),
		Overhead:     Percent(0),
		Contingency:  Percent(0),
		Profit:       Percent(0),
		Permit:       Fixed(0),
	}
}

// Validate checks the enum fields; numeric ranges are left to the validator tags
func (f FinancialSettings) Validate() error {
	if f.ContractType != "" && !f.ContractType.IsValid() {
		return shared.NewValidationError("contract_type", fmt.Sprintf("unknown contract type %q", f.ContractType))
	}
	charges := map[string]Charge{
		"labour": f.Labour, "overhead": f.Overhead, "contingency": f.Contingency,
		"profit": f.Profit, "permit": f.Permit,
	}
	for field, c := range charges {
		if c.Mode != "" && !c.Mode.IsValid() {
			return shared.NewValidationError(field, fmt.Sprintf("unknown mode %q", c.Mode))
		}
	}
	return nil
}

// Summary is the output of the financial model
type Summary struct {
	MaterialsCost      float64 `json:"materials_cost"`
	LabourCost         float64 `json:"labor_cost"`
	PermitCost         float64 `json:"permit_cost"`
	PreliminariesTotal float64 `json:"preliminaries_total"`
	SubcontractorTotal float64 `json:"subcontractor_total"`
	Subtotal           float64 `json:"subtotal"`
	OverheadAmount     float64 `json:"overhead_amount"`
	ContingencyAmount  float64 `json:"contingency_amount"`
	ProfitAmount       float64 `json:"profit_amount"`
	TotalAmount        float64 `json:"total_amount"`
}

// CalculateSummary applies the financial model to a bill of quantities.
//
// Business Rules:
//   - materials = sum of every non-header BOQ amount
//   - labour is a percentage of materials or a fixed sum
//   - the permit (percentage of materials or fixed) is carried with the preliminaries
//   - full contract subtotal = materials + labour + subcontractors + preliminaries;
//     labour-only drops materials
//   - overhead and contingency are each charged on the subtotal
//   - percentage profit is taken on each subcontractor amount and on materials,
//     never on labour, overhead or contingency; fixed profit is added as is
//   - total = round-half-up(subtotal + overhead + contingency + profit)
func CalculateSummary(boq BOQ, fin FinancialSettings) Summary {
	s := Summary{MaterialsCost: boq.MaterialsCost()}

	s.LabourCost = fin.Labour.Amount(s.MaterialsCost)
	s.PermitCost = fin.Permit.Amount(s.MaterialsCost)

	for _, p := range fin.Preliminaries {
		s.PreliminariesTotal += shared.NonNegative(p.Amount)
	}
	s.PreliminariesTotal += s.PermitCost

	for _, sc := range fin.Subcontractors {
		s.SubcontractorTotal += shared.NonNegative(sc.Amount)
	}

	if fin.ContractType == ContractLabourOnly {
		s.Subtotal = s.LabourCost + s.PreliminariesTotal + s.SubcontractorTotal
	} else {
		s.Subtotal = s.MaterialsCost + s.LabourCost + s.SubcontractorTotal + s.PreliminariesTotal
	}

	s.OverheadAmount = fin.Overhead.Amount(s.Subtotal)
	s.ContingencyAmount = fin.Contingency.Amount(s.Subtotal)
	s.ProfitAmount = profit(fin, s.MaterialsCost)

	s.TotalAmount = shared.RoundHalfUp(s.Subtotal + s.OverheadAmount + s.ContingencyAmount + s.ProfitAmount)
	return s
}

func profit(fin FinancialSettings, materials float64) float64 {
	if fin.Profit.Mode == ModeFixed {
		return fin.Profit.Amount(0)
	}
	total := 0.0
	for _, sc := range fin.Subcontractors {
		total += fin.Profit.Amount(sc.Amount)
	}
	return total + fin.Profit.Amount(materials)
}
