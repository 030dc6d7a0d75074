// Package scenario re-evaluates decisions under perturbed inputs to
// test recommendation stability.
package scenario

import (
	"fmt"

	"github.com/agrifield/advisor/internal/core/domain"
	"github.com/agrifield/advisor/internal/decision/engine"
)

// Perturbation adjusts a decision request's inputs. Zero values leave
// the corresponding input unchanged.
type Perturbation struct {
	Name            string
	EfficiencyDelta float64 // added to every method's efficiency rating
	CostFactor      float64 // multiplies every method's cost; 0 means 1.0
	LaborShift      int     // -1 lightens, +1 worsens labor intensity
	WindDeltaMPH    float64 // added to field wind speed
}

// Perturbations bundles the three scenario cases.
type Perturbations struct {
	Best       Perturbation
	Worst      Perturbation
	MostLikely Perturbation
}

// DefaultPerturbations models favorable, unfavorable, and nominal
// conditions.
func DefaultPerturbations() Perturbations {
	return Perturbations{
		Best: Perturbation{
			Name:            "best_case",
			EfficiencyDelta: 0.1,
			CostFactor:      0.9,
			LaborShift:      -1,
		},
		Worst: Perturbation{
			Name:            "worst_case",
			EfficiencyDelta: -0.1,
			CostFactor:      1.2,
			LaborShift:      1,
			WindDeltaMPH:    10,
		},
		MostLikely: Perturbation{
			Name: "most_likely",
		},
	}
}

// Analyzer runs the decision engine under perturbed inputs.
type Analyzer struct {
	engine *engine.Engine
}

// New creates an analyzer over the given engine.
func New(e *engine.Engine) *Analyzer {
	return &Analyzer{engine: e}
}

// Analyze evaluates the request under best/worst/most-likely
// perturbations and sweeps each worst-case input one at a time to
// identify which single change flips the recommendation.
func (a *Analyzer) Analyze(
	req domain.DecisionRequest,
	p Perturbations,
) (*domain.ScenarioAnalysis, error) {
	best, err := a.primaryFor(req, p.Best)
	if err != nil {
		return nil, fmt.Errorf("best case: %w", err)
	}
	worst, err := a.primaryFor(req, p.Worst)
	if err != nil {
		return nil, fmt.Errorf("worst case: %w", err)
	}
	likely, err := a.primaryFor(req, p.MostLikely)
	if err != nil {
		return nil, fmt.Errorf("most likely case: %w", err)
	}

	analysis := &domain.ScenarioAnalysis{
		BestCase:   best,
		WorstCase:  worst,
		MostLikely: likely,
		Stable:     best == worst && worst == likely,
	}

	if !analysis.Stable {
		sensitive, err := a.sweep(req, likely, p.Worst)
		if err != nil {
			return nil, err
		}
		analysis.SensitiveTo = sensitive
	}

	return analysis, nil
}

// sweep applies each dimension of the worst-case perturbation alone
// and records the ones that flip the nominal recommendation.
func (a *Analyzer) sweep(
	req domain.DecisionRequest,
	nominal domain.MethodType,
	worst Perturbation,
) ([]string, error) {
	dims := []Perturbation{
		{Name: "cost", CostFactor: worst.CostFactor},
		{Name: "efficiency", EfficiencyDelta: worst.EfficiencyDelta},
		{Name: "labor", LaborShift: worst.LaborShift},
		{Name: "wind", WindDeltaMPH: worst.WindDeltaMPH},
	}

	var sensitive []string
	for _, dim := range dims {
		if isNoop(dim) {
			continue
		}
		primary, err := a.primaryFor(req, dim)
		if err != nil {
			return nil, fmt.Errorf("sensitivity sweep %s: %w", dim.Name, err)
		}
		if primary != nominal {
			sensitive = append(sensitive, dim.Name)
		}
	}
	return sensitive, nil
}

func isNoop(p Perturbation) bool {
	return p.EfficiencyDelta == 0 &&
		(p.CostFactor == 0 || p.CostFactor == 1) &&
		p.LaborShift == 0 &&
		p.WindDeltaMPH == 0
}

func (a *Analyzer) primaryFor(
	req domain.DecisionRequest,
	p Perturbation,
) (domain.MethodType, error) {
	result, err := a.engine.Decide(apply(req, p))
	if err != nil {
		return "", err
	}
	return result.Primary.Method, nil
}

// apply returns a deep-enough copy of the request with the
// perturbation applied; the original request is never mutated.
func apply(req domain.DecisionRequest, p Perturbation) domain.DecisionRequest {
	out := req
	out.Methods = make([]domain.ApplicationMethod, len(req.Methods))
	copy(out.Methods, req.Methods)

	costFactor := p.CostFactor
	if costFactor == 0 {
		costFactor = 1
	}

	for i := range out.Methods {
		out.Methods[i].EfficiencyRating = clamp01(out.Methods[i].EfficiencyRating + p.EfficiencyDelta)
		out.Methods[i].CostPerAcre *= costFactor
		out.Methods[i].LaborIntensity = shiftLabor(out.Methods[i].LaborIntensity, p.LaborShift)
	}

	out.Field.WindSpeedMPH += p.WindDeltaMPH
	if out.Field.WindSpeedMPH < 0 {
		out.Field.WindSpeedMPH = 0
	}

	return out
}

func shiftLabor(l domain.LaborIntensity, shift int) domain.LaborIntensity {
	if shift == 0 {
		return l
	}
	order := []domain.LaborIntensity{domain.LaborLow, domain.LaborMedium, domain.LaborHigh}
	idx := 1
	for i, v := range order {
		if v == l {
			idx = i
			break
		}
	}
	idx += shift
	if idx < 0 {
		idx = 0
	}
	if idx >= len(order) {
		idx = len(order) - 1
	}
	return order[idx]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
