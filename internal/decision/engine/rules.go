package engine

import (
	"github.com/agrifield/advisor/internal/core/domain"
)

// treeRule is one agronomic if/else rule applied before weighted-sum
// tie-breaking. A disqualified method is dropped from the ranking; a
// penalty down-ranks it.
type treeRule struct {
	name  string
	apply func(req domain.DecisionRequest, m domain.ApplicationMethod) (disqualify bool, penalty float64, reason string)
}

// baseRules is the decision-tree rule set.
var baseRules = []treeRule{
	{
		name: "sidedress_window",
		apply: func(req domain.DecisionRequest, m domain.ApplicationMethod) (bool, float64, string) {
			if m.Type == domain.MethodSidedress && req.Crop.GrowthStage == domain.StageReproductive {
				return true, 0, "sidedress window closed after the reproductive stage"
			}
			return false, 0, ""
		},
	},
	{
		name: "band_scale",
		apply: func(req domain.DecisionRequest, m domain.ApplicationMethod) (bool, float64, string) {
			if m.Type == domain.MethodBand &&
				domain.FieldSizeForAcres(req.Field.Acres) == domain.FieldSizeVeryLarge {
				return false, 0.15, "banding is slow to cover very large fields"
			}
			return false, 0, ""
		},
	},
	{
		name: "wind_drift",
		apply: func(req domain.DecisionRequest, m domain.ApplicationMethod) (bool, float64, string) {
			if req.Field.WindSpeedMPH <= 15 {
				return false, 0, ""
			}
			if m.Type == domain.MethodFoliar || m.Type == domain.MethodBroadcast {
				return false, 0.2, "high wind increases drift losses for surface applications"
			}
			return false, 0, ""
		},
	},
}

// expertRules extends the decision tree with additional constraints.
var expertRules = append(baseRules, []treeRule{
	{
		name: "drip_requires_irrigation",
		apply: func(req domain.DecisionRequest, m domain.ApplicationMethod) (bool, float64, string) {
			if m.Type == domain.MethodDrip && !req.Field.Irrigated {
				return true, 0, "drip fertigation requires an irrigation system"
			}
			return false, 0, ""
		},
	},
	{
		name: "foliar_form",
		apply: func(req domain.DecisionRequest, m domain.ApplicationMethod) (bool, float64, string) {
			if m.Type == domain.MethodFoliar && req.Fertilizer.Form == "granular" {
				return true, 0, "foliar application requires a liquid product"
			}
			return false, 0, ""
		},
	},
	{
		name: "injection_slope",
		apply: func(req domain.DecisionRequest, m domain.ApplicationMethod) (bool, float64, string) {
			if m.Type == domain.MethodInjection && req.Field.SlopePercent > 8 {
				return false, 0.15, "injection equipment struggles on steep slopes"
			}
			return false, 0, ""
		},
	},
}...)

// applyRules evaluates a rule set for one method.
func applyRules(
	rules []treeRule,
	req domain.DecisionRequest,
	m domain.ApplicationMethod,
) (disqualified bool, penalty float64, reasons []string) {
	for _, rule := range rules {
		dq, p, reason := rule.apply(req, m)
		if dq {
			return true, 0, []string{reason}
		}
		if p > 0 {
			penalty += p
			reasons = append(reasons, reason)
		}
	}
	return false, penalty, reasons
}
