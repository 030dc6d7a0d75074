// Package criteria computes normalized per-criterion scores for
// candidate fertilizer application methods.
package criteria

import (
	"strconv"

	"github.com/agrifield/advisor/internal/core/domain"
)

// Criterion names used across the decision engine.
const (
	CriterionCost        = "cost_effectiveness"
	CriterionEfficiency  = "efficiency"
	CriterionEnvironment = "environmental_impact"
	CriterionEquipment   = "equipment_compatibility"
	CriterionSuitability = "field_suitability"
	CriterionLabor       = "labor"
)

// All lists every criterion in evaluation order.
var All = []string{
	CriterionCost,
	CriterionEfficiency,
	CriterionEnvironment,
	CriterionEquipment,
	CriterionSuitability,
	CriterionLabor,
}

// DefaultWeights is the criterion weighting used when the caller
// supplies none. Sums to 1.0.
var DefaultWeights = map[string]float64{
	CriterionCost:        0.25,
	CriterionEfficiency:  0.25,
	CriterionEnvironment: 0.15,
	CriterionEquipment:   0.15,
	CriterionSuitability: 0.12,
	CriterionLabor:       0.08,
}

// sizePenalties down-adjusts efficiency when the method is a poor fit
// for the field size class.
var sizePenalties = map[domain.MethodType]map[domain.FieldSizeClass]float64{
	domain.MethodBand:      {domain.FieldSizeVeryLarge: 0.15},
	domain.MethodSidedress: {domain.FieldSizeVeryLarge: 0.10},
	domain.MethodFoliar:    {domain.FieldSizeLarge: 0.10, domain.FieldSizeVeryLarge: 0.20},
	domain.MethodDrip:      {domain.FieldSizeVeryLarge: 0.15},
	domain.MethodBroadcast: {domain.FieldSizeSmall: 0.05},
}

// Score computes the per-criterion scores for one candidate method.
// costCeiling anchors cost normalization; pass the maximum
// CostPerAcre across the candidate set (or a configured ceiling).
// Every returned value is within [0, 1].
func Score(
	m domain.ApplicationMethod,
	field domain.FieldConditions,
	crop domain.CropRequirements,
	fert domain.FertilizerSpec,
	equipment []string,
	costCeiling float64,
) map[string]float64 {
	return map[string]float64{
		CriterionCost:        costScore(m.CostPerAcre, costCeiling),
		CriterionEfficiency:  efficiencyScore(m, field),
		CriterionEnvironment: environmentScore(m.EnvironmentalImpact),
		CriterionEquipment:   equipmentScore(m.EquipmentRequired, equipment),
		CriterionSuitability: suitabilityScore(m, field, crop, fert),
		CriterionLabor:       laborScore(m.LaborIntensity),
	}
}

// costScore is inverse-normalized against the ceiling: cheaper scores
// higher. score = 1 - cost/ceiling, clamped.
func costScore(cost, ceiling float64) float64 {
	if ceiling <= 0 {
		return 1.0
	}
	return clamp01(1.0 - cost/ceiling)
}

func efficiencyScore(m domain.ApplicationMethod, field domain.FieldConditions) float64 {
	score := m.EfficiencyRating
	if penalties, ok := sizePenalties[m.Type]; ok {
		score -= penalties[domain.FieldSizeForAcres(field.Acres)]
	}
	return clamp01(score)
}

func environmentScore(impact domain.ImpactLevel) float64 {
	switch impact {
	case domain.ImpactLow:
		return 1.0
	case domain.ImpactModerate:
		return 0.6
	case domain.ImpactHigh:
		return 0.3
	default:
		return 0.6
	}
}

// equipmentScore is the fraction of required equipment present in the
// available set. A method requiring nothing scores 1.0.
func equipmentScore(required, available []string) float64 {
	if len(required) == 0 {
		return 1.0
	}

	have := make(map[string]bool, len(available))
	for _, e := range available {
		have[e] = true
	}

	matched := 0
	for _, e := range required {
		if have[e] {
			matched++
		}
	}
	return clamp01(float64(matched) / float64(len(required)))
}

// suitabilityScore checks the method's declared suitability factors
// against the field and crop. Exact matches and "all" wildcards earn
// full credit; mismatches earn zero. The score is the mean credit
// over the factors considered; no factors means fully suitable.
func suitabilityScore(
	m domain.ApplicationMethod,
	field domain.FieldConditions,
	crop domain.CropRequirements,
	fert domain.FertilizerSpec,
) float64 {
	if len(m.Suitability) == 0 {
		return 1.0
	}

	considered := 0
	credit := 0.0
	for factor, want := range m.Suitability {
		switch factor {
		case "soil_type":
			considered++
			if want == "all" || want == field.SoilType {
				credit++
			}
		case "crop":
			considered++
			if want == "all" || want == crop.Crop {
				credit++
			}
		case "max_slope_pct":
			considered++
			limit, err := strconv.ParseFloat(want, 64)
			if err != nil || field.SlopePercent <= limit {
				credit++
			}
		case "form":
			considered++
			if want == "all" || want == fert.Form {
				credit++
			}
		}
	}

	if considered == 0 {
		return 1.0
	}
	return clamp01(credit / float64(considered))
}

func laborScore(intensity domain.LaborIntensity) float64 {
	switch intensity {
	case domain.LaborLow:
		return 1.0
	case domain.LaborMedium:
		return 0.6
	case domain.LaborHigh:
		return 0.3
	default:
		return 0.6
	}
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
