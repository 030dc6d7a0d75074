package scenario

import (
	"testing"

	"github.com/agrifield/advisor/internal/core/domain"
	"github.com/agrifield/advisor/internal/decision/engine"
)

func windyRequest() domain.DecisionRequest {
	return domain.DecisionRequest{
		Rule: domain.RuleDecisionTree,
		Methods: []domain.ApplicationMethod{
			{
				Type:                domain.MethodBroadcast,
				CostPerAcre:         10.0,
				EfficiencyRating:    0.8,
				EnvironmentalImpact: domain.ImpactModerate,
				LaborIntensity:      domain.LaborLow,
			},
			{
				Type:                domain.MethodInjection,
				CostPerAcre:         12.0,
				EfficiencyRating:    0.8,
				EnvironmentalImpact: domain.ImpactLow,
				LaborIntensity:      domain.LaborMedium,
			},
		},
		Field: domain.FieldConditions{Acres: 160, SoilType: "loam", WindSpeedMPH: 8},
		Crop:  domain.CropRequirements{Crop: "corn", GrowthStage: domain.StageVegetative},
	}
}

// Identical perturbations must produce the identical primary in all
// three scenarios and report the analysis as stable.
func TestAnalyze_IdenticalPerturbationsStable(t *testing.T) {
	a := New(engine.New(engine.Config{}))
	same := Perturbation{Name: "nominal"}

	analysis, err := a.Analyze(windyRequest(), Perturbations{
		Best:       same,
		Worst:      same,
		MostLikely: same,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !analysis.Stable {
		t.Error("identical perturbations reported unstable")
	}
	if analysis.BestCase != analysis.WorstCase || analysis.WorstCase != analysis.MostLikely {
		t.Errorf("scenarios diverged: %s/%s/%s",
			analysis.BestCase, analysis.WorstCase, analysis.MostLikely)
	}
	if len(analysis.SensitiveTo) != 0 {
		t.Errorf("stable analysis has sensitivities: %v", analysis.SensitiveTo)
	}
}

// A narrow lead that only survives calm weather flips under the
// worst-case wind, and the sweep pins the flip on the wind dimension.
func TestAnalyze_WindSensitivity(t *testing.T) {
	a := New(engine.New(engine.Config{}))

	analysis, err := a.Analyze(windyRequest(), DefaultPerturbations())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if analysis.MostLikely != domain.MethodBroadcast {
		t.Fatalf("most likely = %s, want broadcast", analysis.MostLikely)
	}
	if analysis.WorstCase != domain.MethodInjection {
		t.Errorf("worst case = %s, want injection", analysis.WorstCase)
	}
	if analysis.Stable {
		t.Error("expected unstable analysis")
	}

	foundWind := false
	for _, dim := range analysis.SensitiveTo {
		if dim == "wind" {
			foundWind = true
		}
	}
	if !foundWind {
		t.Errorf("SensitiveTo = %v, want wind included", analysis.SensitiveTo)
	}
}

func TestAnalyze_DoesNotMutateRequest(t *testing.T) {
	a := New(engine.New(engine.Config{}))
	req := windyRequest()

	if _, err := a.Analyze(req, DefaultPerturbations()); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if req.Methods[0].CostPerAcre != 10.0 || req.Methods[0].LaborIntensity != domain.LaborLow {
		t.Errorf("request methods mutated: %+v", req.Methods[0])
	}
	if req.Field.WindSpeedMPH != 8 {
		t.Errorf("request field mutated: wind = %v", req.Field.WindSpeedMPH)
	}
}

func TestShiftLabor(t *testing.T) {
	tests := []struct {
		in    domain.LaborIntensity
		shift int
		want  domain.LaborIntensity
	}{
		{domain.LaborLow, 1, domain.LaborMedium},
		{domain.LaborMedium, 1, domain.LaborHigh},
		{domain.LaborHigh, 1, domain.LaborHigh},
		{domain.LaborMedium, -1, domain.LaborLow},
		{domain.LaborLow, -1, domain.LaborLow},
		{domain.LaborMedium, 0, domain.LaborMedium},
	}
	for _, tt := range tests {
		if got := shiftLabor(tt.in, tt.shift); got != tt.want {
			t.Errorf("shiftLabor(%s, %d) = %s, want %s", tt.in, tt.shift, got, tt.want)
		}
	}
}
