package domain

import "time"

// DecisionRule selects the aggregation rule used to rank candidates.
type DecisionRule string

const (
	RuleWeightedSum  DecisionRule = "weighted_sum"
	RuleDecisionTree DecisionRule = "decision_tree"
	RuleTOPSIS       DecisionRule = "topsis"
	RuleExpert       DecisionRule = "expert"
)

// RiskLevel is the categorical risk roll-up for a recommendation.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// DecisionRequest is the inbound boundary contract for one decision.
type DecisionRequest struct {
	Methods         []ApplicationMethod `json:"methods"`
	Field           FieldConditions     `json:"field_conditions"`
	Crop            CropRequirements    `json:"crop_requirements"`
	Fertilizer      FertilizerSpec      `json:"fertilizer"`
	Equipment       []string            `json:"equipment,omitempty"`
	Weights         map[string]float64  `json:"weights,omitempty"`
	Rule            DecisionRule        `json:"rule,omitempty"`
	CostCeiling     float64             `json:"cost_ceiling,omitempty"` // 0 = derive from candidates
	IncludeScenario bool                `json:"include_scenario,omitempty"`
}

// Recommendation is one ranked candidate with its scores.
type Recommendation struct {
	Method  MethodType         `json:"method"`
	Total   float64            `json:"total_score"`
	Scores  map[string]float64 `json:"criterion_scores"`
	Reasons []string           `json:"reasons,omitempty"`
}

// RiskAssessment rolls risk up from the winning candidate's scores.
type RiskAssessment struct {
	Level   RiskLevel `json:"overall_risk_level"`
	Factors []string  `json:"factors,omitempty"`
}

// ScenarioAnalysis reports recommendation stability across
// best/worst/most-likely input perturbations.
type ScenarioAnalysis struct {
	BestCase    MethodType `json:"best_case"`
	WorstCase   MethodType `json:"worst_case"`
	MostLikely  MethodType `json:"most_likely"`
	Stable      bool       `json:"stable"`
	SensitiveTo []string   `json:"sensitive_to,omitempty"`
}

// DecisionResult is the terminal output of one decision request.
type DecisionResult struct {
	ID           string                            `json:"decision_id"`
	Rule         DecisionRule                      `json:"rule"`
	Primary      Recommendation                    `json:"primary_recommendation"`
	Alternatives []Recommendation                  `json:"alternative_recommendations,omitempty"`
	Confidence   float64                           `json:"confidence_level"`
	Risk         RiskAssessment                    `json:"risk_assessment"`
	Matrix       map[MethodType]map[string]float64 `json:"decision_matrix,omitempty"`
	Scenario     *ScenarioAnalysis                 `json:"scenario_analysis,omitempty"`
	CreatedAt    time.Time                         `json:"created_at"`
}
