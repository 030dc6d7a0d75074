// Package engine ranks candidate fertilizer application methods using
// configurable multi-criteria aggregation rules.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/agrifield/advisor/internal/core/domain"
	"github.com/agrifield/advisor/internal/decision/criteria"
	"github.com/agrifield/advisor/internal/metrics"
)

var (
	// ErrNoCandidates is returned when the request has no methods to rank
	ErrNoCandidates = errors.New("no candidate methods provided")

	// ErrMissingFieldConditions is returned when field context is absent
	ErrMissingFieldConditions = errors.New("field conditions are required")
)

// Config holds engine tuning knobs.
type Config struct {
	DefaultRule     domain.DecisionRule
	MaxAlternatives int
	CostCeiling     float64 // 0 = derive from the candidate set
	ConfidenceCap   float64
}

// Engine computes decision support results.
type Engine struct {
	cfg Config
}

// New creates an engine with defaults applied.
func New(cfg Config) *Engine {
	if cfg.DefaultRule == "" {
		cfg.DefaultRule = domain.RuleWeightedSum
	}
	if cfg.MaxAlternatives <= 0 {
		cfg.MaxAlternatives = 5
	}
	if cfg.ConfidenceCap <= 0 || cfg.ConfidenceCap > 1 {
		cfg.ConfidenceCap = 0.95
	}
	return &Engine{cfg: cfg}
}

// Decide validates the request, scores every candidate, and ranks
// them under the requested aggregation rule.
func (e *Engine) Decide(req domain.DecisionRequest) (*domain.DecisionResult, error) {
	start := time.Now()

	if len(req.Methods) == 0 {
		return nil, ErrNoCandidates
	}
	if req.Field == (domain.FieldConditions{}) {
		return nil, ErrMissingFieldConditions
	}

	rule := req.Rule
	if rule == "" {
		rule = e.cfg.DefaultRule
	}

	weights := normalizeWeights(req.Weights)
	ceiling := e.costCeiling(req)

	matrix := make(map[domain.MethodType]map[string]float64, len(req.Methods))
	for _, m := range req.Methods {
		matrix[m.Type] = criteria.Score(m, req.Field, req.Crop, req.Fertilizer, req.Equipment, ceiling)
	}

	var recs []domain.Recommendation
	switch rule {
	case domain.RuleWeightedSum:
		recs = weightedSumRank(req.Methods, matrix, weights)
	case domain.RuleDecisionTree:
		recs = e.treeRank(req, matrix, weights, baseRules)
	case domain.RuleExpert:
		recs = e.treeRank(req, matrix, weights, expertRules)
	case domain.RuleTOPSIS:
		recs = topsisRank(req.Methods, matrix, weights, criteria.All)
	default:
		return nil, fmt.Errorf("unsupported decision rule: %s", rule)
	}

	if len(recs) == 0 {
		return nil, fmt.Errorf("no candidate method survived the %s rules", rule)
	}

	sortRecommendations(recs)

	primary := recs[0]
	alternatives := recs[1:]
	if len(alternatives) > e.cfg.MaxAlternatives {
		alternatives = alternatives[:e.cfg.MaxAlternatives]
	}

	result := &domain.DecisionResult{
		ID:           uuid.NewString(),
		Rule:         rule,
		Primary:      primary,
		Alternatives: alternatives,
		Confidence:   e.confidence(recs, weights),
		Risk:         assessRisk(primary),
		Matrix:       matrix,
		CreatedAt:    time.Now().UTC(),
	}

	metrics.DecisionsTotal.WithLabelValues(string(rule)).Inc()
	metrics.DecisionLatency.WithLabelValues(string(rule)).Observe(time.Since(start).Seconds())

	return result, nil
}

// costCeiling anchors cost normalization: an explicit request or
// engine ceiling wins, otherwise the candidate set's maximum cost.
func (e *Engine) costCeiling(req domain.DecisionRequest) float64 {
	if req.CostCeiling > 0 {
		return req.CostCeiling
	}
	if e.cfg.CostCeiling > 0 {
		return e.cfg.CostCeiling
	}
	ceiling := 0.0
	for _, m := range req.Methods {
		if m.CostPerAcre > ceiling {
			ceiling = m.CostPerAcre
		}
	}
	return ceiling
}

// normalizeWeights scales the caller's weights to sum to 1.0, falling
// back to the default weighting when none are supplied.
func normalizeWeights(weights map[string]float64) map[string]float64 {
	if len(weights) == 0 {
		weights = criteria.DefaultWeights
	}

	sum := 0.0
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum == 0 {
		return criteria.DefaultWeights
	}

	normalized := make(map[string]float64, len(weights))
	for name, w := range weights {
		if w > 0 {
			normalized[name] = w / sum
		}
	}
	return normalized
}

func weightedSumRank(
	methods []domain.ApplicationMethod,
	matrix map[domain.MethodType]map[string]float64,
	weights map[string]float64,
) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(methods))
	for _, m := range methods {
		total := 0.0
		for name, w := range weights {
			total += w * matrix[m.Type][name]
		}
		recs = append(recs, domain.Recommendation{
			Method: m.Type,
			Total:  total,
			Scores: matrix[m.Type],
		})
	}
	return recs
}

// treeRank applies the rule set, drops disqualified methods, and
// breaks ties among survivors with the weighted sum. If every method
// is disqualified the weighted ranking of the full set is used so the
// caller still gets an ordering.
func (e *Engine) treeRank(
	req domain.DecisionRequest,
	matrix map[domain.MethodType]map[string]float64,
	weights map[string]float64,
	rules []treeRule,
) []domain.Recommendation {
	var recs []domain.Recommendation
	for _, m := range req.Methods {
		disqualified, penalty, reasons := applyRules(rules, req, m)
		if disqualified {
			continue
		}

		total := 0.0
		for name, w := range weights {
			total += w * matrix[m.Type][name]
		}
		total -= penalty
		if total < 0 {
			total = 0
		}

		recs = append(recs, domain.Recommendation{
			Method:  m.Type,
			Total:   total,
			Scores:  matrix[m.Type],
			Reasons: reasons,
		})
	}

	if len(recs) == 0 {
		return weightedSumRank(req.Methods, matrix, weights)
	}
	return recs
}

// sortRecommendations orders by total descending with the method name
// as a deterministic tie-break.
func sortRecommendations(recs []domain.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Total != recs[j].Total {
			return recs[i].Total > recs[j].Total
		}
		return recs[i].Method < recs[j].Method
	})
}

// confidence derives from the score gap between the top two
// candidates, capped, and penalized when a weighted criterion is
// missing from the score matrix.
func (e *Engine) confidence(recs []domain.Recommendation, weights map[string]float64) float64 {
	var gap float64
	if len(recs) < 2 {
		gap = recs[0].Total
	} else {
		gap = recs[0].Total - recs[1].Total
	}

	conf := 0.5 + 2*gap

	for name := range weights {
		if _, ok := recs[0].Scores[name]; !ok {
			conf *= 0.8
		}
	}

	if conf > e.cfg.ConfidenceCap {
		conf = e.cfg.ConfidenceCap
	}
	if conf < 0 {
		conf = 0
	}
	return conf
}

// assessRisk rolls risk up from the winner's environmental-impact and
// equipment-compatibility scores.
func assessRisk(primary domain.Recommendation) domain.RiskAssessment {
	env := primary.Scores[criteria.CriterionEnvironment]
	equip := primary.Scores[criteria.CriterionEquipment]

	var factors []string
	if env < 0.7 {
		factors = append(factors, "elevated environmental impact")
	}
	if equip < 0.8 {
		factors = append(factors, "equipment gaps for the recommended method")
	}

	level := domain.RiskLow
	switch {
	case env < 0.4 || equip < 0.5:
		level = domain.RiskHigh
	case env < 0.7 || equip < 0.8:
		level = domain.RiskMedium
	}

	return domain.RiskAssessment{Level: level, Factors: factors}
}
