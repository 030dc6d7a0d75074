package domain

// MethodType identifies a fertilizer application method.
type MethodType string

const (
	MethodBroadcast MethodType = "broadcast"
	MethodBand      MethodType = "band"
	MethodSidedress MethodType = "sidedress"
	MethodFoliar    MethodType = "foliar"
	MethodInjection MethodType = "injection"
	MethodDrip      MethodType = "drip"
)

// ImpactLevel is a categorical environmental impact rating.
type ImpactLevel string

const (
	ImpactLow      ImpactLevel = "low"
	ImpactModerate ImpactLevel = "moderate"
	ImpactHigh     ImpactLevel = "high"
)

// LaborIntensity is a categorical labor requirement rating.
type LaborIntensity string

const (
	LaborLow    LaborIntensity = "low"
	LaborMedium LaborIntensity = "medium"
	LaborHigh   LaborIntensity = "high"
)

// ApplicationMethod is a candidate fertilizer application method
// supplied by the caller. Read-only input to the scorer.
type ApplicationMethod struct {
	Type                MethodType        `json:"method_type"`
	CostPerAcre         float64           `json:"cost_per_acre"`
	EfficiencyRating    float64           `json:"efficiency_rating"`
	EnvironmentalImpact ImpactLevel       `json:"environmental_impact"`
	LaborIntensity      LaborIntensity    `json:"labor_intensity"`
	EquipmentRequired   []string          `json:"equipment_requirements,omitempty"`
	Suitability         map[string]string `json:"suitability_factors,omitempty"`
}
