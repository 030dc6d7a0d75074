package domain

// FieldSizeClass buckets acreage for suitability adjustments.
type FieldSizeClass string

const (
	FieldSizeSmall     FieldSizeClass = "small"
	FieldSizeMedium    FieldSizeClass = "medium"
	FieldSizeLarge     FieldSizeClass = "large"
	FieldSizeVeryLarge FieldSizeClass = "very_large"
)

// FieldSizeForAcres buckets a field into a size class.
func FieldSizeForAcres(acres float64) FieldSizeClass {
	switch {
	case acres < 50:
		return FieldSizeSmall
	case acres < 200:
		return FieldSizeMedium
	case acres < 1000:
		return FieldSizeLarge
	default:
		return FieldSizeVeryLarge
	}
}

// GrowthStage identifies the crop growth stage at application time.
type GrowthStage string

const (
	StagePreplant     GrowthStage = "preplant"
	StageVegetative   GrowthStage = "vegetative"
	StageReproductive GrowthStage = "reproductive"
	StageMaturity     GrowthStage = "maturity"
)

// FieldConditions describes the field a decision applies to.
type FieldConditions struct {
	Acres        float64 `json:"acres"`
	SoilType     string  `json:"soil_type"`
	SlopePercent float64 `json:"slope_percent"`
	Irrigated    bool    `json:"irrigated"`
	WindSpeedMPH float64 `json:"wind_speed_mph"`
}

// CropRequirements describes the crop being fertilized.
type CropRequirements struct {
	Crop        string      `json:"crop"`
	GrowthStage GrowthStage `json:"growth_stage"`
	TargetRate  float64     `json:"target_rate_lbs_per_acre"`
}

// FertilizerSpec describes the product being applied.
type FertilizerSpec struct {
	Product  string `json:"product"`
	Form     string `json:"form"` // granular, liquid, gas
	Analysis string `json:"analysis,omitempty"`
}
