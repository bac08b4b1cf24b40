package models

// RecommendedInfo carries the growing-condition metadata attached to a crop
// by the recommendation endpoint.
type RecommendedInfo struct {
	Crop           string `json:"Crop"`
	AvgArea        string `json:"Avg Area"`
	Drainage       string `json:"Drainage"`
	CompanionCrop1 string `json:"Companion Crop 1"`
	CompanionCrop2 string `json:"Companion Crop 2"`
	SoilType       string `json:"Soil Type"`
	Potted         string `json:"Potted"`
	Sunlight       string `json:"Sunlight"`
	WaterNeeds     string `json:"Water Needs"`
}

// Crop is the catalog record for a single crop. Garden membership is keyed
// by Name; ID is only used for display ordering.
type Crop struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	ImageURL         string           `json:"imageURL"`
	ScientificName   string           `json:"scientific_name"`
	Description      string           `json:"description"`
	Origin           string           `json:"origin"`
	GrowingCondition string           `json:"growing_conditions"`
	PlantingInfo     string           `json:"planting_info"`
	CareInstructions string           `json:"care_instructions"`
	StorageInfo      string           `json:"storage_info"`
	NutritionalInfo  string           `json:"nutritional_info"`
	CulinaryInfo     string           `json:"culinary_info"`
	RecommendedInfo  *RecommendedInfo `json:"recommended_info,omitempty"`
	CompanionCrops   []string         `json:"companion_crops,omitempty"`
}

// RecommendationQuery describes the growing conditions sent to /recommend.
type RecommendationQuery struct {
	Location          string `json:"location"`
	Sunlight          string `json:"sunlight"`
	WaterNeeds        string `json:"water_needs"`
	AvgArea           int    `json:"avg_area"`
	IncludeCompanions bool   `json:"include_companions"`
}
