// Package domain holds the feature catalog models and the value
// resolution rules shared by plan management and billing readiness.
package domain

// FeatureDefinition is a catalog entry. The catalog is supplied
// externally and is read-only to this service.
type FeatureDefinition struct {
	Key          string  `gorm:"primaryKey" json:"key"`
	Name         string  `gorm:"type:text;not null" json:"name"`
	Description  *string `json:"description"`
	FType        string  `gorm:"column:ftype" json:"ftype"`
	DefaultValue *string `json:"default_value"`
	Unit         *string `json:"unit"`
	IsMetered    bool    `json:"is_metered"`
}

func (FeatureDefinition) TableName() string { return "feature_definitions" }

// EffectiveValue is the resolved feature value for one organization.
type EffectiveValue struct {
	OrgID      string  `json:"org_id"`
	FeatureKey string  `json:"feature_key"`
	Value      *string `json:"value"`
}

// Resolve applies the precedence rule: org override wins over the plan
// value, the plan value wins over the catalog default.
func Resolve(override, planValue, catalogDefault *string) *string {
	if override != nil {
		return override
	}
	if planValue != nil {
		return planValue
	}
	return catalogDefault
}
