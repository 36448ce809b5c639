// Package domain contains the subscription plan catalog models.
package domain

import "time"

// Plan is a named bundle of feature values applicable to organizations.
// The id is user-chosen and referenced by organizations.plan_id.
type Plan struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Plan) TableName() string { return "plans" }

// PlanFeature is a plan-scoped feature value. When enforced, tenants
// cannot override the plan's value.
type PlanFeature struct {
	PlanID     string `gorm:"primaryKey" json:"plan_id"`
	FeatureKey string `gorm:"primaryKey" json:"feature_key"`
	Value      string `gorm:"type:text;not null" json:"value"`
	Enforced   bool   `gorm:"not null;default:true" json:"enforced"`
}

func (PlanFeature) TableName() string { return "plan_features" }
