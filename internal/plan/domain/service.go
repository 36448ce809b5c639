package domain

import (
	"context"
	"errors"

	featuredomain "github.com/fleetgrid/ownerconsole/internal/feature/domain"
)

type Service interface {
	List(ctx context.Context) (*ListResponse, error)
	Create(ctx context.Context, req CreateRequest) (string, error)
	Rename(ctx context.Context, planID, name string) error
	// Delete removes the plan's feature rows first, then the plan row.
	// Deleting a nonexistent plan is an idempotent no-op.
	Delete(ctx context.Context, planID string) error
	// ReplaceFeatures is full-replace: features omitted from the
	// submitted set are removed from the plan.
	ReplaceFeatures(ctx context.Context, planID string, features []FeatureInput) error
}

type CreateRequest struct {
	ID       string
	Name     string
	Features []FeatureInput
}

type FeatureInput struct {
	FeatureKey string
	Value      string
	Enforced   *bool
}

type ListResponse struct {
	Plans              []Plan                            `json:"plans"`
	PlanFeatures       []PlanFeature                     `json:"planFeatures"`
	FeatureDefinitions []featuredomain.FeatureDefinition `json:"featureDefinitions"`
}

var (
	ErrInvalidPlanID       = errors.New("invalid_plan_id")
	ErrInvalidPlanName     = errors.New("invalid_plan_name")
	ErrInvalidFeatureKey   = errors.New("invalid_feature_key")
	ErrInvalidFeatureValue = errors.New("invalid_feature_value")
	ErrPlanExists          = errors.New("plan_exists")
)
