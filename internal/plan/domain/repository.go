package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, plan Plan) error
	InsertFeatures(ctx context.Context, features []PlanFeature) error
	Rename(ctx context.Context, planID, name string) (int64, error)
	DeleteFeatures(ctx context.Context, planID string) error
	DeletePlan(ctx context.Context, planID string) (int64, error)
	List(ctx context.Context) ([]Plan, error)
	ListFeatures(ctx context.Context) ([]PlanFeature, error)
	// Names returns an id to display-name lookup for every plan.
	Names(ctx context.Context) (map[string]string, error)
}
