package repository

import (
	"context"

	"github.com/fleetgrid/ownerconsole/internal/plan/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Insert(ctx context.Context, plan domain.Plan) error {
	return r.db.WithContext(ctx).Create(&plan).Error
}

func (r *repository) InsertFeatures(ctx context.Context, features []domain.PlanFeature) error {
	if len(features) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&features).Error
}

func (r *repository) Rename(ctx context.Context, planID, name string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Plan{}).
		Where("id = ?", planID).
		Update("name", name)
	return result.RowsAffected, result.Error
}

func (r *repository) DeleteFeatures(ctx context.Context, planID string) error {
	return r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Delete(&domain.PlanFeature{}).Error
}

func (r *repository) DeletePlan(ctx context.Context, planID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", planID).
		Delete(&domain.Plan{})
	return result.RowsAffected, result.Error
}

func (r *repository) List(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repository) ListFeatures(ctx context.Context) ([]domain.PlanFeature, error) {
	var features []domain.PlanFeature
	err := r.db.WithContext(ctx).
		Order("plan_id ASC").
		Find(&features).Error
	if err != nil {
		return nil, err
	}
	return features, nil
}

func (r *repository) Names(ctx context.Context) (map[string]string, error) {
	var plans []domain.Plan
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(plans))
	for _, plan := range plans {
		names[plan.ID] = plan.Name
	}
	return names, nil
}
