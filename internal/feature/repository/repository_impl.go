package repository

import (
	"context"

	"github.com/fleetgrid/ownerconsole/internal/feature/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListDefinitions(ctx context.Context) ([]domain.FeatureDefinition, error) {
	var defs []domain.FeatureDefinition
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&defs).Error
	if err != nil {
		return nil, err
	}
	return defs, nil
}

type effectiveRow struct {
	OrgID         string
	FeatureKey    string
	OverrideValue *string
	PlanValue     *string
	DefaultValue  *string
}

func (r *repository) EffectiveForKeys(ctx context.Context, keys []string) ([]domain.EffectiveValue, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	var rows []effectiveRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT o.id AS org_id,
		        fd.key AS feature_key,
		        ofo.value AS override_value,
		        pf.value AS plan_value,
		        fd.default_value AS default_value
		 FROM organizations o
		 CROSS JOIN feature_definitions fd
		 LEFT JOIN org_feature_overrides ofo
		     ON ofo.org_id = o.id AND ofo.feature_key = fd.key
		 LEFT JOIN plan_features pf
		     ON pf.plan_id = o.plan_id AND pf.feature_key = fd.key
		 WHERE fd.key IN ?`,
		keys,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	values := make([]domain.EffectiveValue, 0, len(rows))
	for _, row := range rows {
		values = append(values, domain.EffectiveValue{
			OrgID:      row.OrgID,
			FeatureKey: row.FeatureKey,
			Value:      domain.Resolve(row.OverrideValue, row.PlanValue, row.DefaultValue),
		})
	}
	return values, nil
}
