package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	featurerepo "github.com/fleetgrid/ownerconsole/internal/feature/repository"
	"github.com/fleetgrid/ownerconsole/internal/plan/domain"
	"github.com/fleetgrid/ownerconsole/internal/plan/repository"
	"github.com/fleetgrid/ownerconsole/internal/plan/service"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:plandb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	schema := []string{
		`CREATE TABLE plans (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE plan_features (
			plan_id TEXT NOT NULL,
			feature_key TEXT NOT NULL,
			value TEXT NOT NULL,
			enforced BOOLEAN NOT NULL DEFAULT TRUE,
			PRIMARY KEY (plan_id, feature_key)
		)`,
		`CREATE TABLE feature_definitions (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			ftype TEXT NOT NULL,
			default_value TEXT,
			unit TEXT,
			is_metered BOOLEAN NOT NULL DEFAULT FALSE
		)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}

func newService(db *gorm.DB) domain.Service {
	return service.NewService(db, repository.NewRepository(db), featurerepo.NewRepository(db))
}

func TestCreatePlanWithFeatures(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	enforced := false
	id, err := svc.Create(ctx, domain.CreateRequest{
		ID:   "starter",
		Name: "Starter",
		Features: []domain.FeatureInput{
			{FeatureKey: "vehicle_limit", Value: "10"},
			{FeatureKey: "min_monthly_cents", Value: "5000", Enforced: &enforced},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "starter", id)

	resp, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Plans, 1)
	assert.Equal(t, "Starter", resp.Plans[0].Name)
	require.Len(t, resp.PlanFeatures, 2)

	byKey := map[string]domain.PlanFeature{}
	for _, f := range resp.PlanFeatures {
		byKey[f.FeatureKey] = f
	}
	assert.True(t, byKey["vehicle_limit"].Enforced, "enforced defaults to true")
	assert.False(t, byKey["min_monthly_cents"].Enforced)
}

func TestCreatePlanValidation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	cases := []struct {
		name    string
		req     domain.CreateRequest
		wantErr error
	}{
		{"short id", domain.CreateRequest{ID: "a", Name: "Plan"}, domain.ErrInvalidPlanID},
		{"bad id characters", domain.CreateRequest{ID: "has space", Name: "Plan"}, domain.ErrInvalidPlanID},
		{"short name", domain.CreateRequest{ID: "plan_1", Name: "P"}, domain.ErrInvalidPlanName},
		{"empty feature key", domain.CreateRequest{
			ID: "plan_1", Name: "Plan",
			Features: []domain.FeatureInput{{FeatureKey: " ", Value: "1"}},
		}, domain.ErrInvalidFeatureKey},
		{"empty feature value", domain.CreateRequest{
			ID: "plan_1", Name: "Plan",
			Features: []domain.FeatureInput{{FeatureKey: "vehicle_limit", Value: ""}},
		}, domain.ErrInvalidFeatureValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateDuplicatePlan(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	_, err := svc.Create(ctx, domain.CreateRequest{ID: "starter", Name: "Starter"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateRequest{ID: "starter", Name: "Starter Again"})
	assert.ErrorIs(t, err, domain.ErrPlanExists)
}

func TestRenamePlan(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	_, err := svc.Create(ctx, domain.CreateRequest{ID: "starter", Name: "Starter"})
	require.NoError(t, err)

	require.NoError(t, svc.Rename(ctx, "starter", "Starter v2"))

	resp, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Starter v2", resp.Plans[0].Name)
}

func TestRenameMissingPlanIsNoOp(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	assert.NoError(t, svc.Rename(ctx, "ghost", "New Name"))
}

func TestRenameRejectsShortName(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	assert.ErrorIs(t, svc.Rename(ctx, "starter", " x "), domain.ErrInvalidPlanName)
}

func TestDeletePlanCascadesFeatures(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	_, err := svc.Create(ctx, domain.CreateRequest{
		ID:   "starter",
		Name: "Starter",
		Features: []domain.FeatureInput{
			{FeatureKey: "vehicle_limit", Value: "10"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "starter"))

	var planCount, featureCount int64
	require.NoError(t, db.Table("plans").Count(&planCount).Error)
	require.NoError(t, db.Table("plan_features").Count(&featureCount).Error)
	assert.Equal(t, int64(0), planCount)
	assert.Equal(t, int64(0), featureCount)
}

func TestDeleteMissingPlanIsNoOp(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	assert.NoError(t, svc.Delete(ctx, "ghost"))
}

func TestReplaceFeaturesIsFullReplace(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	_, err := svc.Create(ctx, domain.CreateRequest{
		ID:   "starter",
		Name: "Starter",
		Features: []domain.FeatureInput{
			{FeatureKey: "vehicle_limit", Value: "10"},
			{FeatureKey: "min_monthly_cents", Value: "5000"},
		},
	})
	require.NoError(t, err)

	err = svc.ReplaceFeatures(ctx, "starter", []domain.FeatureInput{
		{FeatureKey: "vehicle_limit", Value: "25"},
	})
	require.NoError(t, err)

	resp, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, resp.PlanFeatures, 1)
	assert.Equal(t, "vehicle_limit", resp.PlanFeatures[0].FeatureKey)
	assert.Equal(t, "25", resp.PlanFeatures[0].Value)
}

func TestReplaceFeaturesEmptySetClears(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	_, err := svc.Create(ctx, domain.CreateRequest{
		ID:   "starter",
		Name: "Starter",
		Features: []domain.FeatureInput{
			{FeatureKey: "vehicle_limit", Value: "10"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.ReplaceFeatures(ctx, "starter", nil))

	var count int64
	require.NoError(t, db.Table("plan_features").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestListIncludesCatalog(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	require.NoError(t, db.Exec(
		`INSERT INTO feature_definitions (key, name, ftype, default_value, unit) VALUES
		 ('vehicle_limit', 'Vehicle limit', 'number', '5', 'vehicles'),
		 ('min_monthly_cents', 'Minimum monthly', 'number', '0', 'cents')`,
	).Error)

	resp, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, resp.FeatureDefinitions, 2)
	assert.Equal(t, "min_monthly_cents", resp.FeatureDefinitions[0].Key, "catalog sorted by name")
	assert.Equal(t, "vehicle_limit", resp.FeatureDefinitions[1].Key)
}
