package repository

import (
	"context"

	"github.com/fleetgrid/ownerconsole/internal/organization/domain"
	"github.com/fleetgrid/ownerconsole/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) Insert(ctx context.Context, org domain.Organization) error {
	return r.db.WithContext(ctx).Create(&org).Error
}

// Update writes exactly the given columns. UpdateColumns keeps gorm
// from bumping updated_at on its own, so a patch carrying only
// unchanged values leaves the row as it was.
func (r *repository) Update(ctx context.Context, orgID string, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Organization{}).
		Where("id = ?", orgID).
		UpdateColumns(updates)
	return result.RowsAffected, result.Error
}

func (r *repository) Get(ctx context.Context, orgID string) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).
		Where("id = ?", orgID).
		First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *repository) List(ctx context.Context) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *repository) SeedSettings(ctx context.Context, settings []domain.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "org_id"}, {Name: "setting_key"}},
		DoNothing: true,
	}).Create(&settings).Error
	if db.IsDuplicateKeyErr(err) {
		return nil
	}
	return err
}

func (r *repository) ListUsers(ctx context.Context, orgID string) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
