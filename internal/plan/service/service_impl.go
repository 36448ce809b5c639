package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	featuredomain "github.com/fleetgrid/ownerconsole/internal/feature/domain"
	"github.com/fleetgrid/ownerconsole/internal/plan/domain"
	"github.com/fleetgrid/ownerconsole/pkg/db"
	"gorm.io/gorm"
)

var planIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type service struct {
	db      *gorm.DB
	repo    domain.Repository
	catalog featuredomain.Repository
}

func NewService(conn *gorm.DB, repo domain.Repository, catalog featuredomain.Repository) domain.Service {
	return &service{
		db:      conn,
		repo:    repo,
		catalog: catalog,
	}
}

func (s *service) List(ctx context.Context) (*domain.ListResponse, error) {
	plans, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	features, err := s.repo.ListFeatures(ctx)
	if err != nil {
		return nil, err
	}
	definitions, err := s.catalog.ListDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.ListResponse{
		Plans:              plans,
		PlanFeatures:       features,
		FeatureDefinitions: definitions,
	}, nil
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (string, error) {
	planID := strings.TrimSpace(req.ID)
	name := strings.TrimSpace(req.Name)
	if len(planID) < 2 || !planIDPattern.MatchString(planID) {
		return "", domain.ErrInvalidPlanID
	}
	if len(name) < 2 {
		return "", domain.ErrInvalidPlanName
	}

	features, err := normalizeFeatures(planID, req.Features)
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Insert(ctx, domain.Plan{ID: planID, Name: name}); err != nil {
			return err
		}
		return repo.InsertFeatures(ctx, features)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return "", domain.ErrPlanExists
		}
		return "", fmt.Errorf("create plan: %w", err)
	}

	return planID, nil
}

func (s *service) Rename(ctx context.Context, planID, name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return domain.ErrInvalidPlanName
	}

	// Zero rows affected is success: rename of an absent plan is an
	// idempotent no-op, matching the delete contract.
	_, err := s.repo.Rename(ctx, strings.TrimSpace(planID), name)
	return err
}

func (s *service) Delete(ctx context.Context, planID string) error {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return domain.ErrInvalidPlanID
	}

	// Feature rows go first to satisfy referential integrity. Both
	// deletes run in one transaction so a failed plan delete does not
	// leave the features half-removed.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteFeatures(ctx, planID); err != nil {
			return err
		}
		_, err := repo.DeletePlan(ctx, planID)
		return err
	})
}

func (s *service) ReplaceFeatures(ctx context.Context, planID string, features []domain.FeatureInput) error {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return domain.ErrInvalidPlanID
	}

	rows, err := normalizeFeatures(planID, features)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteFeatures(ctx, planID); err != nil {
			return err
		}
		return repo.InsertFeatures(ctx, rows)
	})
}

func normalizeFeatures(planID string, inputs []domain.FeatureInput) ([]domain.PlanFeature, error) {
	features := make([]domain.PlanFeature, 0, len(inputs))
	for _, input := range inputs {
		key := strings.TrimSpace(input.FeatureKey)
		value := strings.TrimSpace(input.Value)
		if key == "" {
			return nil, domain.ErrInvalidFeatureKey
		}
		if value == "" {
			return nil, domain.ErrInvalidFeatureValue
		}
		enforced := true
		if input.Enforced != nil {
			enforced = *input.Enforced
		}
		features = append(features, domain.PlanFeature{
			PlanID:     planID,
			FeatureKey: key,
			Value:      value,
			Enforced:   enforced,
		})
	}
	return features, nil
}
