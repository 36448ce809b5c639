package service

import (
	"context"
	"time"

	"github.com/fleetgrid/ownerconsole/internal/billing/domain"
	"github.com/fleetgrid/ownerconsole/internal/clock"
	featuredomain "github.com/fleetgrid/ownerconsole/internal/feature/domain"
	orgdomain "github.com/fleetgrid/ownerconsole/internal/organization/domain"
	plandomain "github.com/fleetgrid/ownerconsole/internal/plan/domain"
)

type service struct {
	orgs     orgdomain.Repository
	plans    plandomain.Repository
	features featuredomain.Repository
	clock    clock.Clock
}

func NewService(orgs orgdomain.Repository, plans plandomain.Repository, features featuredomain.Repository, clk clock.Clock) domain.Service {
	return &service{
		orgs:     orgs,
		plans:    plans,
		features: features,
		clock:    clk,
	}
}

func (s *service) Readiness(ctx context.Context) (*domain.Report, error) {
	orgs, err := s.orgs.List(ctx)
	if err != nil {
		return nil, err
	}
	planNames, err := s.plans.Names(ctx)
	if err != nil {
		return nil, err
	}
	features, err := s.features.EffectiveForKeys(ctx, domain.FeatureKeys)
	if err != nil {
		return nil, err
	}

	return Compute(orgs, planNames, features, s.clock.Now()), nil
}

// Compute derives the readiness report. Blockers are evaluated in a
// fixed order and every applicable one is included.
func Compute(orgs []orgdomain.Organization, planNames map[string]string, features []featuredomain.EffectiveValue, now time.Time) *domain.Report {
	byOrg := map[string]map[string]*string{}
	for _, value := range features {
		if byOrg[value.OrgID] == nil {
			byOrg[value.OrgID] = map[string]*string{}
		}
		byOrg[value.OrgID][value.FeatureKey] = value.Value
	}

	report := &domain.Report{Organizations: make([]domain.OrgReadiness, 0, len(orgs))}
	for _, org := range orgs {
		var planName *string
		if org.PlanID != nil {
			if name, ok := planNames[*org.PlanID]; ok {
				planName = &name
			}
		}

		blockers := []string{}
		if org.PlanID == nil {
			blockers = append(blockers, domain.BlockerAssignPlan)
		}
		if org.PlanID != nil && planName == nil {
			blockers = append(blockers, domain.BlockerMissingPlan)
		}
		if org.PlanID != nil && org.BillingAnchorDay == nil {
			blockers = append(blockers, domain.BlockerSetAnchor)
		}
		if org.PrimaryEmail == nil || *org.PrimaryEmail == "" {
			blockers = append(blockers, domain.BlockerAddEmail)
		}

		ready := len(blockers) == 0
		orgFeatures := byOrg[org.ID]

		report.Organizations = append(report.Organizations, domain.OrgReadiness{
			ID:               org.ID,
			Name:             org.Name,
			LegalName:        org.LegalName,
			PlanID:           org.PlanID,
			PlanName:         planName,
			BillingAnchorDay: org.BillingAnchorDay,
			PrimaryEmail:     org.PrimaryEmail,
			PrimaryPhone:     org.PrimaryPhone,
			Active:           org.Active,
			CreatedAt:        org.CreatedAt,
			Ready:            ready,
			Blockers:         blockers,
			NextInvoiceDate:  NextInvoiceDate(org.BillingAnchorDay, now),
			Features: domain.FeatureSnapshot{
				MinMonthlyCents:       orgFeatures["min_monthly_cents"],
				VehicleUnitPriceCents: orgFeatures["vehicle_unit_price_cents"],
				VehicleLimit:          orgFeatures["vehicle_limit"],
			},
		})

		report.Summary.Total++
		if ready {
			report.Summary.Ready++
		}
		if org.PlanID == nil {
			report.Summary.MissingPlan++
		}
		if org.PlanID != nil && org.BillingAnchorDay == nil {
			report.Summary.MissingAnchor++
		}
	}

	return report
}

// NextInvoiceDate returns the next calendar date carrying the anchor
// day: the current month when today's day-of-month is still before the
// anchor, otherwise the following month. The day is clamped to the
// length of the target month.
func NextInvoiceDate(anchorDay *int, now time.Time) *time.Time {
	if anchorDay == nil {
		return nil
	}

	year, month := now.Year(), now.Month()
	if now.Day() >= *anchorDay {
		month++
	}

	day := *anchorDay
	if last := daysInMonth(year, month); day > last {
		day = last
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &date
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
