package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgrid/ownerconsole/internal/billing/domain"
	featuredomain "github.com/fleetgrid/ownerconsole/internal/feature/domain"
	orgdomain "github.com/fleetgrid/ownerconsole/internal/organization/domain"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestComputeReadyOrganization(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	orgs := []orgdomain.Organization{
		{
			ID:               "org_1",
			Name:             "Acme Logistics",
			PlanID:           strptr("starter"),
			BillingAnchorDay: intptr(5),
			PrimaryEmail:     strptr("billing@acme.test"),
			Active:           true,
		},
	}
	planNames := map[string]string{"starter": "Starter"}
	features := []featuredomain.EffectiveValue{
		{OrgID: "org_1", FeatureKey: "min_monthly_cents", Value: strptr("5000")},
		{OrgID: "org_1", FeatureKey: "vehicle_limit", Value: strptr("10")},
	}

	report := Compute(orgs, planNames, features, now)

	require.Len(t, report.Organizations, 1)
	got := report.Organizations[0]
	assert.True(t, got.Ready)
	assert.Empty(t, got.Blockers)
	require.NotNil(t, got.PlanName)
	assert.Equal(t, "Starter", *got.PlanName)
	require.NotNil(t, got.Features.MinMonthlyCents)
	assert.Equal(t, "5000", *got.Features.MinMonthlyCents)
	assert.Nil(t, got.Features.VehicleUnitPriceCents)

	assert.Equal(t, domain.Summary{Ready: 1, MissingPlan: 0, MissingAnchor: 0, Total: 1}, report.Summary)
}

func TestComputeBlockersFixedOrder(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("no plan and no email", func(t *testing.T) {
		orgs := []orgdomain.Organization{{ID: "org_1", Name: "Bare"}}
		report := Compute(orgs, nil, nil, now)

		require.Len(t, report.Organizations, 1)
		assert.Equal(t, []string{
			domain.BlockerAssignPlan,
			domain.BlockerAddEmail,
		}, report.Organizations[0].Blockers)
		assert.False(t, report.Organizations[0].Ready)
	})

	t.Run("plan reference to deleted plan", func(t *testing.T) {
		orgs := []orgdomain.Organization{{
			ID:           "org_1",
			Name:         "Dangling",
			PlanID:       strptr("gone"),
			PrimaryEmail: strptr("x@y.test"),
		}}
		report := Compute(orgs, map[string]string{}, nil, now)

		assert.Equal(t, []string{
			domain.BlockerMissingPlan,
			domain.BlockerSetAnchor,
		}, report.Organizations[0].Blockers)
	})

	t.Run("plan without anchor", func(t *testing.T) {
		orgs := []orgdomain.Organization{{
			ID:           "org_1",
			Name:         "NoAnchor",
			PlanID:       strptr("starter"),
			PrimaryEmail: strptr("x@y.test"),
		}}
		report := Compute(orgs, map[string]string{"starter": "Starter"}, nil, now)

		assert.Equal(t, []string{domain.BlockerSetAnchor}, report.Organizations[0].Blockers)
	})
}

func TestComputeSummaryCounts(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	orgs := []orgdomain.Organization{
		{ID: "a", Name: "Ready", PlanID: strptr("p"), BillingAnchorDay: intptr(1), PrimaryEmail: strptr("a@x.test")},
		{ID: "b", Name: "NoPlan", PrimaryEmail: strptr("b@x.test")},
		{ID: "c", Name: "NoAnchor", PlanID: strptr("p"), PrimaryEmail: strptr("c@x.test")},
	}
	report := Compute(orgs, map[string]string{"p": "Pro"}, nil, now)

	assert.Equal(t, domain.Summary{Ready: 1, MissingPlan: 1, MissingAnchor: 1, Total: 3}, report.Summary)
}

func TestNextInvoiceDate(t *testing.T) {
	t.Run("nil anchor", func(t *testing.T) {
		now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
		assert.Nil(t, NextInvoiceDate(nil, now))
	})

	t.Run("anchor still ahead this month", func(t *testing.T) {
		now := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
		got := NextInvoiceDate(intptr(15), now)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("anchor passed rolls to next month", func(t *testing.T) {
		now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
		got := NextInvoiceDate(intptr(5), now)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("anchor equal to today rolls forward", func(t *testing.T) {
		now := time.Date(2026, time.March, 5, 23, 0, 0, 0, time.UTC)
		got := NextInvoiceDate(intptr(5), now)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("anchor clamped to short month", func(t *testing.T) {
		now := time.Date(2026, time.January, 30, 0, 0, 0, 0, time.UTC)
		got := NextInvoiceDate(intptr(28), now)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("december rolls into january", func(t *testing.T) {
		now := time.Date(2026, time.December, 20, 0, 0, 0, 0, time.UTC)
		got := NextInvoiceDate(intptr(10), now)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2027, time.January, 10, 0, 0, 0, 0, time.UTC), *got)
	})
}
