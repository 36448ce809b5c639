// Package domain defines the billing readiness report types.
package domain

import (
	"context"
	"time"
)

// Blocker messages, reported in this fixed order. Every blocker that
// applies is included.
const (
	BlockerAssignPlan  = "Assign a subscription plan"
	BlockerMissingPlan = "Referenced plan no longer exists"
	BlockerSetAnchor   = "Set billing anchor day"
	BlockerAddEmail    = "Add billing email"
)

// FeatureKeys are the billing-relevant effective feature keys surfaced
// on the readiness report.
var FeatureKeys = []string{
	"min_monthly_cents",
	"vehicle_unit_price_cents",
	"vehicle_limit",
}

type FeatureSnapshot struct {
	MinMonthlyCents       *string `json:"minMonthlyCents"`
	VehicleUnitPriceCents *string `json:"vehicleUnitPriceCents"`
	VehicleLimit          *string `json:"vehicleLimit"`
}

// OrgReadiness is the per-organization verdict.
type OrgReadiness struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	LegalName        *string         `json:"legalName"`
	PlanID           *string         `json:"planId"`
	PlanName         *string         `json:"planName"`
	BillingAnchorDay *int            `json:"billingAnchorDay"`
	PrimaryEmail     *string         `json:"primaryEmail"`
	PrimaryPhone     *string         `json:"primaryPhone"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"createdAt"`
	Ready            bool            `json:"ready"`
	Blockers         []string        `json:"blockers"`
	NextInvoiceDate  *time.Time      `json:"nextInvoiceDate"`
	Features         FeatureSnapshot `json:"features"`
}

type Summary struct {
	Ready         int `json:"readyCount"`
	MissingPlan   int `json:"missingPlan"`
	MissingAnchor int `json:"missingAnchor"`
	Total         int `json:"total"`
}

type Report struct {
	Organizations []OrgReadiness `json:"organizations"`
	Summary       Summary        `json:"summary"`
}

type Service interface {
	Readiness(ctx context.Context) (*Report, error)
}
