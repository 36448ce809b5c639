package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (string, error)
	Update(ctx context.Context, orgID string, req UpdateRequest) (*Organization, error)
	Get(ctx context.Context, orgID string) (*Organization, error)
	List(ctx context.Context) ([]Organization, error)
	ListUsers(ctx context.Context, orgID string) ([]User, error)
}

// CreateRequest carries validated organization fields for the dual-write
// create flow.
type CreateRequest struct {
	Name             string
	Slug             string
	LegalName        string
	PrimaryEmail     string
	PrimaryPhone     string
	AddressLine1     string
	AddressLine2     string
	City             string
	State            string
	ZipCode          string
	Country          string
	IsProvider       *bool
	IsBroker         *bool
	PlanID           *string
	BillingAnchorDay *int
	CreatedBy        string
}

// UpdateRequest is a partial field set. Nil means "not provided"; for
// nullable text fields an empty string clears the stored value, and a
// zero anchor day clears the billing anchor.
type UpdateRequest struct {
	Name             *string
	LegalName        *string
	PrimaryEmail     *string
	PrimaryPhone     *string
	AddressLine1     *string
	AddressLine2     *string
	City             *string
	State            *string
	ZipCode          *string
	Country          *string
	IsProvider       *bool
	IsBroker         *bool
	Active           *bool
	PlanID           *string
	BillingAnchorDay *int
}

var (
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidSlug          = errors.New("invalid_slug")
	ErrInvalidEmail         = errors.New("invalid_primary_email")
	ErrInvalidPhone         = errors.New("invalid_primary_phone")
	ErrInvalidAddress       = errors.New("invalid_address_line1")
	ErrInvalidCity          = errors.New("invalid_city")
	ErrInvalidState         = errors.New("invalid_state")
	ErrInvalidZip           = errors.New("invalid_zip_code")
	ErrInvalidCountry       = errors.New("invalid_country")
	ErrInvalidAnchorDay     = errors.New("invalid_billing_anchor_day")
	ErrNothingToUpdate      = errors.New("nothing_to_update")
	ErrInvalidPlanReference = errors.New("invalid_plan_reference")
	ErrNotFound             = errors.New("organization_not_found")
)
