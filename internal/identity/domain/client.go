// Package domain defines the identity provider contract. The provider is
// the source of truth for organization existence and name.
package domain

import (
	"context"
	"errors"
)

var ErrProvider = errors.New("identity_provider_error")

// Organization is the provider-side organization record.
type Organization struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	PublicMetadata map[string]any `json:"public_metadata"`
}

type CreateOrganizationRequest struct {
	Name      string
	Slug      string
	CreatedBy string
	Metadata  map[string]any
}

type UpdateOrganizationRequest struct {
	Name     *string
	Metadata map[string]any
}

type Client interface {
	CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error)
	UpdateOrganization(ctx context.Context, orgID string, req UpdateOrganizationRequest) error
	DeleteOrganization(ctx context.Context, orgID string) error
}
