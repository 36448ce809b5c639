package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetgrid/ownerconsole/internal/config"
	"github.com/fleetgrid/ownerconsole/internal/identity/domain"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type client struct {
	http *resty.Client
	log  *zap.Logger
}

// NewClient builds a REST client for the identity provider's management API.
func NewClient(cfg config.Config, log *zap.Logger) domain.Client {
	http := resty.New().
		SetBaseURL(cfg.IdentityAPIURL).
		SetAuthToken(cfg.IdentityAPIKey).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &client{http: http, log: log}
}

type providerError struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (e providerError) message() string {
	if len(e.Errors) > 0 {
		return e.Errors[0].Message
	}
	return "unknown provider error"
}

func (c *client) CreateOrganization(ctx context.Context, req domain.CreateOrganizationRequest) (*domain.Organization, error) {
	body := map[string]any{
		"name":            req.Name,
		"public_metadata": req.Metadata,
	}
	if req.Slug != "" {
		body["slug"] = req.Slug
	}
	if req.CreatedBy != "" {
		body["created_by"] = req.CreatedBy
	}

	var org domain.Organization
	var provErr providerError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&org).
		SetError(&provErr).
		Post("/organizations")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: create organization: %s (%d)", domain.ErrProvider, provErr.message(), resp.StatusCode())
	}

	c.log.Info("identity organization created", zap.String("org_id", org.ID))
	return &org, nil
}

func (c *client) UpdateOrganization(ctx context.Context, orgID string, req domain.UpdateOrganizationRequest) error {
	body := map[string]any{}
	if req.Name != nil {
		body["name"] = *req.Name
	}
	if len(req.Metadata) > 0 {
		body["public_metadata"] = req.Metadata
	}
	if len(body) == 0 {
		return nil
	}

	var provErr providerError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&provErr).
		Patch("/organizations/" + orgID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: update organization %s: %s (%d)", domain.ErrProvider, orgID, provErr.message(), resp.StatusCode())
	}

	return nil
}

func (c *client) DeleteOrganization(ctx context.Context, orgID string) error {
	var provErr providerError
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&provErr).
		Delete("/organizations/" + orgID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: delete organization %s: %s (%d)", domain.ErrProvider, orgID, provErr.message(), resp.StatusCode())
	}

	c.log.Info("identity organization deleted", zap.String("org_id", orgID))
	return nil
}
