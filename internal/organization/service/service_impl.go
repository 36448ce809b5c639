package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	identitydomain "github.com/fleetgrid/ownerconsole/internal/identity/domain"
	"github.com/fleetgrid/ownerconsole/internal/organization/domain"
	"github.com/fleetgrid/ownerconsole/pkg/db"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9-]{1,50}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// mirroredFields is the fixed allow-list of business fields copied back
// into the identity provider's metadata on update. Name is mirrored
// separately since the provider stores it as a first-class field.
var mirroredFields = map[string]struct{}{
	"legal_name":         {},
	"primary_email":      {},
	"primary_phone":      {},
	"address_line1":      {},
	"address_line2":      {},
	"city":               {},
	"state":              {},
	"zip_code":           {},
	"country":            {},
	"is_provider":        {},
	"is_broker":          {},
	"active":             {},
	"plan_id":            {},
	"billing_anchor_day": {},
}

type service struct {
	repo     domain.Repository
	identity identitydomain.Client
	log      *zap.Logger
}

func NewService(repo domain.Repository, identity identitydomain.Client, log *zap.Logger) domain.Service {
	return &service{
		repo:     repo,
		identity: identity,
		log:      log,
	}
}

// Create runs the dual-write flow: the identity provider creation is the
// reversible first phase, the datastore insert is the commit phase. The
// provider side is deleted again when the commit fails so an organization
// never exists in the provider without a mirror row.
func (s *service) Create(ctx context.Context, req domain.CreateRequest) (string, error) {
	if err := validateCreate(&req); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	isProvider := true
	if req.IsProvider != nil {
		isProvider = *req.IsProvider
	}
	isBroker := req.IsBroker != nil && *req.IsBroker

	legalName := req.LegalName
	if legalName == "" {
		legalName = req.Name
	}
	orgSlug := req.Slug
	if orgSlug == "" {
		orgSlug = slug.Make(req.Name)
	}

	metadata := map[string]any{
		"source":                "owner-console",
		"legal_name":            legalName,
		"primary_email":         req.PrimaryEmail,
		"primary_phone":         req.PrimaryPhone,
		"address_line1":         req.AddressLine1,
		"city":                  req.City,
		"state":                 req.State,
		"zip_code":              req.ZipCode,
		"country":               req.Country,
		"is_provider":           isProvider,
		"is_broker":             isBroker,
		"currency":              "USD",
		"default_billing_terms": 30,
	}
	if req.AddressLine2 != "" {
		metadata["address_line2"] = req.AddressLine2
	}
	if req.PlanID != nil {
		metadata["plan_id"] = *req.PlanID
	}
	if req.BillingAnchorDay != nil {
		metadata["billing_anchor_day"] = *req.BillingAnchorDay
	}

	created, err := s.identity.CreateOrganization(ctx, identitydomain.CreateOrganizationRequest{
		Name:      req.Name,
		Slug:      orgSlug,
		CreatedBy: req.CreatedBy,
		Metadata:  metadata,
	})
	if err != nil {
		return "", err
	}

	org := domain.Organization{
		ID:                  created.ID,
		Name:                req.Name,
		LegalName:           &legalName,
		Slug:                &orgSlug,
		PrimaryEmail:        strPtr(req.PrimaryEmail),
		PrimaryPhone:        strPtr(req.PrimaryPhone),
		AddressLine1:        strPtr(req.AddressLine1),
		AddressLine2:        strPtr(req.AddressLine2),
		City:                strPtr(req.City),
		State:               strPtr(req.State),
		ZipCode:             strPtr(req.ZipCode),
		Country:             req.Country,
		Currency:            "USD",
		DefaultBillingTerms: 30,
		IsProvider:          isProvider,
		IsBroker:            isBroker,
		Active:              true,
		PlanID:              req.PlanID,
		BillingAnchorDay:    req.BillingAnchorDay,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Insert(ctx, org); err != nil {
		if delErr := s.identity.DeleteOrganization(ctx, created.ID); delErr != nil {
			s.log.Error("compensating identity delete failed, organization orphaned in provider",
				zap.String("org_id", created.ID),
				zap.Error(delErr),
			)
		}
		if db.IsForeignKeyViolationErr(err) {
			return "", domain.ErrInvalidPlanReference
		}
		return "", fmt.Errorf("insert organization mirror: %w", err)
	}

	s.seedDefaultSettings(ctx, created.ID)

	return created.ID, nil
}

// seedDefaultSettings is best effort: conflicts are expected when the
// webhook already created the rows, other failures only warn.
func (s *service) seedDefaultSettings(ctx context.Context, orgID string) {
	settings := []domain.Setting{
		{OrgID: orgID, SettingKey: "date_format", SettingValue: "MM/DD/YYYY", SettingType: "string"},
		{OrgID: orgID, SettingKey: "time_format", SettingValue: "12h", SettingType: "string"},
	}
	if err := s.repo.SeedSettings(ctx, settings); err != nil {
		s.log.Warn("failed to seed organization settings",
			zap.String("org_id", orgID),
			zap.Error(err),
		)
	}
}

func (s *service) Update(ctx context.Context, orgID string, req domain.UpdateRequest) (*domain.Organization, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, domain.ErrNotFound
	}

	updates, err := buildUpdates(req)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, domain.ErrNothingToUpdate
	}

	affected, err := s.repo.Update(ctx, orgID, updates)
	if err != nil {
		if db.IsForeignKeyViolationErr(err) {
			return nil, domain.ErrInvalidPlanReference
		}
		return nil, fmt.Errorf("update organization: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	s.mirrorToIdentity(ctx, orgID, updates)

	org, err := s.repo.Get(ctx, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

// mirrorToIdentity copies name and the allow-listed business fields back
// into the identity provider. Failures are logged, never compensated:
// the datastore stays authoritative and the gap heals on the next sync.
func (s *service) mirrorToIdentity(ctx context.Context, orgID string, updates map[string]any) {
	metadata := map[string]any{}
	var name *string
	for column, value := range updates {
		if column == "name" {
			if v, ok := value.(string); ok {
				name = &v
			}
			continue
		}
		if _, ok := mirroredFields[column]; ok {
			metadata[column] = value
		}
	}
	if name == nil && len(metadata) == 0 {
		return
	}

	err := s.identity.UpdateOrganization(ctx, orgID, identitydomain.UpdateOrganizationRequest{
		Name:     name,
		Metadata: metadata,
	})
	if err != nil {
		s.log.Warn("identity metadata mirror failed",
			zap.String("org_id", orgID),
			zap.Error(err),
		)
	}
}

func (s *service) Get(ctx context.Context, orgID string) (*domain.Organization, error) {
	org, err := s.repo.Get(ctx, strings.TrimSpace(orgID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

func (s *service) List(ctx context.Context) ([]domain.Organization, error) {
	return s.repo.List(ctx)
}

func (s *service) ListUsers(ctx context.Context, orgID string) ([]domain.User, error) {
	return s.repo.ListUsers(ctx, strings.TrimSpace(orgID))
}

func validateCreate(req *domain.CreateRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	req.LegalName = strings.TrimSpace(req.LegalName)
	req.PrimaryEmail = strings.TrimSpace(req.PrimaryEmail)
	req.PrimaryPhone = strings.TrimSpace(req.PrimaryPhone)
	req.AddressLine1 = strings.TrimSpace(req.AddressLine1)
	req.AddressLine2 = strings.TrimSpace(req.AddressLine2)
	req.City = strings.TrimSpace(req.City)
	req.State = strings.TrimSpace(req.State)
	req.ZipCode = strings.TrimSpace(req.ZipCode)
	req.Country = strings.TrimSpace(req.Country)

	if len(req.Name) < 2 {
		return domain.ErrInvalidName
	}
	if req.Slug != "" && !slugPattern.MatchString(req.Slug) {
		return domain.ErrInvalidSlug
	}
	if !emailPattern.MatchString(req.PrimaryEmail) {
		return domain.ErrInvalidEmail
	}
	if len(req.PrimaryPhone) < 4 {
		return domain.ErrInvalidPhone
	}
	if len(req.AddressLine1) < 2 {
		return domain.ErrInvalidAddress
	}
	if len(req.City) < 2 {
		return domain.ErrInvalidCity
	}
	if len(req.State) < 2 {
		return domain.ErrInvalidState
	}
	if len(req.ZipCode) < 3 {
		return domain.ErrInvalidZip
	}
	if req.Country == "" {
		req.Country = "USA"
	}
	if len(req.Country) < 2 {
		return domain.ErrInvalidCountry
	}
	if req.BillingAnchorDay != nil && (*req.BillingAnchorDay < 1 || *req.BillingAnchorDay > 28) {
		return domain.ErrInvalidAnchorDay
	}
	if req.PlanID != nil && strings.TrimSpace(*req.PlanID) == "" {
		req.PlanID = nil
	}
	return nil
}

// buildUpdates maps provided fields to column updates. Trimmed-empty
// text values clear the column; a zero anchor day clears the anchor.
func buildUpdates(req domain.UpdateRequest) (map[string]any, error) {
	updates := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 {
			return nil, domain.ErrInvalidName
		}
		updates["name"] = name
	}

	setNullable := func(column string, value *string) {
		if value == nil {
			return
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			updates[column] = nil
			return
		}
		updates[column] = trimmed
	}

	setNullable("legal_name", req.LegalName)
	setNullable("primary_phone", req.PrimaryPhone)
	setNullable("address_line1", req.AddressLine1)
	setNullable("address_line2", req.AddressLine2)
	setNullable("city", req.City)
	setNullable("state", req.State)
	setNullable("zip_code", req.ZipCode)
	setNullable("country", req.Country)
	setNullable("plan_id", req.PlanID)

	if req.PrimaryEmail != nil {
		email := strings.TrimSpace(*req.PrimaryEmail)
		if email == "" {
			updates["primary_email"] = nil
		} else if !emailPattern.MatchString(email) {
			return nil, domain.ErrInvalidEmail
		} else {
			updates["primary_email"] = email
		}
	}

	if req.IsProvider != nil {
		updates["is_provider"] = *req.IsProvider
	}
	if req.IsBroker != nil {
		updates["is_broker"] = *req.IsBroker
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if req.BillingAnchorDay != nil {
		day := *req.BillingAnchorDay
		switch {
		case day == 0:
			updates["billing_anchor_day"] = nil
		case day < 1 || day > 28:
			return nil, domain.ErrInvalidAnchorDay
		default:
			updates["billing_anchor_day"] = day
		}
	}

	return updates, nil
}

func strPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
