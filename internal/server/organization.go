package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	organizationdomain "github.com/fleetgrid/ownerconsole/internal/organization/domain"
)

type createOrganizationRequest struct {
	Name             string  `json:"name"`
	LegalName        string  `json:"legal_name"`
	Slug             string  `json:"slug"`
	PrimaryEmail     string  `json:"primary_email"`
	PrimaryPhone     string  `json:"primary_phone"`
	AddressLine1     string  `json:"address_line1"`
	AddressLine2     string  `json:"address_line2"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	ZipCode          string  `json:"zip_code"`
	Country          string  `json:"country"`
	IsProvider       *bool   `json:"is_provider"`
	IsBroker         *bool   `json:"is_broker"`
	PlanID           *string `json:"plan_id"`
	BillingAnchorDay *int    `json:"billing_anchor_day"`
}

type updateOrganizationRequest struct {
	Name             *string `json:"name"`
	LegalName        *string `json:"legal_name"`
	PrimaryEmail     *string `json:"primary_email"`
	PrimaryPhone     *string `json:"primary_phone"`
	AddressLine1     *string `json:"address_line1"`
	AddressLine2     *string `json:"address_line2"`
	City             *string `json:"city"`
	State            *string `json:"state"`
	ZipCode          *string `json:"zip_code"`
	Country          *string `json:"country"`
	IsProvider       *bool   `json:"is_provider"`
	IsBroker         *bool   `json:"is_broker"`
	Active           *bool   `json:"active"`
	PlanID           *string `json:"plan_id"`
	BillingAnchorDay *int    `json:"billing_anchor_day"`
}

func (s *Server) CreateOrganization(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id, err := s.organizationSvc.Create(c.Request.Context(), organizationdomain.CreateRequest{
		Name:             strings.TrimSpace(req.Name),
		LegalName:        strings.TrimSpace(req.LegalName),
		Slug:             strings.TrimSpace(req.Slug),
		PrimaryEmail:     strings.TrimSpace(req.PrimaryEmail),
		PrimaryPhone:     strings.TrimSpace(req.PrimaryPhone),
		AddressLine1:     strings.TrimSpace(req.AddressLine1),
		AddressLine2:     strings.TrimSpace(req.AddressLine2),
		City:             strings.TrimSpace(req.City),
		State:            strings.TrimSpace(req.State),
		ZipCode:          strings.TrimSpace(req.ZipCode),
		Country:          strings.TrimSpace(req.Country),
		IsProvider:       req.IsProvider,
		IsBroker:         req.IsBroker,
		PlanID:           req.PlanID,
		BillingAnchorDay: req.BillingAnchorDay,
		CreatedBy:        caller.CallerID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "organizationId": id})
}

func (s *Server) ListOrganizations(c *gin.Context) {
	items, err := s.organizationSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) GetOrganization(c *gin.Context) {
	org, err := s.organizationSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

func (s *Server) UpdateOrganization(c *gin.Context) {
	var req updateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	org, err := s.organizationSvc.Update(c.Request.Context(), c.Param("id"), organizationdomain.UpdateRequest{
		Name:             req.Name,
		LegalName:        req.LegalName,
		PrimaryEmail:     req.PrimaryEmail,
		PrimaryPhone:     req.PrimaryPhone,
		AddressLine1:     req.AddressLine1,
		AddressLine2:     req.AddressLine2,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
		Country:          req.Country,
		IsProvider:       req.IsProvider,
		IsBroker:         req.IsBroker,
		Active:           req.Active,
		PlanID:           req.PlanID,
		BillingAnchorDay: req.BillingAnchorDay,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

func (s *Server) ListOrganizationUsers(c *gin.Context) {
	users, err := s.organizationSvc.ListUsers(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

func isOrganizationValidationError(err error) bool {
	switch err {
	case organizationdomain.ErrInvalidName,
		organizationdomain.ErrInvalidSlug,
		organizationdomain.ErrInvalidEmail,
		organizationdomain.ErrInvalidPhone,
		organizationdomain.ErrInvalidAddress,
		organizationdomain.ErrInvalidCity,
		organizationdomain.ErrInvalidState,
		organizationdomain.ErrInvalidZip,
		organizationdomain.ErrInvalidCountry,
		organizationdomain.ErrInvalidAnchorDay:
		return true
	default:
		return false
	}
}
