package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	plandomain "github.com/fleetgrid/ownerconsole/internal/plan/domain"
)

type planFeatureInput struct {
	FeatureKey string `json:"feature_key"`
	Value      string `json:"value"`
	Enforced   *bool  `json:"enforced"`
}

type createPlanRequest struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Features []planFeatureInput `json:"features"`
}

type renamePlanRequest struct {
	Name string `json:"name"`
}

type replacePlanFeaturesRequest struct {
	Features []planFeatureInput `json:"features"`
}

func (s *Server) ListPlans(c *gin.Context) {
	resp, err := s.planSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreatePlan(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id, err := s.planSvc.Create(c.Request.Context(), plandomain.CreateRequest{
		ID:       strings.TrimSpace(req.ID),
		Name:     strings.TrimSpace(req.Name),
		Features: toFeatureInputs(req.Features),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (s *Server) RenamePlan(c *gin.Context) {
	var req renamePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.planSvc.Rename(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Name)); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) DeletePlan(c *gin.Context) {
	if err := s.planSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ReplacePlanFeatures(c *gin.Context) {
	var req replacePlanFeaturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.planSvc.ReplaceFeatures(c.Request.Context(), c.Param("id"), toFeatureInputs(req.Features)); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func toFeatureInputs(features []planFeatureInput) []plandomain.FeatureInput {
	out := make([]plandomain.FeatureInput, 0, len(features))
	for _, f := range features {
		out = append(out, plandomain.FeatureInput{
			FeatureKey: f.FeatureKey,
			Value:      f.Value,
			Enforced:   f.Enforced,
		})
	}
	return out
}

func isPlanValidationError(err error) bool {
	switch err {
	case plandomain.ErrInvalidPlanID,
		plandomain.ErrInvalidPlanName,
		plandomain.ErrInvalidFeatureKey,
		plandomain.ErrInvalidFeatureValue:
		return true
	default:
		return false
	}
}
