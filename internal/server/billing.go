package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetBillingReadiness(c *gin.Context) {
	report, err := s.billingSvc.Readiness(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
