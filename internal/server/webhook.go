package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	webhookdomain "github.com/fleetgrid/ownerconsole/internal/webhook/domain"
)

// Header names used by the identity provider's signed-event delivery.
const (
	headerEventID        = "svix-id"
	headerEventTimestamp = "svix-timestamp"
	headerEventSignature = "svix-signature"
)

func (s *Server) HandleIdentityWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.webhookSvc.Ingest(c.Request.Context(), payload, webhookdomain.Headers{
		EventID:   c.GetHeader(headerEventID),
		Timestamp: c.GetHeader(headerEventTimestamp),
		Signature: c.GetHeader(headerEventSignature),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
