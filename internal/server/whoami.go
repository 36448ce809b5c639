package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) Whoami(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"caller_id": caller.CallerID,
		"email":     caller.Email,
		"role":      caller.Role,
		"is_owner":  caller.IsOwner(),
	})
}
