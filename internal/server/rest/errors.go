package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/shopcart/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorCartEmpty):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messages overrides the response text per status.
type messages map[int]string

// writeError responds with {"error": msg}. Server errors are logged and
// answered with fallback; client errors use the matching entry in msgs or
// the status text.
func (s *Server) writeError(c *gin.Context, err error, fallback string, msgs messages) {
	status := statusFor(err)

	msg, ok := msgs[status]
	switch {
	case status >= http.StatusInternalServerError:
		s.logger.Error(c.Request.Context(), fallback, "error", err, "request_id", c.GetString(requestIDKey))
		msg = fallback
	case !ok:
		msg = http.StatusText(status)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
