// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petree/internal/modules/pet"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidSessionID accepts the UUID-shaped session IDs this service mints.
func isValidSessionID(v string) bool {
	if len(v) > 36 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') || c == '-' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePetError(c *gin.Context, err error) {
	switch err {
	case pet.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case pet.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
