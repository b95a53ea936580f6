// README: Breeding-match endpoints (per-pet listing, status transitions).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"petree/internal/modules/match"
	"petree/internal/types"
)

type MatchHandler struct {
	matches *match.Service
}

func NewMatchHandler(matches *match.Service) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// ForPet handles GET /api/pets/:id/matches
func (h *MatchHandler) ForPet(c *gin.Context) {
	found, err := h.matches.ForPet(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"matches": found})
}

type transitionReq struct {
	Status string `json:"status"`
}

// Transition handles POST /api/matches/:id/status
func (h *MatchHandler) Transition(c *gin.Context) {
	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	to := match.Status(req.Status)
	switch to {
	case match.StatusConfirmed, match.StatusCompleted, match.StatusCancelled:
	default:
		writeError(c, http.StatusBadRequest, "invalid status")
		return
	}

	err := h.matches.Transition(c.Request.Context(), types.ID(c.Param("id")), to)
	switch {
	case err == nil:
		writeJSON(c, http.StatusOK, gin.H{"status": req.Status})
	case errors.Is(err, match.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, match.ErrInvalidState):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
