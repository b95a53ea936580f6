// README: Pet read endpoints (search, profile, family tree, breeding candidates).
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"petree/internal/modules/match"
	"petree/internal/modules/pet"
	"petree/internal/types"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

type PetHandler struct {
	pets    *pet.Service
	matches *match.Service
}

func NewPetHandler(pets *pet.Service, matches *match.Service) *PetHandler {
	return &PetHandler{pets: pets, matches: matches}
}

func limitParam(c *gin.Context) int {
	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// Search handles GET /api/pets/search?q=...
func (h *PetHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		writeError(c, http.StatusBadRequest, "missing q")
		return
	}

	found, err := h.pets.Search(c.Request.Context(), q, limitParam(c))
	if err != nil {
		writePetError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"pets": found})
}

// Get handles GET /api/pets/:id
func (h *PetHandler) Get(c *gin.Context) {
	p, err := h.pets.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writePetError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

// Tree handles GET /api/pets/:id/tree
func (h *PetHandler) Tree(c *gin.Context) {
	p, err := h.pets.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writePetError(c, err)
		return
	}
	tree, err := h.pets.FamilyTree(c.Request.Context(), p)
	if err != nil {
		writePetError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, tree)
}

// Candidates handles GET /api/pets/:id/candidates, the distance-ranked
// breeding partner suggestions.
func (h *PetHandler) Candidates(c *gin.Context) {
	p, err := h.pets.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writePetError(c, err)
		return
	}
	candidates, err := h.matches.Candidates(c.Request.Context(), p, limitParam(c))
	if err != nil {
		writePetError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"candidates": candidates})
}
