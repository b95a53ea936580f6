// README: Market stats endpoint and FAQ cache administration.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petree/internal/modules/faq"
	"petree/internal/modules/market"
	"petree/internal/types"
)

type MarketHandler struct {
	market *market.Service
}

func NewMarketHandler(m *market.Service) *MarketHandler {
	return &MarketHandler{market: m}
}

// Summary handles GET /api/market/summary?species=dog&lang=en
func (h *MarketHandler) Summary(c *gin.Context) {
	species := c.DefaultQuery("species", "dog")
	if species != "dog" && species != "cat" {
		writeError(c, http.StatusBadRequest, "species must be dog or cat")
		return
	}
	lang := types.LangEN
	if c.Query("lang") == "th" {
		lang = types.LangTH
	}

	stats, err := h.market.PriceStats(c.Request.Context(), species)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"stats":   stats,
		"summary": market.RenderSummary(stats, lang),
	})
}

type FaqAdminHandler struct {
	cache *faq.Cache
}

func NewFaqAdminHandler(cache *faq.Cache) *FaqAdminHandler {
	return &FaqAdminHandler{cache: cache}
}

// Invalidate handles POST /api/faq/invalidate. Called after approving a
// draft so the new entry is served without waiting out the TTL.
func (h *FaqAdminHandler) Invalidate(c *gin.Context) {
	h.cache.Invalidate()
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
