// README: Chat handler; one POST per conversational turn.
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"petree/internal/modules/pet"
	"petree/internal/resolver"
	"petree/internal/session"
	"petree/internal/types"
)

const turnTimeout = 15 * time.Second

type ChatHandler struct {
	resolver *resolver.Resolver
	sessions *session.Store
	pets     *pet.Service
}

func NewChatHandler(res *resolver.Resolver, sessions *session.Store, pets *pet.Service) *ChatHandler {
	return &ChatHandler{resolver: res, sessions: sessions, pets: pets}
}

type chatReq struct {
	SessionID string `json:"session_id"`
	OwnerID   string `json:"owner_id"`
	PetID     string `json:"pet_id"`
	Message   string `json:"message"`
}

type chatResp struct {
	SessionID string            `json:"session_id"`
	Response  resolver.Response `json:"response"`
}

// Chat handles POST /api/chat. A request with pet_id set is resolved in that
// pet's context; otherwise the global flow runs. The session ID is minted on
// first contact and must be echoed back by the client on later turns.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}
	if req.SessionID == "" {
		req.SessionID = session.NewSessionID()
	} else if !isValidSessionID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	conv := h.sessions.Load(ctx, req.SessionID, types.ID(req.OwnerID))

	var resp resolver.Response
	if req.PetID != "" {
		focus, err := h.pets.Get(ctx, types.ID(req.PetID))
		if err != nil {
			if errors.Is(err, pet.ErrNotFound) {
				writeError(c, http.StatusNotFound, "pet not found")
				return
			}
			writePetError(c, err)
			return
		}
		resp = h.resolver.ProcessPetQuery(ctx, conv, focus, req.Message)
	} else {
		resp = h.resolver.ProcessGlobalQuery(ctx, conv, req.Message)
	}

	// A failed save costs continuity, not the answer.
	if err := h.sessions.Save(ctx, req.SessionID, conv); err != nil {
		log.Printf("chat: save session %s: %v", req.SessionID, err)
	}

	writeJSON(c, http.StatusOK, chatResp{SessionID: req.SessionID, Response: resp})
}
