// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petree/internal/http/handlers"
	"petree/internal/http/middleware"
	"petree/internal/modules/faq"
	"petree/internal/modules/market"
	"petree/internal/modules/match"
	"petree/internal/modules/pet"
	"petree/internal/resolver"
	"petree/internal/session"
)

type Deps struct {
	Resolver *resolver.Resolver
	Sessions *session.Store
	Pets     *pet.Service
	Matches  *match.Service
	Market   *market.Service
	FaqCache *faq.Cache
}

func NewRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	chatHandler := handlers.NewChatHandler(deps.Resolver, deps.Sessions, deps.Pets)
	r.POST("/api/chat", chatHandler.Chat)

	petHandler := handlers.NewPetHandler(deps.Pets, deps.Matches)
	r.GET("/api/pets/search", petHandler.Search)
	r.GET("/api/pets/:id", petHandler.Get)
	r.GET("/api/pets/:id/tree", petHandler.Tree)
	r.GET("/api/pets/:id/candidates", petHandler.Candidates)

	matchHandler := handlers.NewMatchHandler(deps.Matches)
	r.GET("/api/pets/:id/matches", matchHandler.ForPet)
	r.POST("/api/matches/:id/status", matchHandler.Transition)

	marketHandler := handlers.NewMarketHandler(deps.Market)
	r.GET("/api/market/summary", marketHandler.Summary)

	faqHandler := handlers.NewFaqAdminHandler(deps.FaqCache)
	r.POST("/api/faq/invalidate", faqHandler.Invalidate)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
