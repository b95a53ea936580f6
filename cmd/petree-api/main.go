// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petree/internal/ai"
	"petree/internal/config"
	"petree/internal/geo"
	httptransport "petree/internal/http"
	"petree/internal/infra"
	"petree/internal/modules/faq"
	"petree/internal/modules/llmquota"
	"petree/internal/modules/market"
	"petree/internal/modules/match"
	"petree/internal/modules/pet"
	"petree/internal/resolver"
	"petree/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer gemini.Close()

	// Geocoding is optional: without a Maps key, breeding candidates are
	// returned unranked.
	var geocoder match.Geocoder
	if cfg.Maps.APIKey != "" {
		geocodeSvc, err := geo.NewGeocodeService(cfg.Maps.APIKey, redisClient)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		geocoder = geocodeSvc
	}

	petStore := pet.NewStore(dbPool)
	petSvc := pet.NewService(petStore)

	marketStore := market.NewStore(dbPool, redisClient)
	marketSvc := market.NewService(marketStore)

	matchStore := match.NewStore(dbPool)
	matchSvc := match.NewService(matchStore, petSvc, geocoder)

	faqStore := faq.NewStore(dbPool)
	faqCache := faq.NewCache(faqStore, cfg.Faq.CacheTTL, cfg.Faq.MaxEntries, time.Now)
	faqSvc := faq.NewService(faqCache, faqStore, gemini)

	quotaSvc := llmquota.NewService(llmquota.NewStore(dbPool))

	res := resolver.New(petSvc, faqSvc, marketSvc, matchSvc, gemini, quotaSvc)

	sessions := session.NewStore(redisClient, cfg.Session.TTL)

	router := httptransport.NewRouter(httptransport.Deps{
		Resolver: res,
		Sessions: sessions,
		Pets:     petSvc,
		Matches:  matchSvc,
		Market:   marketSvc,
		FaqCache: faqCache,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
