package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/sanketa/backend/config"
	"github.com/sanketa/backend/feed"
	"github.com/sanketa/backend/geocode"
	"github.com/sanketa/backend/handlers"
	"github.com/sanketa/backend/mailer"
	"github.com/sanketa/backend/store"
)

func main() {
	// Load base .env first, then .env.local (which overrides for local development)
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	cfg := config.Load()
	log.Printf("Config loaded: default_city=%s, cache_ttl=%v, offline=%v",
		cfg.DefaultCity, cfg.CacheTTL, cfg.OfflineMode)

	// Geocoding: online resolution through Nominatim, or the static city
	// table when running offline.
	var (
		resolver  store.Geocoder
		suggester handlers.Suggester
	)
	if cfg.OfflineMode {
		log.Println("Offline mode: using the built-in city table")
		static := geocode.Static{}
		resolver, suggester = static, static
	} else {
		client := geocode.NewClient(cfg.NominatimURL, cfg.UserAgent)
		resolver, suggester = client, client
	}

	st := store.New(resolver, cfg.DefaultCity, cfg.CacheTTL, nil)
	fd := feed.New(st, cfg.StreamInterval)
	ml := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ContactTo)
	if !ml.Enabled() {
		log.Println("Mailer disabled: contact submissions will be accepted but not delivered")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Rotation engine: advances every live entry once per tick interval.
	go st.Run(ctx, cfg.TickInterval)

	intersectionHandler := handlers.NewIntersectionHandler(st)
	streamHandler := handlers.NewStreamHandler(fd)
	cityHandler := handlers.NewCityHandler(suggester)
	contactHandler := handlers.NewContactHandler(ml)
	dashboardHandler := handlers.NewDashboardHandler(st)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/healthz", handlers.GetHealthz)
	r.Get("/api/ping", handlers.GetPing)
	r.Get("/api/status", handlers.GetStatus)

	r.Get("/api/intersections", intersectionHandler.GetIntersections)
	r.Get("/api/stream", streamHandler.GetStream)
	r.Get("/api/cities", cityHandler.GetCities)
	r.Post("/api/contact", contactHandler.PostContact)

	r.Get("/api/dashboard", dashboardHandler.GetDashboard)
	r.Get("/api/alerts", dashboardHandler.GetAlerts)
	r.Get("/api/reports", dashboardHandler.GetReports)
	r.Get("/api/health", dashboardHandler.GetHealth)
	r.Get("/api/spat/{id}", dashboardHandler.GetSpat)
	r.Get("/api/historical", dashboardHandler.GetHistorical)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"ok":false,"error":"Not found"}`))
	})

	log.Printf("API server starting on :%s", cfg.Port)
	log.Println("Live endpoints:")
	log.Println("  GET  /api/intersections")
	log.Println("  GET  /api/stream (SSE)")
	log.Println("  GET  /api/spat/{id}")
	log.Println("  GET  /api/historical")
	log.Println("Dashboard endpoints:")
	log.Println("  GET  /api/dashboard")
	log.Println("  GET  /api/alerts")
	log.Println("  GET  /api/reports")
	log.Println("  GET  /api/health")
	log.Println("Misc:")
	log.Println("  GET  /api/cities")
	log.Println("  POST /api/contact")
	log.Println("  GET  /api/status")

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Goodbye!")
}
