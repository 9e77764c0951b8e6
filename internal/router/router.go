package router

import (
	"database/sql"
	"net/http"

	"pet-lost-found/docs"
	"pet-lost-found/internal/adapters/messaging/logsink"
	mem "pet-lost-found/internal/adapters/storage/memory"
	pg "pet-lost-found/internal/adapters/storage/postgres"
	"pet-lost-found/internal/domain/alerts"
	"pet-lost-found/internal/domain/broadcast"
	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/profiles"
	"pet-lost-found/internal/domain/quota"
	"pet-lost-found/internal/domain/sightings"
	"pet-lost-found/internal/middleware"
	"pet-lost-found/internal/platform/config"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/ports/auth"
	"pet-lost-found/internal/ports/messaging"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Gateway nil => logsink (no envía nada).
	Gateway messaging.Gateway
	// Guard nil => guard en memoria (una sola réplica).
	Guard broadcast.Guard

	Logger logger.Logger
	Config config.Config
}

// App es el handler HTTP más lo que hay que drenar al apagar.
type App struct {
	Handler    http.Handler
	broadcasts *broadcast.Async
}

// Wait espera las difusiones en background (no-op si son síncronas).
func (a *App) Wait() {
	if a.broadcasts != nil {
		a.broadcasts.Wait()
	}
}

func NewRouter(opts Options) http.Handler {
	return New(opts).Handler
}

type repos struct {
	profiles  profiles.Repository
	plans     profiles.PlanRepository
	subs      profiles.SubscriptionRepository
	directory broadcast.Directory
	pets      pets.Repository
	alerts    alerts.Repository
	sightings sightings.Repository
	search    matching.Repository
}

func newRepos(db *sql.DB) repos {
	if db != nil {
		profileRepo := pg.NewProfilesRepo(db)
		return repos{
			profiles:  profileRepo,
			plans:     pg.NewPlansRepo(db),
			subs:      pg.NewSubscriptionsRepo(db),
			directory: profileRepo,
			pets:      pg.NewPetsRepo(db),
			alerts:    pg.NewAlertsRepo(db),
			sightings: pg.NewSightingsRepo(db),
			search:    pg.NewSearchRepo(db),
		}
	}

	profileRepo := mem.NewProfileRepo()
	planRepo := mem.NewPlanRepo()
	petRepo := mem.NewPetRepo()
	alertRepo := mem.NewAlertRepo(petRepo)
	return repos{
		profiles:  profileRepo,
		plans:     planRepo,
		subs:      mem.NewSubscriptionRepo(planRepo),
		directory: profileRepo,
		pets:      petRepo,
		alerts:    alertRepo,
		sightings: mem.NewSightingRepo(),
		search:    mem.NewSearchRepo(alertRepo, petRepo, profileRepo),
	}
}

func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	cfg := opts.Config

	gw := opts.Gateway
	if gw == nil {
		gw = logsink.New(log)
	}
	guard := opts.Guard
	if guard == nil {
		guard = mem.NewBroadcastGuard()
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.DebugPhoneHeader, middleware.DebugNameHeader},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	docs.SwaggerInfo.BasePath = "/"
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	rp := newRepos(opts.DB)

	// Services por módulo
	profilesSvc := profiles.NewService(rp.profiles, rp.plans, rp.subs, log)
	resolver := quota.NewResolver(rp.profiles, rp.subs, rp.pets, log)
	petsSvc := pets.NewService(rp.pets, resolver, profilesSvc)

	dispatcher := broadcast.NewDispatcher(rp.directory, gw, log, broadcast.Options{
		Interval:    cfg.Broadcast.Interval,
		SendTimeout: cfg.Broadcast.SendTimeout,
		TemplateID:  cfg.Twilio.BroadcastContentSID,
		From:        cfg.Twilio.From,
		Guard:       guard,
		DedupeTTL:   cfg.Broadcast.DedupeTTL,
	})
	app := &App{}
	var broadcaster alerts.Broadcaster = dispatcher
	if cfg.Broadcast.Async {
		app.broadcasts = broadcast.NewAsync(dispatcher, log)
		broadcaster = app.broadcasts
	}

	alertsSvc := alerts.NewService(rp.alerts, profilesSvc, petsSvc, broadcaster, log)
	matchingSvc := matching.NewService(rp.search, log)
	sightingsSvc := sightings.NewService(rp.sightings, alertsSvc, petsSvc, profilesSvc, gw, log, sightings.Options{
		TemplateID:  cfg.Twilio.MatchContentSID,
		From:        cfg.Twilio.From,
		PhotoMarker: cfg.Photos.PathMarker,
	})

	// Rutas por módulo
	profiles.RegisterRoutes(r, profilesSvc)
	quota.RegisterRoutes(r, resolver)
	pets.RegisterRoutes(r, petsSvc)
	alerts.RegisterRoutes(r, alertsSvc)
	matching.RegisterRoutes(r, matchingSvc, cfg.Search.MinQueryLength)
	sightings.RegisterRoutes(r, sightingsSvc)

	app.Handler = r
	return app
}
