package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/webfolio/apiserver/config"
	"github.com/webfolio/apiserver/internal/db"
	"github.com/webfolio/apiserver/internal/handlers"
	"github.com/webfolio/apiserver/internal/notify"
	"github.com/webfolio/apiserver/internal/services"
	"github.com/webfolio/apiserver/internal/storage"
	"github.com/webfolio/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	notifier   *notify.Notifier
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	jwtSecret := strings.TrimSpace(cfg.Auth.JWTSecret)
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	aboutRepo := store.NewAboutRepository(dbConn)
	educationRepo := store.NewEducationRepository(dbConn)
	skillRepo := store.NewSkillRepository(dbConn)
	experienceRepo := store.NewExperienceRepository(dbConn)
	projectRepo := store.NewProjectRepository(dbConn)
	contactRepo := store.NewContactRepository(dbConn)
	dashboardRepo := store.NewDashboardRepository(dbConn)

	notifier, err := newNotifier(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	mediaService, err := newMediaService(ctx, cfg, aboutRepo)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userService := services.NewUserService(userRepo)
	aboutService := services.NewAboutService(aboutRepo)
	educationService := services.NewEducationService(educationRepo)
	skillService := services.NewSkillService(skillRepo)
	experienceService := services.NewExperienceService(experienceRepo)
	projectService := services.NewProjectService(projectRepo)
	contactService := services.NewContactService(contactRepo, notifier)
	dashboardService := services.NewDashboardService(dashboardRepo)

	authMiddleware := handlers.RequireAuth(jwtSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			handlers.AuthRouter(r, userService, jwtSecret)
		})
		r.Route("/dashboard", func(r chi.Router) {
			handlers.DashboardRouter(r, dashboardService, authMiddleware)
		})
		r.Route("/about", func(r chi.Router) {
			handlers.AboutRouter(r, aboutService, mediaService, authMiddleware)
		})
		r.Route("/education", func(r chi.Router) {
			handlers.EducationRouter(r, educationService, authMiddleware)
		})
		r.Route("/skills", func(r chi.Router) {
			handlers.SkillsRouter(r, skillService)
		})
		r.Route("/skill-categories", func(r chi.Router) {
			handlers.SkillCategoriesRouter(r, skillService, authMiddleware)
		})
		r.Route("/individual-skills", func(r chi.Router) {
			handlers.IndividualSkillsRouter(r, skillService, authMiddleware)
		})
		r.Route("/experience", func(r chi.Router) {
			handlers.ExperienceRouter(r, experienceService, authMiddleware)
		})
		r.Route("/projects", func(r chi.Router) {
			handlers.ProjectsRouter(r, projectService, authMiddleware)
		})
		r.Route("/contact", func(r chi.Router) {
			handlers.ContactRouter(r, contactService, authMiddleware)
		})
	})

	if dir := strings.TrimSpace(cfg.StaticDir); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			router.NotFound(handlers.SPAHandler(dir))
		}
	}

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		notifier:   notifier,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.notifier != nil {
		_ = s.notifier.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}

// newNotifier wires the configured broker, or returns nil when
// notifications are disabled.
func newNotifier(ctx context.Context, cfg config.Config) (*notify.Notifier, error) {
	switch cfg.MQ.Backend {
	case "":
		return nil, nil
	case "rabbitmq":
		broker, err := notify.NewRabbitMQBroker(cfg.MQ)
		if err != nil {
			return nil, err
		}
		return notify.NewNotifier(broker), nil
	case "pubsub":
		broker, err := notify.NewPubSubBroker(ctx, cfg.MQ)
		if err != nil {
			return nil, err
		}
		return notify.NewNotifier(broker), nil
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.MQ.Backend)
	}
}

// newMediaService wires the configured object storage, or returns nil
// when uploads are disabled.
func newMediaService(ctx context.Context, cfg config.Config, aboutRepo *store.AboutRepository) (*services.MediaService, error) {
	var backend storage.ObjectStorage
	switch cfg.Storage.Backend {
	case "":
		return nil, nil
	case "minio":
		client, err := storage.NewMinioClient(cfg.Storage.Minio)
		if err != nil {
			return nil, err
		}
		backend = client
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.Storage.GCS)
		if err != nil {
			return nil, err
		}
		backend = client
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	wrapped := storage.NewStorage(backend)
	if err := wrapped.EnsureBucket(ctx); err != nil {
		log.Printf("storage: ensure bucket failed: %v", err)
	}
	return services.NewMediaService(wrapped, aboutRepo), nil
}
