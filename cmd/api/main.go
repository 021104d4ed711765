package main

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "cinerec/docs" // swagger docs

	"cinerec/internal/cache"
	"cinerec/internal/config"
	"cinerec/internal/db"
	"cinerec/internal/engine"
	"cinerec/internal/handler"
	"cinerec/internal/repository"
	"cinerec/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title CineRec Recommendation API
// @version 1.0
// @description API del motor de recomendación (content-based, TF-IDF + coseno, Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	userRepo := repository.NewUserRepository()
	movieRepo := repository.NewMovieRepository()
	snapRepo := repository.NewSnapshotRepository()

	// engine + services
	eng := engine.NewEngine(cfg.Ranking)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	catalogSvc := service.NewCatalogService(movieRepo, snapRepo, eng)
	recSvc := service.NewRecommendService(eng)

	// arranque: restaurar el último snapshot persistido o reconstruir.
	// Si el catálogo está vacío se sirve igual: los endpoints de
	// recomendación devuelven 503 hasta que haya un build bueno.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		if err := catalogSvc.Bootstrap(ctx); err != nil {
			log.Printf("[api] no hay índice al arrancar (%v); se puede construir con POST /admin/rebuild", err)
		}
		cancel()
	}

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	movieH := handler.NewMovieHandler(catalogSvc)
	recH := handler.NewRecommendHandler(recSvc, authSvc)
	adminH := handler.NewAdminHandler(catalogSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// catálogo
	r.Get("/movies/search", movieH.Search)
	r.Get("/movies/{id}", movieH.GetMovie)

	// recomendaciones públicas
	r.Get("/movies/{id}/similar", recH.GetSimilar)
	r.Get("/movies/{id}/hybrid", recH.GetHybrid)
	r.Get("/recommendations/popular", recH.GetPopular)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		// ---- Endpoints /me (USER normal) ----
		r.Route("/me", func(r chi.Router) {
			r.Get("/", authH.Me)
			r.Put("/preferred-genres", authH.UpdatePreferredGenres)
			r.Post("/recommendations", recH.PostPreferences)
		})

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			// gestión de películas (dejan el snapshot stale)
			r.Post("/admin/movies", movieH.CreateMovie)
			r.Put("/admin/movies/{id}", movieH.UpdateMovie)

			// mantenimiento del snapshot
			handler.MountAdminRoutes(r, adminH)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
