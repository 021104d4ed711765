package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"cinerec/internal/config"
	"cinerec/internal/db"
	"cinerec/internal/engine"
	"cinerec/internal/repository"
	"cinerec/internal/service"
)

// Indexer offline: carga el catálogo crudo de Mongo, corre el pipeline
// completo (normalizar -> features -> TF-IDF -> similitud) y persiste el
// snapshot versionado. El API lo levanta al arrancar sin tener que
// recalcular la matriz. Ctrl-C cancela el build a mitad de camino sin
// dejar nada a medias: solo se persiste un snapshot completo.
func main() {
	cfg := config.Load()
	db.InitMongo(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	movieRepo := repository.NewMovieRepository()
	snapRepo := repository.NewSnapshotRepository()
	eng := engine.NewEngine(cfg.Ranking)
	catalogSvc := service.NewCatalogService(movieRepo, snapRepo, eng)

	start := time.Now()
	snap, err := catalogSvc.Rebuild(ctx, func(stage string) {
		log.Printf("[indexer] etapa: %s", stage)
	})
	if err != nil {
		log.Fatalf("[indexer] build falló: %v", err)
	}

	log.Printf("[indexer] listo: %d películas, vocabulario=%d términos, tiempo=%s",
		snap.Catalog.Len(), len(snap.Vocab), time.Since(start))
}
