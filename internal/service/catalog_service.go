package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"cinerec/internal/engine"
	"cinerec/internal/models"
	"cinerec/internal/repository"
)

// CatalogService orquesta el ciclo de vida del catálogo: CRUD admin sobre
// la colección cruda, rebuild del snapshot y su persistencia. Agregar o
// modificar una película NO actualiza el índice incrementalmente: marca el
// snapshot como stale y hace falta un rebuild completo.
type CatalogService struct {
	movies *repository.MovieRepository
	snaps  *repository.SnapshotRepository
	eng    *engine.Engine

	mu         sync.Mutex
	rebuilding bool
	stale      bool
}

func NewCatalogService(
	movies *repository.MovieRepository,
	snaps *repository.SnapshotRepository,
	eng *engine.Engine,
) *CatalogService {
	return &CatalogService{movies: movies, snaps: snaps, eng: eng}
}

// Bootstrap se llama al arrancar: intenta restaurar el último snapshot
// persistido y, si no hay ninguno usable, reconstruye desde la colección
// de películas. Un snapshot incompatible o corrupto no es fatal: se
// loguea y se reconstruye.
func (s *CatalogService) Bootstrap(ctx context.Context) error {
	snap, err := s.snaps.LoadLatest(ctx, s.eng.Policy())
	if err != nil {
		log.Printf("[catalog] snapshot persistido inutilizable, se reconstruye: %v", err)
	}
	if snap != nil {
		s.eng.Restore(snap)
		log.Printf("[catalog] snapshot restaurado: %d películas, vocabulario=%d, builtAt=%s",
			snap.Catalog.Len(), len(snap.Vocab), snap.BuiltAt.Format(time.RFC3339))
		return nil
	}

	_, err = s.Rebuild(ctx, nil)
	return err
}

// Rebuild corre el pipeline completo y persiste el snapshot resultante.
// Solo un rebuild a la vez; las lecturas en vuelo siguen contra el
// snapshot viejo hasta el swap.
func (s *CatalogService) Rebuild(ctx context.Context, progress func(stage string)) (*engine.Snapshot, error) {
	s.mu.Lock()
	if s.rebuilding {
		s.mu.Unlock()
		return nil, fmt.Errorf("ya hay un rebuild en curso")
	}
	s.rebuilding = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.rebuilding = false
		s.mu.Unlock()
	}()

	start := time.Now()

	raws, err := s.movies.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargando catálogo crudo: %w", err)
	}

	snap, err := s.eng.Rebuild(ctx, raws, progress)
	if err != nil {
		// el snapshot anterior sigue activo en el engine
		return nil, err
	}

	s.mu.Lock()
	s.stale = false
	s.mu.Unlock()

	id, err := s.snaps.Save(ctx, snap)
	if err != nil {
		// el snapshot en memoria ya está activo; la persistencia fallida
		// no rompe el servicio
		log.Printf("[catalog] error persistiendo snapshot: %v", err)
		return snap, nil
	}
	if err := s.snaps.PurgeOlder(ctx, id); err != nil {
		log.Printf("[catalog] error purgando snapshots viejos: %v", err)
	}

	log.Printf("[catalog] rebuild completado: %d películas, vocabulario=%d, tiempo=%s",
		snap.Catalog.Len(), len(snap.Vocab), time.Since(start))
	return snap, nil
}

// Summary arma el estado para GET /admin/snapshot.
func (s *CatalogService) Summary() models.SnapshotSummary {
	s.mu.Lock()
	stale, rebuilding := s.stale, s.rebuilding
	s.mu.Unlock()

	out := models.SnapshotSummary{Stale: stale, Rebuilding: rebuilding}
	if snap := s.eng.Snapshot(); snap != nil {
		out.Ready = true
		out.BuiltAt = snap.BuiltAt
		out.Movies = snap.Catalog.Len()
		out.Vocabulary = len(snap.Vocab)
	}
	return out
}

func (s *CatalogService) markStale() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

// ---------------------- CRUD admin ----------------------

func (s *CatalogService) GetMovie(ctx context.Context, movieID int) (*models.MovieDoc, error) {
	return s.movies.GetByID(ctx, movieID)
}

func (s *CatalogService) Search(
	ctx context.Context,
	q, genre string,
	yearFrom, yearTo, limit, offset int,
) ([]models.MovieDoc, error) {
	return s.movies.Search(ctx, q, genre, yearFrom, yearTo, limit, offset)
}

func (s *CatalogService) CreateMovie(ctx context.Context, req models.MovieCreateRequest) (*models.MovieDoc, error) {
	existing, err := s.movies.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("ya existe una película con id %d", req.ID)
	}

	doc := &models.MovieDoc{
		ID:          req.ID,
		Title:       req.Title,
		Overview:    req.Overview,
		Genres:      req.Genres,
		Keywords:    req.Keywords,
		ReleaseDate: req.ReleaseDate,
		VoteAverage: req.VoteAverage,
		VoteCount:   req.VoteCount,
		Popularity:  req.Popularity,
	}
	if err := s.movies.Insert(ctx, doc); err != nil {
		return nil, err
	}

	s.markStale()
	return doc, nil
}

func (s *CatalogService) UpdateMovie(ctx context.Context, movieID int, req models.MovieUpdateRequest) error {
	existing, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return err
	}
	if existing == nil {
		return engine.ErrMovieNotFound
	}

	update := map[string]any{}
	if req.Title != nil {
		update["title"] = *req.Title
	}
	if req.Overview != nil {
		update["overview"] = *req.Overview
	}
	if req.Genres != nil {
		update["genres"] = []string(*req.Genres)
	}
	if req.Keywords != nil {
		update["keywords"] = []string(*req.Keywords)
	}
	if req.ReleaseDate != nil {
		update["releaseDate"] = *req.ReleaseDate
	}
	if req.VoteAverage != nil {
		update["voteAverage"] = *req.VoteAverage
	}
	if req.VoteCount != nil {
		update["voteCount"] = *req.VoteCount
	}
	if req.Popularity != nil {
		update["popularity"] = *req.Popularity
	}
	if len(update) == 0 {
		return fmt.Errorf("no hay campos para actualizar")
	}

	if err := s.movies.UpdateByID(ctx, movieID, update); err != nil {
		return err
	}

	s.markStale()
	return nil
}
