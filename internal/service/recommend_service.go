package service

import (
	"context"
	"fmt"
	"log"

	"cinerec/internal/cache"
	"cinerec/internal/engine"
	"cinerec/internal/models"
)

const (
	DefaultK = 10
	MaxK     = 50 // por seguridad, no deja pedir el catálogo entero

	cacheTTLSeconds = 60 * 60
)

// RecommendService expone las cuatro estrategias sobre el snapshot activo,
// con cache Redis por estrategia + parámetros. La key incluye el instante
// de build del snapshot, así un rebuild invalida solo por expiración de
// keys viejas, sin flush explícito.
type RecommendService struct {
	eng *engine.Engine
}

func NewRecommendService(eng *engine.Engine) *RecommendService {
	return &RecommendService{eng: eng}
}

func (s *RecommendService) snapshot() (*engine.Snapshot, error) {
	snap := s.eng.Snapshot()
	if snap == nil {
		return nil, engine.ErrNoSnapshot
	}
	return snap, nil
}

func clampK(k int) int {
	if k <= 0 {
		return DefaultK
	}
	if k > MaxK {
		return MaxK
	}
	return k
}

// Similar: recomendaciones content-based para una película.
func (s *RecommendService) Similar(ctx context.Context, movieID, k int, refresh bool) ([]models.RecItem, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	k = clampK(k)

	key := fmt.Sprintf("rec:similar:%d:k:%d:snap:%d", movieID, k, snap.BuiltAt.UnixNano())
	var cached []models.RecItem
	if !refresh {
		if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	items, err := snap.ContentBased(movieID, k)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, key, items, cacheTTLSeconds); err != nil {
		log.Printf("[recommend] error cacheando similar: %v", err)
	}
	return items, nil
}

// Popular: ranking por weighted rating con piso de votos. minVotes < 0
// usa el default de la política.
func (s *RecommendService) Popular(ctx context.Context, minVotes, k int, refresh bool) ([]models.RecItem, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	k = clampK(k)
	if minVotes < 0 {
		minVotes = snap.Policy().DefaultMinVotes
	}

	key := fmt.Sprintf("rec:popular:m:%d:k:%d:snap:%d", minVotes, k, snap.BuiltAt.UnixNano())
	var cached []models.RecItem
	if !refresh {
		if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	items := snap.PopularityBased(minVotes, k)

	if err := cache.SetJSON(ctx, key, items, cacheTTLSeconds); err != nil {
		log.Printf("[recommend] error cacheando popular: %v", err)
	}
	return items, nil
}

// Blend: estrategia híbrida. alpha < 0 usa el default de la política.
func (s *RecommendService) Blend(ctx context.Context, movieID, k int, alpha float64, refresh bool) ([]models.RecItem, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	k = clampK(k)
	if alpha < 0 {
		alpha = snap.Policy().DefaultAlpha
	}

	key := fmt.Sprintf("rec:hybrid:%d:k:%d:a:%g:snap:%d", movieID, k, alpha, snap.BuiltAt.UnixNano())
	var cached []models.RecItem
	if !refresh {
		if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	items, err := snap.Hybrid(movieID, k, alpha)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, key, items, cacheTTLSeconds); err != nil {
		log.Printf("[recommend] error cacheando hybrid: %v", err)
	}
	return items, nil
}

// ForPreferences: preference-based. Sin cache: las preferencias son
// efímeras, por request, y no hay estado por usuario en el engine.
func (s *RecommendService) ForPreferences(ctx context.Context, prefs models.Preferences, k int) ([]models.RecItem, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.PreferenceBased(prefs, clampK(k)), nil
}
