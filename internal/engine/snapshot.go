package engine

import (
	"context"
	"sync"
	"time"

	"cinerec/internal/models"
)

// Etapas del build, en orden. Se reportan por el callback de progreso
// (el handler WebSocket las retransmite al cliente).
const (
	StageNormalize  = "normalize"
	StageCompose    = "compose"
	StageVectorize  = "vectorize"
	StageSimilarity = "similarity"
	StageSwap       = "swap"
)

// Snapshot es una tripleta inmutable (catálogo, vocabulario, matriz de
// similitud) producida por un build. Las cuatro estrategias leen solo de
// acá: ningún lock, seguras de invocar en paralelo sobre el mismo snapshot.
type Snapshot struct {
	Catalog *Catalog
	Vocab   Vocabulary
	Sim     *Matrix
	BuiltAt time.Time

	policy Policy
}

// Policy devuelve la política de ranking con la que se construyó.
func (s *Snapshot) Policy() Policy { return s.policy }

// NewSnapshot rearma un snapshot desde datos persistidos.
func NewSnapshot(movies []Movie, vocab Vocabulary, sim *Matrix, builtAt time.Time, p Policy) *Snapshot {
	return &Snapshot{
		Catalog: NewCatalog(movies),
		Vocab:   vocab,
		Sim:     sim,
		BuiltAt: builtAt,
		policy:  p,
	}
}

// Engine mantiene el snapshot activo. Una fase de escritura (Rebuild) y
// muchas de lectura: el swap es atómico bajo el mutex, los lectores en
// vuelo siguen usando el snapshot viejo hasta terminar, y si un build
// falla el último snapshot bueno queda intacto.
type Engine struct {
	mu      sync.RWMutex
	policy  Policy
	current *Snapshot
}

func NewEngine(p Policy) *Engine {
	return &Engine{policy: p}
}

func (e *Engine) Policy() Policy { return e.policy }

// Snapshot devuelve el snapshot activo, o nil si nunca se construyó.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Restore instala un snapshot cargado de la persistencia.
func (e *Engine) Restore(s *Snapshot) {
	s.policy = e.policy
	e.mu.Lock()
	e.current = s
	e.mu.Unlock()
}

// Rebuild corre el pipeline completo sobre los registros crudos:
// normalizar -> componer features -> TF-IDF -> matriz de similitud.
// Todo se construye aparte y recién al final se swapea; no hay estados
// intermedios observables. La fase O(N²) es cancelable vía ctx.
func (e *Engine) Rebuild(ctx context.Context, raws []models.MovieDoc, progress func(stage string)) (*Snapshot, error) {
	report := func(stage string) {
		if progress != nil {
			progress(stage)
		}
	}

	report(StageNormalize)
	catalog, err := Normalize(raws)
	if err != nil {
		return nil, err
	}

	report(StageCompose)
	docs := make([][]string, catalog.Len())
	for i := range catalog.Movies {
		docs[i] = Compose(&catalog.Movies[i], e.policy)
	}

	report(StageVectorize)
	vocab, rows, err := fitTFIDF(docs)
	if err != nil {
		return nil, err
	}

	report(StageSimilarity)
	sim, err := buildMatrix(ctx, rows)
	if err != nil {
		return nil, err
	}

	report(StageSwap)
	snap := &Snapshot{
		Catalog: catalog,
		Vocab:   vocab,
		Sim:     sim,
		BuiltAt: time.Now().UTC(),
		policy:  e.policy,
	}

	e.mu.Lock()
	e.current = snap
	e.mu.Unlock()

	return snap, nil
}
