package engine

import (
	"log"
	"sort"
	"strings"

	"cinerec/internal/models"
)

// Las cuatro estrategias son funciones puras sobre el snapshot: no tocan
// estado compartido y se pueden llamar concurrentemente.

// ContentBased: los k vecinos más similares por contenido. Nunca incluye
// a la película consultada. ErrMovieNotFound si el id no está.
func (s *Snapshot) ContentBased(movieID, k int) ([]models.RecItem, error) {
	row, ok := s.Catalog.RowOf(movieID)
	if !ok {
		return nil, ErrMovieNotFound
	}
	if k <= 0 {
		k = s.policy.DefaultK
	}

	items := make([]models.RecItem, 0, k)
	for _, n := range s.Sim.Neighbors(row, k) {
		m := &s.Catalog.Movies[n.Row]
		items = append(items, models.RecItem{MovieID: m.ID, Title: m.Title, Score: n.Score})
	}
	return items, nil
}

// PopularityBased: weighted rating bayesiano sobre las películas con al
// menos minVotes votos:
//
//	score = (v/(v+m))·R + (m/(v+m))·C
//
// con v = votos, R = rating, m = minVotes y C = rating medio del conjunto
// filtrado. Descuenta hacia la media a las películas con pocos votos: un
// 10/10 de un voto no le gana a un 8/10 de mil votos. Si nada califica
// devuelve lista vacía, no error.
func (s *Snapshot) PopularityBased(minVotes, k int) []models.RecItem {
	if minVotes < 0 {
		minVotes = s.policy.DefaultMinVotes
	}
	if k <= 0 {
		k = s.policy.DefaultK
	}

	qualified := make([]int, 0, s.Catalog.Len())
	for i := range s.Catalog.Movies {
		if s.Catalog.Movies[i].VoteCount >= minVotes {
			qualified = append(qualified, i)
		}
	}
	if len(qualified) == 0 {
		return []models.RecItem{}
	}

	scores := s.weightedRatings(qualified, float64(minVotes))

	order := make([]int, len(qualified))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ma := &s.Catalog.Movies[qualified[order[a]]]
		mb := &s.Catalog.Movies[qualified[order[b]]]
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		if ma.VoteCount != mb.VoteCount {
			return ma.VoteCount > mb.VoteCount
		}
		return ma.ID < mb.ID
	})

	if len(order) > k {
		order = order[:k]
	}
	items := make([]models.RecItem, 0, len(order))
	for _, idx := range order {
		m := &s.Catalog.Movies[qualified[idx]]
		items = append(items, models.RecItem{MovieID: m.ID, Title: m.Title, Score: scores[idx]})
	}
	return items
}

// weightedRatings calcula el weighted rating de cada fila de `rows`, con
// C = rating medio del propio conjunto (se recalcula por request, nunca se
// cachea: el conjunto de candidatos cambia por consulta).
func (s *Snapshot) weightedRatings(rows []int, m float64) []float64 {
	var c float64
	for _, i := range rows {
		c += s.Catalog.Movies[i].VoteAverage
	}
	c /= float64(len(rows))

	out := make([]float64, len(rows))
	for idx, i := range rows {
		v := float64(s.Catalog.Movies[i].VoteCount)
		r := s.Catalog.Movies[i].VoteAverage
		if v+m == 0 {
			out[idx] = c
			continue
		}
		out[idx] = (v/(v+m))*r + (m/(v+m))*c
	}
	return out
}

// Hybrid mezcla contenido y popularidad: alpha·contentNorm +
// (1-alpha)·popularityNorm, ambos min-max normalizados a [0,1] sobre el
// conjunto de candidatos (todo el catálogo menos la consultada). Empates:
// votos descendente, luego id ascendente.
func (s *Snapshot) Hybrid(movieID, k int, alpha float64) ([]models.RecItem, error) {
	row, ok := s.Catalog.RowOf(movieID)
	if !ok {
		return nil, ErrMovieNotFound
	}
	if k <= 0 {
		k = s.policy.DefaultK
	}
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}

	candidates := make([]int, 0, s.Catalog.Len()-1)
	for i := 0; i < s.Catalog.Len(); i++ {
		if i != row {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return []models.RecItem{}, nil
	}

	content := make([]float64, len(candidates))
	for idx, i := range candidates {
		content[idx] = s.Sim.At(row, i)
	}
	popularity := s.weightedRatings(candidates, float64(s.policy.DefaultMinVotes))

	minMaxNormalize(content)
	minMaxNormalize(popularity)

	blended := make([]float64, len(candidates))
	for i := range blended {
		blended[i] = alpha*content[i] + (1-alpha)*popularity[i]
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ma := &s.Catalog.Movies[candidates[order[a]]]
		mb := &s.Catalog.Movies[candidates[order[b]]]
		if blended[order[a]] != blended[order[b]] {
			return blended[order[a]] > blended[order[b]]
		}
		if ma.VoteCount != mb.VoteCount {
			return ma.VoteCount > mb.VoteCount
		}
		return ma.ID < mb.ID
	})

	if len(order) > k {
		order = order[:k]
	}
	items := make([]models.RecItem, 0, len(order))
	for _, idx := range order {
		m := &s.Catalog.Movies[candidates[idx]]
		items = append(items, models.RecItem{MovieID: m.ID, Title: m.Title, Score: blended[idx]})
	}
	return items, nil
}

// minMaxNormalize lleva el vector a [0,1] in place. Si todos los valores
// son iguales queda todo en 0 (sin señal que ordenar).
func minMaxNormalize(v []float64) {
	if len(v) == 0 {
		return
	}
	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi == lo {
		for i := range v {
			v[i] = 0
		}
		return
	}
	for i := range v {
		v[i] = (v[i] - lo) / (hi - lo)
	}
}

// PreferenceBased agrega, para cada favorito del usuario, las similitudes
// hacia el resto del catálogo y suma por candidato; los que comparten
// género con los favoritos del perfil reciben el boost multiplicativo de
// la política. Los favoritos mismos nunca salen en el resultado.
// Con favoritos vacíos (o ninguno presente en el catálogo) cae
// explícitamente a PopularityBased con el piso de votos por defecto.
func (s *Snapshot) PreferenceBased(prefs models.Preferences, k int) []models.RecItem {
	if k <= 0 {
		k = s.policy.DefaultK
	}

	favRows := make(map[int]struct{}, len(prefs.Favorites))
	skipped := 0
	for _, id := range prefs.Favorites {
		if row, ok := s.Catalog.RowOf(id); ok {
			favRows[row] = struct{}{}
		} else {
			skipped++
		}
	}
	if skipped > 0 {
		log.Printf("[recommend] %d favoritos ignorados: no están en el catálogo", skipped)
	}
	if len(favRows) == 0 {
		return s.PopularityBased(s.policy.DefaultMinVotes, k)
	}

	// filas favoritas en orden fijo: la suma de floats depende del orden
	// y el resultado tiene que ser reproducible
	favOrder := make([]int, 0, len(favRows))
	for fr := range favRows {
		favOrder = append(favOrder, fr)
	}
	sort.Ints(favOrder)

	agg := make([]float64, s.Catalog.Len())
	for _, fr := range favOrder {
		for j := 0; j < s.Catalog.Len(); j++ {
			if _, isFav := favRows[j]; isFav {
				continue
			}
			agg[j] += s.Sim.At(fr, j)
		}
	}

	type scored struct {
		row   int
		score float64
	}
	out := make([]scored, 0, s.Catalog.Len())
	for j := range agg {
		if _, isFav := favRows[j]; isFav {
			continue
		}
		if agg[j] <= 0 {
			continue
		}
		score := agg[j]
		if genresIntersect(s.Catalog.Movies[j].Genres, prefs.FavoriteGenres) {
			score *= s.policy.GenreBoost
		}
		out = append(out, scored{row: j, score: score})
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].score != out[b].score {
			return out[a].score > out[b].score
		}
		return out[a].row < out[b].row
	})

	if len(out) > k {
		out = out[:k]
	}
	items := make([]models.RecItem, 0, len(out))
	for _, sc := range out {
		m := &s.Catalog.Movies[sc.row]
		items = append(items, models.RecItem{MovieID: m.ID, Title: m.Title, Score: sc.score})
	}
	return items
}

func genresIntersect(genres, favorites []string) bool {
	for _, g := range genres {
		for _, f := range favorites {
			if strings.EqualFold(g, f) {
				return true
			}
		}
	}
	return false
}
