package engine

import (
	"log"
	"math"
	"strconv"
	"strings"

	"cinerec/internal/models"
)

// Movie es un registro canónico del catálogo, ya limpio: sin sentinelas de
// valores faltantes en los campos numéricos.
type Movie struct {
	ID          int
	Title       string
	Overview    string
	Genres      []string
	Keywords    []string
	Year        int // 0 = desconocido
	VoteAverage float64
	VoteCount   int
	Popularity  float64
}

// Catalog es la tabla en memoria: slice de registros + mapa id -> fila.
// El orden de las filas es el orden de entrada (determinista).
type Catalog struct {
	Movies []Movie
	byID   map[int]int
}

// NewCatalog arma el catálogo a partir de registros ya normalizados
// (se usa al restaurar un snapshot persistido).
func NewCatalog(movies []Movie) *Catalog {
	c := &Catalog{
		Movies: movies,
		byID:   make(map[int]int, len(movies)),
	}
	for i, m := range movies {
		c.byID[m.ID] = i
	}
	return c
}

func (c *Catalog) Len() int { return len(c.Movies) }

// RowOf resuelve un movieId a su índice de fila.
func (c *Catalog) RowOf(movieID int) (int, bool) {
	row, ok := c.byID[movieID]
	return row, ok
}

// Normalize limpia los registros crudos y arma el catálogo canónico:
//   - valores numéricos faltantes (o NaN) se coercen a 0
//   - géneros/keywords faltantes quedan como lista vacía
//   - registros con id no parseable se descartan
//   - ids duplicados se resuelven last-write-wins (el registro posterior
//     reemplaza al anterior en su misma fila; evento no fatal, solo log)
//
// Devuelve ErrNoValidRecords si no sobrevive ningún registro.
func Normalize(raws []models.MovieDoc) (*Catalog, error) {
	movies := make([]Movie, 0, len(raws))
	byID := make(map[int]int, len(raws))
	discarded, duplicated := 0, 0

	for _, raw := range raws {
		id, ok := parseMovieID(raw.ID)
		if !ok {
			discarded++
			continue
		}

		m := Movie{
			ID:          id,
			Title:       strings.TrimSpace(raw.Title),
			Overview:    strings.TrimSpace(raw.Overview),
			Genres:      []string(raw.Genres),
			Keywords:    []string(raw.Keywords),
			Year:        parseYear(raw.ReleaseDate),
			VoteAverage: coerceNonNegative(raw.VoteAverage),
			VoteCount:   int(coerceNonNegative(raw.VoteCount)),
			Popularity:  coerceNonNegative(raw.Popularity),
		}
		if m.Genres == nil {
			m.Genres = []string{}
		}
		if m.Keywords == nil {
			m.Keywords = []string{}
		}

		if row, seen := byID[id]; seen {
			// last-write-wins, conservando la posición original
			movies[row] = m
			duplicated++
			continue
		}
		byID[id] = len(movies)
		movies = append(movies, m)
	}

	if discarded > 0 {
		log.Printf("[normalize] %d registros descartados por id no parseable", discarded)
	}
	if duplicated > 0 {
		log.Printf("[normalize] %d ids duplicados resueltos (last-write-wins)", duplicated)
	}

	if len(movies) == 0 {
		return nil, ErrNoValidRecords
	}
	return &Catalog{Movies: movies, byID: byID}, nil
}

// parseMovieID acepta las formas numéricas que aparecen en datasets
// aplanados: int, float entero, o string con dígitos.
func parseMovieID(v any) (int, bool) {
	switch id := v.(type) {
	case int:
		return id, true
	case int32:
		return int(id), true
	case int64:
		return int(id), true
	case float64:
		if math.IsNaN(id) || id != math.Trunc(id) {
			return 0, false
		}
		return int(id), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func coerceNonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// parseYear saca el año de un release_date tipo "2009-12-10". Si el
// formato no es ISO busca la primera corrida de 4 dígitos; 0 = desconocido.
func parseYear(date string) int {
	date = strings.TrimSpace(date)
	if len(date) >= 4 {
		if y, err := strconv.Atoi(date[:4]); err == nil && y >= 1800 && y <= 2200 {
			return y
		}
	}

	run := 0
	for i, r := range date {
		if r >= '0' && r <= '9' {
			run++
			if run == 4 {
				y, _ := strconv.Atoi(date[i-3 : i+1])
				if y >= 1800 && y <= 2200 {
					return y
				}
				run = 0
			}
		} else {
			run = 0
		}
	}
	return 0
}
