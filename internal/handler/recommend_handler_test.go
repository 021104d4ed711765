package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinerec/internal/engine"
	"cinerec/internal/models"
	"cinerec/internal/service"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T, withSnapshot bool) *chi.Mux {
	t.Helper()

	eng := engine.NewEngine(engine.DefaultPolicy())
	if withSnapshot {
		raws := []models.MovieDoc{
			{ID: 1, Title: "A", Overview: "space opera", Genres: models.NameList{"Sci-Fi"}, VoteAverage: 8.0, VoteCount: 1000},
			{ID: 2, Title: "B", Overview: "space opera sequel", Genres: models.NameList{"Sci-Fi"}, VoteAverage: 7.5, VoteCount: 500},
			{ID: 3, Title: "C", Overview: "romantic drama", Genres: models.NameList{"Romance"}, VoteAverage: 9.0, VoteCount: 5},
		}
		if _, err := eng.Rebuild(context.Background(), raws, nil); err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
	}

	h := NewRecommendHandler(service.NewRecommendService(eng), nil)

	r := chi.NewRouter()
	r.Get("/movies/{id}/similar", h.GetSimilar)
	r.Get("/movies/{id}/hybrid", h.GetHybrid)
	r.Get("/recommendations/popular", h.GetPopular)
	return r
}

func decodeItems(t *testing.T, rec *httptest.ResponseRecorder) []models.RecItem {
	t.Helper()
	var items []models.RecItem
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatalf("decodificando respuesta: %v", err)
	}
	return items
}

func TestGetSimilarOK(t *testing.T) {
	r := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies/1/similar?k=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	items := decodeItems(t, rec)
	if len(items) != 1 || items[0].MovieID != 2 {
		t.Errorf("items = %v, want [B]", items)
	}
}

func TestGetSimilarUnknownMovie(t *testing.T) {
	r := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies/999/similar", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetSimilarNoSnapshot(t *testing.T) {
	r := newTestRouter(t, false)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies/1/similar", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestGetPopularOK(t *testing.T) {
	r := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recommendations/popular?min_votes=100&k=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	items := decodeItems(t, rec)
	if len(items) != 2 || items[0].MovieID != 1 || items[1].MovieID != 2 {
		t.Errorf("items = %v, want [A, B]", items)
	}
}

func TestGetPopularEmptyIsOK(t *testing.T) {
	r := newTestRouter(t, true)

	// piso imposible: 200 con lista vacía, nunca error
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recommendations/popular?min_votes=100000", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if items := decodeItems(t, rec); len(items) != 0 {
		t.Errorf("items = %v, want vacío", items)
	}
}

func TestGetHybridOK(t *testing.T) {
	r := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies/1/hybrid?alpha=0.5&k=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	for _, it := range decodeItems(t, rec) {
		if it.MovieID == 1 {
			t.Error("hybrid devolvió la película consultada")
		}
		if it.Score < 0 || it.Score > 1 {
			t.Errorf("score(%d) = %v fuera de [0,1]", it.MovieID, it.Score)
		}
	}
}
