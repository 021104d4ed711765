package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cinerec/internal/engine"
	"cinerec/internal/models"
	"cinerec/internal/service"

	"github.com/go-chi/chi/v5"
)

type RecommendHandler struct {
	recs *service.RecommendService
	auth *service.AuthService
}

func NewRecommendHandler(recs *service.RecommendService, auth *service.AuthService) *RecommendHandler {
	return &RecommendHandler{recs: recs, auth: auth}
}

// writeRecError mapea los errores del engine a códigos HTTP: id ausente es
// 404 local al request, índice sin construir es 503.
func writeRecError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, engine.ErrMovieNotFound):
		http.NotFound(w, r)
	case errors.Is(err, engine.ErrNoSnapshot):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), 500)
	}
}

// @Summary Películas similares por contenido
// @Tags recommend
// @Produce json
// @Param id path int true "movieId"
// @Param k query int false "cantidad de resultados (máx 50)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} models.RecItem
// @Router /movies/{id}/similar [get]
func (h *RecommendHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	movieID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	refresh := r.URL.Query().Get("refresh") == "true"

	items, err := h.recs.Similar(r.Context(), movieID, k, refresh)
	if err != nil {
		writeRecError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Ranking por popularidad (weighted rating)
// @Tags recommend
// @Produce json
// @Param min_votes query int false "piso de votos (default: política)"
// @Param k query int false "cantidad de resultados (máx 50)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} models.RecItem
// @Router /recommendations/popular [get]
func (h *RecommendHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	minVotes := -1
	if v := r.URL.Query().Get("min_votes"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			minVotes = n
		}
	}
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	refresh := r.URL.Query().Get("refresh") == "true"

	items, err := h.recs.Popular(r.Context(), minVotes, k, refresh)
	if err != nil {
		writeRecError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Recomendaciones híbridas (contenido + popularidad)
// @Tags recommend
// @Produce json
// @Param id path int true "movieId"
// @Param k query int false "cantidad de resultados (máx 50)"
// @Param alpha query number false "peso contenido [0,1] (default: política)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} models.RecItem
// @Router /movies/{id}/hybrid [get]
func (h *RecommendHandler) GetHybrid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	movieID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	refresh := r.URL.Query().Get("refresh") == "true"

	alpha := -1.0
	if v := r.URL.Query().Get("alpha"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			alpha = f
		}
	}

	items, err := h.recs.Blend(r.Context(), movieID, k, alpha, refresh)
	if err != nil {
		writeRecError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Recomendaciones por preferencias del usuario
// @Tags recommend
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param k query int false "cantidad de resultados (máx 50)"
// @Param body body models.Preferences true "favoritos y géneros favoritos"
// @Success 200 {array} models.RecItem
// @Router /me/recommendations [post]
func (h *RecommendHandler) PostPreferences(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))

	// si el body no trae géneros favoritos, usar los del perfil
	if len(prefs.FavoriteGenres) == 0 {
		if u, err := h.auth.GetUserByID(r.Context(), UserIDFromContext(r.Context())); err == nil && u != nil {
			prefs.FavoriteGenres = u.PreferredGenres
		}
	}

	items, err := h.recs.ForPreferences(r.Context(), prefs, k)
	if err != nil {
		writeRecError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}
