package handler

import (
	"encoding/json"
	"net/http"

	"cinerec/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler { return &AuthHandler{svc: s} }

type registerRequest struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Role            string   `json:"role"`
	Username        string   `json:"username"`
	PreferredGenres []string `json:"preferredGenres"`
}

// @Summary Registrar usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "datos del usuario"
// @Success 201 {object} models.UserDoc
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "body inválido (email y password requeridos)", http.StatusBadRequest)
		return
	}

	u, err := h.svc.Register(r.Context(), service.RegisterUserData{
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		Username:        req.Username,
		PreferredGenres: req.PreferredGenres,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credenciales"
// @Success 200 {object} map[string]any
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}

	token, u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"token": token,
		"user":  u,
	})
}

// @Summary Perfil del usuario autenticado
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.UserDoc
// @Router /me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	u, err := h.svc.GetUserByID(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if u == nil {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(u)
}

type preferredGenresRequest struct {
	PreferredGenres []string `json:"preferredGenres"`
}

// @Summary Actualizar géneros favoritos del perfil
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Success 204
// @Router /me/preferred-genres [put]
func (h *AuthHandler) UpdatePreferredGenres(w http.ResponseWriter, r *http.Request) {
	var req preferredGenresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}

	err := h.svc.UpdatePreferredGenres(r.Context(), UserIDFromContext(r.Context()), req.PreferredGenres)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
