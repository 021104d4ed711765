package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"cinerec/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// AdminHandler expone el mantenimiento del snapshot: estado, rebuild
// bloqueante y rebuild por WebSocket con progreso por etapa.
type AdminHandler struct {
	catalog *service.CatalogService
}

func NewAdminHandler(s *service.CatalogService) *AdminHandler {
	return &AdminHandler{catalog: s}
}

// MountAdminRoutes cuelga las rutas de mantenimiento bajo el grupo admin.
func MountAdminRoutes(r chi.Router, h *AdminHandler) {
	r.Get("/admin/snapshot", h.GetSnapshotSummary)
	r.Post("/admin/rebuild", h.Rebuild)
	r.Get("/admin/ws/rebuild", h.RebuildWS)
}

// @Summary Estado del snapshot activo
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.SnapshotSummary
// @Router /admin/snapshot [get]
func (h *AdminHandler) GetSnapshotSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.catalog.Summary())
}

// @Summary Reconstruir el índice (bloqueante)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.SnapshotSummary
// @Router /admin/rebuild [post]
func (h *AdminHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, err := h.catalog.Rebuild(r.Context(), nil); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(h.catalog.Summary())
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Reconstruir el índice con progreso en tiempo real (WebSocket)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/ws/rebuild [get]
func (h *AdminHandler) RebuildWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "no se pudo abrir WebSocket", 400)
		return
	}
	defer conn.Close()

	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "rebuild iniciado",
	})

	// el callback corre en la goroutine del build; WriteJSON es seguro
	// porque acá nadie más escribe en la conexión
	progress := func(stage string) {
		conn.WriteJSON(map[string]any{
			"type":  "progress",
			"stage": stage,
		})
	}

	snap, err := h.catalog.Rebuild(r.Context(), progress)
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	conn.WriteJSON(map[string]any{
		"type":       "done",
		"movies":     snap.Catalog.Len(),
		"vocabulary": len(snap.Vocab),
		"builtAt":    snap.BuiltAt.Format(time.RFC3339),
	})
}
