package api

import (
	"fmt"
	"net/http"
	"time"

	"hotelbooking/internal/logging"
	"hotelbooking/internal/service"
	"hotelbooking/internal/views"

	"github.com/gorilla/mux"
)

type SystemHandler struct {
	App     *views.App
	Monitor *service.HealthMonitor
	Toasts  *service.ToastService
	Logs    *logging.Buffer
}

func NewSystemHandler(app *views.App, health *service.HealthMonitor, toasts *service.ToastService, logs *logging.Buffer) *SystemHandler {
	return &SystemHandler{App: app, Monitor: health, Toasts: toasts, Logs: logs}
}

// Liveness reports the portal process itself.
func (h *SystemHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status reports the last backend health check.
func (h *SystemHandler) Status(w http.ResponseWriter, r *http.Request) {
	report := h.Monitor.Report()
	if r.URL.Query().Get("refresh") == "true" {
		report = h.Monitor.Check(r.Context())
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *SystemHandler) Location(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, page(h.App, nil))
}

func (h *SystemHandler) ListToasts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Toasts.Active())
}

func (h *SystemHandler) DismissToast(w http.ResponseWriter, r *http.Request) {
	if !h.Toasts.Dismiss(mux.Vars(r)["id"]) {
		respondError(w, http.StatusNotFound, "Notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SystemHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	var level logging.Level
	if v := r.URL.Query().Get("level"); v != "" {
		l, ok := logging.ParseLevel(v)
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid level")
			return
		}
		level = l
	}
	respondJSON(w, http.StatusOK, h.Logs.Entries(level))
}

func (h *SystemHandler) ClearLogs(w http.ResponseWriter, r *http.Request) {
	h.Logs.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *SystemHandler) ExportLogs(w http.ResponseWriter, r *http.Request) {
	data, err := h.Logs.Export()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not export logs")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="portal-logs-%s.json"`, time.Now().Format("20060102-150405")))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
