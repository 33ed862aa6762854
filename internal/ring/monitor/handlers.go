package monitor

import (
	"encoding/json"
	"net/http"

	"github.com/Biochemical-Networks/actinringsmc/internal/ring"
)

// Handler bundles a Monitor with a Logger for the HTTP surface.
type Handler struct {
	monitor *Monitor
	logger  ring.Logger
}

// NewHandler wraps m for serving over HTTP. If logger is nil a no-op
// logger is used.
func NewHandler(m *Monitor, logger ring.Logger) *Handler {
	if logger == nil {
		logger = ring.NewNoOpLogger()
	}
	return &Handler{monitor: m, logger: logger}
}

// HandleHealth answers GET /healthz with a plain "ok".
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleStatus answers GET /status with the last broadcast frame as
// JSON, or 204 if nothing has been published yet.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	frame, ok := h.monitor.LastFrame()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(frame); err != nil {
		h.logger.Errorf("failed to encode status: %v", err)
		http.Error(w, "cannot encode status", http.StatusInternalServerError)
	}
}

// HandleWS upgrades GET /ws to a WebSocket connection and registers it
// with the monitor for broadcast.
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := h.monitor.Upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf("websocket upgrade failed: %v", err)
		return
	}
	h.monitor.RegisterClient(conn)
}

// HandlePublish answers POST /publish: an out-of-process MC or US
// driver posts a Frame as its JSON body, and it is forwarded to every
// subscribed WebSocket client. This is what lets actinrings-monitor run
// as its own process, decoupled from the driver producing the frames.
func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var frame Frame
	if err := json.NewDecoder(r.Body).Decode(&frame); err != nil {
		http.Error(w, "invalid frame json: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.monitor.Publish(frame)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
