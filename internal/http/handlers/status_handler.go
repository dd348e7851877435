package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"drivemap/internal/redisstore"
	"drivemap/internal/service"
)

// StatusHandler serves GET /api/status with ingestion progress. It prefers
// the redis cache and falls back to the store's max id when the cache is
// absent or not configured.
type StatusHandler struct {
	progress *redisstore.ProgressStore
	store    service.Store
	logger   *zap.Logger
}

// NewStatusHandler returns handler. progress may be nil.
func NewStatusHandler(progress *redisstore.ProgressStore, store service.Store, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		progress: progress,
		store:    store,
		logger:   logger,
	}
}

// ServeHTTP handles GET /api/status.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.progress != nil {
		p, err := h.progress.Load(r.Context())
		if err != nil {
			h.logger.Warn("failed to load ingest progress from cache", zap.Error(err))
		} else if p != nil {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}

	maxID, err := h.store.MaxID(r.Context())
	if err != nil {
		h.logger.Error("failed to load max id", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load status")
		return
	}

	// the store only knows the high-water mark; don't report a row count
	// of zero that would read as "nothing ingested"
	writeJSON(w, http.StatusOK, map[string]int64{"last_id": maxID})
}
