package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"drivemap/internal/service"
)

// HistoryHandler serves GET /api/history.
type HistoryHandler struct {
	service *service.HistoryService
	logger  *zap.Logger
}

// NewHistoryHandler returns handler.
func NewHistoryHandler(svc *service.HistoryService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		service: svc,
		logger:  logger,
	}
}

// ServeHTTP answers one page of historical measurements. Query parameters:
// page (default 1), page_size (default 100, max 500), before_id (snapshot
// bound, defaults to the current max id which is echoed back as max_id).
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, ok := intParam(r, "page", 1)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	pageSize, ok := intParam(r, "page_size", service.DefaultPageSize)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid page_size")
		return
	}
	beforeID, ok := int64Param(r, "before_id", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid before_id")
		return
	}

	result, err := h.service.Page(r.Context(), page, pageSize, beforeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPage),
			errors.Is(err, service.ErrInvalidPageSize),
			errors.Is(err, service.ErrInvalidBound):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to load history page", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load history")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func intParam(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func int64Param(r *http.Request, name string, fallback int64) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
