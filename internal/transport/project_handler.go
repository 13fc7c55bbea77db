// Package transport exposes the HTTP query boundary of the gateway.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/teiki-network/teiki-backend/internal/model"
	"github.com/teiki-network/teiki-backend/internal/service"
	"github.com/teiki-network/teiki-backend/pkg/apperrors"
)

type ProjectService interface {
	GetDetailedProject(ctx context.Context, query service.ProjectQuery) (*model.DetailedProject, error)
}

type ProjectHandler struct {
	service ProjectService
	logger  *zap.Logger
	timeout time.Duration
}

func NewProjectHandler(svc ProjectService, logger *zap.Logger, timeout time.Duration) *ProjectHandler {
	return &ProjectHandler{
		service: svc,
		logger:  logger,
		timeout: timeout,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Debug string `json:"_debug,omitempty"`
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	query, errMsg := parseProjectQuery(r)
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Debug: errMsg})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	project, err := h.service.GetDetailedProject(ctx, query)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, project)
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "project not found"})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		h.logger.Warn("project query hit unavailable store", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
	default:
		h.logger.Error("project query failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func parseProjectQuery(r *http.Request) (service.ProjectQuery, string) {
	params := r.URL.Query()

	var query service.ProjectQuery
	if v := params.Get("projectId"); v != "" {
		query.Selector.ProjectID = &v
	}
	if v := params.Get("customUrl"); v != "" {
		query.Selector.CustomURL = &v
	}
	if v := params.Get("ownerAddress"); v != "" {
		query.Selector.OwnerAddress = &v
	}
	if query.Selector.ProjectID == nil && query.Selector.CustomURL == nil && query.Selector.OwnerAddress == nil {
		return query, "one of projectId, customUrl or ownerAddress is required"
	}

	if v := params.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return query, "active must be a boolean"
		}
		query.Selector.Active = &active
	}

	preset := model.Preset(params.Get("preset"))
	if !preset.Valid() {
		return query, "preset must be one of: minimal, basic, full"
	}
	query.Preset = preset

	if v := params.Get("viewerAddress"); v != "" {
		query.ViewerAddress = &v
	}

	return query, ""
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
