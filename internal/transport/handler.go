// Package transport exposes the read API and the administrative surface over HTTP.
package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/explorer"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const maxRequestBody = 1 << 16

type errorResponse struct {
	Error string `json:"error"`
}

// Handler routes HTTP requests to the explorer and the controller.
type Handler struct {
	explorer Explorer
	admin    Admin
	logger   *zap.Logger
	router   *mux.Router
	handler  http.Handler
}

// NewHandler builds the router. admin may be nil for read-only deployments.
func NewHandler(exp Explorer, admin Admin, logger *zap.Logger) *Handler {
	h := &Handler{
		explorer: exp,
		admin:    admin,
		logger:   logger,
		router:   mux.NewRouter(),
	}

	h.router.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	api := h.router.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/assets/{assetId}/transfers", h.assetTransfers).Methods(http.MethodGet)
	if admin != nil {
		api.HandleFunc("/admin/resync", h.resync).Methods(http.MethodPost)
		api.HandleFunc("/admin/diagnostics", h.diagnostics).Methods(http.MethodGet)
	}
	h.handler = cors.Default().Handler(h.router)
	return h
}

// ServeHTTP applies CORS and dispatches to the router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) assetTransfers(w http.ResponseWriter, r *http.Request) {
	assetID := mux.Vars(r)["assetId"]

	page, err := intQuery(r, "page", explorer.DefaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	limit, err := intQuery(r, "limit", explorer.DefaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.explorer.GetTransfersForAsset(r.Context(), assetID, page, limit)
	switch {
	case errors.Is(err, explorer.ErrInvalidPage), errors.Is(err, explorer.ErrInvalidAsset):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		h.logger.Error("asset transfers query failed", zap.String("asset_id", assetID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) resync(w http.ResponseWriter, r *http.Request) {
	var req model.ResyncRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid resync request body"))
		return
	}
	req.ID, req.Reason = "", ""

	accepted, err := h.admin.RequestResync(req)
	var adminErr *model.AdministrativeResyncError
	switch {
	case errors.As(err, &adminErr):
		writeError(w, http.StatusConflict, adminErr)
		return
	case err != nil:
		h.logger.Error("resync request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}
	h.logger.Info("resync accepted",
		zap.String("id", accepted.ID),
		zap.Uint64("from_height", accepted.FromHeight),
		zap.String("mode", string(accepted.Mode)),
		zap.String("remote", r.RemoteAddr),
	)
	writeJSON(w, http.StatusAccepted, accepted)
}

func (h *Handler) diagnostics(w http.ResponseWriter, r *http.Request) {
	d, err := h.admin.Diagnostics(r.Context())
	if err != nil {
		h.logger.Error("diagnostics failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func intQuery(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
