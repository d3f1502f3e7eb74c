package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	authenticity "provenance/contexts/product-integrity/authenticity-service"
	"provenance/contexts/product-integrity/authenticity-service/adapters/labels"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
	authenticityhttp "provenance/contexts/product-integrity/authenticity-service/transport/http"
	"provenance/internal/platform/identity"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "provenance/internal/platform/httpserver/docs"
)

type Server struct {
	mux          *http.ServeMux
	httpServer   *http.Server
	logger       *slog.Logger
	addr         string
	authenticity authenticity.Module
	identity     identity.Resolver
}

func New(
	authenticityModule authenticity.Module,
	resolver identity.Resolver,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		authenticity: authenticityModule,
		identity:     resolver,
	}
	s.registerRoutes()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start blocks until the server stops. A graceful Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/manufacturers/{address}/authorization", s.handleAuthorizeManufacturer)
	s.mux.HandleFunc("GET /v1/manufacturers", s.handleListManufacturers)
	s.mux.HandleFunc("GET /v1/manufacturers/{address}", s.handleIsAuthorized)
	s.mux.HandleFunc("GET /v1/owner", s.handleOwner)
	s.mux.HandleFunc("POST /v1/ownership/transfer", s.handleTransferOwnership)
	s.mux.HandleFunc("POST /v1/pause", s.handlePause(true))
	s.mux.HandleFunc("POST /v1/unpause", s.handlePause(false))

	s.mux.HandleFunc("POST /v1/batches", s.handleRegisterBatch)
	s.mux.HandleFunc("POST /v1/batches/bulk", s.handleGetBatchesBulk)
	s.mux.HandleFunc("GET /v1/batches/{batch_id}", s.handleGetBatch)
	s.mux.HandleFunc("PATCH /v1/batches/{batch_id}/metadata", s.handleUpdateMetadata)
	s.mux.HandleFunc("GET /v1/batches/{batch_id}/labels/{fingerprint}", s.handleLabel)

	s.mux.HandleFunc("POST /v1/verifications", s.handleVerify)
	s.mux.HandleFunc("POST /v1/verifications/scan", s.handleScan)
	s.mux.HandleFunc("POST /v1/verifications/batch", s.handleBatchVerify)
	s.mux.HandleFunc("GET /v1/fingerprints/{fingerprint}", s.handleFingerprintStatus)
	s.mux.HandleFunc("GET /v1/fingerprints/{fingerprint}/history", s.handleHistory)
	s.mux.HandleFunc("POST /v1/fingerprints/history", s.handleHistoryBulk)
	s.mux.HandleFunc("GET /v1/statistics", s.handleStatistics)
}

func (s *Server) handleAuthorizeManufacturer(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveCaller(w, r)
	if !ok {
		return
	}
	var req authenticityhttp.AuthorizeManufacturerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.authenticity.Handler.AuthorizeManufacturerHandler(r.Context(), caller, r.PathValue("address"), req)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListManufacturers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.authenticity.Handler.ListManufacturersHandler(r.Context())
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIsAuthorized(w http.ResponseWriter, r *http.Request) {
	resp, err := s.authenticity.Handler.IsAuthorizedHandler(r.Context(), r.PathValue("address"))
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOwner(w http.ResponseWriter, r *http.Request) {
	resp, err := s.authenticity.Handler.OwnerHandler(r.Context())
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveCaller(w, r)
	if !ok {
		return
	}
	var req authenticityhttp.TransferOwnershipRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.authenticity.Handler.TransferOwnershipHandler(r.Context(), caller, req)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePause(paused bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := s.resolveCaller(w, r)
		if !ok {
			return
		}
		resp, err := s.authenticity.Handler.PauseHandler(r.Context(), caller, paused)
		if err != nil {
			writeAuthenticityDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleRegisterBatch(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveCaller(w, r)
	if !ok {
		return
	}
	var req authenticityhttp.RegisterBatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.authenticity.Handler.RegisterBatchHandler(r.Context(), caller, req)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateMetadata(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveCaller(w, r)
	if !ok {
		return
	}
	batchID, ok := pathBatchID(w, r)
	if !ok {
		return
	}
	var req authenticityhttp.UpdateMetadataRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.authenticity.Handler.UpdateMetadataHandler(r.Context(), caller, batchID, req)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	batchID, ok := pathBatchID(w, r)
	if !ok {
		return
	}
	resp, err := s.authenticity.Handler.GetBatchHandler(r.Context(), batchID)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBatchesBulk(w http.ResponseWriter, r *http.Request) {
	var req authenticityhttp.GetBatchesBulkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.authenticity.Handler.GetBatchesBulkHandler(r.Context(), req)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLabel(w http.ResponseWriter, r *http.Request) {
	batchID, ok := pathBatchID(w, r)
	if !ok {
		return
	}
	png, err := s.authenticity.Handler.LabelHandler(r.Context(), batchID, r.PathValue("fingerprint"))
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveCaller(w, r)
	if !ok {
		return
	}
	var req authenticityhttp.VerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.authenticity.Handler.VerifyHandler(r.Context(), caller, req)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveCaller(w, r)
	if !ok {
		return
	}
	var req authenticityhttp.ScanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.authenticity.Handler.ScanHandler(r.Context(), caller, req)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBatchVerify(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveCaller(w, r)
	if !ok {
		return
	}
	var req authenticityhttp.BatchVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.authenticity.Handler.BatchVerifyHandler(r.Context(), caller, req)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFingerprintStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.authenticity.Handler.FingerprintStatusHandler(r.Context(), r.PathValue("fingerprint"))
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var req authenticityhttp.HistoryRequest
	for name, target := range map[string]*int{"offset": &req.Offset, "limit": &req.Limit} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			writeAuthenticityError(w, http.StatusBadRequest, "invalid_"+name, name+" must be a non-negative integer")
			return
		}
		*target = value
	}
	resp, err := s.authenticity.Handler.HistoryHandler(r.Context(), r.PathValue("fingerprint"), req)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistoryBulk(w http.ResponseWriter, r *http.Request) {
	var req authenticityhttp.HistoryBulkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Offset < 0 || req.Limit < 0 {
		writeAuthenticityError(w, http.StatusBadRequest, "invalid_page", "offset and limit must be non-negative")
		return
	}
	resp, err := s.authenticity.Handler.HistoryBulkHandler(r.Context(), req)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	resp, err := s.authenticity.Handler.StatisticsHandler(r.Context())
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) resolveCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller, err := s.identity.Caller(r)
	if err != nil {
		writeAuthenticityDomainError(w, err)
		return "", false
	}
	return caller, true
}

func pathBatchID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	batchID, err := strconv.ParseUint(strings.TrimSpace(r.PathValue("batch_id")), 10, 64)
	if err != nil {
		writeAuthenticityError(w, http.StatusBadRequest, "invalid_batch_id", "batch_id must be an unsigned integer")
		return 0, false
	}
	return batchID, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeAuthenticityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeAuthenticityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidToken):
		writeAuthenticityError(w, http.StatusUnauthorized, "invalid_token", err.Error())
	case errors.Is(err, domainerrors.ErrNotOwner):
		writeAuthenticityError(w, http.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, domainerrors.ErrNotAuthorized):
		writeAuthenticityError(w, http.StatusForbidden, "not_authorized", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidAddress):
		writeAuthenticityError(w, http.StatusBadRequest, "invalid_address", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidBatchID):
		writeAuthenticityError(w, http.StatusBadRequest, "invalid_batch_id", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidFingerprint):
		writeAuthenticityError(w, http.StatusBadRequest, "invalid_fingerprint", err.Error())
	case errors.Is(err, labels.ErrInvalidPayload):
		writeAuthenticityError(w, http.StatusBadRequest, "invalid_payload", err.Error())
	case errors.Is(err, domainerrors.ErrEmptyName):
		writeAuthenticityError(w, http.StatusBadRequest, "empty_name", err.Error())
	case errors.Is(err, domainerrors.ErrEmptyBrand):
		writeAuthenticityError(w, http.StatusBadRequest, "empty_brand", err.Error())
	case errors.Is(err, domainerrors.ErrNoSerials):
		writeAuthenticityError(w, http.StatusBadRequest, "no_serials", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidOwner):
		writeAuthenticityError(w, http.StatusBadRequest, "invalid_owner", err.Error())
	case errors.Is(err, domainerrors.ErrLengthMismatch):
		writeAuthenticityError(w, http.StatusBadRequest, "length_mismatch", err.Error())
	case errors.Is(err, domainerrors.ErrBatchExists):
		writeAuthenticityError(w, http.StatusConflict, "batch_exists", err.Error())
	case errors.Is(err, domainerrors.ErrBatchNotFound):
		writeAuthenticityError(w, http.StatusNotFound, "batch_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrSerialNotInBatch):
		writeAuthenticityError(w, http.StatusUnprocessableEntity, "serial_not_in_batch", err.Error())
	case errors.Is(err, domainerrors.ErrPaused):
		writeAuthenticityError(w, http.StatusServiceUnavailable, "paused", err.Error())
	case errors.Is(err, domainerrors.ErrNotPaused):
		writeAuthenticityError(w, http.StatusConflict, "not_paused", err.Error())
	case errors.Is(err, domainerrors.ErrReentrantCall):
		writeAuthenticityError(w, http.StatusConflict, "reentrant_call", err.Error())
	default:
		writeAuthenticityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAuthenticityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, authenticityhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
