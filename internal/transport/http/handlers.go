package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/joshdurbin/shortcode-service/internal/domain"
	"github.com/joshdurbin/shortcode-service/internal/service"
)

const (
	// maxBodyBytes caps the size of a shorten request body
	maxBodyBytes = 1 << 20

	rootBody = "Not Implemented"
)

// Handler holds the HTTP handlers for the URL shortener
type Handler struct {
	shortener service.URLShortener
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(shortener service.URLShortener, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		shortener: shortener,
		logger:    logger,
	}
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rootBody))
}

// Shorten handles POST /shorten
func (h *Handler) Shorten(w http.ResponseWriter, r *http.Request) {
	req, err := decodeShortenRequest(w, r)
	if err != nil {
		h.logger.Warn("invalid shorten request", zap.Error(err))
		h.writeError(w, r, err)
		return
	}

	shortcode, err := h.shortener.CreateMapping(r.Context(), req.URL, req.Shortcode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, domain.ShortenResponse{Shortcode: shortcode})
}

// Redirect handles GET /{shortcode}
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	shortcode := r.PathValue("shortcode")

	url, err := h.shortener.Resolve(r.Context(), shortcode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// Location is written as stored; http.Redirect would rewrite relative values
	w.Header().Set("Location", url)
	w.WriteHeader(http.StatusFound)
}

// Stats handles GET /{shortcode}/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	shortcode := r.PathValue("shortcode")

	stats, err := h.shortener.GetStats(r.Context(), shortcode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, domain.NewStatsResponse(*stats))
}

// decodeShortenRequest reads url and shortcode from a JSON or form body.
// A shortcode key that is present but empty stays non-nil so that it is
// validated rather than replaced by a generated code.
func decodeShortenRequest(w http.ResponseWriter, r *http.Request) (*domain.ShortenRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, fmt.Errorf("malformed content type: %w", domain.ErrInvalidRequest)
		}
		mediaType = parsed
	}

	var req domain.ShortenRequest

	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", domain.ErrInvalidRequest)
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, fmt.Errorf("invalid form: %w", domain.ErrInvalidRequest)
		}
		fillFromForm(&req, r)
	default:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form: %w", domain.ErrInvalidRequest)
		}
		fillFromForm(&req, r)
	}

	return &req, nil
}

// fillFromForm copies url and shortcode from the merged query and body values
func fillFromForm(req *domain.ShortenRequest, r *http.Request) {
	req.URL = r.Form.Get("url")
	if values, ok := r.Form["shortcode"]; ok {
		shortcode := ""
		if len(values) > 0 {
			shortcode = values[0]
		}
		req.Shortcode = &shortcode
	}
}

// statusFor maps a service error onto an HTTP status code
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidShortcode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrShortcodeTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err))
		message = http.StatusText(http.StatusInternalServerError)
	} else {
		h.logger.Debug("request rejected",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	}

	h.writeJSON(w, status, domain.ErrorResponse{Error: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}
