package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"beatwave/cache"
	"beatwave/config"
	"beatwave/core/session"
	"beatwave/logger"
	"beatwave/repository"
	"beatwave/storage"
)

// MediaSource serves stored media objects.
type MediaSource interface {
	Open(ctx context.Context, key string) (io.ReadSeekCloser, storage.ObjectInfo, error)
}

// APIHandler 处理所有API请求
type APIHandler struct {
	cfg     *config.Config
	catalog repository.CatalogRepository
	state   *session.AppState
	consent cache.ConsentStore
	media   MediaSource

	// base is the parent of every player socket's context; cancelling it
	// closes all open sockets.
	base context.Context
}

// NewAPIHandler 创建新的API处理器. media may be nil when MinIO is disabled.
func NewAPIHandler(
	cfg *config.Config,
	catalog repository.CatalogRepository,
	state *session.AppState,
	consent cache.ConsentStore,
	media MediaSource,
) *APIHandler {
	return &APIHandler{
		cfg:     cfg,
		catalog: catalog,
		state:   state,
		consent: consent,
		media:   media,
		base:    context.Background(),
	}
}

// SetBaseContext sets the parent context of player sockets opened after the
// call. Start cancels it from http.Server's shutdown hook.
func (h *APIHandler) SetBaseContext(ctx context.Context) {
	h.base = ctx
}

// apiResponse is the envelope of every JSON response.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{Success: status < 400, Data: data}); err != nil {
		logger.Warn("failed to encode response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: false, Error: msg})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

// requestContext bounds work done on behalf of a request.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}

// visitorCookie identifies an anonymous browser for the consent banner.
const visitorCookie = "beatwave_visitor"

// visitorID returns the visitor id from the cookie, issuing a new one when
// absent.
func visitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(visitorCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cache.ConsentTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// HealthHandler reports which backing services are wired.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"catalog": h.cfg.CatalogSource,
		"redis":   cache.RedisClient != nil,
		"media":   h.media != nil,
	})
}
