package server

import (
	"net/http"

	"beatwave/core/catalog"
	"beatwave/logger"
)

// GetPlaylistsHandler lists playlists, optionally by tab (?tag=Best|Exclusive).
func (h *APIHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	playlists, err := h.catalog.ListPlaylists(ctx)
	if err != nil {
		logger.Error("Failed to list playlists", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load playlists")
		return
	}
	writeJSON(w, http.StatusOK, catalog.FilterPlaylists(playlists, r.URL.Query().Get("tag")))
}

// GetKitsHandler lists sound kits, optionally by ?type=.
func (h *APIHandler) GetKitsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	kits, err := h.catalog.ListKits(ctx)
	if err != nil {
		logger.Error("Failed to list kits", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load kits")
		return
	}
	writeJSON(w, http.StatusOK, catalog.FilterKits(kits, r.URL.Query().Get("type")))
}

// GetServicesHandler lists production services.
func (h *APIHandler) GetServicesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	services, err := h.catalog.ListServices(ctx)
	if err != nil {
		logger.Error("Failed to list services", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load services")
		return
	}
	writeJSON(w, http.StatusOK, services)
}
