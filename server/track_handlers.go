package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"beatwave/core/catalog"
	"beatwave/logger"
	"beatwave/model"
	"beatwave/repository"
)

// beatView decorates a beat with per-visitor flags.
type beatView struct {
	model.Beat
	Liked    bool `json:"liked"`
	Verified bool `json:"verified"`
}

func (h *APIHandler) views(beats []model.Beat) []beatView {
	liked := make(map[string]bool)
	for _, id := range h.state.LikedIDs() {
		liked[id] = true
	}
	out := make([]beatView, len(beats))
	for i, b := range beats {
		out[i] = beatView{Beat: b, Liked: liked[b.ID], Verified: h.state.IsVerified(b.Producer)}
	}
	return out
}

// GetBeatsHandler lists beats through the catalog query engine.
// Query: genre, key, bpm, sort=price_asc|price_desc|best.
func (h *APIHandler) GetBeatsHandler(w http.ResponseWriter, r *http.Request) {
	q := catalog.ParseQuery(r.URL.Query())
	ctx, cancel := requestContext(r)
	defer cancel()

	beats, err := h.catalog.ListBeats(ctx)
	if err != nil {
		logger.Error("Failed to list beats", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load catalog")
		return
	}
	result := catalog.Apply(beats, q)
	logger.Debug("catalog query",
		logger.String("query", q.String()),
		logger.Int("matched", len(result)))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query": q,
		"total": len(beats),
		"beats": h.views(result),
	})
}

// GetBeatHandler returns a single beat.
func (h *APIHandler) GetBeatHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx, cancel := requestContext(r)
	defer cancel()

	beat, err := h.catalog.GetBeat(ctx, id)
	if errors.Is(err, repository.ErrBeatNotFound) {
		writeError(w, http.StatusNotFound, "beat not found")
		return
	}
	if err != nil {
		logger.Error("Failed to get beat", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load beat")
		return
	}
	writeJSON(w, http.StatusOK, h.views([]model.Beat{*beat})[0])
}

// GetChartsHandler returns the top beats by chart score.
func (h *APIHandler) GetChartsHandler(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.TopChartsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	beats, err := h.catalog.ListBeats(ctx)
	if err != nil {
		logger.Error("Failed to list beats for charts", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load catalog")
		return
	}
	writeJSON(w, http.StatusOK, h.views(catalog.TopCharts(beats, limit)))
}

// GetFavoritesHandler lists liked beats in catalog order.
func (h *APIHandler) GetFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	beats, err := h.catalog.ListBeats(ctx)
	if err != nil {
		logger.Error("Failed to list beats for favorites", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load catalog")
		return
	}
	writeJSON(w, http.StatusOK, h.views(catalog.Favorites(beats, h.state.LikedIDs())))
}

// GetOptionsHandler returns the selector options for the filter bar.
func (h *APIHandler) GetOptionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"genres":      repository.Genres,
		"keys":        repository.Keys,
		"minBpm":      catalog.MinTempo,
		"maxBpm":      catalog.MaxTempo,
		"tempoWindow": catalog.TempoWindow,
		"sorts": []string{
			catalog.RankPriceAsc.String(),
			catalog.RankPriceDesc.String(),
			catalog.RankBestFirst.String(),
		},
	})
}
