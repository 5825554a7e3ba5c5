package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"beatwave/core/cart"
	"beatwave/logger"
	"beatwave/model"
	"beatwave/repository"
)

// GetLicensesHandler lists the license tiers.
func (h *APIHandler) GetLicensesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cart.Licenses())
}

type cartView struct {
	Items []model.CartItem `json:"items"`
	Total float64          `json:"total"`
}

func (h *APIHandler) cartView() cartView {
	items := h.state.CartItems()
	if items == nil {
		items = []model.CartItem{}
	}
	return cartView{Items: items, Total: h.state.CartTotal()}
}

type addToCartRequest struct {
	BeatID  string            `json:"beatId"`
	License model.LicenseType `json:"license"`
}

// CartHandler serves GET (contents), POST (add) and DELETE (?id= removes one
// item, no id empties the cart).
func (h *APIHandler) CartHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.addToCart(w, r)
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			h.state.ClearCart()
			writeJSON(w, http.StatusOK, h.cartView())
			return
		}
		if err := h.state.RemoveFromCart(id); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, h.cartView())
	default:
		writeJSON(w, http.StatusOK, h.cartView())
	}
}

func (h *APIHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	beat, err := h.catalog.GetBeat(ctx, req.BeatID)
	if errors.Is(err, repository.ErrBeatNotFound) {
		writeError(w, http.StatusNotFound, "beat not found")
		return
	}
	if err != nil {
		logger.Error("Failed to load beat for cart", logger.String("beatId", req.BeatID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load beat")
		return
	}

	_, added, err := h.state.AddToCart(*beat, req.License)
	switch {
	case errors.Is(err, cart.ErrUnknownLicense):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, cart.ErrOfferOnly):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, h.cartView())
}

// ToggleLikeHandler flips the like on a beat.
func (h *APIHandler) ToggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx, cancel := requestContext(r)
	defer cancel()

	if _, err := h.catalog.GetBeat(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBeatNotFound) {
			writeError(w, http.StatusNotFound, "beat not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load beat")
		return
	}
	liked := h.state.ToggleLike(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"beatId": id, "liked": liked})
}
