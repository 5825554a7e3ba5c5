package server

import (
	"errors"
	"net/http"
	"strings"

	"beatwave/core/auth"
	"beatwave/logger"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginHandler picks the landing dashboard for a sign-in. No credentials are
// checked.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.Warn("[Login] 解析请求体失败", logger.ErrorField(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	redirect := auth.RouteForLogin(req.Email)
	logger.Info("[Login] 登录", logger.String("redirect", redirect))
	writeJSON(w, http.StatusOK, map[string]string{"redirect": redirect})
}

// RegisterHandler routes a new account by its chosen role.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.Warn("[Register] 解析请求体失败", logger.ErrorField(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	redirect, err := auth.RouteForRegister(req.Role)
	if errors.Is(err, auth.ErrUnknownRole) {
		writeError(w, http.StatusBadRequest, "role must be artist or producer")
		return
	}
	logger.Info("[Register] 注册",
		logger.String("role", req.Role),
		logger.String("redirect", redirect))
	writeJSON(w, http.StatusCreated, map[string]string{"redirect": redirect})
}

type consentRequest struct {
	Accepted *bool `json:"accepted"`
}

// ConsentHandler reads (GET) or records (POST) the cookie banner decision of
// the calling visitor.
func (h *APIHandler) ConsentHandler(w http.ResponseWriter, r *http.Request) {
	visitor := visitorID(w, r)
	ctx, cancel := requestContext(r)
	defer cancel()

	if r.Method == http.MethodPost {
		var req consentRequest
		if err := decodeJSON(r, &req); err != nil || req.Accepted == nil {
			writeError(w, http.StatusBadRequest, "accepted must be true or false")
			return
		}
		if err := h.consent.Set(ctx, visitor, *req.Accepted); err != nil {
			logger.Error("Failed to store consent", logger.ErrorField(err))
			writeError(w, http.StatusServiceUnavailable, "consent store unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"accepted": *req.Accepted, "showBanner": false})
		return
	}

	accepted, set, err := h.consent.Get(ctx, visitor)
	if err != nil {
		logger.Error("Failed to read consent", logger.ErrorField(err))
		writeError(w, http.StatusServiceUnavailable, "consent store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"accepted": accepted, "showBanner": !set})
}
