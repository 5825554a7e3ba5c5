package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"beatwave/core/session"
	"beatwave/logger"
	"beatwave/model"
)

// GetVerificationsHandler lists verification requests for the admin panel.
func (h *APIHandler) GetVerificationsHandler(w http.ResponseWriter, r *http.Request) {
	requests := h.state.Requests()
	if requests == nil {
		requests = []model.VerificationRequest{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"verified": h.state.VerifiedProducers(),
	})
}

type verificationRequest struct {
	ProducerName string `json:"producerName"`
	Email        string `json:"email"`
	SocialLink   string `json:"socialLink"`
}

// SubmitVerificationHandler queues a producer's verification request.
func (h *APIHandler) SubmitVerificationHandler(w http.ResponseWriter, r *http.Request) {
	var req verificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.ProducerName) == "" || strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "producerName and email are required")
		return
	}
	created := h.state.SubmitRequest(req.ProducerName, req.Email, req.SocialLink)
	logger.Info("[Verification] 新认证申请",
		logger.String("id", created.ID),
		logger.String("producer", created.ProducerName))
	writeJSON(w, http.StatusCreated, created)
}

// ReviewVerificationHandler approves or rejects a request, depending on the
// action route variable.
func (h *APIHandler) ReviewVerificationHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, action := vars["id"], vars["action"]

	var (
		req model.VerificationRequest
		err error
	)
	switch action {
	case "approve":
		req, err = h.state.Approve(id)
	case "reject":
		req, err = h.state.Reject(id)
	default:
		writeError(w, http.StatusBadRequest, "action must be approve or reject")
		return
	}
	if errors.Is(err, session.ErrRequestNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info("[Verification] 审核完成",
		logger.String("id", id),
		logger.String("action", action),
		logger.String("producer", req.ProducerName))
	writeJSON(w, http.StatusOK, req)
}

// GetUsersHandler lists the admin user table.
func (h *APIHandler) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users := h.state.Users()
	if users == nil {
		users = []model.AdminUser{}
	}
	writeJSON(w, http.StatusOK, users)
}

type notifyRequest struct {
	Audience string `json:"audience"`
	Message  string `json:"message"`
}

// NotifyHandler broadcasts a notification to producers or artists.
func (h *APIHandler) NotifyHandler(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	audience, err := session.ParseAudience(req.Audience)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.state.Notify(audience, req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Info("[Notify] 已发送通知", logger.String("audience", string(audience)))
	writeJSON(w, http.StatusCreated, map[string]string{"audience": string(audience)})
}

// GetNotificationsHandler lists notifications for ?audience=.
func (h *APIHandler) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	audience, err := session.ParseAudience(r.URL.Query().Get("audience"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notes := h.state.Notifications(audience)
	if notes == nil {
		notes = []string{}
	}
	writeJSON(w, http.StatusOK, notes)
}
