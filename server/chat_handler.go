package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"beatwave/core/session"
	"beatwave/logger"
	"beatwave/model"
)

// GetChatsHandler 获取会话列表
func (h *APIHandler) GetChatsHandler(w http.ResponseWriter, r *http.Request) {
	chats := h.state.Chats()
	if chats == nil {
		chats = []model.Chat{}
	}
	writeJSON(w, http.StatusOK, chats)
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// ChatMessagesHandler lists (GET) or sends (POST) messages of a chat.
func (h *APIHandler) ChatMessagesHandler(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chat id")
		return
	}

	if r.Method == http.MethodPost {
		var req sendMessageRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		msg, err := h.state.SendMessage(chatID, req.Text)
		switch {
		case errors.Is(err, session.ErrChatNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, session.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, err.Error())
		case err != nil:
			logger.Error("发送消息失败", logger.Int("chatId", chatID), logger.ErrorField(err))
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			writeJSON(w, http.StatusCreated, msg)
		}
		return
	}

	msgs, err := h.state.Messages(chatID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}
