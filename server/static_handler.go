package server

import (
	"context"
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/gorilla/mux"

	"beatwave/logger"
	"beatwave/storage"
)

// MediaHandler 处理 MinIO 媒体文件请求（封面、试听片段）
func (h *APIHandler) MediaHandler(w http.ResponseWriter, r *http.Request) {
	if h.media == nil {
		writeError(w, http.StatusServiceUnavailable, "media storage not available")
		return
	}
	key, ok := storage.CleanKey(mux.Vars(r)["path"])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid media path")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	object, info, err := h.media.Open(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	if err != nil {
		logger.Error("Error opening media object", logger.String("key", key), logger.ErrorField(err))
		writeError(w, http.StatusBadGateway, "media storage error")
		return
	}
	defer object.Close()

	contentType := info.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = storage.ContentTypeFor(key)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	if info.ETag != "" {
		w.Header().Set("ETag", `"`+info.ETag+`"`)
	}
	// ServeContent 负责 Range 请求，试听拖动进度时需要
	http.ServeContent(w, r, path.Base(key), info.LastModified, object)
}
