package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"beatwave/cache"
	"beatwave/config"
	"beatwave/core/session"
	"beatwave/db"
	"beatwave/logger"
	"beatwave/repository"
	"beatwave/storage"
)

// corsMiddleware 添加 CORS 头
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Range")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewRouter wires every endpoint of the storefront.
func NewRouter(h *APIHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)

	router.HandleFunc("/api/health", h.HealthHandler).Methods(http.MethodGet)

	// 曲库
	router.HandleFunc("/api/beats", h.GetBeatsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/beats/options", h.GetOptionsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/beats/{id}", h.GetBeatHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/charts", h.GetChartsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites", h.GetFavoritesHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", h.GetPlaylistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/kits", h.GetKitsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/services", h.GetServicesHandler).Methods(http.MethodGet)

	// 购物车与收藏
	router.HandleFunc("/api/licenses", h.GetLicensesHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/cart", h.CartHandler).Methods(http.MethodGet, http.MethodPost, http.MethodDelete)
	router.HandleFunc("/api/likes/{id}", h.ToggleLikeHandler).Methods(http.MethodPost)

	// 用户认证
	router.HandleFunc("/api/auth/login", h.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/register", h.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/consent", h.ConsentHandler).Methods(http.MethodGet, http.MethodPost)

	// 认证申请与通知
	router.HandleFunc("/api/verifications", h.SubmitVerificationHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/notifications", h.GetNotificationsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/verifications", h.GetVerificationsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/verifications/{id}/{action}", h.ReviewVerificationHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/users", h.GetUsersHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/notifications", h.NotifyHandler).Methods(http.MethodPost)

	// 私信
	router.HandleFunc("/api/chats", h.GetChatsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/chats/{id}/messages", h.ChatMessagesHandler).Methods(http.MethodGet, http.MethodPost)

	// 播放器与媒体
	router.HandleFunc("/ws/player", h.PlayerSocketHandler)
	router.HandleFunc("/media/{path:.*}", h.MediaHandler).Methods(http.MethodGet, http.MethodHead)

	return router
}

// NewState seeds the shared application state from the fixtures.
func NewState() *session.AppState {
	return session.NewAppState(session.Seed{
		VerifiedProducers: []string{session.InitialVerifiedProducer},
		Requests:          repository.FixtureRequests(),
		Users:             repository.FixtureUsers(),
		Chats:             repository.FixtureChats(),
		Messages:          repository.FixtureMessages(),
	})
}

// Start initializes backing services and serves HTTP until SIGINT/SIGTERM.
func Start(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog, err := repository.OpenCatalog(cfg)
	if err != nil {
		return err
	}
	defer db.CloseGormDB()

	if fc, ok := catalog.(*repository.FileCatalog); ok {
		go func() {
			if err := fc.Watch(ctx, nil); err != nil {
				logger.Warn("catalog watcher stopped", logger.ErrorField(err))
			}
		}()
		logger.Info("Watching catalog file", logger.String("path", fc.Path()))
	}

	consent := cache.NewMemoryConsentStore()
	if cfg.RedisEnabled {
		if err := cache.ConnectRedis(cfg); err != nil {
			return err
		}
		defer cache.CloseRedis()
		consent = cache.NewRedisConsentStore(cache.RedisClient)
	}

	var media MediaSource
	if cfg.MinioEnabled {
		client, err := storage.NewMinioClient(cfg)
		if err != nil {
			return err
		}
		bctx, bcancel := context.WithTimeout(ctx, 10*time.Second)
		err = client.EnsureBucket(bctx)
		bcancel()
		if err != nil {
			return err
		}
		media = client
	}

	handler := NewAPIHandler(cfg, catalog, NewState(), consent, media)
	handler.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      NewRouter(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	// 关闭时断开仍在运行的播放器 websocket
	srv.RegisterOnShutdown(cancel)

	// 创建一个通道来接收操作系统信号
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			logger.String("addr", cfg.HTTPAddr),
			logger.String("catalog", cfg.CatalogSource),
			logger.Bool("redis", cfg.RedisEnabled),
			logger.Bool("minio", cfg.MinioEnabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
