package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oddsline/backend/internal/usecase"
	"go.uber.org/zap"
)

type Server struct {
	engine *gin.Engine
	server *http.Server
	logger *zap.Logger
}

type Handlers struct {
	// RunCtx outlives individual requests; the checker started over HTTP
	// must not die with the request that started it.
	RunCtx    context.Context
	Users     *usecase.UserUsecase
	Alerts    *usecase.AlertUsecase
	Watchlist *usecase.WatchlistUsecase
	Signals   *usecase.SignalUsecase
	Markets   *MarketHandler
	Checker   *usecase.AlertChecker
	Logger    *zap.Logger
}

func NewServer(addr string, h Handlers) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(h.Logger))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	{
		api.GET("/markets", h.Markets.ListMarkets)
		api.GET("/markets/:id", h.Markets.GetMarket)
		api.GET("/markets/:id/stream", h.Markets.StreamPrices)

		api.POST("/users", h.registerUser)
		api.GET("/users/me", requireWallet(), h.getProfile)
		api.PUT("/users/me/contact", requireWallet(), h.linkContact)
		api.POST("/users/me/contact/confirm", requireWallet(), h.confirmContact)

		alerts := api.Group("/alerts", requireWallet())
		{
			alerts.POST("", h.createAlert)
			alerts.GET("", h.listAlerts)
			alerts.GET("/:id", h.getAlert)
			alerts.PATCH("/:id", h.updateAlert)
			alerts.POST("/:id/cancel", h.cancelAlert)
			alerts.DELETE("/:id", h.deleteAlert)
		}

		watchlist := api.Group("/watchlist", requireWallet())
		{
			watchlist.POST("", h.addWatchlistEntry)
			watchlist.GET("", h.listWatchlist)
			watchlist.DELETE("/:marketId", h.removeWatchlistEntry)
		}

		signals := api.Group("/signals", requireWallet())
		{
			signals.POST("/purchase", h.purchaseSignal)
			signals.GET("", h.listSignals)
		}

		checker := api.Group("/checker")
		{
			checker.GET("/status", h.checkerStatus)
			checker.POST("/start", h.startChecker)
			checker.POST("/stop", h.stopChecker)
		}
	}

	return &Server{
		engine: engine,
		server: &http.Server{Addr: addr, Handler: engine},
		logger: h.Logger,
	}
}

func (s *Server) Run() error {
	s.logger.Info("http server listening", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(
			"http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// requireWallet resolves the caller's wallet address from the request
// header. Signature verification is handled upstream by the gateway.
func requireWallet() gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.GetHeader("X-Wallet-Address")
		if wallet == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-Wallet-Address header"})
			return
		}
		c.Set("wallet", wallet)
		c.Next()
	}
}

func wallet(c *gin.Context) string {
	return c.GetString("wallet")
}
