package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"healthinfo-simplifier/internal/config"
	"healthinfo-simplifier/internal/infra/fetcher"
	"healthinfo-simplifier/internal/infra/history"
	"healthinfo-simplifier/internal/infra/langdetect"
	"healthinfo-simplifier/internal/infra/rewriter"
	"healthinfo-simplifier/internal/observability/logging"
	"healthinfo-simplifier/internal/observability/metrics"
	"healthinfo-simplifier/internal/observability/slo"
	"healthinfo-simplifier/internal/observability/tracing"
	analyzeUC "healthinfo-simplifier/internal/usecase/analyze"
	simplifyUC "healthinfo-simplifier/internal/usecase/simplify"
	envconfig "healthinfo-simplifier/pkg/config"

	hhttp "healthinfo-simplifier/internal/handler/http"
	hanalyze "healthinfo-simplifier/internal/handler/http/analyze"
	"healthinfo-simplifier/internal/handler/http/middleware"
	"healthinfo-simplifier/internal/handler/http/requestid"
	hsimplify "healthinfo-simplifier/internal/handler/http/simplify"
)

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	logger := initLogger()

	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		fatal(logger, "failed to load server configuration", err)
	}

	var shutdownTracing func(context.Context) error
	if serverCfg.TracingEnabled {
		shutdownTracing = tracing.Init(envconfig.GetEnvFloat("TRACING_SAMPLE_RATIO", 1.0))
		logger.Info("tracing enabled")
	}

	components := setupServer(logger, serverCfg)
	defer func() {
		if err := components.Close(); err != nil {
			logger.Error("failed to close rewriter", slog.Any("error", err))
		}
	}()

	runServer(logger, serverCfg, components)

	if shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("tracing shutdown failed", slog.Any("error", err))
		}
	}
}

// initLogger builds the logger from LOG_LEVEL and LOG_FORMAT and installs it
// as the default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	os.Exit(1)
}

// ServerComponents holds what the server needs at runtime and on shutdown.
type ServerComponents struct {
	Handler     http.Handler
	Ready       *hhttp.ReadyHandler
	Sweeper     *history.Sweeper
	RateLimiter *middleware.RateLimiter
	RateLimit   middleware.RateLimitConfig
	Close       func() error
}

// setupServer loads every component configuration, builds the use cases and
// returns the fully wrapped handler. Invalid configuration stops startup.
func setupServer(logger *slog.Logger, serverCfg *config.ServerConfig) *ServerComponents {
	rw, closeRewriter := initRewriter(logger)
	store, sweeper := initHistory(logger)

	tracker := slo.NewTracker(slo.DefaultWindow)
	simplifySvc := simplifyUC.NewService(rw, store, loadPresets(logger), simplifyUC.WithSLOTracker(tracker))
	analyzeSvc := initAnalyze(logger)

	rateLimitCfg, err := middleware.LoadRateLimitConfig()
	if err != nil {
		fatal(logger, "failed to load rate limit configuration", err)
	}
	var limiter *middleware.RateLimiter
	if rateLimitCfg.Enabled {
		limiter = middleware.NewRateLimiter(rateLimitCfg, initIPExtractor(logger))
		logger.Info("rate limiting enabled",
			slog.Float64("requests_per_minute", rateLimitCfg.RequestsPerMinute),
			slog.Int("burst", rateLimitCfg.Burst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	ready := &hhttp.ReadyHandler{}
	health := &hhttp.HealthHandler{
		Version:  serverCfg.Version,
		Rewriter: rw,
		History:  store,
		SLO:      tracker,
	}
	if limiter != nil {
		health.RateLimiter = limiter
	}

	mux := setupRoutes(analyzeSvc, simplifySvc, limiter, health, ready)
	return &ServerComponents{
		Handler:     applyMiddleware(logger, mux, serverCfg),
		Ready:       ready,
		Sweeper:     sweeper,
		RateLimiter: limiter,
		RateLimit:   rateLimitCfg,
		Close:       closeRewriter,
	}
}

func initRewriter(logger *slog.Logger) (rewriter.Rewriter, func() error) {
	cfg, err := config.LoadRewriterConfig()
	if err != nil {
		fatal(logger, "failed to load rewriter configuration", err)
	}
	rw, closeFn, err := rewriter.New(context.Background(), cfg)
	if err != nil {
		fatal(logger, "failed to create rewriter", err)
	}
	logger.Info("rewriter configured", slog.String("config", cfg.String()))
	return rw, closeFn
}

func initHistory(logger *slog.Logger) (*history.MemoryStore, *history.Sweeper) {
	cfg, err := history.LoadConfigFromEnv()
	if err != nil {
		fatal(logger, "failed to load history configuration", err)
	}
	store := history.NewMemoryStore(cfg.Capacity)
	store.OnChange(metrics.UpdateHistoryEntries)
	return store, history.NewSweeper(store, cfg, logger)
}

// loadPresets merges PRESETS_FILE, when set, over the built-in presets.
func loadPresets(logger *slog.Logger) []simplifyUC.Preset {
	presets := simplifyUC.DefaultPresets()
	path := envconfig.GetEnvString("PRESETS_FILE", "")
	if path == "" {
		return presets
	}

	specs, err := config.LoadPresets(path)
	if err != nil {
		fatal(logger, "failed to load presets", err)
	}
	logger.Info("presets loaded", slog.String("path", path), slog.Int("count", len(specs)))
	return simplifyUC.MergePresets(presets, simplifyUC.PresetsFromSpecs(specs))
}

func initAnalyze(logger *slog.Logger) *analyzeUC.Service {
	cfg, err := analyzeUC.LoadConfigFromEnv()
	if err != nil {
		fatal(logger, "failed to load analyze configuration", err)
	}

	var pageFetcher analyzeUC.PageFetcher
	if envconfig.GetEnvBool("PAGE_FETCH_ENABLED", true) {
		fetchCfg, err := fetcher.LoadConfigFromEnv()
		if err != nil {
			fatal(logger, "failed to load page fetch configuration", err)
		}
		pageFetcher = fetcher.NewReadabilityFetcher(fetchCfg)
	} else {
		logger.Info("url analysis disabled")
	}

	var detector analyzeUC.LanguageDetector
	if envconfig.GetEnvBool("LANGDETECT_ENABLED", true) {
		detectCfg, err := langdetect.LoadConfigFromEnv()
		if err != nil {
			fatal(logger, "failed to load language detection configuration", err)
		}
		detector = langdetect.NewDetector(detectCfg)
	}

	return analyzeUC.NewService(pageFetcher, fetcher.HTMLToText, detector, cfg)
}

func initIPExtractor(logger *slog.Logger) middleware.IPExtractor {
	proxyCfg, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		fatal(logger, "failed to load trusted proxy configuration", err)
	}
	if proxyCfg.Enabled {
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyCfg.AllowedCIDRs)))
		return middleware.NewTrustedProxyExtractor(proxyCfg)
	}
	logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	return middleware.RemoteAddrExtractor{}
}

// setupRoutes registers the API, probe and metrics routes.
func setupRoutes(
	analyzeSvc *analyzeUC.Service,
	simplifySvc *simplifyUC.Service,
	limiter *middleware.RateLimiter,
	health *hhttp.HealthHandler,
	ready *hhttp.ReadyHandler,
) *http.ServeMux {
	var limit func(http.Handler) http.Handler
	if limiter != nil {
		limit = limiter.Middleware
	}

	mux := http.NewServeMux()
	hanalyze.Register(mux, analyzeSvc)
	hsimplify.Register(mux, simplifySvc, limit)

	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", ready)
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	return mux
}

// applyMiddleware wraps handler with the middleware chain.
// Order, outermost first: CORS, security headers, request ID, tracing,
// recovery, logging, input validation, body limit, timeout, metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler, serverCfg *config.ServerConfig) http.Handler {
	corsCfg, err := middleware.LoadCORSConfig()
	if err != nil {
		fatal(logger, "failed to load CORS configuration", err)
	}
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsCfg.AllowedOrigins),
		slog.Any("allowed_methods", corsCfg.AllowedMethods),
		slog.Int("max_age", corsCfg.MaxAge))

	securityCfg := middleware.LoadSecurityHeadersConfig()
	if !securityCfg.CSPEnabled {
		logger.Warn("CSP is disabled")
	}

	chain := handler

	// Applied innermost to outermost.
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(serverCfg.WriteTimeout * 9 / 10)(chain)
	chain = hhttp.LimitRequestBody(serverCfg.MaxBodyBytes)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.SecurityHeaders(securityCfg)(chain)
	chain = middleware.CORS(corsCfg)(chain)

	return chain
}

// runServer starts the server and the background jobs and blocks until
// SIGINT or SIGTERM, then shuts everything down.
func runServer(logger *slog.Logger, serverCfg *config.ServerConfig, components *ServerComponents) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if components.RateLimiter != nil {
		go hhttp.StartRateLimitCleanup(ctx, components.RateLimiter, components.RateLimit.CleanupInterval, "simplify")
	}
	if err := components.Sweeper.Start(); err != nil {
		fatal(logger, "failed to start history sweeper", err)
	}

	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: serverCfg.ReadHeaderTimeout,
		ReadTimeout:       serverCfg.ReadTimeout,
		WriteTimeout:      serverCfg.WriteTimeout,
		IdleTimeout:       serverCfg.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", serverCfg.Addr),
			slog.String("version", serverCfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "server failed", err)
		}
	}()
	components.Ready.SetReady(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")
	components.Ready.SetReady(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	cancel()
	components.Sweeper.Stop(shutdownCtx)
	logger.Info("server stopped")
}
