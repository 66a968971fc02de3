package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/adventuresof/adventuresof/backend/go-services/handlers"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/assembler"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/book/handler"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/book/service"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/config"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/illustration"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/prompt"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/storage"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/story"
	"github.com/adventuresof/adventuresof/backend/go-services/pkg/logger"
	"github.com/adventuresof/adventuresof/backend/go-services/pkg/metrics"
	"github.com/adventuresof/adventuresof/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal, LOG_FORMAT: json|console
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	gen := story.NewGenerator(cfg.Story, prompt.NewBuilder())
	if gen.Enabled() {
		logger.Infof("remote story generation enabled (model=%s)", cfg.Story.Model)
	} else {
		logger.Warn("OPENROUTER_API_KEY not set: every book uses the fallback story")
	}

	opts := service.Options{DownloadPrefix: cfg.Book.DownloadPrefix}
	if mc := storage.LoadMinIOConfig(); mc.Enabled() {
		archive, err := storage.NewMinIOStorage(mc)
		if err != nil {
			logger.Warnf("book archive disabled: %v", err)
		} else {
			opts.Archiver = archive
			logger.Infof("archiving books to bucket %s", archive.Bucket())
		}
	}
	svc := service.NewService(illustration.NewSelector(), gen, assembler.New(cfg.Book.OutputDir), opts)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := newRouter(cfg, svc, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Adventures Of server listening on %s (output=%s static=%s)", srv.Addr, cfg.Book.OutputDir, cfg.Book.StaticDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}

// newRouter assembles middleware, API routes and static file serving.
func newRouter(cfg *config.Config, svc service.Service, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger.L()))
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	var limit []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limit = append(limit, middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			limit = append(limit, middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handler.RegisterBookRoutes(r, svc, handler.Payment{Link: cfg.Payment.Link, Price: cfg.Payment.Price}, limit...)
	handlers.RegisterSwagger(r)

	r.GET("/ready", readiness(cfg, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Static(cfg.Book.DownloadPrefix, cfg.Book.OutputDir)
	// everything else is the single-page frontend
	r.NoRoute(gin.WrapH(http.FileServer(gin.Dir(cfg.Book.StaticDir, false))))
	return r
}

func corsConfig(origins []string) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowHeaders = append(cc.AllowHeaders, middleware.RequestIDHeader)
	cc.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	for _, o := range origins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = origins
	return cc
}

// readiness returns 200 only when books can be written and, if used, Redis answers.
func readiness(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["output"] = outputWritable(cfg.Book.OutputDir) == nil
		ready = ready && deps["output"]

		if rdb != nil && cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			deps["redis"] = rdb.Ping(ctx).Err() == nil
			cancel()
			ready = ready && deps["redis"]
		}

		uptime := time.Since(startTime).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	}
}

func outputWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".ready-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
