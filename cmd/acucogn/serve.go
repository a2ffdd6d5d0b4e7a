package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acucogn/site/internal/assistant"
	"github.com/acucogn/site/internal/blog"
	"github.com/acucogn/site/internal/cache"
	"github.com/acucogn/site/internal/chat"
	"github.com/acucogn/site/internal/config"
	"github.com/acucogn/site/internal/geoip"
	"github.com/acucogn/site/internal/handler"
	"github.com/acucogn/site/internal/imaging"
	"github.com/acucogn/site/internal/leads"
	"github.com/acucogn/site/internal/metrics"
	"github.com/acucogn/site/internal/middleware"
	"github.com/acucogn/site/internal/render"
	"github.com/acucogn/site/internal/scheduler"
	"github.com/acucogn/site/internal/seo"
	"github.com/acucogn/site/internal/session"
	"github.com/acucogn/site/internal/site"
	"github.com/acucogn/site/internal/store"
	"github.com/acucogn/site/internal/supabase"
	"github.com/acucogn/site/web"
)

// Rate limiter sizing.
const (
	limiterMaxTracked = 10000
	pruneSchedule     = "@every 10m"
	geoipSchedule     = "@every 1h"
)

// app is everything serve wires together.
type app struct {
	cfg       *config.Config
	sm        *scs.SessionManager
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	blog      *blog.Service
	leads     *leads.Client
	responder assistant.Responder
	geo       *geoip.Locator
	thumbs    *imaging.Thumbnailer
	content   *site.Content
	renderer  *render.Renderer
	pings     map[string]handler.PingFunc

	contactLimiter *middleware.RateLimiter
	chatLimiter    *middleware.RateLimiter
	apiLimiter     *middleware.RateLimiter
}

func serve(ctx context.Context, cfg *config.Config) error {
	a := &app{
		cfg:            cfg,
		registry:       prometheus.NewRegistry(),
		pings:          make(map[string]handler.PingFunc),
		contactLimiter: middleware.NewRateLimiter("contact", 0.2, 5),
		chatLimiter:    middleware.NewRateLimiter("chat", 1, 10),
		apiLimiter:     middleware.NewRateLimiter("api_chat", 1, 10),
	}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.New(a.registry)

	var (
		source blog.Source
		sink   leads.Sink
	)
	if cfg.UseSupabase() {
		client := supabase.New(cfg.SupabaseURL, cfg.SupabaseKey)
		source, sink = client, client
		a.pings["supabase"] = client.Ping
		a.sm = session.New(nil, false, cfg.IsDevelopment())
		slog.Info("content backend ready", "backend", config.BackendSupabase)
	} else {
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)

		if cfg.DoSeed {
			if err := store.Seed(ctx, db); err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}
		}

		source, sink = store.NewArticleRepository(db), store.NewLeadRepository(db)
		a.pings["database"] = func(ctx context.Context) error { return store.Ping(ctx, db) }
		a.sm = session.New(db.DB, cfg.DBDriver == store.DriverSQLite, cfg.IsDevelopment())
		slog.Info("content backend ready", "backend", config.BackendSQL, "driver", cfg.DBDriver)
	}

	blogOpts := []blog.Option{blog.WithMetrics(a.metrics)}
	if cfg.CacheEnabled() {
		ttl := time.Duration(cfg.CacheTTL) * time.Second
		c, backend := cache.New(cache.Config{
			RedisURL:        cfg.RedisURL,
			Prefix:          cfg.CachePrefix,
			DefaultTTL:      ttl,
			MaxSize:         cfg.CacheMaxSize,
			CleanupInterval: time.Minute,
		})
		defer func() { _ = c.Close() }()

		if sp, ok := c.(cache.StatsProvider); ok {
			metrics.RegisterCacheStats(a.registry, backend, sp)
		}
		if rc, ok := c.(*cache.RedisCache); ok {
			a.pings["redis"] = rc.Ping
		}
		blogOpts = append(blogOpts, blog.WithCache(c, ttl))
		slog.Info("article cache initialized", "backend", backend, "ttl", ttl)
	}
	a.blog = blog.NewService(source, blogOpts...)
	a.leads = leads.NewClient(sink, a.metrics)

	responder, err := assistant.New(cfg)
	if err != nil {
		return fmt.Errorf("creating chat responder: %w", err)
	}
	a.responder = responder
	slog.Info("chat endpoint ready", "provider", responder.Name())

	a.geo, err = geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("geoip database unavailable, using default dial code", "path", cfg.GeoIPDBPath, "error", err)
	}
	defer func() { _ = a.geo.Close() }()

	a.thumbs = imaging.New(cfg.UploadsDir, cfg.ThumbCacheDir)

	if a.content, err = site.Default(); err != nil {
		return fmt.Errorf("loading site content: %w", err)
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	a.renderer, err = render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: a.sm,
		Site:           a.content,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	sched := scheduler.New(slog.Default())
	if err := a.registerJobs(sched); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	r, err := a.routes()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.ChatTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func (a *app) registerJobs(s *scheduler.Scheduler) error {
	if a.cfg.CacheEnabled() && a.cfg.WarmSchedule != "" {
		if err := s.Register("warm-articles", a.cfg.WarmSchedule, a.blog.Warm); err != nil {
			return fmt.Errorf("scheduling cache warm-up: %w", err)
		}
	}

	if a.geo.Enabled() {
		if err := s.Register("reload-geoip", geoipSchedule, func(context.Context) error {
			return a.geo.Reload()
		}); err != nil {
			return err
		}
	}

	return s.Register("prune-limiters", pruneSchedule, func(context.Context) error {
		for _, rl := range []*middleware.RateLimiter{a.contactLimiter, a.chatLimiter, a.apiLimiter} {
			rl.Prune(limiterMaxTracked)
		}
		return nil
	})
}

func (a *app) routes() (http.Handler, error) {
	views := &handler.Views{
		Renderer: a.renderer,
		Site:     a.content,
		Chat:     chat.NewSessionStore(a.sm),
		SEO: &seo.SiteConfig{
			SiteName:        a.content.Company.Name,
			SiteURL:         a.cfg.SiteURL,
			SiteDescription: a.content.Company.Tagline,
		},
	}

	transport := chat.NewHTTPTransport(a.cfg.ChatBaseURL, a.cfg.ChatTimeout)
	slog.Info("chat widget transport", "endpoint", transport.Endpoint())

	pages := handler.NewPagesHandler(views)
	blogH := handler.NewBlogHandler(views, a.blog)
	contact := handler.NewContactHandler(views, a.leads, a.sm, a.geo)
	chatH := handler.NewChatHandler(views, chat.NewService(transport, a.metrics))
	api := handler.NewAPIHandler(a.responder)
	health := handler.NewHealthHandler(a.pings, a.cfg.UploadsDir, a.cfg.IsDevelopment())
	seoH := handler.NewSEOHandler(a.blog, a.cfg.SiteURL, a.content.Company.Email, !a.cfg.IsDevelopment())
	thumbs := handler.NewThumbsHandler(a.thumbs)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestContext)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(a.metrics))
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(a.cfg.IsDevelopment())))
	r.Use(middleware.StripTrailingSlash)
	// Chat requests wait on the chat endpoint, which has its own timeout.
	r.Use(middleware.Timeout(30*time.Second, "/api/", handler.RouteChat))

	r.Get(handler.RouteHealth, health.Health)
	r.Get(handler.RouteHealthLive, health.Liveness)
	r.Get(handler.RouteHealthReady, health.Readiness)
	r.Handle(handler.RouteMetrics, middleware.NoStore(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	r.Get(handler.RouteSitemap, seoH.Sitemap)
	r.Get(handler.RouteRobots, seoH.Robots)
	r.Get(handler.RouteSecurityTxt, seoH.SecurityTxt)

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return nil, fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/dist/*", middleware.StaticCache(31536000)(
		http.StripPrefix("/static/dist/", http.FileServer(http.FS(staticFS)))))
	r.Handle(imaging.UploadsPrefix+"*", middleware.StaticCache(604800)(
		http.StripPrefix(imaging.UploadsPrefix, http.FileServer(http.Dir(a.cfg.UploadsDir)))))
	r.Get(handler.RouteThumbs, thumbs.Serve)

	r.Group(func(r chi.Router) {
		r.Use(a.sm.LoadAndSave)
		r.Use(middleware.NoStore)
		r.Use(middleware.SkipCSRF(handler.RouteAPIChat))
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(a.cfg.SessionSecret), a.cfg.IsDevelopment())))

		r.Get(handler.RouteRoot, pages.Home)
		r.Get(handler.RouteServices, pages.Services)
		r.Get(handler.RoutePortfolio, pages.Portfolio)
		r.Get(handler.RouteFAQ, pages.FAQ)
		r.Get(handler.RouteBlog, blogH.List)
		r.Get(handler.RouteBlogPost, blogH.Show)
		r.Get(handler.RouteContact, contact.Show)
		r.With(a.contactLimiter.HTMLMiddleware()).Post(handler.RouteContact, contact.Submit)
		r.Get(handler.RouteChat, chatH.Show)
		r.With(middleware.BlockBots, a.chatLimiter.HTMLMiddleware()).Post(handler.RouteChat, chatH.Send)
		r.Post(handler.RouteChatReset, chatH.Reset)
		r.With(a.apiLimiter.Middleware()).Post(handler.RouteAPIChat, api.Chat)

		r.NotFound(views.NotFound)
	})

	return r, nil
}
