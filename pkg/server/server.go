package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/pkg/cache"
	"github.com/venturemark/blogworker/pkg/gateway"
	"github.com/venturemark/blogworker/pkg/metric"
	"github.com/venturemark/blogworker/pkg/sanitize"
)

const (
	routeList   = "/posts"
	routePost   = "/posts/:slugOrId"
	routeHTML   = "/posts/:slugOrId/html"
	routeOther  = "other"
	routeMetric = "/metrics"
)

// Scheduler enqueues the prefetch of a single post.
type Scheduler interface {
	Schedule(ctx context.Context, slug string) error
}

type Config struct {
	Cache     *cache.Cache
	Gateway   gateway.Interface
	Logger    logger.Interface
	Metric    *metric.Collection
	Scheduler Scheduler

	AllowedOrigin string
	ErrCha        chan<- error
	HTTPHost      string
	HTTPPort      string
}

type Server struct {
	cache     *cache.Cache
	gateway   gateway.Interface
	logger    logger.Interface
	metric    *metric.Collection
	scheduler Scheduler

	errCha   chan<- error
	handler  http.Handler
	httpHost string
	httpPort string
}

func New(config Config) (*Server, error) {
	if config.Cache == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Cache must not be empty", config)
	}
	if config.Gateway == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Gateway must not be empty", config)
	}
	if config.Logger == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.Metric == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Metric must not be empty", config)
	}

	if config.ErrCha == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.ErrCha must not be empty", config)
	}
	if config.HTTPHost == "" {
		return nil, tracer.Maskf(invalidConfigError, "%T.HTTPHost must not be empty", config)
	}
	if config.HTTPPort == "" {
		return nil, tracer.Maskf(invalidConfigError, "%T.HTTPPort must not be empty", config)
	}

	if config.AllowedOrigin == "" {
		config.AllowedOrigin = "*"
	}

	s := &Server{
		cache:     config.Cache,
		gateway:   config.Gateway,
		logger:    config.Logger,
		metric:    config.Metric,
		scheduler: config.Scheduler,

		errCha:   config.ErrCha,
		httpHost: config.HTTPHost,
		httpPort: config.HTTPPort,
	}

	var r *prometheus.Registry
	{
		r = prometheus.NewPedanticRegistry()

		for _, c := range config.Metric.Collectors() {
			err := r.Register(c)
			if err != nil {
				return nil, tracer.Mask(err)
			}
		}
	}

	{
		gin.SetMode(gin.ReleaseMode)

		e := gin.New()
		e.Use(gin.Recovery())
		e.Use(cors.New(cors.Config{
			AllowOrigins: []string{config.AllowedOrigin},
			AllowMethods: []string{http.MethodGet, http.MethodOptions},
			AllowHeaders: []string{"Content-Type"},
		}))

		e.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		e.GET(routeMetric, gin.WrapH(promhttp.HandlerFor(r, promhttp.HandlerOpts{})))

		p := e.Group(routeList)
		p.Use(s.cached())
		{
			p.GET("", s.listPosts)
			p.GET("/:slugOrId", s.getPost)
			p.GET("/:slugOrId/html", s.renderPost)
		}

		e.NoRoute(func(c *gin.Context) {
			s.respondError(c, routeOther, http.StatusNotFound, "Not Found")
		})

		s.handler = e
	}

	return s, nil
}

// Handler exposes the routing tree without binding a listener.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) ListenHTTP() {
	a := net.JoinHostPort(s.httpHost, s.httpPort)

	s.logger.Log(context.Background(), "level", "info", "message", fmt.Sprintf("http server running at %s", a))

	{
		h := &http.Server{
			Addr:              a,
			Handler:           s.handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		err := h.ListenAndServe()
		if err != nil {
			s.errCha <- tracer.Mask(err)
		}
	}
}

func (s *Server) listPosts(c *gin.Context) {
	ctx := c.Request.Context()

	// Anything unparseable falls back to the default page size.
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	l, err := s.gateway.ListPosts(ctx, c.Query("start_cursor"), pageSize)
	if err != nil {
		s.fail(c, routeList, err)
		return
	}

	s.schedule(ctx, l.Posts)

	s.respond(c, routeList, l)
}

func (s *Server) getPost(c *gin.Context) {
	p, err := s.gateway.GetPost(c.Request.Context(), c.Param("slugOrId"))
	if err != nil {
		s.fail(c, routePost, err)
		return
	}

	s.respond(c, routePost, p)
}

func (s *Server) renderPost(c *gin.Context) {
	var r *gateway.Rendered
	{
		t := time.Now()

		var err error
		r, err = s.gateway.RenderPost(c.Request.Context(), c.Param("slugOrId"))
		if err != nil {
			s.fail(c, routeHTML, err)
			return
		}

		s.metric.RenderDuration.Observe(time.Since(t).Seconds())
	}

	s.respond(c, routeHTML, sanitize.NewFragment(r))
}

// schedule enqueues prefetch tasks for listed posts that are neither cached
// nor already queued. A queued post is marked for the lifetime of a cache
// entry.
func (s *Server) schedule(ctx context.Context, posts []gateway.Post) {
	if s.scheduler == nil {
		return
	}

	for _, p := range posts {
		ok, err := s.known(ctx, p.Slug)
		if err != nil {
			s.logger.Log(ctx, "level", "warning", "message", "cache lookup failed", "error", err.Error())
			continue
		}
		if ok {
			continue
		}

		err = s.scheduler.Schedule(ctx, p.Slug)
		if err != nil {
			s.logger.Log(ctx, "level", "warning", "message", "scheduling prefetch failed", "slug", p.Slug, "error", err.Error())
			continue
		}

		err = s.cache.Create(ctx, cache.ScheduledKey(p.Slug), cache.Entry{})
		if err != nil {
			s.logger.Log(ctx, "level", "warning", "message", "marking prefetch failed", "slug", p.Slug, "error", err.Error())
		}
	}
}

func (s *Server) known(ctx context.Context, slug string) (bool, error) {
	for _, k := range []string{cache.PostKey(slug), cache.ScheduledKey(slug)} {
		_, ok, err := s.cache.Search(ctx, k)
		if err != nil {
			return false, tracer.Mask(err)
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}
