package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/venturemark/blogworker/pkg/cache"
	"github.com/venturemark/blogworker/pkg/gateway"
)

type errorResponse struct {
	Error string `json:"error"`
}

// cached serves GET requests from the response cache and aborts the chain on
// a hit.
func (s *Server) cached() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		e, ok, err := s.cache.Search(ctx, cacheKey(c))
		if err != nil {
			s.logger.Log(ctx, "level", "warning", "message", "cache lookup failed", "error", err.Error())
		}

		if !ok {
			s.metric.CacheLookups.WithLabelValues("miss").Inc()
			c.Next()
			return
		}

		s.metric.CacheLookups.WithLabelValues("hit").Inc()
		s.metric.Requests.WithLabelValues(c.FullPath(), strconv.Itoa(http.StatusOK)).Inc()

		c.Header("Cache-Control", s.cacheControl())
		c.Data(http.StatusOK, e.ContentType, []byte(e.Body))
		c.Abort()
	}
}

// cacheKey derives the cache key from the matched route, so that parameters
// without effect on the response never mint new keys.
func cacheKey(c *gin.Context) string {
	switch c.FullPath() {
	case routeList:
		n, _ := strconv.Atoi(c.Query("page_size"))
		return cache.ListKey(c.Query("start_cursor"), gateway.PageSize(n))
	case routeHTML:
		return cache.HTMLKey(c.Param("slugOrId"))
	default:
		return cache.PostKey(c.Param("slugOrId"))
	}
}

func (s *Server) respond(c *gin.Context, route string, v interface{}) {
	ctx := c.Request.Context()

	e, err := cache.NewJSONEntry(v)
	if err != nil {
		s.fail(c, route, err)
		return
	}

	err = s.cache.Create(ctx, cacheKey(c), e)
	if err != nil {
		s.logger.Log(ctx, "level", "warning", "message", "caching response failed", "error", err.Error())
	}

	s.metric.Requests.WithLabelValues(route, strconv.Itoa(http.StatusOK)).Inc()

	c.Header("Cache-Control", s.cacheControl())
	c.Data(http.StatusOK, e.ContentType, []byte(e.Body))
}

func (s *Server) fail(c *gin.Context, route string, err error) {
	if gateway.IsNotFound(err) {
		s.respondError(c, route, http.StatusNotFound, "Post not found")
		return
	}

	s.logger.Log(c.Request.Context(), "level", "error", "message", "request failed", "route", route, "error", err.Error())

	s.respondError(c, route, http.StatusInternalServerError, "Internal Server Error")
}

func (s *Server) respondError(c *gin.Context, route string, code int, message string) {
	s.metric.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()

	c.JSON(code, errorResponse{Error: message})
}

func (s *Server) cacheControl() string {
	return fmt.Sprintf("s-maxage=%d", int(s.cache.TTL().Seconds()))
}
