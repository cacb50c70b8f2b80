package prefetch

import (
	"context"
	"time"

	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/rescue/pkg/task"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/pkg/cache"
	"github.com/venturemark/blogworker/pkg/gateway"
	"github.com/venturemark/blogworker/pkg/metadata"
	"github.com/venturemark/blogworker/pkg/sanitize"
)

const (
	DefaultTimeout = 30 * time.Second
)

type HandlerConfig struct {
	Cache   *cache.Cache
	Gateway gateway.Interface
	Logger  logger.Interface

	Timeout time.Duration
}

type Handler struct {
	cache   *cache.Cache
	gateway gateway.Interface
	logger  logger.Interface

	timeout time.Duration
}

func NewHandler(c HandlerConfig) (*Handler, error) {
	if c.Cache == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Cache must not be empty", c)
	}
	if c.Gateway == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Gateway must not be empty", c)
	}
	if c.Logger == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Logger must not be empty", c)
	}

	if c.Timeout == 0 {
		return nil, tracer.Maskf(invalidConfigError, "%T.Timeout must not be empty", c)
	}

	h := &Handler{
		cache:   c.Cache,
		gateway: c.Gateway,
		logger:  c.Logger,

		timeout: c.Timeout,
	}

	return h, nil
}

// Ensure fetches the post named by the task once and stores both the JSON
// post and its sanitized fragment under the keys the server reads.
func (h *Handler) Ensure(tsk *task.Task) error {
	var err error

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	var slug string
	{
		slug = tsk.Obj.Metadata[metadata.PostSlug]
		if slug == "" {
			return tracer.Maskf(invalidTaskError, "%s must not be empty", metadata.PostSlug)
		}
	}

	h.logger.Log(ctx, "level", "info", "message", "prefetching post", "slug", slug)

	var p *gateway.Post
	{
		p, err = h.gateway.GetPost(ctx, slug)
		if gateway.IsNotFound(err) {
			h.logger.Log(ctx, "level", "warning", "message", "dropping prefetch of unknown post", "slug", slug)
			return nil
		} else if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		e, err := cache.NewJSONEntry(p)
		if err != nil {
			return tracer.Mask(err)
		}

		err = h.cache.Create(ctx, cache.PostKey(slug), e)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		e, err := cache.NewJSONEntry(sanitize.NewFragment(gateway.NewRendered(p)))
		if err != nil {
			return tracer.Mask(err)
		}

		err = h.cache.Create(ctx, cache.HTMLKey(slug), e)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	h.logger.Log(ctx, "level", "info", "message", "prefetched post", "slug", slug)

	return nil
}

func (h *Handler) Filter(tsk *task.Task) bool {
	met := map[string]string{
		metadata.TaskAction:   "prefetch",
		metadata.TaskResource: "post",
	}

	return metadata.Contains(tsk.Obj.Metadata, met)
}
