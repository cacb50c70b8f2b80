package warmup

import (
	"context"
	"fmt"
	"time"

	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/rescue/pkg/task"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/pkg/gateway"
	"github.com/venturemark/blogworker/pkg/metadata"
)

// Scheduler enqueues the prefetch of a single post.
type Scheduler interface {
	Schedule(ctx context.Context, slug string) error
}

type HandlerConfig struct {
	Gateway   gateway.Interface
	Logger    logger.Interface
	Scheduler Scheduler

	Timeout time.Duration
}

// Handler walks every published post and schedules its prefetch, so that a
// freshly started daemon serves from a warm cache.
type Handler struct {
	gateway   gateway.Interface
	logger    logger.Interface
	scheduler Scheduler

	timeout time.Duration
}

func NewHandler(c HandlerConfig) (*Handler, error) {
	if c.Gateway == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Gateway must not be empty", c)
	}
	if c.Logger == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Logger must not be empty", c)
	}
	if c.Scheduler == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Scheduler must not be empty", c)
	}

	if c.Timeout == 0 {
		return nil, tracer.Maskf(invalidConfigError, "%T.Timeout must not be empty", c)
	}

	h := &Handler{
		gateway:   c.Gateway,
		logger:    c.Logger,
		scheduler: c.Scheduler,

		timeout: c.Timeout,
	}

	return h, nil
}

func (h *Handler) Ensure(tsk *task.Task) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.logger.Log(ctx, "level", "info", "message", "warming up post cache")

	n, err := h.schedule(ctx)
	if err != nil {
		return tracer.Mask(err)
	}

	h.logger.Log(ctx, "level", "info", "message", fmt.Sprintf("scheduled prefetch of %d posts", n))

	return nil
}

func (h *Handler) Filter(tsk *task.Task) bool {
	met := map[string]string{
		metadata.TaskAction:   "warmup",
		metadata.TaskResource: "post",
	}

	return metadata.Contains(tsk.Obj.Metadata, met)
}

func (h *Handler) schedule(ctx context.Context) (int, error) {
	var don chan struct{}
	var erc chan error
	var res chan string
	{
		don = make(chan struct{})
		erc = make(chan error, 2)
		res = make(chan string, gateway.MaxPageSize)
	}

	var n int

	go func() {
		defer close(don)

		for s := range res {
			err := h.scheduler.Schedule(ctx, s)
			if err != nil {
				erc <- tracer.Mask(err)
				return
			}

			n++
		}
	}()

	go func() {
		defer close(res)

		var cursor string
		for {
			l, err := h.gateway.ListPosts(ctx, cursor, gateway.MaxPageSize)
			if err != nil {
				erc <- tracer.Mask(err)
				return
			}

			for _, p := range l.Posts {
				select {
				case res <- p.Slug:
				case <-ctx.Done():
					return
				}
			}

			if !l.HasMore || l.NextCursor == nil {
				return
			}

			cursor = *l.NextCursor
		}
	}()

	{
		select {
		case err := <-erc:
			return 0, tracer.Mask(err)

		case <-don:
			select {
			case err := <-erc:
				return 0, tracer.Mask(err)
			default:
			}

			return n, nil

		case <-ctx.Done():
			return 0, tracer.Mask(timeoutError)
		}
	}
}

func NewTask() *task.Task {
	return &task.Task{
		Obj: task.TaskObj{
			Metadata: map[string]string{
				metadata.TaskAction:   "warmup",
				metadata.TaskResource: "post",
			},
		},
	}
}
