package daemon

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/redigo"
	"github.com/xh3b4sd/redigo/pkg/client"
	"github.com/xh3b4sd/rescue"
	"github.com/xh3b4sd/rescue/pkg/engine"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/pkg/cache"
	"github.com/venturemark/blogworker/pkg/controller"
	"github.com/venturemark/blogworker/pkg/controller/queue"
	"github.com/venturemark/blogworker/pkg/gateway"
	"github.com/venturemark/blogworker/pkg/handler"
	"github.com/venturemark/blogworker/pkg/handler/prefetch"
	"github.com/venturemark/blogworker/pkg/handler/warmup"
	"github.com/venturemark/blogworker/pkg/metric"
	"github.com/venturemark/blogworker/pkg/notion"
	"github.com/venturemark/blogworker/pkg/server"
)

type runner struct {
	flag   *flag
	logger logger.Interface
}

func (r *runner) Run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	err := r.flag.Validate()
	if err != nil {
		return tracer.Mask(err)
	}

	err = r.run(ctx, cmd, args)
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}

func (r *runner) run(ctx context.Context, cmd *cobra.Command, args []string) error {
	var err error

	var redigoClient redigo.Interface
	{
		c := client.Config{
			Address: net.JoinHostPort(r.flag.Redis.Host, r.flag.Redis.Port),
			Kind:    r.flag.Redis.Kind,
		}

		redigoClient, err = client.New(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var rescueEngine rescue.Interface
	{
		c := engine.Config{
			Logger: r.logger,
			Redigo: redigoClient,
		}

		rescueEngine, err = engine.New(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var notionClient notion.Interface
	{
		c := notion.ClientConfig{
			Timeout: r.flag.Notion.Timeout,
			Token:   r.flag.Notion.Token,
		}

		notionClient, err = notion.NewClient(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var newGateway gateway.Interface
	{
		c := gateway.Config{
			Logger: r.logger,
			Notion: notionClient,

			DatabaseID: r.flag.Notion.DatabaseID,
			MaxDepth:   r.flag.Notion.MaxDepth,
		}

		newGateway, err = gateway.New(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var newCache *cache.Cache
	{
		c := cache.Config{
			Logger:  r.logger,
			Storage: cache.NewRedigoStorage(redigoClient),

			TTL: time.Duration(r.flag.Cache.TTL) * time.Second,
		}

		newCache, err = cache.New(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var newMetric *metric.Collection
	{
		newMetric = metric.New()
	}

	var prefetchScheduler *prefetch.Scheduler
	{
		c := prefetch.SchedulerConfig{
			Logger: r.logger,
			Rescue: rescueEngine,
		}

		prefetchScheduler, err = prefetch.NewScheduler(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var prefetchHandler handler.Interface
	{
		c := prefetch.HandlerConfig{
			Cache:   newCache,
			Gateway: newGateway,
			Logger:  r.logger,

			Timeout: r.flag.Handler.Timeout,
		}

		prefetchHandler, err = prefetch.NewHandler(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var warmupHandler handler.Interface
	{
		c := warmup.HandlerConfig{
			Gateway:   newGateway,
			Logger:    r.logger,
			Scheduler: prefetchScheduler,

			Timeout: r.flag.Handler.Timeout,
		}

		warmupHandler, err = warmup.NewHandler(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var donCha chan struct{}
	var errCha chan error
	var sigCha chan os.Signal
	{
		donCha = make(chan struct{})
		errCha = make(chan error, 1)
		sigCha = make(chan os.Signal, 2)

		defer close(donCha)
		defer close(sigCha)
	}

	var newServer *server.Server
	{
		c := server.Config{
			Cache:     newCache,
			Gateway:   newGateway,
			Logger:    r.logger,
			Metric:    newMetric,
			Scheduler: prefetchScheduler,

			AllowedOrigin: r.flag.HTTP.AllowedOrigin,
			ErrCha:        errCha,
			HTTPHost:      r.flag.HTTP.Host,
			HTTPPort:      r.flag.HTTP.Port,
		}

		newServer, err = server.New(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var newController controller.Interface
	{
		c := queue.ControllerConfig{
			DonCha: donCha,
			ErrCha: errCha,
			Handler: []handler.Interface{
				prefetchHandler,
				warmupHandler,
			},
			Logger: r.logger,
			Metric: newMetric,
			Rescue: rescueEngine,

			Interval: r.flag.Controller.Interval,
		}

		newController, err = queue.NewController(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	if r.flag.Warmup {
		err = rescueEngine.Create(warmup.NewTask())
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		go newServer.ListenHTTP()
		go newController.Boot()
	}

	{
		signal.Notify(sigCha, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCha:
			return tracer.Mask(err)

		case <-sigCha:
			r.logger.Log(ctx, "level", "info", "message", "shutting down")

			select {
			case <-time.After(r.flag.TerminationGracePeriod):
			case <-sigCha:
			}

			return nil
		}
	}
}
