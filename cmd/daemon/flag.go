package daemon

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/pkg/cache"
	"github.com/venturemark/blogworker/pkg/gateway"
	"github.com/venturemark/blogworker/pkg/handler/prefetch"
)

type flag struct {
	Cache struct {
		TTL int
	}
	Controller struct {
		Interval time.Duration
	}
	Handler struct {
		Timeout time.Duration
	}
	HTTP struct {
		AllowedOrigin string
		Host          string
		Port          string
	}
	Notion struct {
		DatabaseID string
		MaxDepth   int
		Timeout    time.Duration
		Token      string
	}
	Redis struct {
		Host string
		Kind string
		Port string
	}
	TerminationGracePeriod time.Duration
	Warmup                 bool
}

func (f *flag) Init(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.Cache.TTL, "cache-ttl", "", envInt("CACHE_TTL", int(cache.DefaultTTL.Seconds())), "The seconds responses are cached for, defaults to $CACHE_TTL.")
	cmd.Flags().DurationVarP(&f.Controller.Interval, "controller-interval", "", 5*time.Second, "The interval at which the prefetch queue is polled.")
	cmd.Flags().DurationVarP(&f.Handler.Timeout, "handler-timeout", "", prefetch.DefaultTimeout, "The time a single prefetch may take.")
	cmd.Flags().StringVarP(&f.HTTP.AllowedOrigin, "http-allowed-origin", "", envString("ALLOWED_ORIGIN", "*"), "The origin allowed by CORS, defaults to $ALLOWED_ORIGIN.")
	cmd.Flags().StringVarP(&f.HTTP.Host, "http-host", "", "127.0.0.1", "The host for binding the http server to.")
	cmd.Flags().StringVarP(&f.HTTP.Port, "http-port", "", "8080", "The port for binding the http server to.")
	cmd.Flags().StringVarP(&f.Notion.DatabaseID, "notion-database-id", "", envString("NOTION_DATABASE_ID", ""), "The notion database holding the posts, defaults to $NOTION_DATABASE_ID.")
	cmd.Flags().IntVarP(&f.Notion.MaxDepth, "notion-max-depth", "", gateway.DefaultMaxDepth, "The deepest block level fetched from notion.")
	cmd.Flags().DurationVarP(&f.Notion.Timeout, "notion-timeout", "", 10*time.Second, "The timeout of a single notion API request.")
	cmd.Flags().StringVarP(&f.Notion.Token, "notion-token", "", envString("NOTION_API_TOKEN", ""), "The notion integration token, defaults to $NOTION_API_TOKEN.")
	cmd.Flags().StringVarP(&f.Redis.Host, "redis-host", "", envString("REDIS_HOST", "127.0.0.1"), "The host for connecting with redis, defaults to $REDIS_HOST.")
	cmd.Flags().StringVarP(&f.Redis.Kind, "redis-kind", "", "single", "The kind of redis to connect to, e.g. single or sentinel.")
	cmd.Flags().StringVarP(&f.Redis.Port, "redis-port", "", envString("REDIS_PORT", "6379"), "The port for connecting with redis, defaults to $REDIS_PORT.")
	cmd.Flags().DurationVarP(&f.TerminationGracePeriod, "termination-grace-period", "", 5*time.Second, "The time given to in-flight work after a termination signal.")
	cmd.Flags().BoolVarP(&f.Warmup, "warmup", "", true, "Whether to prefetch every published post on startup.")
}

func (f *flag) Validate() error {
	{
		if f.Cache.TTL <= 0 {
			return tracer.Maskf(invalidFlagError, "--cache-ttl must be positive")
		}
	}

	{
		if f.Controller.Interval <= 0 {
			return tracer.Maskf(invalidFlagError, "--controller-interval must be positive")
		}
		if f.Handler.Timeout <= 0 {
			return tracer.Maskf(invalidFlagError, "--handler-timeout must be positive")
		}
	}

	{
		if f.HTTP.AllowedOrigin == "" {
			return tracer.Maskf(invalidFlagError, "--http-allowed-origin must not be empty")
		}
		if f.HTTP.Host == "" {
			return tracer.Maskf(invalidFlagError, "--http-host must not be empty")
		}
		if f.HTTP.Port == "" {
			return tracer.Maskf(invalidFlagError, "--http-port must not be empty")
		}
	}

	{
		if f.Notion.DatabaseID == "" {
			return tracer.Maskf(invalidFlagError, "--notion-database-id must not be empty")
		}
		if f.Notion.MaxDepth < 0 {
			return tracer.Maskf(invalidFlagError, "--notion-max-depth must not be negative")
		}
		if f.Notion.Token == "" {
			return tracer.Maskf(invalidFlagError, "--notion-token must not be empty")
		}
	}

	{
		if f.Redis.Host == "" {
			return tracer.Maskf(invalidFlagError, "--redis-host must not be empty")
		}
		if f.Redis.Kind == "" {
			return tracer.Maskf(invalidFlagError, "--redis-kind must not be empty")
		}
		if f.Redis.Port == "" {
			return tracer.Maskf(invalidFlagError, "--redis-port must not be empty")
		}
	}

	return nil
}

func envString(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	return v
}

func envInt(key string, def int) int {
	i, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}

	return i
}
