package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/tracer"
)

const (
	DefaultPrefix = "blogworker:cache:"
	DefaultTTL    = 300 * time.Second
)

// Entry is a cached HTTP response body.
type Entry struct {
	Body        string `json:"body"`
	ContentType string `json:"content_type"`
	Stored      int64  `json:"stored"`
}

type Config struct {
	Logger  logger.Interface
	Storage Storage

	Prefix string
	TTL    time.Duration
}

type Cache struct {
	logger  logger.Interface
	storage Storage

	now    func() time.Time
	prefix string
	ttl    time.Duration
}

func New(config Config) (*Cache, error) {
	if config.Logger == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.Storage == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Storage must not be empty", config)
	}

	if config.TTL == 0 {
		return nil, tracer.Maskf(invalidConfigError, "%T.TTL must not be empty", config)
	}
	if config.Prefix == "" {
		config.Prefix = DefaultPrefix
	}

	c := &Cache{
		logger:  config.Logger,
		storage: config.Storage,

		now:    time.Now,
		prefix: config.Prefix,
		ttl:    config.TTL,
	}

	return c, nil
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Search returns the entry stored under key. Expired and undecodable
// entries count as a miss and are removed from the storage.
func (c *Cache) Search(ctx context.Context, key string) (*Entry, bool, error) {
	var err error

	var ok bool
	{
		ok, err = c.storage.Exists(c.prefix + key)
		if err != nil {
			return nil, false, tracer.Mask(err)
		}
		if !ok {
			return nil, false, nil
		}
	}

	var e Entry
	{
		s, err := c.storage.Search(c.prefix + key)
		if err != nil {
			return nil, false, tracer.Mask(err)
		}

		err = json.Unmarshal([]byte(s), &e)
		if err != nil {
			c.logger.Log(ctx, "level", "warning", "message", "dropping undecodable cache entry", "key", key)
			return nil, false, c.delete(key)
		}
	}

	if c.now().Sub(time.Unix(e.Stored, 0)) >= c.ttl {
		return nil, false, c.delete(key)
	}

	return &e, true, nil
}

func (c *Cache) Create(ctx context.Context, key string, e Entry) error {
	e.Stored = c.now().Unix()

	b, err := json.Marshal(e)
	if err != nil {
		return tracer.Mask(err)
	}

	err = c.storage.Create(c.prefix+key, string(b))
	if err != nil {
		return tracer.Mask(err)
	}

	c.logger.Log(ctx, "level", "debug", "message", "cached response", "key", key)

	return nil
}

func (c *Cache) delete(key string) error {
	err := c.storage.Delete(c.prefix + key)
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}
