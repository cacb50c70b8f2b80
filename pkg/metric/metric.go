package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "blogworker"
)

// Collection holds every collector the worker exposes on /metrics.
type Collection struct {
	CacheLookups   *prometheus.CounterVec
	RenderDuration prometheus.Histogram
	Requests       *prometheus.CounterVec
	Tasks          *prometheus.CounterVec
}

func New() *Collection {
	c := &Collection{
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Number of response cache lookups by result.",
			},
			[]string{"result"},
		),
		RenderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Time spent fetching and rendering a post.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Number of HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
		Tasks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tasks_total",
				Help:      "Number of queue tasks processed by result.",
			},
			[]string{"result"},
		),
	}

	return c
}

func (c *Collection) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.CacheLookups,
		c.RenderDuration,
		c.Requests,
		c.Tasks,
	}
}
