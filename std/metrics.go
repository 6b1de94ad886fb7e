package std

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 服务级指标
type Metrics struct {
	registry *prometheus.Registry

	FieldResolutions      *prometheus.CounterVec
	FieldDuration         *prometheus.HistogramVec
	IntrospectedRelations *prometheus.GaugeVec
	IntrospectionDuration prometheus.Gauge
}

// NewMetrics 创建并注册全部指标，使用独立Registry避免全局状态
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		FieldResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pgql",
				Subsystem: "field",
				Name:      "resolutions_total",
				Help:      "Total number of field resolutions",
			},
			[]string{"field", "status"},
		),

		FieldDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pgql",
				Subsystem: "field",
				Name:      "duration_seconds",
				Help:      "Field resolution duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"field"},
		),

		IntrospectedRelations: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "pgql",
				Subsystem: "introspection",
				Name:      "relations",
				Help:      "Number of relations discovered per schema",
			},
			[]string{"schema"},
		),

		IntrospectionDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "pgql",
				Subsystem: "introspection",
				Name:      "duration_seconds",
				Help:      "Duration of the startup introspection pass",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.FieldResolutions,
		m.FieldDuration,
		m.IntrospectedRelations,
		m.IntrospectionDuration,
	)
	return m
}

// Registry 返回指标注册表
func (my *Metrics) Registry() *prometheus.Registry {
	return my.registry
}

func (my *Metrics) Base() string {
	return "/metrics"
}

func (my *Metrics) Init(r fiber.Router) {
	r.Get("/", adaptor.HTTPHandler(promhttp.HandlerFor(my.registry, promhttp.HandlerOpts{})))
}
