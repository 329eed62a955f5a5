package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fittrack"

// Prom holds every collector the API exports. Methods are safe on a nil *Prom
// so tests and tools can run without a registry.
type Prom struct {
	// HTTP
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// DB
	DbQueryDuration *prometheus.HistogramVec
	DbErrorsTotal   *prometheus.CounterVec

	// food search cache
	CacheResults *prometheus.CounterVec

	// domain
	AuthEvents   *prometheus.CounterVec
	RecordWrites *prometheus.CounterVec
}

func counterVec(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func histogramVec(subsystem, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: counterVec("", "http_requests_total", "Total HTTP requests processed", "method", "route", "status"),
		RequestsDuration: histogramVec("", "http_request_duration_seconds", "HTTP request latency distributions.",
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}, "method", "route", "status"),
		InFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}, []string{"method", "route"}),

		DbQueryDuration: histogramVec("db", "query_duration_seconds", "DB operation latency (logical op, not raw SQL)",
			[]float64{0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.25, 0.5, 1, 2}, "op", "status"),
		DbErrorsTotal: counterVec("db", "errors_total", "DB errors by logical op and class.", "op", "class"),

		// result=hit|miss|error
		CacheResults: counterVec("cache", "results_total", "Cache lookups by cache name and result.", "cache", "result"),

		AuthEvents:   counterVec("auth", "events_total", "Register, login and refresh attempts by outcome.", "action", "outcome"),
		RecordWrites: counterVec("records", "writes_total", "Successful writes to user records by kind and op.", "kind", "op"),
	}

	reg.MustRegister(
		p.RequestsTotal, p.RequestsDuration, p.InFlight,
		p.DbQueryDuration, p.DbErrorsTotal,
		p.CacheResults,
		p.AuthEvents, p.RecordWrites,
	)

	return p
}

func (p *Prom) ObserveCache(name, result string) {
	if p == nil {
		return
	}
	p.CacheResults.WithLabelValues(name, result).Inc()
}

// ObserveAuth records one auth attempt, e.g. ("login", "invalid_credentials").
func (p *Prom) ObserveAuth(action, outcome string) {
	if p == nil {
		return
	}
	p.AuthEvents.WithLabelValues(action, outcome).Inc()
}

// ObserveRecordWrite counts a committed create, update or delete of a workout,
// nutrition entry, goal or progress entry.
func (p *Prom) ObserveRecordWrite(kind, op string) {
	if p == nil {
		return
	}
	p.RecordWrites.WithLabelValues(kind, op).Inc()
}

// GinHandleMiddleware records request count, latency and in-flight gauge per
// route template. Scrapes of /metrics are not counted.
func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		route := ctx.FullPath()
		if route == "/metrics" {
			ctx.Next()
			return
		}
		if route == "" {
			route = "unmatched"
		}

		start := time.Now()
		method := ctx.Request.Method

		inFlight := p.InFlight.WithLabelValues(method, route)
		inFlight.Inc()
		defer inFlight.Dec()

		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
	}
}
