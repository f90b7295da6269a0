package builtin

import (
	"strconv"
	"time"

	"github.com/ffaiyaz23/boltgo/middleware"
	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records dispatch latency and outcome counts by request kind and
// response status. It's ambient observability, not part of the core
// dispatch contract, so it's opt-in via App.Use like any other
// middleware.
type Metrics struct {
	requestsTotal *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewMetrics registers its collectors against reg (pass
// prometheus.DefaultRegisterer to use the global registry).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "boltgo_requests_total",
			Help: "Total Slack requests processed, by kind and response status.",
		}, []string{"kind", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "boltgo_request_duration_seconds",
			Help:    "Time spent running the middleware chain and handler for a request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	reg.MustRegister(m.requestsTotal, m.duration)
	return m
}

func (m *Metrics) Apply(req *request.Request, draft *response.Response, next middleware.Next) (*response.Response, error) {
	start := time.Now()
	resp, err := next(req)
	m.duration.WithLabelValues(req.Kind.String()).Observe(time.Since(start).Seconds())

	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	m.requestsTotal.WithLabelValues(req.Kind.String(), status).Inc()
	return resp, err
}
