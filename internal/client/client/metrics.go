package client

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests  *prometheus.CounterVec
	refreshes *prometheus.CounterVec
	expired   prometheus.Counter
}

// newMetrics creates the client collectors and registers them on reg.
// A nil reg leaves them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "api_client",
			Name:      "requests_total",
			Help:      "Requests sent to the API, by method and status class.",
		}, []string{"method", "status"}),
		refreshes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "api_client",
			Name:      "token_refreshes_total",
			Help:      "Access token refresh calls, by result.",
		}, []string{"result"}),
		expired: f.NewCounter(prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "api_client",
			Name:      "sessions_expired_total",
			Help:      "Sessions cleared after an unrecoverable 401.",
		}),
	}
}

func statusClass(code int) string {
	if code == 0 {
		return "error"
	}
	return fmt.Sprintf("%dxx", code/100)
}
