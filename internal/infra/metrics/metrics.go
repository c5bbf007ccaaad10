package metrics

import (
	"net/http"

	"realz/internal/domain"
	"realz/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts rendered verifications by final state and by the class of
// the upstream HTTP status.
type Recorder struct {
	registry      *prometheus.Registry
	verifications *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "realz",
		Name:      "verifications_total",
		Help:      "Rendered proof verifications by final UI state and upstream status class.",
	}, []string{"state", "status_class"})
	registry.MustRegister(verifications)
	return &Recorder{registry: registry, verifications: verifications}
}

func (r *Recorder) Record(state domain.UIState, httpStatus int) {
	if r == nil {
		return
	}
	r.verifications.WithLabelValues(state.String(), StatusClass(httpStatus)).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func StatusClass(status int) string {
	switch {
	case status == 0:
		return "none"
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	default:
		return "other"
	}
}

var _ usecase.OutcomeRecorder = (*Recorder)(nil)
