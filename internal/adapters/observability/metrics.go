package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "house_price", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "house_price", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	Predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "house_price", Name: "predictions_total", Help: "Predictions served."},
		[]string{"endpoint", "outcome"}, // outcome: ok|error
	)
	PredictionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "house_price", Name: "prediction_duration_seconds",
			Help:    "Model inference duration seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "house_price", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	StorageErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "house_price", Name: "storage_errors_total", Help: "Failed prediction-log writes/reads."},
		[]string{"op", "kind"},
	)
	DropdownDegraded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "house_price", Name: "dropdown_options_degraded",
		Help: "1 when the form uses fallback dropdown options instead of the model's categories.",
	})
	ModelInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: "house_price", Name: "model_info", Help: "Loaded pipeline artifact."},
		[]string{"artifact_id"},
	)
)

// Serve exposes the default registry on a separate listener. Empty addr disables it.
func Serve(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(InitRegistry()))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, Predictions, PredictionLatency,
		CacheEvents, StorageErrors, DropdownDegraded, ModelInfo)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObservePrediction(endpoint string, err error, dur time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	Predictions.WithLabelValues(endpoint, outcome).Inc()
	PredictionLatency.WithLabelValues(endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveStorageError(op string, err error) {
	StorageErrors.WithLabelValues(op, LabelErr(err)).Inc()
}

func SetDropdownDegraded(degraded bool) {
	if degraded {
		DropdownDegraded.Set(1)
		return
	}
	DropdownDegraded.Set(0)
}

func SetModelInfo(artifactID string) {
	ModelInfo.Reset()
	ModelInfo.WithLabelValues(artifactID).Set(1)
}

func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
