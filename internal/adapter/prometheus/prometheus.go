package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusAdapter struct {
	requestDuration       *prometheus.HistogramVec
	requestsTotal         *prometheus.CounterVec
	notificationsSent     prometheus.Counter
	notificationsThrottle prometheus.Counter
	detectionsTotal       *prometheus.CounterVec
}

func NewPrometheusAdapter() *PrometheusAdapter {
	return &PrometheusAdapter{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		notificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "maintenance_notifications_sent_total",
			Help: "Service reminders dispatched",
		}),
		notificationsThrottle: promauto.NewCounter(prometheus.CounterOpts{
			Name: "maintenance_notifications_throttled_total",
			Help: "Overdue intervals skipped by the throttle window",
		}),
		detectionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bike_detections_total",
			Help: "Bike name detections by confidence tier",
		}, []string{"confidence"}),
	}
}

func (p *PrometheusAdapter) RecordRequest(method, path string, status int, started time.Time) {
	p.requestDuration.WithLabelValues(method, path).Observe(time.Since(started).Seconds())
	p.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func (p *PrometheusAdapter) IncNotificationsSent() {
	p.notificationsSent.Inc()
}

func (p *PrometheusAdapter) IncNotificationsThrottled() {
	p.notificationsThrottle.Inc()
}

func (p *PrometheusAdapter) IncDetections(confidence string) {
	p.detectionsTotal.WithLabelValues(confidence).Inc()
}
