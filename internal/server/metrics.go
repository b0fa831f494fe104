// Package server Prometheus 指标导出
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 包含所有 API 指标
// 持有独立的 registry，多个 Handler 实例（测试场景）互不冲突
type Metrics struct {
	registry *prometheus.Registry

	// HTTP 请求指标
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// 业务指标
	LoginsTotal        *prometheus.CounterVec
	RegistrationsTotal *prometheus.CounterVec
	InvitesCreated     prometheus.Counter
	InvitesRedeemed    prometheus.Counter
}

// NewMetrics 创建 API 指标实例
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "path"},
		),
		LoginsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Total login attempts by result",
			},
			[]string{"result"},
		),
		RegistrationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_total",
				Help:      "Total registration attempts by result",
			},
			[]string{"result"},
		),
		InvitesCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invites_created_total",
				Help:      "Total invite codes created",
			},
		),
		InvitesRedeemed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invites_redeemed_total",
				Help:      "Total invite codes redeemed",
			},
		),
	}
}

// HTTPHandler 返回本实例 registry 的 Prometheus 指标端点
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder 捕获响应状态码供中间件记录
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument 请求日志与指标中间件
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		// 指标按路由模式聚合，避免路径参数撑爆标签基数
		pattern := r.Pattern
		if pattern == "" {
			pattern = r.URL.Path
		}
		h.metrics.RequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		h.metrics.RequestDuration.WithLabelValues(r.Method, pattern).Observe(duration.Seconds())
		h.logger.HTTPRequestLog(r.Method, r.URL.Path, rec.status, duration, r.RemoteAddr)
	})
}
