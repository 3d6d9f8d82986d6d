// Package metrics 定义服务使用的 Prometheus 指标。
// 所有指标都注册到默认 registry，由 /metrics 路由暴露。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MappingsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shorturl_mappings_created_total",
			Help: "Number of short links created.",
		})

	KeyCollisionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shorturl_key_collisions_total",
			Help: "Number of inserts rejected by a unique key constraint.",
		})

	RedirectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shorturl_redirects_total",
			Help: "Redirect lookups by result (hit, miss).",
		}, []string{"result"})

	ClickIncrementErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shorturl_click_increment_errors_total",
			Help: "Number of click counter updates that failed.",
		})

	DeactivationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shorturl_deactivations_total",
			Help: "Number of admin delete requests that were applied.",
		})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shorturl_http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"})
)

func init() {
	prometheus.MustRegister(
		MappingsCreatedTotal,
		KeyCollisionsTotal,
		RedirectsTotal,
		ClickIncrementErrorsTotal,
		DeactivationsTotal,
		HTTPRequestDuration,
	)
}
