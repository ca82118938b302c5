package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_operations_total",
		Help: "Total number of catalog operations by entity, operation and outcome",
	}, []string{"entity", "op", "outcome"})

	CatalogOperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_operation_latency_seconds",
		Help:    "Latency of catalog operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity", "op"})

	CascadedOrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cascaded_orders_total",
		Help: "Total number of orders removed by cascading customer or product deletes",
	}, []string{"parent"})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_events_published_total",
		Help: "Total number of catalog events published",
	}, []string{"event_type", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
