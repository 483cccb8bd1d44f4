// Package metrics defines the Prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration observes HTTP request latency by route, method, and status.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billsync_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	// ExpensesCreated counts successfully recorded expenses by split method.
	ExpensesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billsync_expenses_created_total",
			Help: "Expenses recorded, by split method.",
		},
		[]string{"split_method"},
	)

	// GroupsCreated counts successfully created groups.
	GroupsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billsync_groups_created_total",
			Help: "Groups created.",
		},
	)

	// UsersRegistered counts successful signups.
	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billsync_users_registered_total",
			Help: "User accounts registered.",
		},
	)
)
