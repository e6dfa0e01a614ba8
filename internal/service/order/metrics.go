package order

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders placed, by package",
		},
		[]string{"package"},
	)

	OrderNumberCollisionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_number_collisions_total",
			Help: "Total number of generated order numbers rejected as duplicates",
		},
	)

	OrderStatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Total number of admin status changes",
		},
		[]string{"from", "to"},
	)
)
