package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edufeed_push_delivered_total",
		Help: "Push messages accepted by the gateway.",
	})

	metricFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edufeed_push_failed_total",
		Help: "Push messages that failed, transient and rejected alike.",
	})

	metricPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edufeed_push_tokens_purged_total",
		Help: "Device tokens cleared after the gateway rejected them.",
	})

	metricBatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edufeed_push_batches_total",
		Help: "Fan-out batches by terminal result.",
	}, []string{"result"})
)

const (
	batchResultSent         = "sent"
	batchResultNoRecipients = "no_recipients"
	batchResultGatewayDown  = "gateway_down"
	batchResultError        = "error"
)
