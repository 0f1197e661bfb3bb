package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webchat_http_requests_total",
		Help: "HTTP requests by route pattern and status code.",
	}, []string{"route", "status"})

	messagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webchat_messages_sent_total",
		Help: "Messages accepted by the send endpoint.",
	})
)
