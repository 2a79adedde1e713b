package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeIgnored  = "ignored"
)

var (
	Rooms = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "durak_rooms",
			Help: "Registered rooms by status",
		},
		[]string{"status"},
	)
	Connections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "durak_connections",
			Help: "Open websocket connections",
		},
	)
	Events = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "durak_events_total",
			Help: "Inbound protocol events by outcome",
		},
		[]string{"event", "outcome"},
	)
	Broadcasts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "durak_broadcasts_total",
			Help: "Room snapshots pushed to a room group",
		},
		[]string{"event"},
	)
)

func init() {
	prometheus.MustRegister(Rooms)
	prometheus.MustRegister(Connections)
	prometheus.MustRegister(Events)
	prometheus.MustRegister(Broadcasts)
}

// Event counts one handled inbound event.
func Event(event, outcome string) {
	Events.WithLabelValues(event, outcome).Inc()
}
