package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rui",
		Name:      "commands_total",
		Help:      "Handled commands and component interactions by outcome.",
	}, []string{"command", "status"})

	commandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rui",
		Name:      "command_duration_seconds",
		Help:      "Time spent handling a command.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2, 5, 10},
	}, []string{"command"})
)

// RecordOutcome counts a command result by its status label.
func RecordOutcome(command, status string) {
	commandsTotal.WithLabelValues(command, status).Inc()
}
