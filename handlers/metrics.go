package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var reservationConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reservation_conflicts_total",
	Help: "Reservation requests rejected because the table was already booked.",
})
