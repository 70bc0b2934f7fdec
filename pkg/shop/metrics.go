package shop

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	wakeupCut      = "cut"
	wakeupSpurious = "spurious"
)

var (
	waitingGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "barbershop_waiting_customers",
		Help: "The number of customers seated in the waiting room",
	})
	servedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barbershop_customers_served",
		Help: "The number of customers that got a haircut",
	})
	turnedAwayCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barbershop_customers_turned_away",
		Help: "The number of customers that left because the waiting room was full",
	})
	interruptedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barbershop_customers_interrupted",
		Help: "The number of customers stopped by a shutdown before reaching an outcome",
	})
	wakeupCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barbershop_barber_wakeups",
		Help: "The number of times the barber woke up, by what it found in the waiting room",
	}, []string{"outcome"})
	serviceHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "barbershop_service_seconds",
		Help:    "Duration of finished haircuts",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})
)
