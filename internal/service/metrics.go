package service

import "github.com/prometheus/client_golang/prometheus"

var userWrites = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "user_writes_total", Help: "Count of successful user writes"},
	[]string{"op"},
)

func init() { prometheus.MustRegister(userWrites) }
