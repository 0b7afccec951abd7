package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var taskOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "task_operations_total",
		Help: "Task store operations by kind and outcome",
	},
	[]string{"op", "result"},
)

func init() {
	prometheus.MustRegister(taskOps)
}
